// Package report resolves the entries of an InfoProvider against a house and
// renders the outcome as text. Lookup failures become report lines, building
// a report never fails.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elijahnyp/smarthouse/house"
)

type Status string

const (
	StatusOK             Status = "ok"
	StatusRoomNotFound   Status = "room_not_found"
	StatusDeviceNotFound Status = "device_not_found"
)

// Line is the outcome of a single entry. State is only set for StatusOK.
type Line struct {
	Room   string `json:"room"`
	Device string `json:"device"`
	State  string `json:"state,omitempty"`
	Status Status `json:"status"`
}

type Result struct {
	House string `json:"house"`
	Lines []Line `json:"lines"`
}

// Resolve looks up every entry of p in h. Each entry is resolved on its own,
// a missing room or device never affects the other lines.
func Resolve(h *house.House, p InfoProvider) Result {
	res := Result{House: h.Name(), Lines: []Line{}}
	if p == nil {
		return res
	}
	for _, e := range p.Entries() {
		res.Lines = append(res.Lines, resolveEntry(h, e))
	}
	return res
}

func resolveEntry(h *house.House, e Entry) Line {
	line := Line{Room: e.Room, Device: e.Device}
	d, err := h.Device(e.Room, e.Device)
	switch {
	case err == nil:
		line.Status = StatusOK
		line.State = d.State()
	case errors.Is(err, house.ErrRoomNotFound):
		line.Status = StatusRoomNotFound
	default:
		line.Status = StatusDeviceNotFound
	}
	return line
}

// WriteTo renders the report text to w.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := fmt.Fprintf(w, "Report for house: %s\n", r.House)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, l := range r.Lines {
		n, err = io.WriteString(w, l.text())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (l Line) text() string {
	s := fmt.Sprintf("  Room %s: ", l.Room)
	if l.Status == StatusRoomNotFound {
		return s + "does not exist in the house.\n"
	}
	s += fmt.Sprintf("\n    Device %s: ", l.Device)
	if l.Status == StatusDeviceNotFound {
		return s + fmt.Sprintf("does not exist in the room %s.\n", l.Room)
	}
	return s + l.State + "\n"
}

func (r Result) String() string {
	var b strings.Builder
	r.WriteTo(&b) //nolint:errcheck // strings.Builder does not fail
	return b.String()
}

// Build returns the text report for the entries of p.
func Build(h *house.House, p InfoProvider) string {
	return Resolve(h, p).String()
}

// Write streams the same text Build returns to w, line by line. Only errors
// from w are returned.
func Write(w io.Writer, h *house.House, p InfoProvider) error {
	if _, err := fmt.Fprintf(w, "Report for house: %s\n", h.Name()); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	for _, e := range p.Entries() {
		if _, err := io.WriteString(w, resolveEntry(h, e).text()); err != nil {
			return err
		}
	}
	return nil
}

// Summary counts lines per status.
func (r Result) Summary() map[Status]int {
	counts := map[Status]int{StatusOK: 0, StatusRoomNotFound: 0, StatusDeviceNotFound: 0}
	for _, l := range r.Lines {
		counts[l.Status]++
	}
	return counts
}
