package provider

import "github.com/elijahnyp/smarthouse/report"

// Fixed always returns the entries it was built with.
type Fixed struct {
	entries []report.Entry
}

func NewFixed(entries ...report.Entry) *Fixed {
	return &Fixed{entries: append([]report.Entry(nil), entries...)}
}

// Pairs builds a Fixed provider from room, device name pairs.
func Pairs(pairs ...[2]string) *Fixed {
	entries := make([]report.Entry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, report.Entry{Room: p[0], Device: p[1]})
	}
	return &Fixed{entries: entries}
}

func (f *Fixed) Entries() []report.Entry {
	return append([]report.Entry(nil), f.entries...)
}
