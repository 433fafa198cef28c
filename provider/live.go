package provider

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/elijahnyp/smarthouse/report"
	"github.com/elijahnyp/smarthouse/util"
)

var ErrBadRequest = errors.New("live: request must be room/device or {\"room\":..,\"device\":..}")

// Live collects entries requested over MQTT. Handle is the message handler
// for the request topic and may run concurrently with Entries.
type Live struct {
	mu      sync.Mutex
	entries []report.Entry
	limit   int
}

// NewLive keeps at most limit entries, dropping the oldest. limit <= 0 means no limit.
func NewLive(limit int) *Live {
	return &Live{limit: limit}
}

func (l *Live) Entries() []report.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]report.Entry(nil), l.entries...)
}

func (l *Live) Add(e report.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = append([]report.Entry(nil), l.entries[len(l.entries)-l.limit:]...)
	}
}

func (l *Live) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// ParseRequest accepts "room/device" or a JSON entry object.
func ParseRequest(payload []byte) (report.Entry, error) {
	text := strings.TrimSpace(string(payload))
	if strings.HasPrefix(text, "{") {
		var e report.Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return report.Entry{}, errors.Join(ErrBadRequest, err)
		}
		return e, nil
	}
	room, device, ok := strings.Cut(text, "/")
	if !ok {
		return report.Entry{}, ErrBadRequest
	}
	return report.Entry{Room: room, Device: device}, nil
}

func (l *Live) Handle(client MQTT.Client, message MQTT.Message) {
	e, err := ParseRequest(message.Payload())
	if err != nil {
		util.Logger.Warn().Msgf("ignoring request on %s: %v", message.Topic(), err)
		return
	}
	util.Logger.Debug().Msgf("report requested for %s/%s", e.Room, e.Device)
	l.Add(e)
}

// Subscribe registers Handle on topic; the subscription is renewed on every reconnect.
func (l *Live) Subscribe(topic string) {
	util.RegisterMQTTSubscription(topic, l.Handle)
}
