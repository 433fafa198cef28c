// Package house models a house as an immutable tree of rooms and devices
// with top-down lookups by name.
package house

import "fmt"

// House is the root of the tree. It is never mutated after New returns, so
// a single House may be read from several goroutines without locking.
type House struct {
	name  string
	rooms []Room
}

// New copies rooms so the house cannot be changed through the caller's slice.
func New(name string, rooms ...Room) *House {
	return &House{name: name, rooms: append([]Room(nil), rooms...)}
}

func (h *House) Name() string {
	return h.name
}

func (h *House) Rooms() []Room {
	return append([]Room(nil), h.rooms...)
}

// RoomNames returns the room names in house order.
func (h *House) RoomNames() []string {
	names := make([]string, 0, len(h.rooms))
	for _, r := range h.rooms {
		names = append(names, r.name)
	}
	return names
}

// Room returns the first room called name.
func (h *House) Room(name string) (Room, error) {
	for _, r := range h.rooms {
		if r.name == name {
			return r, nil
		}
	}
	return Room{}, fmt.Errorf("%w: %q", ErrRoomNotFound, name)
}

// DeviceNames returns the device names of the named room in room order.
func (h *House) DeviceNames(room string) ([]string, error) {
	r, err := h.Room(room)
	if err != nil {
		return nil, err
	}
	return r.DeviceNames(), nil
}

// Device looks up a device inside a room. A missing room reports
// ErrRoomNotFound, a missing device in an existing room ErrDeviceNotFound.
func (h *House) Device(room, device string) (Device, error) {
	r, err := h.Room(room)
	if err != nil {
		return Device{}, err
	}
	return r.Device(device)
}

func (h *House) RoomExists(room string) bool {
	_, err := h.Room(room)
	return err == nil
}

func (h *House) DeviceExists(room, device string) bool {
	r, err := h.Room(room)
	if err != nil {
		return false
	}
	return r.HasDevice(device)
}

// Validate checks that the house, its rooms and devices all carry a name.
func (h *House) Validate() error {
	if h.name == "" {
		return fmt.Errorf("%w: house has no name", ErrInvalidHouse)
	}
	for i, r := range h.rooms {
		if r.name == "" {
			return fmt.Errorf("%w: room %d has no name", ErrInvalidHouse, i)
		}
		for j, d := range r.devices {
			if d.name == "" {
				return fmt.Errorf("%w: device %d in room %q has no name", ErrInvalidHouse, j, r.name)
			}
		}
	}
	return nil
}
