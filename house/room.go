package house

import "fmt"

// Room owns an ordered list of devices. Device names are expected to be
// unique; on duplicates the first device wins.
type Room struct {
	name    string
	devices []Device
}

// NewRoom copies devices so the room cannot be changed through the caller's slice.
func NewRoom(name string, devices ...Device) Room {
	return Room{name: name, devices: append([]Device(nil), devices...)}
}

func (r Room) Name() string {
	return r.name
}

func (r Room) Devices() []Device {
	return append([]Device(nil), r.devices...)
}

func (r Room) DeviceNames() []string {
	names := make([]string, 0, len(r.devices))
	for _, d := range r.devices {
		names = append(names, d.name)
	}
	return names
}

func (r Room) Device(name string) (Device, error) {
	for _, d := range r.devices {
		if d.name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %q in room %q", ErrDeviceNotFound, name, r.name)
}

func (r Room) HasDevice(name string) bool {
	_, err := r.Device(name)
	return err == nil
}
