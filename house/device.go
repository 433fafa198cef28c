package house

// Device is a named leaf of the house with a free-form state string.
type Device struct {
	name  string
	state string
}

func NewDevice(name, state string) Device {
	return Device{name: name, state: state}
}

func (d Device) Name() string {
	return d.name
}

func (d Device) State() string {
	return d.state
}
