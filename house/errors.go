package house

import "errors"

// Lookup errors. Check them with errors.Is, the returned errors wrap the
// sentinel together with the name that was not found.
var (
	// ErrRoomNotFound is returned when no room in the house has the requested name.
	ErrRoomNotFound = errors.New("room does not exist")

	// ErrDeviceNotFound is returned when the room exists but holds no device with the requested name.
	ErrDeviceNotFound = errors.New("device does not exist")

	// ErrInvalidHouse is returned when a house definition is missing names.
	ErrInvalidHouse = errors.New("invalid house")
)
