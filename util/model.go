package util

import (
	"fmt"

	"github.com/elijahnyp/smarthouse/house"
)

// HouseConfig is the config and JSON shape of a house.
type HouseConfig struct {
	Name  string       `mapstructure:"name" json:"name"`
	Rooms []RoomConfig `mapstructure:"rooms" json:"rooms"`
}

type RoomConfig struct {
	Name    string         `mapstructure:"name" json:"name"`
	Devices []DeviceConfig `mapstructure:"devices" json:"devices"`
}

type DeviceConfig struct {
	Name  string `mapstructure:"name" json:"name"`
	State string `mapstructure:"state" json:"state"`
}

func (c HouseConfig) Build() (*house.House, error) {
	rooms := make([]house.Room, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		devices := make([]house.Device, 0, len(r.Devices))
		for _, d := range r.Devices {
			devices = append(devices, house.NewDevice(d.Name, d.State))
		}
		rooms = append(rooms, house.NewRoom(r.Name, devices...))
	}
	h := house.New(c.Name, rooms...)
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// DescribeHouse is the inverse of Build.
func DescribeHouse(h *house.House) HouseConfig {
	c := HouseConfig{Name: h.Name(), Rooms: []RoomConfig{}}
	for _, r := range h.Rooms() {
		rc := RoomConfig{Name: r.Name(), Devices: []DeviceConfig{}}
		for _, d := range r.Devices() {
			rc.Devices = append(rc.Devices, DeviceConfig{Name: d.Name(), State: d.State()})
		}
		c.Rooms = append(c.Rooms, rc)
	}
	return c
}

// HouseConfigured reports whether the config carries a house section.
func HouseConfigured() bool {
	return Config.IsSet("house")
}

// LoadHouse builds the house described under the "house" key.
func LoadHouse() (*house.House, error) {
	var c HouseConfig
	if err := Config.UnmarshalKey("house", &c); err != nil {
		Logger.Error().Msgf("error unmarshaling house: %v", err)
		return nil, fmt.Errorf("unmarshaling house: %w", err)
	}
	h, err := c.Build()
	if err != nil {
		Logger.Error().Msgf("error building house: %v", err)
		return nil, err
	}
	Logger.Debug().Msgf("house %q loaded with %d rooms", h.Name(), len(c.Rooms))
	return h, nil
}
