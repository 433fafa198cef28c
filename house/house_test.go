package house

import (
	"errors"
	"reflect"
	"testing"
)

func sampleHouse() *House {
	return New("sample SmartHouse",
		NewRoom("kitchen", NewDevice("socket-1", "on"), NewDevice("socket-2", "off")),
		NewRoom("hall", NewDevice("socket-1", "off"), NewDevice("socket-2", "on")),
	)
}

func TestNewDevice(t *testing.T) {
	d := NewDevice("socket", "on")
	if d.Name() != "socket" {
		t.Errorf("Name() = %s, expected socket", d.Name())
	}
	if d.State() != "on" {
		t.Errorf("State() = %s, expected on", d.State())
	}
}

func TestHouse_RoomNames(t *testing.T) {
	h := sampleHouse()
	expected := []string{"kitchen", "hall"}
	if got := h.RoomNames(); !reflect.DeepEqual(got, expected) {
		t.Errorf("RoomNames() = %v, expected %v", got, expected)
	}
	if h.Name() != "sample SmartHouse" {
		t.Errorf("Name() = %s, expected sample SmartHouse", h.Name())
	}
}

func TestHouse_Room(t *testing.T) {
	h := sampleHouse()

	r, err := h.Room("hall")
	if err != nil {
		t.Fatalf("Room(hall) returned error: %v", err)
	}
	if !reflect.DeepEqual(r.DeviceNames(), []string{"socket-1", "socket-2"}) {
		t.Errorf("hall devices = %v", r.DeviceNames())
	}

	_, err = h.Room("bedroom")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Room(bedroom) error = %v, expected ErrRoomNotFound", err)
	}
}

func TestRoom_HasDevice(t *testing.T) {
	r, err := sampleHouse().Room("kitchen")
	if err != nil {
		t.Fatalf("Room(kitchen) returned error: %v", err)
	}

	tests := []struct {
		device   string
		expected bool
	}{
		{"socket-1", true},
		{"socket-2", true},
		{"thermo-1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := r.HasDevice(tt.device); got != tt.expected {
			t.Errorf("HasDevice(%q) = %v, expected %v", tt.device, got, tt.expected)
		}
	}
}

func TestHouse_DeviceNames(t *testing.T) {
	h := sampleHouse()

	names, err := h.DeviceNames("hall")
	if err != nil {
		t.Fatalf("DeviceNames(hall) returned error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"socket-1", "socket-2"}) {
		t.Errorf("DeviceNames(hall) = %v", names)
	}

	names, err = h.DeviceNames("bedroom")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("DeviceNames(bedroom) error = %v, expected ErrRoomNotFound", err)
	}
	if len(names) != 0 {
		t.Errorf("DeviceNames(bedroom) = %v, expected empty", names)
	}
}

func TestHouse_Device(t *testing.T) {
	h := sampleHouse()

	tests := []struct {
		name    string
		room    string
		device  string
		state   string
		wantErr error
	}{
		{"Existing device", "hall", "socket-1", "off", nil},
		{"Other room same name", "kitchen", "socket-1", "on", nil},
		{"Unknown room", "bedroom", "socket-1", "", ErrRoomNotFound},
		{"Unknown device", "kitchen", "socket-3", "", ErrDeviceNotFound},
		{"Empty names", "", "", "", ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := h.Device(tt.room, tt.device)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Device(%s, %s) error = %v, expected %v", tt.room, tt.device, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Device(%s, %s) returned error: %v", tt.room, tt.device, err)
			}
			if d.State() != tt.state {
				t.Errorf("Device(%s, %s).State() = %s, expected %s", tt.room, tt.device, d.State(), tt.state)
			}
		})
	}
}

func TestHouse_ExistsMatchesNames(t *testing.T) {
	h := sampleHouse()
	candidates := []string{"kitchen", "hall", "bedroom", "", "Kitchen"}

	for _, room := range candidates {
		listed := false
		for _, n := range h.RoomNames() {
			if n == room {
				listed = true
			}
		}
		if h.RoomExists(room) != listed {
			t.Errorf("RoomExists(%q) = %v, RoomNames lists it: %v", room, h.RoomExists(room), listed)
		}
	}

	devices := []string{"socket-1", "socket-2", "socket-3", "thermo-1", ""}
	for _, room := range h.RoomNames() {
		names, _ := h.DeviceNames(room)
		for _, device := range devices {
			listed := false
			for _, n := range names {
				if n == device {
					listed = true
				}
			}
			if h.DeviceExists(room, device) != listed {
				t.Errorf("DeviceExists(%q, %q) = %v, DeviceNames lists it: %v", room, device, h.DeviceExists(room, device), listed)
			}
		}
	}

	if h.DeviceExists("bedroom", "socket-1") {
		t.Error("DeviceExists should be false for an unknown room")
	}
}

func TestHouse_FirstMatchWins(t *testing.T) {
	h := New("dupes",
		NewRoom("hall", NewDevice("lamp", "on"), NewDevice("lamp", "off")),
		NewRoom("hall", NewDevice("fan", "on")),
	)

	d, err := h.Device("hall", "lamp")
	if err != nil {
		t.Fatalf("Device(hall, lamp) returned error: %v", err)
	}
	if d.State() != "on" {
		t.Errorf("expected first lamp (on), got %s", d.State())
	}
	if h.DeviceExists("hall", "fan") {
		t.Error("second hall should be shadowed by the first")
	}
}

func TestHouse_VariableSizes(t *testing.T) {
	empty := New("empty")
	if len(empty.RoomNames()) != 0 {
		t.Errorf("expected no rooms, got %v", empty.RoomNames())
	}
	if empty.RoomExists("kitchen") {
		t.Error("empty house should have no rooms")
	}

	h := New("big",
		NewRoom("attic"),
		NewRoom("garage", NewDevice("door", "closed"), NewDevice("light", "off"), NewDevice("charger", "charging")),
	)
	names, err := h.DeviceNames("attic")
	if err != nil || len(names) != 0 {
		t.Errorf("DeviceNames(attic) = %v, %v, expected empty list", names, err)
	}
	d, err := h.Device("garage", "charger")
	if err != nil || d.State() != "charging" {
		t.Errorf("Device(garage, charger) = %v, %v", d, err)
	}
}

func TestHouse_Immutable(t *testing.T) {
	devices := []Device{NewDevice("socket-1", "on")}
	rooms := []Room{NewRoom("kitchen", devices...)}
	h := New("copy", rooms...)

	devices[0] = NewDevice("socket-1", "off")
	rooms[0] = NewRoom("hall")

	d, err := h.Device("kitchen", "socket-1")
	if err != nil {
		t.Fatalf("Device(kitchen, socket-1) returned error: %v", err)
	}
	if d.State() != "on" {
		t.Errorf("house changed through caller slice, state = %s", d.State())
	}

	got := h.Rooms()
	got[0] = NewRoom("hall")
	if !h.RoomExists("kitchen") {
		t.Error("house changed through Rooms() result")
	}
}

func TestHouse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		house   *House
		wantErr bool
	}{
		{"Valid", sampleHouse(), false},
		{"No rooms", New("empty"), false},
		{"No house name", New(""), true},
		{"No room name", New("h", NewRoom("")), true},
		{"No device name", New("h", NewRoom("kitchen", NewDevice("", "on"))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.house.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidHouse) {
				t.Errorf("Validate() = %v, expected ErrInvalidHouse", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	if ErrRoomNotFound.Error() != "room does not exist" {
		t.Errorf("ErrRoomNotFound = %q", ErrRoomNotFound.Error())
	}
	if ErrDeviceNotFound.Error() != "device does not exist" {
		t.Errorf("ErrDeviceNotFound = %q", ErrDeviceNotFound.Error())
	}
}
