package main

import (
	"github.com/elijahnyp/smarthouse/house"
	"github.com/elijahnyp/smarthouse/provider"
	"github.com/elijahnyp/smarthouse/report"
)

func sampleHouse() *house.House {
	return house.New("sample SmartHouse",
		house.NewRoom("kitchen", house.NewDevice("socket-1", "on"), house.NewDevice("socket-2", "off")),
		house.NewRoom("hall", house.NewDevice("socket-1", "off"), house.NewDevice("socket-2", "on")),
	)
}

// sampleProviders covers all devices valid, unknown devices and an unknown room.
func sampleProviders() []report.InfoProvider {
	return []report.InfoProvider{
		provider.Pairs(
			[2]string{"kitchen", "socket-1"},
			[2]string{"kitchen", "socket-2"},
			[2]string{"hall", "socket-1"},
			[2]string{"hall", "socket-2"},
		),
		provider.Pairs(
			[2]string{"kitchen", "socket-1"},
			[2]string{"kitchen", "thermo-1"},
			[2]string{"hall", "socket-1"},
			[2]string{"hall", "socket-3"},
		),
		provider.Pairs(
			[2]string{"bedroom", "socket-1"},
			[2]string{"bedroom", "socket-2"},
			[2]string{"kitchen", "socket-1"},
			[2]string{"kitchen", "socket-2"},
		),
	}
}
