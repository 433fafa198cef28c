package util

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/elijahnyp/smarthouse/house"
)

func testHouse() *house.House {
	return house.New("sample SmartHouse",
		house.NewRoom("kitchen", house.NewDevice("socket-1", "on"), house.NewDevice("socket-2", "off")),
		house.NewRoom("Living Room", house.NewDevice("lamp", "off")),
	)
}

func TestTopicName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"kitchen", "kitchen"},
		{"Living Room", "living_room"},
		{"a/b+c#d", "a_b_c_d"},
		{"socket-1", "socket-1"},
	}
	for _, tt := range tests {
		if got := TopicName(tt.in); got != tt.expected {
			t.Errorf("TopicName(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestConstructHAAdvertisement(t *testing.T) {
	ad := ConstructHAAdvertisement("sample SmartHouse", "Living Room", "lamp")

	if ad.Name != "Living Room lamp" {
		t.Errorf("Name = %s", ad.Name)
	}
	if ad.StateTopic != "smarthouse/living_room/lamp/state" {
		t.Errorf("StateTopic = %s", ad.StateTopic)
	}
	if ad.UniqueID != "smarthouse-living_room_lamp" {
		t.Errorf("UniqueID = %s", ad.UniqueID)
	}
	if ad.Platform != "sensor" {
		t.Errorf("Platform = %s, expected sensor", ad.Platform)
	}
	if len(ad.Availability) != 1 || ad.Availability[0].Topic != OnlineTopic {
		t.Errorf("Availability = %+v", ad.Availability)
	}
	if ad.Device.Name != "sample SmartHouse" || len(ad.Device.Identifiers) != 1 || ad.Device.Identifiers[0] != "smarthouse_sample_smarthouse" {
		t.Errorf("Device = %+v", ad.Device)
	}
}

func TestHAAdvertisement_ToJson(t *testing.T) {
	ad := ConstructHAAdvertisement("h", "kitchen", "socket-1")

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(ad.ToJson()), &decoded); err != nil {
		t.Fatalf("ToJson produced invalid JSON: %v", err)
	}
	for _, key := range []string{"availability", "device", "uniq_id", "name", "state_topic", "platform", "qos"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %s", key)
		}
	}
}

func TestAdvertiseHA(t *testing.T) {
	mockClient := &MockMQTTClient{connected: true}
	AdvertiseHA(testHouse(), mockClient)

	calls := mockClient.published()
	if len(calls) != 3 {
		t.Fatalf("Expected 3 discovery messages, got %d", len(calls))
	}
	expected := []string{
		"homeassistant/sensor/kitchen_socket-1/config",
		"homeassistant/sensor/kitchen_socket-2/config",
		"homeassistant/sensor/living_room_lamp/config",
	}
	for i, topic := range expected {
		if calls[i].Topic != topic {
			t.Errorf("call %d topic = %s, expected %s", i, calls[i].Topic, topic)
		}
		if calls[i].Retained {
			t.Errorf("discovery message %s should not be retained", topic)
		}
	}
}

func TestPublishDeviceStates(t *testing.T) {
	mockClient := &MockMQTTClient{connected: true}
	PublishDeviceStates(testHouse(), mockClient)

	calls := mockClient.published()
	if len(calls) != 3 {
		t.Fatalf("Expected 3 state messages, got %d", len(calls))
	}
	if calls[1].Topic != "smarthouse/kitchen/socket-2/state" || calls[1].Payload != "off" || !calls[1].Retained {
		t.Errorf("unexpected state message %+v", calls[1])
	}
	if !strings.HasPrefix(calls[2].Topic, "smarthouse/living_room/") {
		t.Errorf("unexpected topic %s", calls[2].Topic)
	}
}
