package util

import (
	"encoding/json"
	"fmt"
	"strings"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/elijahnyp/smarthouse/house"
)

type HAAvailability struct {
	Topic               string `json:"topic"`
	PayloadAvailable    string `json:"payload_available"`
	PayloadNotAvailable string `json:"payload_not_available"`
}

type HADeviceSpec struct {
	Name        string   `json:"name"`
	Identifiers []string `json:"ids"`
}

// HAAdvertisement is a Home Assistant MQTT discovery payload for one device state sensor.
type HAAdvertisement struct { //nolint:govet // struct layout optimized for JSON field order
	Availability []HAAvailability `json:"availability"`
	Device       HADeviceSpec     `json:"device"`
	UniqueID     string           `json:"uniq_id"`
	Name         string           `json:"name"`
	StateTopic   string           `json:"state_topic"`
	Platform     string           `json:"platform"`
	Qos          int              `json:"qos"`
}

func (ha HAAdvertisement) ToJson() string {
	data, err := json.Marshal(ha)
	if err != nil {
		Logger.Error().Msgf("Error marshalling HAAdvertisement: %v", err)
		return ""
	}
	return string(data)
}

// TopicName lowercases a house, room or device name and replaces characters
// that are not safe inside an MQTT topic level.
func TopicName(name string) string {
	return strings.NewReplacer(" ", "_", "/", "_", "+", "_", "#", "_").Replace(strings.ToLower(name))
}

func DeviceStateTopic(room, device string) string {
	return fmt.Sprintf("smarthouse/%s/%s/state", TopicName(room), TopicName(device))
}

func ConstructHAAdvertisement(houseName, room, device string) HAAdvertisement {
	id := TopicName(room) + "_" + TopicName(device)
	return HAAdvertisement{
		Name:       room + " " + device,
		StateTopic: DeviceStateTopic(room, device),
		Availability: []HAAvailability{
			{
				Topic:               OnlineTopic,
				PayloadAvailable:    "online",
				PayloadNotAvailable: "offline",
			},
		},
		Qos:      0,
		UniqueID: "smarthouse-" + id,
		Platform: "sensor",
		Device: HADeviceSpec{
			Name:        houseName,
			Identifiers: []string{"smarthouse_" + TopicName(houseName)},
		},
	}
}

// AdvertiseHA publishes a discovery config for every device of h.
func AdvertiseHA(h *house.House, client MQTT.Client) {
	for _, room := range h.Rooms() {
		for _, d := range room.Devices() {
			ha := ConstructHAAdvertisement(h.Name(), room.Name(), d.Name())
			topic := "homeassistant/sensor/" + TopicName(room.Name()) + "_" + TopicName(d.Name()) + "/config"
			if token := client.Publish(topic, 0, false, ha.ToJson()); token.Wait() && token.Error() != nil {
				Logger.Error().Msgf("Error Publishing: %v", token.Error())
			}
		}
	}
}

// PublishDeviceStates publishes each device state retained on its state topic.
func PublishDeviceStates(h *house.House, client MQTT.Client) {
	for _, room := range h.Rooms() {
		for _, d := range room.Devices() {
			if token := client.Publish(DeviceStateTopic(room.Name(), d.Name()), 0, true, d.State()); token.Wait() && token.Error() != nil {
				Logger.Error().Msgf("Error Publishing state of %s/%s: %v", room.Name(), d.Name(), token.Error())
			}
		}
	}
}
