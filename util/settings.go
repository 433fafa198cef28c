package util

import (
	"crypto/rand"
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "SMARTHOUSE"

var Config = viper.New()

var config_listeners []func()

func RegisterNewConfigListener(new_listener func()) {
	for _, listener := range config_listeners {
		if reflect.ValueOf(new_listener).Pointer() == reflect.ValueOf(listener).Pointer() {
			Logger.Warn().Msg("config listener already registered")
			return
		}
	}
	config_listeners = append(config_listeners, new_listener)
}

func OnNewConfig() {
	for _, listener := range config_listeners {
		listener()
	}
}

func GetRandString(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	randBytes := make([]byte, n)
	if _, err := rand.Read(randBytes); err != nil {
		for i := range b {
			b[i] = letterBytes[i%len(letterBytes)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = letterBytes[int(randBytes[i])%len(letterBytes)]
	}
	return string(b)
}

func bindEnv() {
	Config.SetEnvPrefix(ENV_PREFIX)
	Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Config.AutomaticEnv()
}

func setDefaults() {
	Config.SetDefault("log_level", "info")
	Config.SetDefault("broker_uri", "tcp://mqtt")
	Config.SetDefault("cleansess", false)
	Config.SetDefault("id_base", "smarthouse")
	Config.SetDefault("username", "")
	Config.SetDefault("password", "")
	Config.SetDefault("mqtt_enabled", false)
	Config.SetDefault("details_port", 8080)
	Config.SetDefault("publisher.enabled", false)
	Config.SetDefault("publisher.frequency", 30)
	Config.SetDefault("publisher.topic", "smarthouse/report")
	Config.SetDefault("live.topic", "smarthouse/report/request")
	Config.SetDefault("live.limit", 100)
	Config.SetDefault("report.source", "config")
}

// SetupConfig loads defaults, the smarthouse config file and the environment,
// then watches the file and fires the config listeners on every change.
// SMARTHOUSE_PUBLISHER_TOPIC overrides publisher.topic.
func SetupConfig() {
	setDefaults()

	// config file
	Config.SetConfigName("smarthouse")
	Config.AddConfigPath("/")
	Config.AddConfigPath("./")
	Config.AddConfigPath("./config")
	Config.AddConfigPath("/etc")
	Config.AddConfigPath("/smarthouse")
	Config.AddConfigPath("/smarthouse/config")

	err := Config.ReadInConfig()
	if err != nil {
		Logger.Warn().Msgf("unable to read config file: %v", fmt.Errorf("%v", err))
	}

	// environment variables
	bindEnv()

	// watch for changes
	if Config.ConfigFileUsed() != "" {
		Config.WatchConfig()
		Config.OnConfigChange(func(e fsnotify.Event) {
			Logger.Info().Msgf("Config file changed: %v", e.Name)
			Logger.Debug().Msgf("Config Additional Info: %v", e.String())
			OnNewConfig()
		})
	}
}

// LoadConfigFile reads an explicit config file instead of searching the default paths.
func LoadConfigFile(path string) error {
	setDefaults()
	Config.SetConfigFile(path)
	if err := Config.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	bindEnv()
	return nil
}
