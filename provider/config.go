package provider

import (
	"github.com/elijahnyp/smarthouse/report"
	"github.com/elijahnyp/smarthouse/util"
	"github.com/spf13/viper"
)

const DefaultConfigKey = "report.entries"

// Config reads its entries from a viper key on every call, so a reloaded
// config file changes the next report.
type Config struct {
	v   *viper.Viper
	key string
}

func NewConfig(v *viper.Viper, key string) *Config {
	if key == "" {
		key = DefaultConfigKey
	}
	return &Config{v: v, key: key}
}

func (c *Config) Entries() []report.Entry {
	var entries []report.Entry
	if err := c.v.UnmarshalKey(c.key, &entries); err != nil {
		util.Logger.Error().Msgf("error unmarshaling %s: %v", c.key, err)
		return nil
	}
	return entries
}
