// Package provider holds InfoProvider implementations:
//
//   - Fixed: a list given at construction
//   - Config: the report.entries list of a viper config, read on every report
//   - File: a YAML document with an entries list
//   - Live: entries requested over MQTT
package provider
