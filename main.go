package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/elijahnyp/smarthouse/house"
	"github.com/elijahnyp/smarthouse/provider"
	"github.com/elijahnyp/smarthouse/report"
	. "github.com/elijahnyp/smarthouse/util"
	"github.com/spf13/pflag"
)

type options struct {
	sample      bool
	serve       bool
	entriesFile string
	configFile  string
	logLevel    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("smarthouse", pflag.ContinueOnError)
	fs.BoolVar(&opts.sample, "sample", false, "report on the built-in sample house")
	fs.BoolVar(&opts.serve, "serve", false, "run the report service")
	fs.StringVar(&opts.entriesFile, "entries", "", "YAML file with the (room, device) entries to report on")
	fs.StringVar(&opts.configFile, "config", "", "config file, instead of searching the default paths")
	fs.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error")
	err := fs.Parse(args)
	return opts, err
}

// cliInputs picks the house and the providers for a one-shot run. Without a
// configured house, or with -sample, the sample house is used; without an
// entries file or configured entries, the three sample entry lists are.
func cliInputs(opts options) (*house.House, []report.InfoProvider, error) {
	h := sampleHouse()
	if !opts.sample && HouseConfigured() {
		loaded, err := LoadHouse()
		if err != nil {
			return nil, nil, err
		}
		h = loaded
	}

	switch {
	case opts.entriesFile != "":
		f, err := provider.LoadFile(opts.entriesFile)
		if err != nil {
			return nil, nil, err
		}
		return h, []report.InfoProvider{f}, nil
	case !opts.sample && Config.IsSet(provider.DefaultConfigKey):
		return h, []report.InfoProvider{provider.NewConfig(Config, provider.DefaultConfigKey)}, nil
	default:
		return h, sampleProviders(), nil
	}
}

// printReports writes each report followed by an empty line.
func printReports(w io.Writer, h *house.House, providers []report.InfoProvider) error {
	for _, p := range providers {
		if err := report.Write(w, h, p); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func runService(ctx context.Context) error {
	live := provider.NewLive(Config.GetInt("live.limit"))
	live.Subscribe(Config.GetString("live.topic"))

	state = newHouseState(live)
	state.reload()
	RegisterNewConfigListener(state.reload)

	wsHub = NewHub()
	go wsHub.Run()

	if Config.GetBool("mqtt_enabled") {
		RegisterMQTTConnectHook("haadvertise", func(client MQTT.Client) {
			h, _ := state.Snapshot()
			AdvertiseHA(h, client)
			PublishDeviceStates(h, client)
		})
		if err := MqttInit(); err != nil {
			return err
		}
		RegisterNewConfigListener(func() {
			if err := MqttInit(); err != nil {
				Logger.Error().Msgf("Error reconnecting to broker: %v", err)
			}
		})
	}

	monitor := NewMonitorServer()
	registerHandlers(monitor)
	if err := monitor.Start(); err != nil {
		return err
	}
	RegisterNewConfigListener(monitor.Restart)

	var publisher ReportPublisher
	publisher.MakeReportPublisher(state.Snapshot)
	publisher.OnPublish(wsHub.BroadcastReport)
	publisher.OnPublish(state.consumeLive)
	publisher.Start()
	RegisterNewConfigListener(func() {
		publisher.Stop()
		publisher.MakeReportPublisher(state.Snapshot)
		publisher.Start()
	})

	Logger.Info().Msg("ready")
	<-ctx.Done()

	Logger.Info().Msg("shutting down")
	publisher.Stop()
	wsHub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := monitor.Shutdown(shutdownCtx); err != nil {
		Logger.Warn().Msgf("Error shutting down monitor server: %v", err)
	}
	if Client != nil && Client.IsConnected() {
		Client.Disconnect(250)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	LogInit("info")
	if opts.configFile != "" {
		if err := LoadConfigFile(opts.configFile); err != nil {
			Logger.Fatal().Msgf("%v", err)
		}
	} else {
		SetupConfig()
	}
	level := opts.logLevel
	if level == "" {
		level = Config.GetString("log_level")
	}
	LogInit(level)
	RegisterNewConfigListener(func() {
		if opts.logLevel == "" {
			LogInit(Config.GetString("log_level"))
		}
	})

	if opts.serve {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runService(ctx); err != nil {
			Logger.Fatal().Msgf("service failed: %v", err)
		}
		return
	}

	h, providers, err := cliInputs(opts)
	if err != nil {
		Logger.Fatal().Msgf("%v", err)
	}
	if err := printReports(os.Stdout, h, providers); err != nil {
		Logger.Fatal().Msgf("Error printing report: %v", err)
	}
}
