package main

import (
	"sync"

	"github.com/elijahnyp/smarthouse/house"
	"github.com/elijahnyp/smarthouse/provider"
	"github.com/elijahnyp/smarthouse/report"
	. "github.com/elijahnyp/smarthouse/util"
)

// houseState holds the house and provider the service reports on. Both are
// replaced as a pair on config reload; readers take a snapshot.
type houseState struct {
	mu       sync.RWMutex
	house    *house.House
	provider report.InfoProvider
	live     *provider.Live
}

func newHouseState(live *provider.Live) *houseState {
	return &houseState{
		house:    sampleHouse(),
		provider: provider.NewFixed(),
		live:     live,
	}
}

func (s *houseState) Snapshot() (*house.House, report.InfoProvider) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.house, s.provider
}

func (s *houseState) set(h *house.House, p report.InfoProvider) {
	s.mu.Lock()
	s.house = h
	s.provider = p
	s.mu.Unlock()
}

// consumeLive clears the live requests once a report built from them has
// been published.
func (s *houseState) consumeLive(PublishedReport) {
	s.mu.RLock()
	active := s.live != nil && s.provider == report.InfoProvider(s.live)
	s.mu.RUnlock()
	if active {
		s.live.Reset()
	}
}

// selectProvider picks the report source named by report.source.
func (s *houseState) selectProvider() report.InfoProvider {
	switch Config.GetString("report.source") {
	case "live":
		return s.live
	case "config", "":
		return provider.NewConfig(Config, provider.DefaultConfigKey)
	default:
		Logger.Warn().Msgf("unknown report.source %q, using config", Config.GetString("report.source"))
		return provider.NewConfig(Config, provider.DefaultConfigKey)
	}
}

// reload rebuilds the house from config. A broken house definition keeps
// the previous house.
func (s *houseState) reload() {
	h, _ := s.Snapshot()
	if HouseConfigured() {
		loaded, err := LoadHouse()
		if err != nil {
			Logger.Error().Msgf("keeping house %q: %v", h.Name(), err)
		} else {
			h = loaded
		}
	}
	s.set(h, s.selectProvider())
	Logger.Info().Msgf("reporting on house %q", h.Name())
}
