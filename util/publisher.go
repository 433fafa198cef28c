package util

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/elijahnyp/smarthouse/house"
	"github.com/elijahnyp/smarthouse/report"
	"github.com/google/uuid"
)

type PublishedReport struct {
	ID        string                `json:"id"`
	Timestamp int64                 `json:"timestamp"`
	Counts    map[report.Status]int `json:"summary"`
	report.Result
}

func NewPublishedReport(res report.Result) PublishedReport {
	return PublishedReport{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Counts:    res.Summary(),
		Result:    res,
	}
}

// ReportSource returns the house and provider the next report is built from.
type ReportSource func() (*house.House, report.InfoProvider)

// ReportPublisher periodically builds a report and publishes the text on
// Topic and the JSON form on Topic/json.
type ReportPublisher struct {
	Enabled   bool
	Frequency int64
	Topic     string

	mu     sync.Mutex
	source ReportSource
	hooks  []func(PublishedReport)
	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
}

type publisherSettings struct {
	Enabled   bool   `mapstructure:"enabled"`
	Frequency int64  `mapstructure:"frequency"`
	Topic     string `mapstructure:"topic"`
}

// MakeReportPublisher loads the publisher section of the config. It is safe
// to call again after Stop while a report is still being published.
func (rp *ReportPublisher) MakeReportPublisher(source ReportSource) {
	var settings publisherSettings
	err := Config.UnmarshalKey("publisher", &settings)
	if err != nil {
		Logger.Error().Msgf("Error loading publisher config: %v", err)
	}
	rp.mu.Lock()
	rp.Enabled = settings.Enabled
	rp.Frequency = settings.Frequency
	rp.Topic = settings.Topic
	rp.source = source
	rp.mu.Unlock()
}

// OnPublish registers a hook called with every published report.
func (rp *ReportPublisher) OnPublish(hook func(PublishedReport)) {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.hooks = append(rp.hooks, hook)
}

func (rp *ReportPublisher) PublishOnce() PublishedReport {
	rp.mu.Lock()
	source := rp.source
	topic := rp.Topic
	hooks := append([]func(PublishedReport){}, rp.hooks...)
	rp.mu.Unlock()

	h, p := source()
	pr := NewPublishedReport(report.Resolve(h, p))

	if topic != "" {
		if err := Publish(topic, false, pr.String()); err != nil {
			logPublishError(topic, err)
		}
		data, err := json.Marshal(pr)
		if err != nil {
			Logger.Error().Msgf("Error marshalling report %s: %v", pr.ID, err)
		} else if err := Publish(topic+"/json", false, data); err != nil {
			logPublishError(topic+"/json", err)
		}
	}
	for _, hook := range hooks {
		hook(pr)
	}
	return pr
}

func logPublishError(topic string, err error) {
	if errors.Is(err, ErrNotConnected) {
		Logger.Debug().Msgf("skipping publish to %s: %v", topic, err)
		return
	}
	Logger.Warn().Msgf("Unable to publish report to %s: %v", topic, err)
}

func (rp *ReportPublisher) Start() {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if !rp.Enabled {
		Logger.Debug().Msg("report publisher disabled")
		return
	}
	if rp.ticker != nil {
		return
	}
	frequency := rp.Frequency
	if frequency <= 0 {
		frequency = 30
	}
	ticker := time.NewTicker(time.Duration(frequency) * time.Second)
	done := make(chan struct{})
	exited := make(chan struct{})
	rp.ticker = ticker
	rp.done = done
	rp.exited = exited

	go func() {
		defer close(exited)
		for {
			select {
			case <-ticker.C:
				rp.PublishOnce()
			case <-done:
				return
			}
		}
	}()
}

// Stop halts the ticker and waits for a report in flight to finish.
func (rp *ReportPublisher) Stop() {
	rp.mu.Lock()
	if rp.ticker == nil {
		rp.mu.Unlock()
		return
	}
	rp.ticker.Stop()
	close(rp.done)
	exited := rp.exited
	rp.ticker = nil
	rp.done = nil
	rp.exited = nil
	rp.mu.Unlock()

	<-exited
}

func (rp *ReportPublisher) Running() bool {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.ticker != nil
}
