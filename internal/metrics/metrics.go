package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// poll cycles. When built through Setup it also forwards to OpenTelemetry
// instruments; a nil Recorder is safe to use and records nothing.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an upstream call and stores
// the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordPollCycle tracks one scheduler cycle, labelled by game phase.
func (r *Recorder) RecordPollCycle(phase string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPollCycle(phase, duration, err)
}

// RecordDetection tracks a notable play surviving deduplication.
func (r *Recorder) RecordDetection() {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordDetection()
}

// RecordNotification tracks a delivery attempt by message kind.
func (r *Recorder) RecordNotification(kind string, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordNotification(kind, err)
}

// RecordWatchdogRecovery tracks the watchdog forcing a stalled scheduler
// forward.
func (r *Recorder) RecordWatchdogRecovery() {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordWatchdogRecovery()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(provider string) *providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
