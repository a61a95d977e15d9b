package metrics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("statsapi", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("statsapi", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("statsapi"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("statsapi"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("statsapi"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("statsapi")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("statsapi", time.Millisecond, nil)
	rec.RecordPollCycle("in_progress", time.Millisecond, nil)
	rec.RecordDetection()
	rec.RecordNotification("home_run", nil)
	rec.RecordWatchdogRecovery()
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if snap := rec.Snapshot("statsapi"); snap.Calls != 0 {
		t.Fatalf("nil recorder should report zero calls, got %+v", snap)
	}
}

func TestSetupDisabledReturnsWorkingRecorder(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a recorder even when telemetry is disabled")
	}
	if handler != nil {
		t.Fatal("expected no prometheus handler when telemetry is disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupEnabledWiresInstruments(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "cal-dinger-bot-test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
	}()

	if handler == nil {
		t.Fatal("expected a prometheus handler")
	}

	rec.RecordPollCycle("in_progress", 5*time.Millisecond, nil)
	rec.RecordDetection()
	rec.RecordNotification("home_run", errors.New("send failed"))
	rec.RecordWatchdogRecovery()
}
