package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Subject.PlayerID != defaultPlayerID {
		t.Fatalf("expected default player id %d, got %d", defaultPlayerID, cfg.Subject.PlayerID)
	}
	if cfg.Subject.TeamID != defaultTeamID {
		t.Fatalf("expected default team id %d, got %d", defaultTeamID, cfg.Subject.TeamID)
	}
	if cfg.Subject.Season != 0 {
		t.Fatalf("expected season 0 (current year), got %d", cfg.Subject.Season)
	}
	if cfg.Polling.FastInterval != defaultFastInterval {
		t.Fatalf("expected fast interval %s, got %s", defaultFastInterval, cfg.Polling.FastInterval)
	}
	if cfg.Polling.AtBatTimeout != defaultAtBatTimeout {
		t.Fatalf("expected at-bat timeout %s, got %s", defaultAtBatTimeout, cfg.Polling.AtBatTimeout)
	}
	if cfg.Polling.WatchdogPeriod != defaultWatchdogPeriod {
		t.Fatalf("expected watchdog period %s, got %s", defaultWatchdogPeriod, cfg.Polling.WatchdogPeriod)
	}
	if cfg.Notify.AtBat || cfg.Notify.Startup {
		t.Fatalf("expected optional notifications off by default: %+v", cfg.Notify)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled by default")
	}
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv(envPort, "8080")
	t.Setenv(envPlayerID, "545361")
	t.Setenv(envSeason, "2024")
	t.Setenv(envFastInterval, "5s")
	t.Setenv(envTelegramChats, "12345, 67890,bogus")
	t.Setenv(envTelegramGroup, "-100987654321")
	t.Setenv(envNotifyAtBat, "true")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "text")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.Subject.PlayerID != 545361 {
		t.Fatalf("expected player id override, got %d", cfg.Subject.PlayerID)
	}
	if cfg.Subject.Season != 2024 {
		t.Fatalf("expected season override, got %d", cfg.Subject.Season)
	}
	if cfg.Polling.FastInterval != 5*time.Second {
		t.Fatalf("expected 5s fast interval, got %s", cfg.Polling.FastInterval)
	}
	if len(cfg.Telegram.ChatIDs) != 2 || cfg.Telegram.ChatIDs[0] != 12345 || cfg.Telegram.ChatIDs[1] != 67890 {
		t.Fatalf("unexpected chat ids: %v", cfg.Telegram.ChatIDs)
	}
	if cfg.Telegram.GroupChatID != -100987654321 {
		t.Fatalf("expected negative group id preserved, got %d", cfg.Telegram.GroupChatID)
	}
	if !cfg.Notify.AtBat {
		t.Fatal("expected at-bat notifications enabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("expected log overrides, got %+v", cfg.Log)
	}
}

func TestLoadIgnoresInvalidDurations(t *testing.T) {
	t.Setenv(envActiveInterval, "not-a-duration")
	t.Setenv(envRetryDelay, "-10s")

	cfg := Load()

	if cfg.Polling.ActiveInterval != defaultActiveInterval {
		t.Fatalf("expected default active interval, got %s", cfg.Polling.ActiveInterval)
	}
	if cfg.Polling.RetryDelay != defaultRetryDelay {
		t.Fatalf("expected default retry delay, got %s", cfg.Polling.RetryDelay)
	}
}
