package config

import "time"

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	Log      LogConfig
	Subject  SubjectConfig
	StatsAPI StatsAPIConfig
	Polling  PollingConfig
	Telegram TelegramConfig
	Notify   NotifyConfig
	Wager    WagerConfig
	Metrics  MetricsConfig
}

// LogConfig selects the logger's verbosity and output encoding. Empty values
// fall back to the logging package defaults (info, JSON).
type LogConfig struct {
	Level  string
	Format string
}

// SubjectConfig identifies the tracked player and team.
type SubjectConfig struct {
	PlayerID int64
	TeamID   int64
	// Season 0 means "use the current calendar year".
	Season   int
	Name     string
	Nickname string
}

// StatsAPIConfig controls how the MLB StatsAPI client reaches upstream.
type StatsAPIConfig struct {
	BaseURL           string
	RequestTimeout    time.Duration
	RequestsPerMinute int
}

// PollingConfig carries the scheduler's interval tiers and watchdog knobs.
type PollingConfig struct {
	FastInterval     time.Duration
	ActiveInterval   time.Duration
	PregameInterval  time.Duration
	PregameThreshold time.Duration
	IdleRecheck      time.Duration
	NoGameBackoff    time.Duration
	RetryDelay       time.Duration
	LookaheadDays    int
	AtBatTimeout     time.Duration
	WatchdogPeriod   time.Duration
	WatchdogBuffer   time.Duration
}

// TelegramConfig configures the outbound chat channel. An empty token
// disables delivery entirely.
type TelegramConfig struct {
	Token       string
	ChatIDs     []int64
	GroupChatID int64
}

// NotifyConfig gates the optional message classes. Home run notifications are
// always on; everything else defaults off to keep the chat quiet.
type NotifyConfig struct {
	AtBat   bool
	Startup bool
}

// WagerConfig points at an optional YAML ledger file.
type WagerConfig struct {
	File string
}

// MetricsConfig controls the telemetry exporters.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, ""),
			Format: envOrDefault(envLogFormat, ""),
		},
		Subject: SubjectConfig{
			PlayerID: int64EnvOrDefault(envPlayerID, defaultPlayerID),
			TeamID:   int64EnvOrDefault(envTeamID, defaultTeamID),
			Season:   intEnvOrDefault(envSeason, 0),
			Name:     envOrDefault(envSubjectName, defaultSubjectName),
			Nickname: envOrDefault(envSubjectNickname, defaultSubjectNickname),
		},
		StatsAPI: StatsAPIConfig{
			BaseURL:           envOrDefault(envStatsAPIBaseURL, defaultStatsAPIBaseURL),
			RequestTimeout:    durationEnvOrDefault(envRequestTimeout, defaultRequestTimeout),
			RequestsPerMinute: intEnvOrDefault(envRequestsPerMin, defaultRequestsPerMin),
		},
		Polling: PollingConfig{
			FastInterval:     durationEnvOrDefault(envFastInterval, defaultFastInterval),
			ActiveInterval:   durationEnvOrDefault(envActiveInterval, defaultActiveInterval),
			PregameInterval:  durationEnvOrDefault(envPregameInterval, defaultPregameInterval),
			PregameThreshold: durationEnvOrDefault(envPregameThreshold, defaultPregameThreshold),
			IdleRecheck:      durationEnvOrDefault(envIdleRecheck, defaultIdleRecheck),
			NoGameBackoff:    durationEnvOrDefault(envNoGameBackoff, defaultNoGameBackoff),
			RetryDelay:       durationEnvOrDefault(envRetryDelay, defaultRetryDelay),
			LookaheadDays:    intEnvOrDefault(envLookaheadDays, defaultLookaheadDays),
			AtBatTimeout:     durationEnvOrDefault(envAtBatTimeout, defaultAtBatTimeout),
			WatchdogPeriod:   durationEnvOrDefault(envWatchdogPeriod, defaultWatchdogPeriod),
			WatchdogBuffer:   durationEnvOrDefault(envWatchdogBuffer, defaultWatchdogBuffer),
		},
		Telegram: TelegramConfig{
			Token:       envOrDefault(envTelegramToken, ""),
			ChatIDs:     int64ListEnv(envTelegramChats),
			GroupChatID: chatIDEnv(envTelegramGroup),
		},
		Notify: NotifyConfig{
			AtBat:   boolEnvOrDefault(envNotifyAtBat, false),
			Startup: boolEnvOrDefault(envNotifyStartup, false),
		},
		Wager: WagerConfig{
			File: envOrDefault(envWagerFile, ""),
		},
		Metrics: loadMetrics(),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, "cal-dinger-bot"),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, false),
	}
}
