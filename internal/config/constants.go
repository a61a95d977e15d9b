package config

import "time"

const (
	envPort             = "PORT"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envPlayerID         = "PLAYER_ID"
	envTeamID           = "TEAM_ID"
	envSeason           = "SEASON"
	envSubjectName      = "SUBJECT_NAME"
	envSubjectNickname  = "SUBJECT_NICKNAME"
	envStatsAPIBaseURL  = "STATSAPI_BASE_URL"
	envRequestTimeout   = "STATSAPI_REQUEST_TIMEOUT"
	envRequestsPerMin   = "STATSAPI_REQUESTS_PER_MINUTE"
	envFastInterval     = "POLL_FAST_INTERVAL"
	envActiveInterval   = "POLL_ACTIVE_INTERVAL"
	envPregameInterval  = "POLL_PREGAME_INTERVAL"
	envPregameThreshold = "POLL_PREGAME_THRESHOLD"
	envIdleRecheck      = "POLL_IDLE_RECHECK"
	envNoGameBackoff    = "POLL_NO_GAME_BACKOFF"
	envRetryDelay       = "POLL_RETRY_DELAY"
	envLookaheadDays    = "POLL_LOOKAHEAD_DAYS"
	envAtBatTimeout     = "AT_BAT_TIMEOUT"
	envWatchdogPeriod   = "WATCHDOG_PERIOD"
	envWatchdogBuffer   = "WATCHDOG_BUFFER"
	envTelegramToken    = "TELEGRAM_BOT_TOKEN"
	envTelegramChats    = "TELEGRAM_CHAT_IDS"
	envTelegramGroup    = "TELEGRAM_GROUP_CHAT_ID"
	envNotifyAtBat      = "NOTIFY_AT_BAT"
	envNotifyStartup    = "NOTIFY_STARTUP"
	envWagerFile        = "WAGER_FILE"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "3000"
	// Cal Raleigh / Seattle Mariners, the bot's reason for existing.
	defaultPlayerID        = int64(668939)
	defaultTeamID          = int64(136)
	defaultSubjectName     = "Cal Raleigh"
	defaultSubjectNickname = "Cal"
	defaultStatsAPIBaseURL = "https://statsapi.mlb.com"
	defaultRequestTimeout  = 15 * time.Second
	defaultRequestsPerMin  = 60

	// Polling tiers. Fast tier runs while the subject is batting; the rest
	// follow the game phase. All are tuning knobs, not correctness values.
	defaultFastInterval     = 2 * time.Second
	defaultActiveInterval   = 10 * time.Second
	defaultPregameInterval  = 30 * time.Second
	defaultPregameThreshold = 10 * time.Minute
	defaultIdleRecheck      = 4 * time.Hour
	defaultNoGameBackoff    = 30 * time.Minute
	defaultRetryDelay       = 30 * time.Second
	defaultLookaheadDays    = 7

	// Safety valve for at-bats that never acquire a recognizable result.
	defaultAtBatTimeout = 10 * time.Minute

	defaultWatchdogPeriod = 30 * time.Minute
	defaultWatchdogBuffer = 2 * time.Minute

	defaultMetricsPort = "9090"
)
