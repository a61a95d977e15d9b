package statsapi

import "time"

const (
	defaultBaseURL           = "https://statsapi.mlb.com"
	defaultHTTPTimeout       = 15 * time.Second
	defaultRequestsPerMinute = 60

	// MLB sport identifier; the API serves other leagues under other ids.
	sportID = 1
)
