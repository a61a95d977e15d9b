// Package statsapi provides the HTTP client for the MLB Stats API.
//
// The API is unauthenticated. Schedules live under /api/v1/schedule, live
// play-by-play feeds under /api/v1.1/game/{gamePk}/feed/live, and player
// season splits under /api/v1/people/{id}/stats.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MatthewCK/CALBOT/internal/domain"
	"github.com/MatthewCK/CALBOT/internal/metrics"
	"github.com/MatthewCK/CALBOT/internal/providers"
)

const providerName = "statsapi"

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL           string
	HTTPClient        *http.Client
	Timeout           time.Duration
	RequestsPerMinute int
	Metrics           *metrics.Recorder
}

// Client fetches schedule, live feed, and season stats data and maps it to
// domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	timeout    time.Duration
	limiter    *rate.Limiter
	metrics    *metrics.Recorder
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs a stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		metrics:    cfg.Metrics,
	}
}

// FetchSchedule retrieves the team's games for the given YYYY-MM-DD date.
func (c *Client) FetchSchedule(ctx context.Context, date string, teamID int64) (domain.Schedule, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(sportID))
	params.Set("date", date)
	params.Set("teamId", strconv.FormatInt(teamID, 10))

	var sched domain.Schedule
	if err := c.get(ctx, "/api/v1/schedule", params, &sched); err != nil {
		return domain.Schedule{}, err
	}
	return sched, nil
}

// FetchLiveFeed retrieves the live play-by-play feed for a game.
func (c *Client) FetchLiveFeed(ctx context.Context, gamePk int64) (*domain.LiveFeed, error) {
	path := fmt.Sprintf("/api/v1.1/game/%d/feed/live", gamePk)

	var feed domain.LiveFeed
	if err := c.get(ctx, path, nil, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// statsResponse is the wrapper around player stat splits.
type statsResponse struct {
	Stats []struct {
		Splits []struct {
			Stat domain.SeasonStats `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// FetchSeasonStats retrieves a player's season hitting line. A player with no
// splits for the season yields a not-found error.
func (c *Client) FetchSeasonStats(ctx context.Context, playerID int64, season int) (domain.SeasonStats, error) {
	params := url.Values{}
	params.Set("stats", "season")
	params.Set("season", strconv.Itoa(season))
	params.Set("group", "hitting")

	path := fmt.Sprintf("/api/v1/people/%d/stats", playerID)

	var payload statsResponse
	if err := c.get(ctx, path, params, &payload); err != nil {
		return domain.SeasonStats{}, err
	}
	for _, group := range payload.Stats {
		for _, split := range group.Splits {
			return split.Stat, nil
		}
	}
	return domain.SeasonStats{}, fmt.Errorf("player %d season %d: %w", playerID, season, providers.ErrNotFound)
}

// get performs a rate-limited, timeout-bounded GET and decodes the body.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordProviderAttempt(providerName, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", path, providers.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
