package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/MatthewCK/CALBOT/internal/cache"
	"github.com/MatthewCK/CALBOT/internal/domain"
)

const (
	defaultLiveFeedTTL = 10 * time.Second
	defaultScheduleTTL = time.Minute
	defaultStatsTTL    = time.Minute
)

// CacheTTLs configures per-resource cache lifetimes for a cachingProvider.
// Zero values fall back to defaults.
type CacheTTLs struct {
	LiveFeed time.Duration
	Schedule time.Duration
	Stats    time.Duration
}

// ClampLiveFeed caps the live-feed TTL at the given poll interval so a
// cache hit can never span more than one cycle at that cadence. Without the
// clamp the fast tier would keep re-reading one stale snapshot.
func (t CacheTTLs) ClampLiveFeed(interval time.Duration) CacheTTLs {
	t = t.withDefaults()
	if interval > 0 && t.LiveFeed > interval {
		t.LiveFeed = interval
	}
	return t
}

func (t CacheTTLs) withDefaults() CacheTTLs {
	if t.LiveFeed <= 0 {
		t.LiveFeed = defaultLiveFeedTTL
	}
	if t.Schedule <= 0 {
		t.Schedule = defaultScheduleTTL
	}
	if t.Stats <= 0 {
		t.Stats = defaultStatsTTL
	}
	return t
}

// cachingProvider serves repeated fetches within a TTL from memory, keyed by
// the request's identifying parameters. Only successful results are cached;
// errors always pass through.
type cachingProvider struct {
	inner DataProvider
	cache *cache.Cache
	ttls  CacheTTLs
}

// NewCachingProvider wraps the given provider with a process-local TTL cache.
func NewCachingProvider(inner DataProvider, c *cache.Cache, ttls CacheTTLs) DataProvider {
	return &cachingProvider{
		inner: inner,
		cache: c,
		ttls:  ttls.withDefaults(),
	}
}

func (p *cachingProvider) FetchSchedule(ctx context.Context, date string, teamID int64) (domain.Schedule, error) {
	key := fmt.Sprintf("schedule:%s:%d", date, teamID)
	if v, ok := p.cache.Get(key); ok {
		if sched, ok := v.(domain.Schedule); ok {
			return sched, nil
		}
	}
	sched, err := p.inner.FetchSchedule(ctx, date, teamID)
	if err != nil {
		return domain.Schedule{}, err
	}
	p.cache.Set(key, sched, p.ttls.Schedule)
	return sched, nil
}

func (p *cachingProvider) FetchLiveFeed(ctx context.Context, gamePk int64) (*domain.LiveFeed, error) {
	key := fmt.Sprintf("feed:%d", gamePk)
	if v, ok := p.cache.Get(key); ok {
		if feed, ok := v.(*domain.LiveFeed); ok {
			return feed, nil
		}
	}
	feed, err := p.inner.FetchLiveFeed(ctx, gamePk)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, feed, p.ttls.LiveFeed)
	return feed, nil
}

func (p *cachingProvider) FetchSeasonStats(ctx context.Context, playerID int64, season int) (domain.SeasonStats, error) {
	key := fmt.Sprintf("stats:%d:%d", playerID, season)
	if v, ok := p.cache.Get(key); ok {
		if stats, ok := v.(domain.SeasonStats); ok {
			return stats, nil
		}
	}
	stats, err := p.inner.FetchSeasonStats(ctx, playerID, season)
	if err != nil {
		return domain.SeasonStats{}, err
	}
	p.cache.Set(key, stats, p.ttls.Stats)
	return stats, nil
}
