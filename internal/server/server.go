// Package server wires configuration into the running bot: provider chain,
// polling engine, notifier, and the operational HTTP surface.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/MatthewCK/CALBOT/internal/cache"
	"github.com/MatthewCK/CALBOT/internal/config"
	"github.com/MatthewCK/CALBOT/internal/detector"
	httpserver "github.com/MatthewCK/CALBOT/internal/http"
	"github.com/MatthewCK/CALBOT/internal/http/handlers"
	"github.com/MatthewCK/CALBOT/internal/http/middleware"
	"github.com/MatthewCK/CALBOT/internal/logging"
	"github.com/MatthewCK/CALBOT/internal/metrics"
	"github.com/MatthewCK/CALBOT/internal/notify"
	"github.com/MatthewCK/CALBOT/internal/providers"
	"github.com/MatthewCK/CALBOT/internal/providers/statsapi"
	"github.com/MatthewCK/CALBOT/internal/scheduler"
	"github.com/MatthewCK/CALBOT/internal/tracker"
	"github.com/MatthewCK/CALBOT/internal/wager"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder

	cache     *cache.Cache
	provider  providers.DataProvider
	tracker   *tracker.Tracker
	notifier  notify.Notifier
	formatter notify.Formatter
	engine    *scheduler.Engine

	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server from configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.Subject.Season == 0 {
		cfg.Subject.Season = time.Now().Year()
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	ttlCache := cache.New()
	provider := buildProvider(cfg, logger, recorder, ttlCache)

	notifier, err := notify.NewTelegram(notify.TelegramConfig{
		Token:       cfg.Telegram.Token,
		ChatIDs:     cfg.Telegram.ChatIDs,
		GroupChatID: cfg.Telegram.GroupChatID,
		Logger:      logger,
		Metrics:     recorder,
	})
	if err != nil {
		return nil, err
	}

	return newServerWithDeps(cfg, logger, recorder, ttlCache, provider, notifier, metricsSrv, metricsShutdown), nil
}

// newServerWithDeps finishes assembly from pre-built collaborators. Tests
// inject stub providers and notifiers through here.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, ttlCache *cache.Cache, provider providers.DataProvider, notifier notify.Notifier, metricsSrv httpServer, metricsShutdown func(context.Context) error) *Server {
	trk := tracker.New(cfg.Subject.PlayerID, cfg.Polling.AtBatTimeout)
	det := detector.New(cfg.Subject.PlayerID)
	ledger := loadLedger(cfg.Wager.File, logger)
	formatter := notify.Formatter{
		Name:      cfg.Subject.Name,
		Nickname:  cfg.Subject.Nickname,
		SubjectID: cfg.Subject.PlayerID,
	}

	engine := scheduler.New(
		scheduler.Config{
			Subject: cfg.Subject,
			Polling: cfg.Polling,
			Notify:  cfg.Notify,
		},
		scheduler.Deps{
			Provider:  provider,
			Tracker:   trk,
			Detector:  det,
			Notifier:  notifier,
			Formatter: formatter,
			Ledger:    ledger,
			Logger:    logger,
			Metrics:   recorder,
		},
	)

	handler := handlers.NewHandler(handlers.Deps{
		Engine:   engine,
		Tracker:  trk,
		Notifier: notifier,
		Metrics:  recorder,
		Provider: provider,
		PlayerID: cfg.Subject.PlayerID,
		Season:   cfg.Subject.Season,
		Service:  cfg.Metrics.ServiceName,
		Logger:   logger,
	})
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	httpSrv := netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         ttlCache,
		provider:      provider,
		tracker:       trk,
		notifier:      notifier,
		formatter:     formatter,
		engine:        engine,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// buildProvider assembles the upstream chain: rate-limited StatsAPI client,
// wrapped with retries, wrapped with a TTL cache so hot paths never hammer
// the API.
func buildProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, ttlCache *cache.Cache) providers.DataProvider {
	client := statsapi.NewClient(statsapi.Config{
		BaseURL:           cfg.StatsAPI.BaseURL,
		Timeout:           cfg.StatsAPI.RequestTimeout,
		RequestsPerMinute: cfg.StatsAPI.RequestsPerMinute,
		Metrics:           recorder,
	})
	retrying := providers.NewRetryingProvider(client, logger, 0, 0)
	ttls := providers.CacheTTLs{}.ClampLiveFeed(cfg.Polling.FastInterval)
	return providers.NewCachingProvider(retrying, ttlCache, ttls)
}

func loadLedger(path string, logger *slog.Logger) wager.Ledger {
	if path == "" {
		return wager.DefaultLedger()
	}
	ledger, err := wager.LoadLedger(path)
	if err != nil {
		if logger != nil {
			logger.Warn("wager ledger load failed, using defaults", "path", path, "err", err)
		}
		return wager.DefaultLedger()
	}
	return ledger
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the polling engine and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.engine.Start(ctx)
	s.announceStartup(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// announceStartup sends the READY message when enabled. The season line is
// best effort; the announcement still goes out if stats are unavailable.
func (s *Server) announceStartup(ctx context.Context) {
	if !s.cfg.Notify.Startup {
		return
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, startupNotifyTimeout)
		defer cancel()

		stats, err := s.provider.FetchSeasonStats(sendCtx, s.cfg.Subject.PlayerID, s.cfg.Subject.Season)
		text := ""
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("startup stats unavailable", "err", err)
			}
			text = s.formatter.Startup(nil, s.cfg.Subject.Season)
		} else {
			text = s.formatter.Startup(&stats, s.cfg.Subject.Season)
		}
		if err := s.notifier.Send(sendCtx, text); err != nil && s.logger != nil {
			s.logger.Warn("startup notification failed", "err", err)
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	s.engine.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.cache != nil {
		s.cache.Close()
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
