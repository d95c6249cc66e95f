package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/gemini-studio/internal/config"
	"github.com/kdduha/gemini-studio/internal/handler"
	"github.com/kdduha/gemini-studio/internal/metrics"
	"github.com/kdduha/gemini-studio/internal/provider/gemini"
	"github.com/kdduha/gemini-studio/internal/provider/openai"
	"github.com/kdduha/gemini-studio/internal/service"
	"github.com/kdduha/gemini-studio/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	_ "github.com/kdduha/gemini-studio/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Gemini Studio API
// @version 1.0
// @description Chat, image captioning, text embeddings and single-shot questions backed by a hosted generative model.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	provider, closer, err := newProvider(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("provider error")
	}
	defer closer.Close()

	modelService := service.NewService(logger.With().Str("component", "service").Logger(), provider)
	if cfg.RateLimit.RPS > 0 {
		modelService.SetRateLimiter(rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
		logger.Info().Float64("rps", cfg.RateLimit.RPS).Int("burst", cfg.RateLimit.Burst).Msg("model rate limit enabled")
	}

	sessions := session.NewStore(cfg.Session.TTL)
	sessions.OnChange(metrics.ActiveSessions)

	pages := handler.NewPageHandler(logger.With().Str("component", "pages").Logger(), modelService, sessions, handler.PageOptions{
		CookieName:     cfg.Session.CookieName,
		SessionTTL:     cfg.Session.TTL,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	api := handler.NewAPIHandler(logger.With().Str("component", "api").Logger(), modelService, sessions)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	pages.Register(r)
	r.Route("/api/v1", api.Register)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("provider", provider.Name()).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server stopped")
}

func newProvider(ctx context.Context, cfg *config.Config) (service.Provider, io.Closer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New(cfg.OpenAI), io.NopCloser(nil), nil
	default:
		p, err := gemini.New(ctx, cfg.Gemini)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	}
}
