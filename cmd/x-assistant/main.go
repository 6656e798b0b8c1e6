package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/x-assistant/internal/clients"
	"github.com/pribylovaa/x-assistant/internal/config"
	xhttp "github.com/pribylovaa/x-assistant/internal/http"
	"github.com/pribylovaa/x-assistant/internal/ratelimit"
	"github.com/pribylovaa/x-assistant/internal/service"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	// .env нужен только для локальной разработки; его отсутствие не ошибка.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config_invalid", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("starting x-assistant",
		slog.String("env", cfg.Env),
		slog.String("limiter", cfg.RateLimit.Backend),
		slog.Bool("social_configured", cfg.Social.APIKey != ""),
		slog.Bool("language_configured", cfg.Language.APIKey != ""),
	)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	limiter, closeLimiter, err := setupLimiter(rootCtx, cfg.RateLimit)
	if err != nil {
		log.Error("ratelimit_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if cerr := closeLimiter(); cerr != nil {
			log.Warn("ratelimit_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	cl, err := clients.New(*cfg, log)
	if err != nil {
		log.Error("clients_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if cerr := cl.Close(); cerr != nil {
			log.Warn("clients_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	log.Info("clients_initialized")

	svc := service.New(cl.Social, cl.Language, service.Options{
		LanguageKey:      cfg.Language.APIKey,
		Model:            cfg.Language.Model,
		SocialConfigured: cfg.Social.APIKey != "",
		Env:              cfg.Env,
		AppURL:           cfg.Settings.AppURL,
		Version:          cfg.Settings.Version,
	})

	apiHandler := xhttp.NewRouter(svc, xhttp.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		BasePath:       "/api",
		Limiter:        limiter,
		Limits:         cfg.RateLimit,
		Secret:         cfg.Settings.Secret,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		TrustForwarded: !cfg.HTTP.IgnoreForwarded,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("gateway_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// setupLimiter выбирает хранилище счётчиков: память процесса или общий Redis
// (несколько реплик шлюза делят одни лимиты).
func setupLimiter(ctx context.Context, cfg config.RateLimitConfig) (ratelimit.Limiter, func() error, error) {
	if cfg.Backend == config.BackendRedis {
		rl, err := ratelimit.NewRedis(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}

		return rl, rl.Close, nil
	}

	mem := ratelimit.NewMemory(ratelimit.WithSweepInterval(cfg.SweepInterval))
	return mem, func() error { return nil }, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
