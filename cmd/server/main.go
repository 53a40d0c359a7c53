// Package main initializes and starts the Postboard web server, setting up
// configuration, logging, the database, sessions, services, handlers and
// optional TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/config"
	"github.com/postboard/postboard/internal/db"
	"github.com/postboard/postboard/internal/logger"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/server/handler/http"
	"github.com/postboard/postboard/internal/service"
	"github.com/postboard/postboard/internal/session"
	"github.com/postboard/postboard/internal/weather"
	"github.com/postboard/postboard/internal/web"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	options, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the database and create the tables.
	conn, err := db.Open(options.DBDriver, options.DSN())
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.String("driver", options.DBDriver), zap.Error(err))
	}
	defer conn.Close()

	checks := map[string]http.Check{"database": conn.PingContext}

	// Pick the session store.
	var store session.Store
	switch options.SessionBackend {
	case config.SessionRedis:
		client, err := session.ConnectRedis(ctx, session.RedisConfig{Addr: options.RedisAddr, DB: options.RedisDB})
		if err != nil {
			zapLogger.Fatal("cannot connect to redis", zap.Error(err))
		}
		defer client.Close()
		redisStore := session.NewRedisStore(client)
		checks["redis"] = redisStore.Ping
		store = redisStore
	case config.SessionCookie:
		cookieStore, err := session.NewCookieStore(options.SessionSecret, options.SessionTTL.Duration)
		if err != nil {
			zapLogger.Fatal("cannot init cookie sessions", zap.Error(err))
		}
		session.StartSweeper(ctx, cookieStore, 10*time.Minute, zapLogger)
		store = cookieStore
	default:
		memStore := session.NewMemoryStore()
		session.StartSweeper(ctx, memStore, 10*time.Minute, zapLogger)
		store = memStore
	}
	sessions := session.NewManager(store, session.Options{
		CookieName: options.SessionCookie,
		TTL:        options.SessionTTL.Duration,
		Secure:     options.SessionSecure || options.TLS(),
	}, zapLogger)

	// Initialize repositories and business-logic services.
	authService := service.NewAuthService(repository.NewAuthRepository(conn))
	blogService := service.NewBlogService(repository.NewBlogRepository(conn))
	weatherClient := weather.NewClient(options.WeatherBaseURL, options.WeatherKey, options.WeatherTimeout.Duration)
	if options.WeatherKey == "" {
		zapLogger.Warn("OPEN_WEATHER_KEY is not set; weather lookups will fail")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		zapLogger.Fatal("cannot parse templates", zap.Error(err))
	}
	view := http.View{Renderer: renderer, Sessions: sessions, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(
		&http.AuthHandler{AuthService: authService, View: view},
		&http.BlogHandler{BlogService: blogService, View: view},
		&http.WeatherHandler{Weather: weatherClient, View: view},
		&http.FeedHandler{Posts: blogService, Title: options.SiteTitle, Link: options.SiteURL, Log: zapLogger},
		&http.HealthHandler{Checks: checks},
		sessions,
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if options.TLS() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	if options.TLS() {
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
