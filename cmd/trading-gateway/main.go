package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	httpapi "github.com/olyamironova/electricity-trading-client/internal/api/http"
	"github.com/olyamironova/electricity-trading-client/internal/config"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/middleware"
)

func main() {
	cfg, err := config.New(os.Args[0], os.Args[1:])
	if err == nil {
		err = cfg.ValidateGateway()
	}
	if err != nil {
		logger.NewLogger("gateway", "").Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewLogger("gateway", cfg.Log.Level)

	client, err := electricitytrading.NewClient(cfg.Client.URL, cfg.Client.Options(log.Logger)...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create trading client")
	}
	defer client.Close()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	srv := httpapi.NewHTTPServer(client, log, limiter).Server(cfg.Server.HTTPAddress)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown failed")
		}
	}()

	log.Info().Str("address", cfg.Server.HTTPAddress).Str("upstream", cfg.Client.URL).Msg("starting HTTP gateway")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
