package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
	"github.com/olyamironova/electricity-trading-client/internal/adapter/pg"
	"github.com/olyamironova/electricity-trading-client/internal/config"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/recorder"
)

func main() {
	cfg, err := config.New(os.Args[0], os.Args[1:])
	if err == nil {
		err = cfg.ValidateRecorder()
	}
	if err != nil {
		logger.NewLogger("recorder", "").Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewLogger("recorder", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := pg.NewPgRepo(ctx, cfg.Storage.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Postgres")
	}
	defer repo.Close(context.Background())
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	client, err := electricitytrading.NewClient(cfg.Client.URL, cfg.Client.Options(log.Logger)...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create trading client")
	}
	defer client.Close()

	var filter electricitytrading.PublicTradeFilter
	if code := cfg.Recorder.DeliveryArea; code != "" {
		area := electricitytrading.DeliveryArea{Code: code, CodeType: electricitytrading.EnergyMarketCodeTypeEuropeEIC}
		filter.BuyDeliveryArea = &area
	}

	rec := recorder.New(client, repo, filter, cfg.Recorder.PageSize, log)
	log.Info().Str("upstream", cfg.Client.URL).Msg("recording public trades")
	if err := rec.Run(ctx); err != nil {
		log.Error().Err(err).Int64("recorded", rec.Recorded()).Msg("recorder stopped")
		return
	}
	log.Info().Int64("recorded", rec.Recorded()).Msg("recorder stopped")
}
