package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"google.golang.org/grpc"

	"github.com/olyamironova/electricity-trading-client/internal/adapter/cache"
	"github.com/olyamironova/electricity-trading-client/internal/adapter/in_memory"
	"github.com/olyamironova/electricity-trading-client/internal/adapter/pg"
	grpcapi "github.com/olyamironova/electricity-trading-client/internal/api/grpc"
	"github.com/olyamironova/electricity-trading-client/internal/auth"
	"github.com/olyamironova/electricity-trading-client/internal/config"
	"github.com/olyamironova/electricity-trading-client/internal/core"
	"github.com/olyamironova/electricity-trading-client/internal/domain"
	"github.com/olyamironova/electricity-trading-client/internal/logger"
	"github.com/olyamironova/electricity-trading-client/internal/port"
	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

func main() {
	cfg, err := config.New(os.Args[0], os.Args[1:])
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		logger.NewLogger("tradingd", "").Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewLogger("tradingd", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, orderCache, closeStorage := storage(ctx, cfg, log)
	defer closeStorage()

	engine := core.NewEngine(repo, orderCache, core.WithLogger(log))

	var verifier *auth.Verifier
	if cfg.Server.SignSecret != "" {
		verifier = auth.NewVerifier([]byte(cfg.Server.SignSecret), cfg.Server.SignatureSkew)
	}
	srv := grpc.NewServer(grpcapi.ServerOptions(log, cfg.Server.APIKeys, verifier)...)
	pb.RegisterElectricityTradingServiceServer(srv, grpcapi.NewGRPCServer(engine))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddress)
	if err != nil {
		log.Fatal().Err(err).Str("address", cfg.Server.GRPCAddress).Msg("failed to listen")
	}

	if len(cfg.Server.SimulatorAreas) > 0 {
		areas := make([]domain.DeliveryArea, 0, len(cfg.Server.SimulatorAreas))
		for _, code := range cfg.Server.SimulatorAreas {
			areas = append(areas, domain.DeliveryArea{Code: code, CodeType: domain.EnergyMarketCodeTypeEuropeEIC})
		}
		go core.NewSimulator(engine, areas, cfg.Server.SimulatorInterval).Run(ctx)
		log.Info().Strs("areas", cfg.Server.SimulatorAreas).Dur("interval", cfg.Server.SimulatorInterval).Msg("public trade simulator started")
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if !grpcapi.Shutdown(srv, engine, 10*time.Second) {
			log.Warn().Msg("graceful stop timed out, remaining calls were cut off")
		}
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("starting gRPC server")
	if err := srv.Serve(lis); err != nil {
		log.Error().Err(err).Msg("gRPC server failed")
		stop()
	}
	<-stopped
}

// storage picks Postgres when a DSN is configured and Redis for the order
// cache when an address is configured; otherwise both live in memory.
func storage(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (port.Repository, port.Cache, func()) {
	var repo port.Repository
	if dsn := cfg.Storage.DB.DSN; dsn != "" {
		pgRepo, err := pg.NewPgRepo(ctx, dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Postgres")
		}
		if err := pgRepo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate schema")
		}
		repo = pgRepo
	} else {
		log.Warn().Msg("no database configured, orders are kept in memory")
		repo = in_memory.NewMemoryRepo()
	}

	if addr := cfg.Storage.Redis.Addr; addr != "" {
		r := cache.NewRedisCache(addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.TTL)
		if err := r.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		return repo, r, func() {
			_ = r.Close()
			repo.Close(context.Background())
		}
	}
	return repo, in_memory.NewCache(), func() { repo.Close(context.Background()) }
}
