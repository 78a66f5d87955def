package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks what every binary relies on; section checks are left to
// the binaries that use the section.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
		return fmt.Errorf("%w: level %q", ErrInvalidLogConfigs, cfg.Log.Level)
	}
	if cfg.Client.CallTimeout < 0 || cfg.Client.RetryBackoff < 0 || cfg.Client.MaxRetries < 0 || cfg.Client.StreamBuffer < 0 {
		return fmt.Errorf("%w: negative value", ErrInvalidClientConfigs)
	}
	return nil
}

// ValidateClient checks the settings needed to dial the trading API.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Client.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidClientConfigs)
	}
	if cfg.Client.StreamBuffer == 0 {
		return fmt.Errorf("%w: stream buffer must be positive", ErrInvalidClientConfigs)
	}
	return nil
}

// ValidateServer checks the settings of tradingd.
func (cfg *StructuredConfig) ValidateServer() error {
	var err error
	if cfg.Server.GRPCAddress == "" {
		err = errors.Join(err, fmt.Errorf("%w: grpc address is required", ErrInvalidServerConfigs))
	}
	if cfg.Server.SignSecret != "" && cfg.Server.SignatureSkew <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: signature skew must be positive", ErrInvalidServerConfigs))
	}
	if len(cfg.Server.SimulatorAreas) > 0 && cfg.Server.SimulatorInterval <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: simulator interval must be positive", ErrInvalidServerConfigs))
	}
	if cfg.Storage.Redis.Addr != "" && cfg.Storage.Redis.TTL <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: redis ttl must be positive", ErrInvalidStorageConfigs))
	}
	return err
}

// ValidateGateway checks the settings of the HTTP gateway.
func (cfg *StructuredConfig) ValidateGateway() error {
	err := cfg.ValidateClient()
	if cfg.Server.HTTPAddress == "" {
		err = errors.Join(err, fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs))
	}
	if cfg.Server.RateLimit <= 0 || cfg.Server.RateBurst <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidServerConfigs))
	}
	return err
}

// ValidateRecorder checks the settings of the trade recorder.
func (cfg *StructuredConfig) ValidateRecorder() error {
	err := cfg.ValidateClient()
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		err = errors.Join(err, fmt.Errorf("%w: database dsn is required", ErrInvalidStorageConfigs))
	}
	if cfg.Recorder.PageSize <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: page size must be positive", ErrInvalidRecorderConfigs))
	}
	return err
}
