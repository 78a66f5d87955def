package config

import (
	"github.com/rs/zerolog"

	electricitytrading "github.com/olyamironova/electricity-trading-client"
)

// Options turns the client section into options for electricitytrading.NewClient.
func (c Client) Options(log zerolog.Logger) []electricitytrading.Option {
	opts := []electricitytrading.Option{
		electricitytrading.WithCallTimeout(c.CallTimeout),
		electricitytrading.WithStreamBuffer(c.StreamBuffer),
		electricitytrading.WithLogger(log),
	}
	if c.MaxRetries > 0 {
		opts = append(opts, electricitytrading.WithRetries(c.MaxRetries, c.RetryBackoff))
	}
	if c.AuthKey != "" {
		opts = append(opts, electricitytrading.WithAuthKey(c.AuthKey))
	}
	if c.SignSecret != "" {
		opts = append(opts, electricitytrading.WithSignSecret(c.SignSecret))
	}
	return opts
}
