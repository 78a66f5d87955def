package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New("tradingd", nil)
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	require.NoError(t, cfg.ValidateServer())
	require.NoError(t, cfg.ValidateClient())
}

func TestNew_Priority(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"client": map[string]any{"url": "grpc://json:1", "auth_key": "json-key", "call_timeout": "3s"},
		"server": map[string]any{"api_keys": []string{"a", "b"}},
		"log":    map[string]any{"level": "warn"},
	})
	t.Setenv("CLIENT_URL", "grpc://env:1")
	t.Setenv("CONFIG", path)

	cfg, err := New("gateway", []string{"-url", "grpc://flag:1", "-auth-key", "flag-key"})
	require.NoError(t, err)

	assert.Equal(t, "grpc://env:1", cfg.Client.URL)
	assert.Equal(t, "flag-key", cfg.Client.AuthKey)
	assert.Equal(t, 3*time.Second, cfg.Client.CallTimeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Server.APIKeys)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
}

func TestNew_EnvLists(t *testing.T) {
	t.Setenv("SERVER_API_KEYS", "k1,k2")
	t.Setenv("SERVER_SIMULATOR_AREAS", "10YDE-EON------1")
	t.Setenv("STORAGE_REDIS_TTL", "1m")

	cfg, err := New("tradingd", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
	assert.Equal(t, []string{"10YDE-EON------1"}, cfg.Server.SimulatorAreas)
	assert.Equal(t, time.Minute, cfg.Storage.Redis.TTL)
}

func TestNew_Errors(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("CLIENT_CALL_TIMEOUT", "soon")
		_, err := New("x", nil)
		require.Error(t, err)
	})
	t.Run("unknown flag", func(t *testing.T) {
		_, err := New("x", []string{"-nope"})
		require.Error(t, err)
	})
	t.Run("missing json", func(t *testing.T) {
		_, err := New("x", []string{"-config", "/does/not/exist.json"})
		require.Error(t, err)
	})
	t.Run("bad level", func(t *testing.T) {
		_, err := New("x", []string{"-log-level", "loud"})
		require.ErrorIs(t, err, ErrInvalidLogConfigs)
	})
	t.Run("negative retries", func(t *testing.T) {
		_, err := New("x", []string{"-max-retries", "-1"})
		require.ErrorIs(t, err, ErrInvalidClientConfigs)
	})
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Client: Client{URL: "first"}},
		&StructuredConfig{Client: Client{URL: "second", AuthKey: "k"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Client.URL)
	assert.Equal(t, "k", cfg.Client.AuthKey)
}

func TestSectionValidation(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.ValidateGateway())
	assert.ErrorIs(t, cfg.ValidateRecorder(), ErrInvalidStorageConfigs)

	cfg.Storage.DB.DSN = "postgres://u:p@localhost:5432/trades"
	require.NoError(t, cfg.ValidateRecorder())

	cfg.Recorder.PageSize = 0
	assert.ErrorIs(t, cfg.ValidateRecorder(), ErrInvalidRecorderConfigs)

	cfg.Server.SimulatorAreas = []string{"10YDE-EON------1"}
	cfg.Server.SimulatorInterval = 0
	assert.ErrorIs(t, cfg.ValidateServer(), ErrInvalidServerConfigs)

	cfg = Defaults()
	cfg.Server.RateBurst = 0
	assert.ErrorIs(t, cfg.ValidateGateway(), ErrInvalidServerConfigs)

	cfg = Defaults()
	cfg.Client.URL = ""
	assert.ErrorIs(t, cfg.ValidateGateway(), ErrInvalidClientConfigs)
}

func TestClientOptions(t *testing.T) {
	c := Defaults().Client
	assert.Len(t, c.Options(zerolog.Nop()), 3)

	c.MaxRetries = 2
	c.AuthKey = "key"
	c.SignSecret = "secret"
	assert.Len(t, c.Options(zerolog.Nop()), 6)
}
