package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"client":  map[string]any{"retry_backoff": 1500000000, "stream_buffer": 10},
		"server":  map[string]any{"signature_skew": "30s", "rate_limit": 2.5},
		"storage": map[string]any{"redis": map[string]any{"addr": "localhost:6379", "ttl": "10m"}},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Client.RetryBackoff)
	assert.Equal(t, 10, cfg.Client.StreamBuffer)
	assert.Equal(t, 30*time.Second, cfg.Server.SignatureSkew)
	assert.InDelta(t, 2.5, cfg.Server.RateLimit, 1e-9)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Storage.Redis.TTL)
}

func TestParseJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1s"`, string(out))
}
