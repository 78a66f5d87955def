package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "all interfaces", in: ":9090", want: ":9090"},
		{name: "localhost", in: "localhost:8080", want: "localhost:8080"},
		{name: "ip", in: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "ipv6", in: "[::1]:9090", want: "[::1]:9090"},
		{name: "no port", in: "localhost", wantErr: true},
		{name: "bad port", in: "localhost:http", wantErr: true},
		{name: "port out of range", in: "localhost:70000", wantErr: true},
		{name: "hostname", in: "example.com:80", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}

func TestNetAddress_StringEmpty(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags("tradingd", []string{
		"-grpc-address", ":9191",
		"-api-keys", "a, b",
		"-api-keys", "c",
		"-simulate", "10YDE-EON------1",
		"-simulate-interval", "2s",
		"-d", "postgres://localhost/x",
		"-redis", "localhost:6379",
		"-page-size", "25",
		"-c", "cfg.json",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9191", cfg.Server.GRPCAddress)
	assert.Equal(t, []string{"a", "b", "c"}, []string(cfg.Server.APIKeys))
	assert.Equal(t, []string{"10YDE-EON------1"}, []string(cfg.Server.SimulatorAreas))
	assert.Equal(t, 2*time.Second, cfg.Server.SimulatorInterval)
	assert.Equal(t, "postgres://localhost/x", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, int32(25), cfg.Recorder.PageSize)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Empty(t, cfg.Server.HTTPAddress)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := parseFlags("tradingd", []string{"-grpc-address", "nowhere"})
	require.Error(t, err)
}
