package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Client struct {
		URL          string   `json:"url"`
		AuthKey      string   `json:"auth_key"`
		SignSecret   string   `json:"sign_secret"`
		CallTimeout  Duration `json:"call_timeout"`
		MaxRetries   int      `json:"max_retries"`
		RetryBackoff Duration `json:"retry_backoff"`
		StreamBuffer int      `json:"stream_buffer"`
	} `json:"client,omitempty"`

	Server struct {
		GRPCAddress       string   `json:"grpc_address"`
		HTTPAddress       string   `json:"http_address"`
		APIKeys           []string `json:"api_keys"`
		SignSecret        string   `json:"sign_secret"`
		SignatureSkew     Duration `json:"signature_skew"`
		RateLimit         float64  `json:"rate_limit"`
		RateBurst         int      `json:"rate_burst"`
		SimulatorAreas    []string `json:"simulator_areas"`
		SimulatorInterval Duration `json:"simulator_interval"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr     string   `json:"addr"`
			Password string   `json:"password"`
			DB       int      `json:"db"`
			TTL      Duration `json:"ttl"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Recorder struct {
		PageSize     int32  `json:"page_size"`
		DeliveryArea string `json:"delivery_area"`
	} `json:"recorder,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		Client: Client{
			URL:          jsonCfg.Client.URL,
			AuthKey:      jsonCfg.Client.AuthKey,
			SignSecret:   jsonCfg.Client.SignSecret,
			CallTimeout:  time.Duration(jsonCfg.Client.CallTimeout),
			MaxRetries:   jsonCfg.Client.MaxRetries,
			RetryBackoff: time.Duration(jsonCfg.Client.RetryBackoff),
			StreamBuffer: jsonCfg.Client.StreamBuffer,
		},
		Server: Server{
			GRPCAddress:       jsonCfg.Server.GRPCAddress,
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			APIKeys:           jsonCfg.Server.APIKeys,
			SignSecret:        jsonCfg.Server.SignSecret,
			SignatureSkew:     time.Duration(jsonCfg.Server.SignatureSkew),
			RateLimit:         jsonCfg.Server.RateLimit,
			RateBurst:         jsonCfg.Server.RateBurst,
			SimulatorAreas:    jsonCfg.Server.SimulatorAreas,
			SimulatorInterval: time.Duration(jsonCfg.Server.SimulatorInterval),
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				TTL:      time.Duration(jsonCfg.Storage.Redis.TTL),
			},
		},
		Recorder: Recorder{
			PageSize:     jsonCfg.Recorder.PageSize,
			DeliveryArea: jsonCfg.Recorder.DeliveryArea,
		},
		Log: Log{Level: jsonCfg.Log.Level},
	}, nil
}

// Duration accepts either a Go duration string ("1m30s") or nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
