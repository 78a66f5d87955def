// Package config loads the settings shared by the trading binaries.
//
// Values come from environment variables, command line flags and an optional
// JSON file, in that order of priority. Anything still unset afterwards takes
// the value from [Defaults].
package config

import "time"

type StructuredConfig struct {
	Client   Client   `envPrefix:"CLIENT_"`
	Server   Server   `envPrefix:"SERVER_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	Recorder Recorder `envPrefix:"RECORDER_"`
	Log      Log      `envPrefix:"LOG_"`

	// JSONFilePath is read from CONFIG or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Client configures connections to the trading API.
type Client struct {
	// URL in the form grpc://host[:port][?ssl=bool&...].
	// Env: CLIENT_URL
	URL          string        `env:"URL"`
	AuthKey      string        `env:"AUTH_KEY"`
	SignSecret   string        `env:"SIGN_SECRET"`
	CallTimeout  time.Duration `env:"CALL_TIMEOUT"`
	MaxRetries   int           `env:"MAX_RETRIES"`
	RetryBackoff time.Duration `env:"RETRY_BACKOFF"`
	StreamBuffer int           `env:"STREAM_BUFFER"`
}

// Server configures tradingd and the HTTP gateway.
type Server struct {
	GRPCAddress string `env:"GRPC_ADDRESS"`
	HTTPAddress string `env:"HTTP_ADDRESS"`

	// APIKeys accepted by tradingd. Empty disables the key check.
	// Env: SERVER_API_KEYS, comma separated
	APIKeys []string `env:"API_KEYS" envSeparator:","`

	// SignSecret enables request signature checks when set.
	SignSecret    string        `env:"SIGN_SECRET"`
	SignatureSkew time.Duration `env:"SIGNATURE_SKEW"`

	// RateLimit is requests per second per client id on the gateway.
	RateLimit float64 `env:"RATE_LIMIT"`
	RateBurst int     `env:"RATE_BURST"`

	// SimulatorAreas are EIC codes for which synthetic public trades are
	// recorded. Empty disables the simulator.
	SimulatorAreas    []string      `env:"SIMULATOR_AREAS" envSeparator:","`
	SimulatorInterval time.Duration `env:"SIMULATOR_INTERVAL"`
}

type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Redis Redis `envPrefix:"REDIS_"`
}

type DB struct {
	// DSN of the Postgres database. Empty means in-memory storage.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

type Redis struct {
	// Addr of the order cache. Empty means an in-process cache.
	Addr     string        `env:"ADDR"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB"`
	TTL      time.Duration `env:"TTL"`
}

type Recorder struct {
	PageSize int32 `env:"PAGE_SIZE"`
	// DeliveryArea restricts recording to one EIC area code.
	DeliveryArea string `env:"DELIVERY_AREA"`
}

type Log struct {
	Level string `env:"LEVEL"`
}

// Defaults fills whatever the other sources leave unset.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Client: Client{
			URL:          "grpc://localhost:9090?ssl=false",
			CallTimeout:  60 * time.Second,
			RetryBackoff: 500 * time.Millisecond,
			StreamBuffer: 50,
		},
		Server: Server{
			GRPCAddress:       ":9090",
			HTTPAddress:       ":8080",
			SignatureSkew:     5 * time.Minute,
			RateLimit:         10,
			RateBurst:         20,
			SimulatorInterval: 5 * time.Second,
		},
		Storage: Storage{
			Redis: Redis{TTL: 5 * time.Minute},
		},
		Recorder: Recorder{PageSize: 100},
		Log:      Log{Level: "info"},
	}
}

// New builds the configuration from the process environment, args (without
// the program name) and the JSON file they point to.
func New(name string, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(name, args).
		withJSON().
		withDefaults().
		build()
}
