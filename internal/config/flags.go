package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a listen address in the form host:port. The host may be
// empty to listen on every interface.
type NetAddress struct {
	Host string
	Port int
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

// listFlag collects comma separated values; repeating the flag appends.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

func parseFlags(name string, args []string) (*StructuredConfig, error) {
	var grpcAddress, httpAddress NetAddress
	var apiKeys, simulatorAreas listFlag
	var (
		clientURL, authKey, signSecret string
		callTimeout                    time.Duration
		maxRetries                     int
		serverSignSecret               string
		rateLimit                      float64
		rateBurst                      int
		simulatorInterval              time.Duration
		databaseDSN                    string
		redisAddr                      string
		redisDB                        int
		pageSize                       int
		recordArea                     string
		logLevel                       string
		jsonConfigPath                 string
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&clientURL, "url", "", "Trading API URL grpc://host[:port][?ssl=bool]")
	fs.StringVar(&authKey, "auth-key", "", "API key sent with every request")
	fs.StringVar(&signSecret, "sign-secret", "", "Secret used to sign requests")
	fs.DurationVar(&callTimeout, "call-timeout", 0, "Per-call timeout (e.g., 30s, 1m)")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retries for idempotent calls")

	fs.Var(&grpcAddress, "grpc-address", "gRPC listen address host:port")
	fs.Var(&httpAddress, "a", "HTTP listen address host:port")
	fs.Var(&apiKeys, "api-keys", "Accepted API keys, comma separated")
	fs.StringVar(&serverSignSecret, "server-sign-secret", "", "Secret used to verify request signatures")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "Gateway requests per second per client")
	fs.IntVar(&rateBurst, "rate-burst", 0, "Gateway burst size per client")
	fs.Var(&simulatorAreas, "simulate", "EIC area codes to simulate public trades for")
	fs.DurationVar(&simulatorInterval, "simulate-interval", 0, "Interval between simulated trades")

	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&redisAddr, "redis", "", "Redis address host:port")
	fs.IntVar(&redisDB, "redis-db", 0, "Redis database number")

	fs.IntVar(&pageSize, "page-size", 0, "Page size used for backfill")
	fs.StringVar(&recordArea, "area", "", "Record trades of this EIC area only")

	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Client: Client{
			URL:         clientURL,
			AuthKey:     authKey,
			SignSecret:  signSecret,
			CallTimeout: callTimeout,
			MaxRetries:  maxRetries,
		},
		Server: Server{
			GRPCAddress:       grpcAddress.String(),
			HTTPAddress:       httpAddress.String(),
			APIKeys:           apiKeys,
			SignSecret:        serverSignSecret,
			RateLimit:         rateLimit,
			RateBurst:         rateBurst,
			SimulatorAreas:    simulatorAreas,
			SimulatorInterval: simulatorInterval,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Redis: Redis{Addr: redisAddr, DB: redisDB},
		},
		Recorder: Recorder{
			PageSize:     int32(pageSize),
			DeliveryArea: recordArea,
		},
		Log:          Log{Level: logLevel},
		JSONFilePath: jsonConfigPath,
	}, nil
}
