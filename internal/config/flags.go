package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d database DSN (SQLite path on the client, PostgreSQL DSN on the server)
//	-c/-config json file path with configs
//	-endpoint remote sync endpoint base URL
//	-device-token bearer token for authenticated sync calls
//	-request-timeout per-request timeout (e.g., "30s")
//	-max-retries total attempts for retryable transport calls
//	-initial-backoff delay before the first retry (e.g., "1s")
//	-sync-interval background sync period (e.g., "5m")
//	-token-sign-key device token signing key
//	-token-issuer device token issuer name
//	-token-duration device token lifetime (e.g., "720h")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var endpoint string
	var deviceToken string
	var requestTimeout time.Duration
	var maxRetries int
	var initialBackoff time.Duration
	var syncInterval time.Duration
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&endpoint, "endpoint", "", "Remote sync endpoint base URL")
	flag.StringVar(&deviceToken, "device-token", "", "Device bearer token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	flag.IntVar(&maxRetries, "max-retries", 0, "Max transport attempts, first attempt included")
	flag.DurationVar(&initialBackoff, "initial-backoff", 0, "Initial retry backoff (e.g., 1s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Device token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Device token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Device token lifetime (e.g., 720h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			BaseURL:          endpoint,
			RequestTimeout:   requestTimeout,
			MaxRetryAttempts: maxRetries,
			InitialBackoff:   initialBackoff,
			DeviceToken:      deviceToken,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or the empty
// string when neither part has been set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
