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
//	-a server address in format [host]:[port]
//	-d database DSN
//	-relay-address advertised relay websocket URL
//	-session-ttl pairing session lifetime (e.g., "2m")
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "720h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-local-db device local store path
//	-server-url remote store base URL
//	-local-address device local server address [host]:[port]
//	-sync-interval device sync interval (e.g., "5m")
//	-purge-retention tombstone retention window (e.g., "720h")
func ParseFlags() *StructuredConfig {
	var serverAddress, localAddress NetAddress
	var databaseDSN string
	var relayAddress string
	var sessionTTL time.Duration
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var localDBPath string
	var serverURL string
	var syncInterval time.Duration
	var purgeRetention time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&relayAddress, "relay-address", "", "Advertised relay websocket URL")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Pairing session lifetime (e.g., 2m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 720h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&localDBPath, "local-db", "", "Device local store path")
	flag.StringVar(&serverURL, "server-url", "", "Remote store base URL")
	flag.Var(&localAddress, "local-address", "Device local server address host:port")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Device sync interval (e.g., 5m)")
	flag.DurationVar(&purgeRetention, "purge-retention", 0, "Tombstone retention window (e.g., 720h)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
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
			RelayAddress:   relayAddress,
			RequestTimeout: requestTimeout,
			SessionTTL:     sessionTTL,
		},
		Device: Device{
			LocalDBPath:    localDBPath,
			ServerURL:      serverURL,
			LocalAddress:   localAddress.String(),
			RequestTimeout: requestTimeout,
			SyncInterval:   syncInterval,
			PurgeRetention: purgeRetention,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
