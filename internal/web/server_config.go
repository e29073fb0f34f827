package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "HDL_LISTEN"
	EnvDevMode    = "HDL_DEV"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - device:    :8080
// - simulator: :8081
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	return ServerConfigFromEnv(os.Getenv, defaultListenAddr)
}

// ServerConfigFromEnv reads the listen address and dev flag through getenv.
func ServerConfigFromEnv(getenv func(string) string, defaultListenAddr string) (ServerConfig, error) {
	listenAddr := getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode}, nil
}
