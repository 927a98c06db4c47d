package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/volcano-backend/internal/api"
	"github.com/xtding233/volcano-backend/internal/store"
)

// ServerConfig holds the process-wide settings read from server.yaml.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
	GRPCAddr string `yaml:"grpc_addr"` // empty disables gRPC

	// DataDir holds layouts.bin and set_pieces.yaml.
	DataDir string `yaml:"data_dir"`
	// ConfigDir holds profiles/*.yaml.
	ConfigDir string `yaml:"config_dir"`

	// WatchInterval is how often table and profile files are polled; 0 disables reloading.
	WatchInterval time.Duration `yaml:"watch_interval"`

	Store     store.Config        `yaml:"store"`
	WebSocket api.WebSocketConfig `yaml:"websocket"`
}

// DefaultConfig returns the settings used when server.yaml is absent.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		HTTPAddr:      ":8080",
		GRPCAddr:      ":9090",
		DataDir:       "data",
		ConfigDir:     "config",
		WatchInterval: 2 * time.Second,
		Store: store.Config{
			Driver:     "sqlite",
			SQLitePath: "data/cache.db",
			Postgres:   store.DefaultPostgresConfig(),
		},
	}
}

// LoadConfig reads server.yaml over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}
	return config, nil
}
