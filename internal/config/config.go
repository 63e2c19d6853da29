package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Garage    GarageConfig    `toml:"garage"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logs      LogsConfig      `toml:"logs"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type GarageConfig struct {
	Capacity int `toml:"capacity"`
}

type TelemetryConfig struct {
	ServiceName  string `toml:"service_name"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

type LogsConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Garage: GarageConfig{
			Capacity: 10,
		},
		Telemetry: TelemetryConfig{
			ServiceName:  "parking-garage-service",
			OTLPEndpoint: "http://localhost:4318",
		},
		Logs: LogsConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the defaults are returned as is. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Garage.Capacity <= 0 {
		return nil, fmt.Errorf("config %s: garage capacity must be positive, got %d", path, cfg.Garage.Capacity)
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return nil, fmt.Errorf("config %s: invalid http_port %d", path, cfg.Server.HTTPPort)
	}

	return cfg, nil
}
