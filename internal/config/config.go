// Package config loads micmac configuration from .micmac/config.json with
// environment-variable overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete micmac configuration
type Config struct {
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host        string   `json:"host" mapstructure:"host"`
	Port        string   `json:"port" mapstructure:"port"`
	CORSOrigins []string `json:"corsOrigins" mapstructure:"corsOrigins"`
}

// DatabaseConfig contains SQLite configuration
type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// Addr returns the host:port listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "localhost",
			Port:        "8000",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Path: filepath.Join(".micmac", "micmac.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
	}
}

// LoadConfig reads .micmac/config.json under root, applying defaults and
// MICMAC_* environment overrides (e.g. MICMAC_SERVER_PORT). A missing config
// file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.corsOrigins", def.Server.CORSOrigins)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".micmac"))

	v.SetEnvPrefix("MICMAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to .micmac/config.json under root.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".micmac")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
