package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration, loaded once at startup. Trading
// identity and credentials come from the environment; server settings may be
// overridden by an optional YAML file.
type Config struct {
	BearerToken       string
	DeviceFingerprint string
	SignerAddress     string
	MakerAddress      string
	PrivateKey        string
	OrderAmount       decimal.Decimal

	Host       string // venue API host, defaults to the Opinion proxy
	ListenAddr string
	LogLevel   string
	LogFile    string
}

// ServerFile is the optional YAML config file for non-secret server settings.
type ServerFile struct {
	Listen   string `yaml:"listen"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

var requiredEnv = []string{
	"BEARER_TOKEN",
	"DEVICE_FINGERPRINT",
	"SIGNER_ADDRESS",
	"MAKER_ADDRESS",
	"PRIVATE_KEY",
}

// Load reads configuration from the environment, optionally merging the YAML
// file at filePath (empty = no file). Missing required fields are fatal: the
// bot must never start half-configured.
func Load(filePath string) (*Config, error) {
	cfg := &Config{
		BearerToken:       os.Getenv("BEARER_TOKEN"),
		DeviceFingerprint: os.Getenv("DEVICE_FINGERPRINT"),
		SignerAddress:     os.Getenv("SIGNER_ADDRESS"),
		MakerAddress:      os.Getenv("MAKER_ADDRESS"),
		PrivateKey:        os.Getenv("PRIVATE_KEY"),
		OrderAmount:       decimal.NewFromFloat(5.0),

		Host:       getEnv("OPINION_HOST", ""),
		ListenAddr: getEnv("TRADER_LISTEN", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    getEnv("LOG_FILE", ""),
	}

	if raw := os.Getenv("ORDER_AMOUNT"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse ORDER_AMOUNT %q: %w", raw, err)
		}
		cfg.OrderAmount = amount
	}

	if filePath != "" {
		if err := cfg.mergeFile(filePath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", filePath, err)
	}
	var f ServerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", filePath, err)
	}
	if f.Listen != "" {
		c.ListenAddr = f.Listen
	}
	if f.Host != "" {
		c.Host = f.Host
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.LogFile != "" {
		c.LogFile = f.LogFile
	}
	return nil
}

// Validate checks the required trading fields. All five must be non-empty
// before any trading operation is attempted.
func (c *Config) Validate() error {
	values := map[string]string{
		"BEARER_TOKEN":       c.BearerToken,
		"DEVICE_FINGERPRINT": c.DeviceFingerprint,
		"SIGNER_ADDRESS":     c.SignerAddress,
		"MAKER_ADDRESS":      c.MakerAddress,
		"PRIVATE_KEY":        c.PrivateKey,
	}
	var missing []string
	for _, key := range requiredEnv {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.OrderAmount.Sign() <= 0 {
		return fmt.Errorf("ORDER_AMOUNT must be greater than 0")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
