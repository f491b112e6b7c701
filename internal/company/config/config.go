// Package config loads service settings from a YAML file, an optional .env
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when CONFIG_PATH is unset.
var DefaultPath = filepath.Join("internal", "company", "config", "config.yaml")

// Config struct for YAML configuration
type Config struct {
	GRPCPort       int      `yaml:"GRPC_PORT"`
	HTTPPort       int      `yaml:"HTTP_PORT"`
	DBDriver       string   `yaml:"DB_DRIVER"`
	DBHost         string   `yaml:"DB_HOST"`
	DBPort         int      `yaml:"DB_PORT"`
	DBUser         string   `yaml:"DB_USER"`
	DBPassword     string   `yaml:"DB_PASSWORD"`
	DBName         string   `yaml:"DB_NAME"`
	DBSSLMode      string   `yaml:"DB_SSLMODE"`
	DBPath         string   `yaml:"DB_PATH"`
	KafkaBrokers   []string `yaml:"KAFKA_BROKERS"`
	Topic          string   `yaml:"TOPIC"`
	ConsumerGroup  string   `yaml:"CONSUMER_GROUP"`
	JWTSecret      string   `yaml:"JWT_SECRET"`
	RateLimitRPS   float64  `yaml:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `yaml:"RATE_LIMIT_BURST"`
}

// Default returns the settings used for keys that neither the file nor the
// environment provide.
func Default() *Config {
	return &Config{
		GRPCPort:      50051,
		HTTPPort:      8080,
		DBDriver:      "sqlite",
		DBPort:        5432,
		DBSSLMode:     "disable",
		DBPath:        "companies.db",
		Topic:         "companies",
		ConsumerGroup: "company-audit",
	}
}

// Load reads the config file at CONFIG_PATH (or DefaultPath) and applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile reads the YAML file at path on top of the defaults and then
// applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	for key, dst := range map[string]*string{
		"DB_DRIVER":      &c.DBDriver,
		"DB_HOST":        &c.DBHost,
		"DB_USER":        &c.DBUser,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_NAME":        &c.DBName,
		"DB_SSLMODE":     &c.DBSSLMode,
		"DB_PATH":        &c.DBPath,
		"TOPIC":          &c.Topic,
		"CONSUMER_GROUP": &c.ConsumerGroup,
		"JWT_SECRET":     &c.JWTSecret,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	for key, dst := range map[string]*int{
		"GRPC_PORT":        &c.GRPCPort,
		"HTTP_PORT":        &c.HTTPPort,
		"DB_PORT":          &c.DBPort,
		"RATE_LIMIT_BURST": &c.RateLimitBurst,
	} {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	if v, ok := os.LookupEnv("RATE_LIMIT_RPS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = f
	}

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.KafkaBrokers = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
