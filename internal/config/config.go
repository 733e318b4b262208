package config

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const defaultJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("IRONLEDGER_ADDR", ":8080"),
		JWTSecret:     getEnv("IRONLEDGER_JWT_SECRET", defaultJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("IRONLEDGER_DATABASE_PATH", "ironledger.db"),
		TokenDuration: 24 * time.Hour,
		BcryptCost:    bcrypt.DefaultCost,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that cannot safely serve requests. The
// default JWT secret is only tolerated when IRONLEDGER_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 15 {
		return fmt.Errorf("bcrypt_cost must be between %d and 15", bcrypt.MinCost)
	}
	if c.JWTSecret == defaultJWTSecret && os.Getenv("IRONLEDGER_ENV") != "development" {
		return fmt.Errorf("jwt_secret must be changed outside development")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
