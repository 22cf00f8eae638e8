// Package config provides configuration of the token command line tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDialTimeout is used when configuration omits dial_timeout.
const DefaultDialTimeout = 10 * time.Second

// Config is a token tool configuration.
type Config struct {
	// Neo RPC node endpoint.
	RPCEndpoint string `yaml:"rpc_endpoint"`
	// Token contract address or hash, empty before deployment.
	Token string `yaml:"token"`
	// NEP-6 wallet used for signing transactions.
	Wallet string `yaml:"wallet"`
	// Wallet account address, default wallet account is used if empty.
	Account string `yaml:"account"`

	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// Default returns configuration with default values.
func Default() Config {
	return Config{
		RPCEndpoint: "http://localhost:30333",
		DialTimeout: DefaultDialTimeout,
	}
}

// Load reads YAML configuration from the given file. Missing fields are set
// to default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks that configuration is usable.
func (c Config) Validate() error {
	if c.RPCEndpoint == "" {
		return errors.New("missing rpc_endpoint")
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("negative dial_timeout %s", c.DialTimeout)
	}
	return nil
}
