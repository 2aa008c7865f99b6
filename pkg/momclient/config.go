package momclient

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the client configuration file.
type Config struct {
	DSN      string `yaml:"dsn"`
	UserID   string `yaml:"user_id"`
	Password string `yaml:"password"`
	FundID   string `yaml:"fund_id"`

	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	HeartbeatTimeout  time.Duration `yaml:"heartbeat_timeout"`

	// PinCore pins the delivery thread to a logical CPU, -1 disables.
	PinCore int `yaml:"pin_core"`
}

// DefaultConfig returns the configuration defaults before file overrides.
func DefaultConfig() Config {
	return Config{
		HeartbeatInterval: time.Second,
		HeartbeatTimeout:  10 * time.Second,
		PinCore:           -1,
	}
}

// LoadConfig reads and validates a yaml configuration file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithMessage(err, "fail read config "+path)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WithMessage(err, "fail parse config "+path)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config invariants.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return errors.New("config: dsn is empty")
	}
	if c.HeartbeatInterval <= 0 {
		return errors.New("config: heartbeat interval must be positive")
	}
	if c.HeartbeatTimeout < c.HeartbeatInterval {
		return errors.New("config: heartbeat timeout below interval")
	}
	return nil
}

// Options translates the config into connection options.
func (c *Config) Options() []ConnectionOption {
	opts := []ConnectionOption{WithHeartbeat(c.HeartbeatInterval, c.HeartbeatTimeout)}
	if c.PinCore >= 0 {
		opts = append(opts, WithPinnedCore(c.PinCore))
	}
	return opts
}
