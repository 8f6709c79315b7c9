package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultConfigPath = "config.json"

type Config struct {
	Server struct {
		Port        int
		ReadTimeout Duration
	}

	Database struct {
		Path string
	}

	Exchange map[string]ExchangeConfig
}

type ExchangeConfig struct {
	Enabled           bool
	BaseUrl           string
	ApiKey            string
	ApiSecret         string
	Timeout           Duration
	RequestsPerSecond float64
	RetryCount        int
	DepthLimit        int
}

// Duration unmarshals from a Go duration string ("10s") or a number of seconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

var once sync.Once
var config *Config

// GetConfig loads the config file once per process. A missing or invalid file is fatal.
func GetConfig() *Config {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultConfigPath
		}
		c, err := Load(path)
		if err != nil {
			panic(err)
		}
		config = c
	})

	return config
}

func Load(path string) (*Config, error) {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(configBytes)
}

func Parse(configBytes []byte) (*Config, error) {
	var c Config
	if err := json.Unmarshal(configBytes, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			c.Server.Port = p
		}
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		c.Database.Path = path
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Database.Path == "" {
		c.Database.Path = "exchange-gateway.db"
	}

	exchanges := make(map[string]ExchangeConfig, len(c.Exchange))
	for name, ex := range c.Exchange {
		if ex.Timeout == 0 {
			ex.Timeout = Duration(10 * time.Second)
		}
		if ex.RequestsPerSecond <= 0 {
			ex.RequestsPerSecond = 10
		}
		if ex.DepthLimit <= 0 {
			ex.DepthLimit = 100
		}
		exchanges[strings.ToLower(name)] = ex
	}
	c.Exchange = exchanges
}
