package redis

import (
	"fmt"
	"time"
)

// Config holds Redis connection settings and the declared fixture keys.
type Config struct {
	// Enabled controls whether fixtures are loaded into Redis.
	Enabled bool `mapstructure:"enabled"`

	// Addr is the Redis server address (host:port).
	Addr string `mapstructure:"addr"`

	// Password is the Redis server password.
	Password string `mapstructure:"password"`

	// DB is the Redis database number.
	DB int `mapstructure:"db"`

	// PoolSize is the maximum number of socket connections.
	PoolSize int `mapstructure:"pool_size"`

	// MaxRetries is the maximum number of retries before giving up (0 = default 3).
	MaxRetries int `mapstructure:"max_retries"`

	// DialTimeout is the timeout for establishing new connections (e.g. "5s").
	DialTimeout string `mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads (e.g. "3s").
	ReadTimeout string `mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes (e.g. "3s").
	WriteTimeout string `mapstructure:"write_timeout"`

	// Keys declares every key fixtures may be written to.
	Keys []KeyDeclaration `mapstructure:"keys"`
}

// KeyDeclaration binds a key name to its type.
type KeyDeclaration struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // skip validation when disabled
	}
	if c.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be > 0")
	}
	if _, err := time.ParseDuration(c.DialTimeout); err != nil {
		return fmt.Errorf("invalid dial_timeout %q: %w", c.DialTimeout, err)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout %q: %w", c.ReadTimeout, err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout %q: %w", c.WriteTimeout, err)
	}
	if _, err := c.KeyTypes(); err != nil {
		return err
	}
	return nil
}

// KeyTypes converts the key declarations into the map NewDriver expects.
func (c *Config) KeyTypes() (map[string]KeyType, error) {
	types := make(map[string]KeyType, len(c.Keys))
	for i, k := range c.Keys {
		if k.Name == "" {
			return nil, fmt.Errorf("redis keys[%d]: name is required", i)
		}
		if _, dup := types[k.Name]; dup {
			return nil, fmt.Errorf("redis key %q declared twice", k.Name)
		}
		t, err := ParseKeyType(k.Type)
		if err != nil {
			return nil, fmt.Errorf("redis key %q: %w", k.Name, err)
		}
		types[k.Name] = t
	}
	return types, nil
}
