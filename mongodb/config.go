package mongodb

import (
	"fmt"
	"time"
)

// Config holds MongoDB connection settings.
type Config struct {
	// Enabled controls whether fixtures are loaded into MongoDB.
	Enabled bool `mapstructure:"enabled"`

	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri"`

	// Database receives every fixture collection.
	Database string `mapstructure:"database"`

	// AppName is reported to the server in the connection handshake.
	AppName string `mapstructure:"app_name"`

	// ConnectTimeout is the timeout for establishing connections (e.g. "10s").
	ConnectTimeout string `mapstructure:"connect_timeout"`

	// ServerSelectionTimeout bounds how long an operation waits for a usable server (e.g. "5s").
	ServerSelectionTimeout string `mapstructure:"server_selection_timeout"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.AppName == "" {
		c.AppName = "dbfixtures"
	}
	if c.ConnectTimeout == "" {
		c.ConnectTimeout = "10s"
	}
	if c.ServerSelectionTimeout == "" {
		c.ServerSelectionTimeout = "5s"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URI == "" {
		return fmt.Errorf("mongodb uri is required")
	}
	if c.Database == "" {
		return fmt.Errorf("mongodb database is required")
	}
	if _, err := time.ParseDuration(c.ConnectTimeout); err != nil {
		return fmt.Errorf("invalid connect_timeout %q: %w", c.ConnectTimeout, err)
	}
	if _, err := time.ParseDuration(c.ServerSelectionTimeout); err != nil {
		return fmt.Errorf("invalid server_selection_timeout %q: %w", c.ServerSelectionTimeout, err)
	}
	return nil
}
