package main

import (
	"fmt"

	"github.com/kbukum/dbfixtures/config"
	"github.com/kbukum/dbfixtures/kafka"
	"github.com/kbukum/dbfixtures/mongodb"
	"github.com/kbukum/dbfixtures/redis"
	"github.com/kbukum/dbfixtures/resilience"
	"github.com/kbukum/dbfixtures/validation"
)

const serviceName = "dbfixtures"

// Config is the configuration file of the dbfixtures command.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Fixtures are the default fixture paths (files, directories or globs),
	// merged in order.
	Fixtures []string `yaml:"fixtures" mapstructure:"fixtures"`

	// Connect is the retry policy of backend connections.
	Connect resilience.RetryConfig `yaml:"connect" mapstructure:"connect"`

	Redis   redis.Config   `yaml:"redis" mapstructure:"redis"`
	MongoDB mongodb.Config `yaml:"mongodb" mapstructure:"mongodb"`
	Kafka   kafka.Config   `yaml:"kafka" mapstructure:"kafka"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Connect.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.MongoDB.ApplyDefaults()
	c.Kafka.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Connect.Validate(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if err := c.MongoDB.Validate(); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	if err := c.Kafka.Validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	return nil
}

// LoadOptions are the resolved inputs of the load command.
type LoadOptions struct {
	ConfigFile string   `mapstructure:"config"`
	Fixtures   []string `mapstructure:"fixtures" validate:"min=1,dive,required"`
	Targets    []string `mapstructure:"target" validate:"dive,required"`
}

// loadConfig reads the configuration file (or the discovered one when path
// is empty), applies defaults and validates it.
func loadConfig(path string) (*Config, error) {
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// resolveOptions merges flags over the configuration and validates the result.
func resolveOptions(cfg *Config, configFile string, fixtures, targets []string) (LoadOptions, error) {
	opts := LoadOptions{
		ConfigFile: configFile,
		Fixtures:   fixtures,
		Targets:    targets,
	}
	if len(opts.Fixtures) == 0 {
		opts.Fixtures = cfg.Fixtures
	}
	if err := validation.Validate(opts); err != nil {
		return LoadOptions{}, err
	}
	return opts, nil
}
