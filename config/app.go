package config

import (
	"fmt"

	"github.com/iiTONELOC/web-app-auth-server/auth/jwt"
	"github.com/iiTONELOC/web-app-auth-server/auth/password"
	"github.com/iiTONELOC/web-app-auth-server/database"
	"github.com/iiTONELOC/web-app-auth-server/logger"
	"github.com/iiTONELOC/web-app-auth-server/observability"
	"github.com/iiTONELOC/web-app-auth-server/server"
	"github.com/iiTONELOC/web-app-auth-server/validation"
)

// Config is the full application configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	JWT           jwt.Config           `yaml:"jwt" mapstructure:"jwt"`
	Password      password.Config      `yaml:"password" mapstructure:"password"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Load reads the configuration, applies defaults, and validates it. A
// missing JWT secret fails here so the process never starts without one.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	cfg := &Config{}
	if err := load(cfg, lc); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills in every section's defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "web-app-auth-server"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate runs struct-tag validation followed by each section's own checks.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	sections := []struct {
		name     string
		validate func() error
	}{
		{"logging", c.Logging.Validate},
		{"server", c.Server.Validate},
		{"jwt", c.JWT.Validate},
		{"password", c.Password.Validate},
		{"database", c.Database.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("config.%s: %w", s.name, err)
		}
	}
	return nil
}
