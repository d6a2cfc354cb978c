package main

import (
	"fmt"

	"github.com/kbukum/blogapi/auth/jwt"
	"github.com/kbukum/blogapi/config"
	"github.com/kbukum/blogapi/database"
	"github.com/kbukum/blogapi/logger"
	"github.com/kbukum/blogapi/server"
)

// Config is the full blogapi service configuration.
type Config struct {
	App      config.BaseConfig `mapstructure:"app"`
	Log      logger.Config     `mapstructure:"log"`
	Server   server.Config     `mapstructure:"server"`
	Database database.Config   `mapstructure:"database"`
	Auth     AuthConfig        `mapstructure:"auth"`
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	JWT jwt.Config `mapstructure:"jwt"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.App.ApplyDefaults()
	if c.App.Name == "" {
		c.App.Name = "blogapi"
	}
	c.Log.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.JWT.ApplyDefaults()
}

// Validate checks every section. A missing JWT secret is a startup error:
// the service must never run with token verification disabled.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Auth.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	return nil
}
