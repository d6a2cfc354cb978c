package server

import "fmt"

// Config holds HTTP server settings.
type Config struct {
	Host         string     `mapstructure:"host" json:"host" yaml:"host"`
	Port         int        `mapstructure:"port" json:"port" yaml:"port"`
	ReadTimeout  int        `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout int        `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  int        `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`
	CORS         CORSConfig `mapstructure:"cors" json:"cors" yaml:"cors"`
}

// CORSConfig controls cross-origin request handling.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" json:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" json:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" json:"allowed_headers" yaml:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" json:"allow_credentials" yaml:"allow_credentials"`
}

// ApplyDefaults fills in sensible defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	c.CORS.ApplyDefaults()
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// ApplyDefaults fills in permissive CORS defaults.
func (c *CORSConfig) ApplyDefaults() {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
}
