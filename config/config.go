// Package config loads service settings from defaults, an optional whois.yaml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LookupConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

type ResolverConfig struct {
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	WhoisTimeout  time.Duration `mapstructure:"whois_timeout"`
	WhoisFallback bool          `mapstructure:"whois_fallback"`
	UserAgent     string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Lookup   LookupConfig   `mapstructure:"lookup"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Log      LogConfig      `mapstructure:"log"`

	// FileUsed is the config file that was read, empty when none was found.
	FileUsed string `mapstructure:"-"`
}

// SetDefaults registers every key with its default so that environment
// overrides (SERVER_PORT, RESOLVER_HTTP_TIMEOUT, ...) are picked up.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 10)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("lookup.max_concurrency", 0)
	v.SetDefault("resolver.http_timeout", "15s")
	v.SetDefault("resolver.whois_timeout", "15s")
	v.SetDefault("resolver.whois_fallback", true)
	v.SetDefault("resolver.user_agent", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads configuration into a Config. A missing config file is not an
// error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("whois")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	// PORT is what most PaaS platforms set.
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var cfgNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.FileUsed = v.ConfigFileUsed()

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server.port %d", cfg.Server.Port)
	}
	if cfg.Lookup.MaxConcurrency < 0 {
		return nil, fmt.Errorf("lookup.max_concurrency must not be negative")
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
