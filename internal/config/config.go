// Package config defines the application configuration and loads it from a
// YAML file with environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-portal/internal/assets"
	"github.com/iwvelando/loan-portal/internal/auth"
	"github.com/iwvelando/loan-portal/internal/store"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the loan portal.
type Configuration struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Store   store.Config  `yaml:"store" mapstructure:"store"`
	Auth    auth.Config   `yaml:"auth" mapstructure:"auth"`
	Assets  assets.Signer `yaml:"assets" mapstructure:"assets"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Address      string        `yaml:"address" mapstructure:"address"`
	MaxBodySize  string        `yaml:"maxBodySize" mapstructure:"maxBodySize"` // e.g. 512K, 1M
	ReadTimeout  time.Duration `yaml:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout" mapstructure:"writeTimeout"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, json, yaml
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", "1M")
	v.SetDefault("server.readTimeout", 15*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("store.driver", constants.StoreDriverMemory)
	v.SetDefault("store.sqlitePath", constants.DefaultSQLitePath)
	v.SetDefault("store.redis.address", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.keyPrefix", constants.DefaultRedisKeyPrefix)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.expiration", time.Hour)
	v.SetDefault("assets.accessToken", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads defaults and environment overrides
// only. Environment variables such as LOANPORTAL_STORE_DRIVER override the file.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate returns an error for settings the application cannot start with.
func (c *Configuration) Validate() error {
	switch c.Store.Driver {
	case "", constants.StoreDriverMemory, constants.StoreDriverSQLite, constants.StoreDriverRedis:
	default:
		return fmt.Errorf("expected store driver of %s, %s or %s, got %s",
			constants.StoreDriverMemory, constants.StoreDriverSQLite, constants.StoreDriverRedis, c.Store.Driver)
	}
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("expected logging format of json or console, got %s", c.Logging.Format)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if c.Auth.Secret == "" {
		warnings = append(warnings, "auth.secret is empty: every request is unauthenticated and user-scoped endpoints will return 401")
	}
	switch c.Store.Driver {
	case "", constants.StoreDriverMemory:
		warnings = append(warnings, "store.driver is memory: documents are lost when the process exits")
	case constants.StoreDriverRedis:
		if c.Store.Redis.Address == "" {
			warnings = append(warnings, "store.redis.address is empty: the redis client will dial localhost:6379")
		}
	}
	if c.Assets.AccessToken == "" {
		warnings = append(warnings, "assets.accessToken is empty: agent profile urls are returned unsigned")
	}
	return warnings
}
