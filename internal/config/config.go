// Package config provides CLI configuration loading from environment
// variables and .env files. It uses viper for flexible configuration
// management with sensible defaults.
package config

import (
	"github.com/spf13/viper"
)

// Config holds condctl defaults loaded from environment variables or a
// .env file. Configuration priority: environment variables > .env file
// > defaults. Command-line flags override all of these.
type Config struct {
	TemplatePath string // Default template file path
	Format       string // Default output format (table, json, yaml)
	Trials       int    // Default trial count for simulate
}

// Load reads configuration from environment variables and a .env file
// (if present). Environment variables take precedence over .env values.
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = v.ReadInConfig()    // Ignore error - .env is optional
	v.AutomaticEnv()        // Read from environment variables

	setConfigDefaults(v)

	return &Config{
		TemplatePath: v.GetString("CONDCTL_TEMPLATE"),
		Format:       v.GetString("CONDCTL_FORMAT"),
		Trials:       v.GetInt("CONDCTL_TRIALS"),
	}
}

// setConfigDefaults sets default values for all configuration options.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("CONDCTL_TEMPLATE", "")
	v.SetDefault("CONDCTL_FORMAT", "table")
	v.SetDefault("CONDCTL_TRIALS", 100_000)
}
