package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FINCALC_LOG_LEVEL.
const EnvPrefix = "FINCALC"

// DefaultListenAddress is where the calculation service listens.
const DefaultListenAddress = ":8080"

// LoggingConfig selects the log level, encoder and destination.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputFile string `mapstructure:"output_file"`
}

// ServerConfig holds the calculation service parameters.
type ServerConfig struct {
	Listen      string `mapstructure:"listen"`
	MaxBodySize int    `mapstructure:"max_body_size"`
}

// OutputConfig holds report defaults.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Settings are application-level options, separate from scenario files.
type Settings struct {
	Log    LoggingConfig `mapstructure:"log"`
	Server ServerConfig  `mapstructure:"server"`
	Output OutputConfig  `mapstructure:"output"`
}

// LoadSettings reads the optional settings file at path (any format viper
// understands) and applies FINCALC_* environment overrides. An empty path
// yields defaults plus environment.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("server.listen", DefaultListenAddress)
	v.SetDefault("server.max_body_size", 1<<20)
	v.SetDefault("output.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch strings.ToLower(s.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Log.Format)
	}
	if s.Server.MaxBodySize <= 0 {
		return fmt.Errorf("server max body size must be positive")
	}
	return nil
}
