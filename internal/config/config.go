package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration, loaded from flowerpass.yaml,
// environment variables (FLOWERPASS_*) and CLI flags.
type Config struct {
	Language string `mapstructure:"language" yaml:"language"`
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Defaults struct {
		// Length is the fallback output length when a key is not in the
		// site registry and no --length flag was given.
		Length int `mapstructure:"length" yaml:"length"`
		// Copy puts derived passwords on the clipboard instead of stdout.
		Copy bool `mapstructure:"copy" yaml:"copy"`
	} `mapstructure:"defaults" yaml:"defaults"`
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Flowerpass")
		default: // Linux, macOS, etc.
			configDir = "/etc/flowerpass"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "flowerpass")
	}

	return filepath.Join(configDir, "flowerpass.yaml"), nil
}

// LoadConfig resolves the configuration from defaults, config files, the
// environment and the command's flags, in ascending precedence.
func LoadConfig(cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("flowerpass")
	v.SetConfigType("yaml")

	// An explicit --config path has the highest precedence for file-based
	// configuration.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	// Standard config locations
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for flowerpass.yaml in current dir

	// A missing config file is not fatal: loading continues with defaults,
	// env and flags, and the not-found error is handed back at the end so
	// callers can decide to write a default file.
	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
		notFound = err
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("flowerpass")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// WriteConfigFile persists the configuration as YAML to the user (or
// system) config path, creating the directory if needed.
func WriteConfigFile(c *Config, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may carry a private DSN.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}
