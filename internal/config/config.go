package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/aio-labs/aio/internal/branding"
	"github.com/aio-labs/aio/internal/logging"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyOutputBase = "output_base" // directory output_dir is resolved against
	KeyPinsFile   = "pins_file"   // default pin table file
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

var defaults = map[string]string{
	KeyOutputBase: ".",
	KeyPinsFile:   "",
	KeyLogLevel:   "info",
	KeyLogFormat:  "console",
}

// Keys returns the recognized keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is recognized.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Dir returns the path to the config directory (~/.aio/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.aio/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating config directory %s", dir)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return errors.Newf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return errors.Wrapf(err, "creating config file %s", configFile)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

// Logging returns the logger settings from the loaded configuration.
func Logging() logging.Config {
	return logging.Config{
		Level:  Get(KeyLogLevel),
		Format: Get(KeyLogFormat),
	}
}
