// Package config loads txnlab-skills settings from flags, environment
// variables, a .env file and an optional config.yaml, in that order of
// precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/txnlab/skills/pkg/logger"
)

const (
	// AppName names the config directory under $XDG_CONFIG_HOME
	AppName = "txnlab-skills"
	// EnvPrefix prefixes every environment variable, e.g. TXNLAB_SKILLS_SKILLS_DIR
	EnvPrefix = "TXNLAB_SKILLS"
)

// Config keys
const (
	KeySkillsDir = "skills_dir"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyColor     = "color"
)

// Config is a typed snapshot of the resolved settings
type Config struct {
	// SkillsDir overrides skills root resolution when set
	SkillsDir string
	LogLevel  string
	LogFormat string
	Color     string
}

// Init prepares v with defaults, environment binding and the config file
// search path, then reads the config file if one exists. Variables from
// dotenvPaths (default ".env") are loaded into the process environment
// first; a missing file is not an error.
func Init(v *viper.Viper, dotenvPaths ...string) error {
	if err := loadDotenv(dotenvPaths...); err != nil {
		return err
	}

	v.SetDefault(KeySkillsDir, "")
	v.SetDefault(KeyLogLevel, logger.DefaultLevel)
	v.SetDefault(KeyLogFormat, logger.DefaultFormat)
	v.SetDefault(KeyColor, "auto")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}

	return nil
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Load returns the settings held by the global viper instance
func Load() Config {
	return LoadFrom(viper.GetViper())
}

// LoadFrom returns the settings held by v
func LoadFrom(v *viper.Viper) Config {
	return Config{
		SkillsDir: v.GetString(KeySkillsDir),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		Color:     v.GetString(KeyColor),
	}
}

func loadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Wrapf(err, "failed to load %s", path)
		}
	}

	return nil
}
