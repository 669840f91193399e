package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/bookingfields/internal/logger"
	"github.com/mesh-intelligence/bookingfields/pkg/atom"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "BOOKINGFIELDS"

	// Config keys.
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeySync          = "sync"
	cfgKeyLogLevel      = "log.level"
	cfgKeyLogFormat     = "log.format"
	cfgKeyAtomWebsite   = "atom.website_url"
	cfgKeyAtomWebappURL = "atom.webapp_url"
)

// settings is the decoded configuration.
type settings struct {
	Backend string      `mapstructure:"backend" yaml:"backend"`
	DataDir string      `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Sync    string      `mapstructure:"sync" yaml:"sync"`
	Log     logSettings `mapstructure:"log" yaml:"log"`
	Atom    atom.Config `mapstructure:"atom" yaml:"atom"`
}

type logSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func defaultSettings() settings {
	return settings{
		Backend: types.BackendSQLite,
		Sync:    types.SyncImmediate,
		Log:     logSettings{Level: "warn", Format: logger.FormatConsole},
		Atom:    atom.Config{WebsiteURL: atom.DefaultWebsiteURL, WebappURL: atom.DefaultWebappURL},
	}
}

// storeConfig converts settings to a store Config for dataDir.
func (s settings) storeConfig(dataDir string) types.Config {
	return types.Config{Backend: s.Backend, DataDir: dataDir, Sync: s.Sync}
}

// loadDotEnv loads .env from the working directory if present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}
}

// loadConfig reads config.yaml from configDir with BOOKINGFIELDS_* environment
// overrides. It creates the directory and a default config.yaml on first run.
func loadConfig(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeDefaultConfig(filepath.Join(configDir, configFileExt)); err != nil {
		return settings{}, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultSettings()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeySync, def.Sync)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyAtomWebsite, def.Atom.WebsiteURL)
	v.SetDefault(cfgKeyAtomWebappURL, def.Atom.WebappURL)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.storeConfig("").Validate(); err != nil {
		return settings{}, fmt.Errorf("config %s: %w", filepath.Join(configDir, configFileExt), err)
	}
	return s, nil
}

// writeDefaultConfig creates config.yaml with default values if it does not
// exist. An existing file is left untouched.
func writeDefaultConfig(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# bookingfields configuration\n# Environment variables BOOKINGFIELDS_<KEY> override these values.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
