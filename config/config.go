// Package config loads service settings from the environment, an optional
// .env file and command line overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.thinkinpower.net/bincheck/data"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port             int           `mapstructure:"PORT"`
	RunMode          string        `mapstructure:"RUN_MODE"`
	DataDir          string        `mapstructure:"DATA_DIR"`
	StoreMode        string        `mapstructure:"STORE_MODE"`
	SqlitePath       string        `mapstructure:"SQLITE_PATH"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
	RabbitMQURL      string        `mapstructure:"RABBITMQ_URL"`
	BinlistBaseURL   string        `mapstructure:"BINLIST_BASE_URL"`
	GeocodingBaseURL string        `mapstructure:"GEOCODING_BASE_URL"`
	UserAgent        string        `mapstructure:"USER_AGENT"`
	HTTPTimeout      time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CredentialFile   string        `mapstructure:"CREDENTIAL_FILE"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
}

// Overrides carries command line flags. Zero values leave the loaded value alone.
type Overrides struct {
	Port    int
	RunMode string
	DataDir string
}

const (
	sqliteFileName     = "bin_database.db"
	credentialFileName = "bin_checker_prefs.json"
)

// LoadConfig reads <path>/.env if present, then the environment, then applies overrides.
func LoadConfig(path string, overrides Overrides) (config Config, err error) {
	envFile := filepath.Join(path, ".env")
	if err = godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logger.WithError(err).WithField("file", envFile).Warn("failed to read .env, using environment values")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", 8080)
	viper.SetDefault("RUN_MODE", data.RunModeDev)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("STORE_MODE", data.StoreModeSqlite)
	viper.SetDefault("BINLIST_BASE_URL", "https://lookup.binlist.net/")
	viper.SetDefault("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org/")
	viper.SetDefault("USER_AGENT", "BIN-Checker-Go")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")

	_ = viper.BindEnv("SQLITE_PATH")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("CREDENTIAL_FILE")

	if err = viper.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "unmarshal config")
	}

	if overrides.Port != 0 {
		config.Port = overrides.Port
	}
	if overrides.RunMode != "" {
		config.RunMode = overrides.RunMode
	}
	if overrides.DataDir != "" {
		config.DataDir = overrides.DataDir
	}
	if config.SqlitePath == "" {
		config.SqlitePath = filepath.Join(config.DataDir, sqliteFileName)
	}
	if config.CredentialFile == "" {
		config.CredentialFile = filepath.Join(config.DataDir, credentialFileName)
	}
	config.StoreMode = strings.ToLower(strings.TrimSpace(config.StoreMode))

	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.RunMode {
	case data.RunModeDev, data.RunModeTest, data.RunModeRelease:
	default:
		return errors.Errorf("unknown RUN_MODE %q", c.RunMode)
	}
	switch c.StoreMode {
	case data.StoreModeMemory, data.StoreModeSqlite:
	case data.StoreModePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE_MODE is postgres")
		}
	case data.StoreModeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORE_MODE is redis")
		}
	default:
		return errors.Errorf("unknown STORE_MODE %q", c.StoreMode)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid PORT %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return errors.Errorf("invalid HTTP_TIMEOUT %s", c.HTTPTimeout)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "LOG_LEVEL")
	}
	return nil
}
