package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultSourceURL = "https://download.inep.gov.br/microdados/microdados_enem_2017.zip"

type Config struct {
	DataDir   string `mapstructure:"data_dir"`
	SourceURL string `mapstructure:"source_url"`

	DBDriver string `mapstructure:"db_driver"` // sqlite|postgres
	DBDSN    string `mapstructure:"db_dsn"`

	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms"`

	Workers int `mapstructure:"workers"`
}

// Load reads the optional YAML config file plus environment overrides
// (ENEM_DATA_DIR, ENEM_DB_DRIVER, ...). Flags bound by the CLI take
// precedence over both.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("source_url", defaultSourceURL)
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("retry_max_attempts", 5)
	v.SetDefault("retry_base_delay_ms", 1000)
	v.SetDefault("retry_max_delay_ms", 30000)
	v.SetDefault("workers", 0) // 0 = GOMAXPROCS

	v.SetEnvPrefix("ENEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("enem-pipeline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func (c *Config) HTTPTimeout() time.Duration { return time.Duration(c.HTTPTimeoutSec) * time.Second }
func (c *Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMs) * time.Millisecond
}
func (c *Config) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMs) * time.Millisecond
}

// Directory layout under DataDir, mirroring the raw/processed split of
// the source project.

func (c *Config) RawDir() string  { return filepath.Join(c.DataDir, "raw", "microdados_enem_2017") }
func (c *Config) ZipPath() string { return filepath.Join(c.RawDir(), "microdados_enem_2017.zip") }
func (c *Config) CSVPath() string {
	return filepath.Join(c.RawDir(), "DADOS", "MICRODADOS_ENEM_2017.csv")
}
