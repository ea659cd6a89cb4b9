package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

type Config struct {
	Level string `mapstructure:"level"`

	Server struct {
		Port               int           `mapstructure:"port"`
		Timeout            time.Duration `mapstructure:"timeout"`
		CORSOriginSuffixes []string      `mapstructure:"cors_origin_suffixes"`
	} `mapstructure:"server"`

	Origin struct {
		LocalFolder    string        `mapstructure:"local_folder"`
		RemoteCDN      string        `mapstructure:"remote_cdn"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	} `mapstructure:"origin"`

	Resize struct {
		Filter string `mapstructure:"filter"`
	} `mapstructure:"resize"`

	Monitoring struct {
		Enabled bool              `mapstructure:"enabled"`
		Bind    string            `mapstructure:"bind"`
		Labels  map[string]string `mapstructure:"labels"`
	} `mapstructure:"monitoring"`
}

func (c *Config) PrometheusLabels() prometheus.Labels {
	labels := prometheus.Labels{}
	for k, v := range c.Monitoring.Labels {
		labels[k] = v
	}

	return labels
}

// Load assembles the configuration from, in ascending precedence, built-in
// defaults, an optional config.toml, IMGRESIZE_ environment variables and
// command line flags. A .env file is read first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pflag.IntP("port", "p", 3000, "port the resize listener binds")
	pflag.StringP("remote-cdn", "r", "", "base URL of the remote origin")
	pflag.StringP("local-folder", "l", "", "directory used as the local origin")
	pflag.StringP("config", "c", "", "path to a config file")
	pflag.String("level", "", "log level (debug, info, warn, error)")
	pflag.Parse()

	err := multierr.Combine(
		viper.BindPFlag("server.port", pflag.Lookup("port")),
		viper.BindPFlag("origin.remote_cdn", pflag.Lookup("remote-cdn")),
		viper.BindPFlag("origin.local_folder", pflag.Lookup("local-folder")),
		viper.BindPFlag("level", pflag.Lookup("level")),
	)
	if err != nil {
		return nil, fmt.Errorf("error binding flags %w", err)
	}

	return read(pflag.Lookup("config").Value.String())
}

func read(configFile string) (*Config, error) {
	viper.SetDefault("level", "info")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("server.cors_origin_suffixes", []string{".remtori.com"})
	viper.SetDefault("origin.local_folder", "")
	viper.SetDefault("origin.remote_cdn", "")
	viper.SetDefault("origin.connect_timeout", "1s")
	viper.SetDefault("resize.filter", "lanczos")
	viper.SetDefault("monitoring.enabled", false)
	viper.SetDefault("monitoring.bind", "0.0.0.0:9100")
	viper.SetDefault("monitoring.labels", map[string]string{})

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	// SetConfigName wipes an explicit file, so this has to come after.
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %w", err)
		}
	}

	viper.SetEnvPrefix("IMGRESIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config %w", err)
	}

	if cfg.Origin.LocalFolder == "" && cfg.Origin.RemoteCDN == "" {
		return nil, errors.New("no origin configured, set origin.local_folder or origin.remote_cdn")
	}

	return &cfg, nil
}
