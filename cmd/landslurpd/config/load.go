package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("landslurpd")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/landslurpd/")
	}

	viper.SetEnvPrefix("LANDSLURPD") // env vars like LANDSLURPD_STORAGE__CONTAINER
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))

	viper.BindEnv("storage.backend")
	viper.BindEnv("storage.container")
	viper.BindEnv("storage.connection_string")
	viper.BindEnv("postcodes.connection_string")
	viper.BindEnv("postcodes.table")
	viper.BindEnv("search.service")
	viper.BindEnv("search.admin_key")
	viper.BindEnv("ingest.source_url")
	viper.BindEnv("ingest.format")
	viper.BindEnv("ingest.interval")
	viper.BindEnv("metrics.listen_addr")

	viper.SetDefault("storage.backend", "azureblob")
	viper.SetDefault("storage.container", "properties")
	viper.SetDefault("postcodes.table", "postcodes")
	viper.SetDefault("ingest.format", "csv")
	viper.SetDefault("ingest.interval", 7*24*time.Hour)

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional when everything comes from env.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Storage.Options == nil {
		cfg.Storage.Options = make(map[string]interface{})
	}
	// The azureblob backend and the search data source share the
	// storage connection string.
	if cfg.Storage.ConnectionString != "" {
		cfg.Storage.Options["connection_string"] = cfg.Storage.ConnectionString
	}
	if cfg.Storage.Container != "" {
		cfg.Storage.Options["container"] = cfg.Storage.Container
	}
	// The postcode table usually lives in the same storage account.
	if cfg.Postcodes.ConnectionString == "" {
		cfg.Postcodes.ConnectionString = cfg.Storage.ConnectionString
	}

	return &cfg, nil
}
