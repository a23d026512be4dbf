package config

import "time"

type StorageConfig struct {
	// Backend selects the registered object-store implementation:
	// azureblob, s3, or disk.
	Backend string `mapstructure:"backend"`
	// Container is the blob container (or bucket) exported chunks and
	// hash markers are written to.
	Container string `mapstructure:"container"`
	// ConnectionString authenticates the azureblob backend and the
	// search indexer's data source.
	ConnectionString string `mapstructure:"connection_string"`
	// Options carries backend-specific settings (s3 bucket/region,
	// disk path, ...).
	Options map[string]interface{} `mapstructure:"options"`
}

type PostcodesConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	Table            string `mapstructure:"table"`
}

type SearchConfig struct {
	Service    string `mapstructure:"service"`
	AdminKey   string `mapstructure:"admin_key"`
	APIVersion string `mapstructure:"api_version"`
}

type IngestConfig struct {
	SourceURL string        `mapstructure:"source_url"`
	Format    string        `mapstructure:"format"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Postcodes PostcodesConfig `mapstructure:"postcodes"`
	Search    SearchConfig    `mapstructure:"search"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}
