package storage

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Listing struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"listing"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "./read2me.db"
	cfg.Listing.PageSize = 100
	return cfg
}
