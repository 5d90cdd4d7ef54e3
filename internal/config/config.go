package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Game struct {
		QuitWord   string `yaml:"quit_word"`
		MinPlayers int    `yaml:"min_players"`
		MaxPlayers int    `yaml:"max_players"`
		Questions  string `yaml:"questions"`
	} `yaml:"game"`
	Report struct {
		Format string `yaml:"format"`
		Dir    string `yaml:"dir"`
		Locale string `yaml:"locale"`
	} `yaml:"report"`
	Audit struct {
		CSVDir     string `yaml:"csv_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"audit"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Watch struct {
		Addr string `yaml:"addr"`
	} `yaml:"watch"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOptional is Load for commands that can run on defaults: a missing
// file yields a zero Config and no error.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	return cfg, err
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
