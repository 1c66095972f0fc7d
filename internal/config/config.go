package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the config file path, honouring GAMEDOCK_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("GAMEDOCK_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gamedock", "config.yml")
}

// Load reads the config from the default path (or env). A missing file
// yields the built-in defaults.
func Load() (*Config, error) {
	return LoadFile(DefaultPath())
}

// LoadFile reads the config at path, layering GAMEDOCK_* env vars and
// defaults underneath.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("library.data_dir", defaultDataDir())
	v.SetDefault("library.games_file", "games.yml")
	v.SetDefault("library.search_file", "search.yml")
	v.SetDefault("sort.method", "alpha")
	v.SetDefault("sort.favourites_first", true)
	v.SetDefault("sort.installed_first", true)
	v.SetDefault("sort.ignore_article", true)
	v.SetDefault("alias.max_length", 12)
	v.SetDefault("search.max_results", 0)
	v.SetDefault("articles", []string{"The", "A", "An"})
	v.SetDefault("platforms.enabled", []string{})
	v.SetDefault("platforms.steam_root", "~/.local/share/Steam")
	v.SetDefault("platforms.legendary_dir", "~/.config/legendary")
	v.SetDefault("platforms.heroic_dir", "~/.config/heroic")
	v.SetDefault("platforms.itch_db", "~/.config/itch/db/butler.db")
	v.SetDefault("platforms.custom_dir", filepath.Join(defaultDataDir(), "custom"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("GAMEDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Library.DataDir = ExpandHome(cfg.Library.DataDir)
	cfg.Platforms.SteamRoot = ExpandHome(cfg.Platforms.SteamRoot)
	cfg.Platforms.LegendaryDir = ExpandHome(cfg.Platforms.LegendaryDir)
	cfg.Platforms.HeroicDir = ExpandHome(cfg.Platforms.HeroicDir)
	cfg.Platforms.ItchDB = ExpandHome(cfg.Platforms.ItchDB)
	cfg.Platforms.CustomDir = ExpandHome(cfg.Platforms.CustomDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// SaveTo writes the config as YAML to path.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "gamedock")
}
