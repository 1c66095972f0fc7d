package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

// Config is the top-level gamedock configuration.
type Config struct {
	Library   LibraryConfig   `mapstructure:"library" yaml:"library"`
	Sort      SortConfig      `mapstructure:"sort" yaml:"sort"`
	Alias     AliasConfig     `mapstructure:"alias" yaml:"alias"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search"`
	Articles  []string        `mapstructure:"articles" yaml:"articles"`
	Platforms PlatformsConfig `mapstructure:"platforms" yaml:"platforms"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// LibraryConfig locates the persisted library.
type LibraryConfig struct {
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	GamesFile  string `mapstructure:"games_file" yaml:"games_file"`
	SearchFile string `mapstructure:"search_file" yaml:"search_file"`
}

// SortConfig holds the active sort method and tie-break preferences.
type SortConfig struct {
	Method          string `mapstructure:"method" yaml:"method"` // alpha, date, frequency, rating
	FavouritesFirst bool   `mapstructure:"favourites_first" yaml:"favourites_first"`
	InstalledFirst  bool   `mapstructure:"installed_first" yaml:"installed_first"`
	IgnoreArticle   bool   `mapstructure:"ignore_article" yaml:"ignore_article"`
}

// AliasConfig controls generated aliases.
type AliasConfig struct {
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`
}

// SearchConfig controls the match engine.
type SearchConfig struct {
	MaxResults int `mapstructure:"max_results" yaml:"max_results"` // 0 = unlimited
}

// PlatformsConfig says which clients to scan and where their data lives.
type PlatformsConfig struct {
	Enabled      []string `mapstructure:"enabled" yaml:"enabled"` // empty = all
	SteamRoot    string   `mapstructure:"steam_root" yaml:"steam_root"`
	LegendaryDir string   `mapstructure:"legendary_dir" yaml:"legendary_dir"`
	HeroicDir    string   `mapstructure:"heroic_dir" yaml:"heroic_dir"`
	ItchDB       string   `mapstructure:"itch_db" yaml:"itch_db"`
	CustomDir    string   `mapstructure:"custom_dir" yaml:"custom_dir"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text or json
	File   string `mapstructure:"file" yaml:"file"`
}

// GamesPath returns the full path of the library file.
func (c *Config) GamesPath() string {
	return c.inDataDir(c.Library.GamesFile, "games.yml")
}

// SearchPath returns the full path of the last-search file.
func (c *Config) SearchPath() string {
	return c.inDataDir(c.Library.SearchFile, "search.yml")
}

// LogPath returns the log file, defaulting to gamedock.log in the data dir.
func (c *Config) LogPath() string {
	return c.inDataDir(c.Log.File, "gamedock.log")
}

func (c *Config) inDataDir(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Library.DataDir, name)
}

// SortOptions converts the sort section. An unknown method falls back to
// alphabetic and is reported through the error.
func (c *Config) SortOptions() (catalog.SortOptions, error) {
	m, err := catalog.ParseSortMethod(c.Sort.Method)
	return catalog.SortOptions{
		Method:        m,
		FaveSort:      c.Sort.FavouritesFirst,
		InstSort:      c.Sort.InstalledFirst,
		IgnoreArticle: c.Sort.IgnoreArticle,
		Articles:      c.ArticleList(),
	}, err
}

// ArticleList returns the configured articles, or the defaults when unset.
func (c *Config) ArticleList() []string {
	if len(c.Articles) == 0 {
		return catalog.DefaultArticles
	}
	return c.Articles
}

// PlatformEnabled reports whether the scanner with this key should run.
func (c *Config) PlatformEnabled(key string) bool {
	if len(c.Platforms.Enabled) == 0 {
		return true
	}
	return slices.ContainsFunc(c.Platforms.Enabled, func(e string) bool {
		return strings.EqualFold(strings.TrimSpace(e), key)
	})
}
