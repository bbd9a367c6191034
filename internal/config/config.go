package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	DefaultCatalog string       `toml:"default_catalog"`
	Assets         AssetsConfig `toml:"assets"`
	Server         ServerConfig `toml:"server"`

	path string
}

// AssetsConfig holds the script and style URLs referenced by rendered pages
type AssetsConfig struct {
	JQuery       string `toml:"jquery"`
	Filterizr    string `toml:"filterizr"`
	Lightbox     string `toml:"lightbox"`
	LightboxCSS  string `toml:"lightbox_css"`
	Stylesheet   string `toml:"stylesheet"`
	ThumbnailDir string `toml:"thumbnail_dir"`
	// ImageBase prefixes relative thumbnail paths in rendered pages.
	ImageBase    string `toml:"image_base"`
}

// ServerConfig configures the preview server
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration written on first run
func Default() Config {
	return Config{
		DefaultCatalog: "examples",
		Assets: AssetsConfig{
			JQuery:      "https://code.jquery.com/jquery-3.7.1.min.js",
			Filterizr:   "https://cdnjs.cloudflare.com/ajax/libs/filterizr/1.3.5/jquery.filterizr.min.js",
			Lightbox:    "https://cdn.jsdelivr.net/npm/@fancyapps/fancybox@3.5.7/dist/jquery.fancybox.min.js",
			LightboxCSS: "https://cdn.jsdelivr.net/npm/@fancyapps/fancybox@3.5.7/dist/jquery.fancybox.min.css",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Path returns the file the configuration was loaded from
func (c Config) Path() string {
	return c.path
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCatalogLibraryPath returns the path to the catalog library
func GetCatalogLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "showcase", "catalogs")
}

// GetCacheDir returns the showcase cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "showcase")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "showcase", "config.toml")
}

// Load loads the config file at path, creating it with defaults if missing.
// An empty path means GetConfigFilePath.
func Load(path string) (Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	config := Default()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Config{}, fmt.Errorf("error decoding config file: %w", err)
	}
	config.path = path

	return config, nil
}

// createDefault writes the default config to path
func createDefault(path string) (Config, error) {
	config := Default()
	config.path = path
	if err := write(path, config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// WithDefaultCatalog returns a copy of c using name as default catalog and persists it
func (c Config) WithDefaultCatalog(name string) (Config, error) {
	if c.path == "" {
		return Config{}, fmt.Errorf("config was not loaded from a file")
	}
	c.DefaultCatalog = name
	if err := write(c.path, c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func write(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
