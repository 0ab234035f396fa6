// Package config handles loading tdo.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/eklerner/tdo/internal/paths"
)

// DefaultServerURL is used when no config file or environment variable
// names a server.
const DefaultServerURL = "http://127.0.0.1:8000/api"

// Config represents the tdo.toml configuration file.
type Config struct {
	Server Server `toml:"server"`
	UI     UI     `toml:"ui"`
}

// Server contains connection configuration.
type Server struct {
	// URL is the base URL of the todo service.
	URL string `toml:"url"`
}

// UI contains terminal output configuration.
type UI struct {
	// PriorityColors toggles colored priority badges in listings.
	PriorityColors bool `toml:"priority-colors"`
}

// Load loads configuration from the working directory and the global config
// file. Project settings win over global ones. Returns defaults if no
// config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "tdo.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

// ServerURL resolves the service base URL: the TDO_SERVER_URL environment
// variable wins, then the config file, then the default.
func (c *Config) ServerURL() string {
	if env := strings.TrimSpace(os.Getenv("TDO_SERVER_URL")); env != "" {
		return env
	}
	if c.Server.URL != "" {
		return c.Server.URL
	}
	return DefaultServerURL
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Server.URL = mergeString(projectMeta.IsDefined("server", "url"), projectCfg.Server.URL, globalCfg.Server.URL)
	if projectMeta.IsDefined("ui", "priority-colors") {
		merged.UI.PriorityColors = projectCfg.UI.PriorityColors
	} else if globalMeta.IsDefined("ui", "priority-colors") {
		merged.UI.PriorityColors = globalCfg.UI.PriorityColors
	} else {
		merged.UI.PriorityColors = true
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
