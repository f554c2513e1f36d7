// Package config loads and saves the ambient settings that tune the
// identity core and its storage backends, layering a global file over a
// per-repository one.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1nfdev/hashstore-go/internal/cake"
)

// Config is the full set of ambient, overridable settings.
type Config struct {
	User     UserConfig     `json:"user"`
	Identity IdentityConfig `json:"identity"`
	Storage  StorageConfig  `json:"storage"`
}

// UserConfig identifies the caller recorded against portal history
// entries.
type UserConfig struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IdentityConfig mirrors the Cake/ContentAddress algebra's constants. These
// default to the core's built-in values and can be read and set through
// GetValue/SetValue; the core and storage packages use their own package
// constants and do not read these fields.
type IdentityConfig struct {
	MaxShards         int `json:"max_shards"`
	InlineMaxBytes    int `json:"inline_max_bytes"`
	ChunkSize         int `json:"chunk_size"`
	MaxResolutionHops int `json:"max_resolution_hops"`
}

// StorageConfig points at the on-disk blob and portal stores.
type StorageConfig struct {
	DataDir  string `json:"data_dir"`
	Compress bool   `json:"compress"`
}

// DefaultConfig returns a Config with the core's built-in constants and an
// unconfigured user.
func DefaultConfig() *Config {
	return &Config{
		User: UserConfig{},
		Identity: IdentityConfig{
			MaxShards:         cake.MaxShards,
			InlineMaxBytes:    cake.InlineMaxBytes,
			ChunkSize:         cake.DefaultChunkSize,
			MaxResolutionHops: 10,
		},
		Storage: StorageConfig{
			DataDir:  ".hashstore",
			Compress: true,
		},
	}
}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, ".hashstoreconfig"), nil
}

func repoConfigPath() string {
	return filepath.Join(".hashstore", "config")
}

// LoadConfig reads the global config file, then overlays the repository
// config file on top of it (repo settings win). Missing or malformed files
// are silently skipped in favor of defaults.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if globalPath, err := globalConfigPath(); err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			var globalCfg Config
			if err := json.Unmarshal(data, &globalCfg); err == nil {
				mergeConfig(cfg, &globalCfg)
			}
		}
	}

	if data, err := os.ReadFile(repoConfigPath()); err == nil {
		var repoCfg Config
		if err := json.Unmarshal(data, &repoCfg); err == nil {
			mergeConfig(cfg, &repoCfg)
		}
	}

	return cfg, nil
}

// SaveGlobalConfig writes cfg to the user's global config file.
func SaveGlobalConfig(cfg *Config) error {
	globalPath, err := globalConfigPath()
	if err != nil {
		return err
	}
	return writeJSON(globalPath, cfg)
}

// SaveRepoConfig writes cfg to the repository's config file, creating its
// containing directory if needed.
func SaveRepoConfig(cfg *Config) error {
	repoPath := repoConfigPath()
	if err := os.MkdirAll(filepath.Dir(repoPath), 0755); err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Dir(repoPath), err)
	}
	return writeJSON(repoPath, cfg)
}

func writeJSON(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// GetValue retrieves a configuration value by dotted "section.field" key,
// e.g. "user.name" or "storage.data_dir".
func GetValue(key string) (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}

	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "user":
		switch field {
		case "name":
			return cfg.User.Name, nil
		case "email":
			return cfg.User.Email, nil
		default:
			return "", fmt.Errorf("unknown user config field: %s", field)
		}
	case "identity":
		switch field {
		case "max_shards":
			return fmt.Sprintf("%d", cfg.Identity.MaxShards), nil
		case "inline_max_bytes":
			return fmt.Sprintf("%d", cfg.Identity.InlineMaxBytes), nil
		case "chunk_size":
			return fmt.Sprintf("%d", cfg.Identity.ChunkSize), nil
		case "max_resolution_hops":
			return fmt.Sprintf("%d", cfg.Identity.MaxResolutionHops), nil
		default:
			return "", fmt.Errorf("unknown identity config field: %s", field)
		}
	case "storage":
		switch field {
		case "data_dir":
			return cfg.Storage.DataDir, nil
		case "compress":
			return fmt.Sprintf("%t", cfg.Storage.Compress), nil
		default:
			return "", fmt.Errorf("unknown storage config field: %s", field)
		}
	default:
		return "", fmt.Errorf("unknown config section: %s", section)
	}
}

// SetValue sets a configuration value by dotted "section.field" key and
// persists it to either the global or repository config file.
func SetValue(key, value string, global bool) error {
	var cfg *Config

	if global {
		globalPath, _ := globalConfigPath()
		if data, err := os.ReadFile(globalPath); err == nil {
			cfg = &Config{}
			if err := json.Unmarshal(data, cfg); err != nil {
				cfg = DefaultConfig()
			}
		} else {
			cfg = DefaultConfig()
		}
	} else {
		if data, err := os.ReadFile(repoConfigPath()); err == nil {
			cfg = &Config{}
			if err := json.Unmarshal(data, cfg); err != nil {
				cfg = DefaultConfig()
			}
		} else {
			cfg = DefaultConfig()
		}
	}

	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "user":
		switch field {
		case "name":
			cfg.User.Name = value
		case "email":
			cfg.User.Email = value
		default:
			return fmt.Errorf("unknown user config field: %s", field)
		}
	case "identity":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("invalid integer value %q for %s: %w", value, key, err)
		}
		switch field {
		case "max_shards":
			cfg.Identity.MaxShards = n
		case "inline_max_bytes":
			cfg.Identity.InlineMaxBytes = n
		case "chunk_size":
			cfg.Identity.ChunkSize = n
		case "max_resolution_hops":
			cfg.Identity.MaxResolutionHops = n
		default:
			return fmt.Errorf("unknown identity config field: %s", field)
		}
	case "storage":
		switch field {
		case "data_dir":
			cfg.Storage.DataDir = value
		case "compress":
			cfg.Storage.Compress = value == "true"
		default:
			return fmt.Errorf("unknown storage config field: %s", field)
		}
	default:
		return fmt.Errorf("unknown config section: %s", section)
	}

	if global {
		return SaveGlobalConfig(cfg)
	}
	return SaveRepoConfig(cfg)
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid config key: %s (expected format: section.field)", key)
	}
	return parts[0], parts[1], nil
}

// GetAuthor returns the formatted author string "Name <email>".
func GetAuthor() (string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return "", fmt.Errorf("user.name and user.email not configured")
	}
	return fmt.Sprintf("%s <%s>", cfg.User.Name, cfg.User.Email), nil
}

// mergeConfig overlays non-zero fields of src onto dst. String fields merge
// only when non-empty and numeric fields only when non-zero; the bool field
// always merges, since a bool has no "unset" state to distinguish from a
// deliberate false.
func mergeConfig(dst, src *Config) {
	if src.User.Name != "" {
		dst.User.Name = src.User.Name
	}
	if src.User.Email != "" {
		dst.User.Email = src.User.Email
	}
	if src.Identity.MaxShards != 0 {
		dst.Identity.MaxShards = src.Identity.MaxShards
	}
	if src.Identity.InlineMaxBytes != 0 {
		dst.Identity.InlineMaxBytes = src.Identity.InlineMaxBytes
	}
	if src.Identity.ChunkSize != 0 {
		dst.Identity.ChunkSize = src.Identity.ChunkSize
	}
	if src.Identity.MaxResolutionHops != 0 {
		dst.Identity.MaxResolutionHops = src.Identity.MaxResolutionHops
	}
	if src.Storage.DataDir != "" {
		dst.Storage.DataDir = src.Storage.DataDir
	}
	dst.Storage.Compress = src.Storage.Compress
}
