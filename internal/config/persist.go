package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fstree/internal/domain"
)

const (
	configDirName  = "fstree"
	configFileName = "config.json"
)

var themes = map[string]bool{"dark": true, "light": true}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func DefaultConfig() Config {
	return Config{
		Theme:    "dark",
		SortMode: domain.SortBySize,
		LogLevel: "info",
		Color:    false,
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

func LoadConfig() (Config, error) {
	config := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("read config %s: %w", path, err)
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	return mergeConfig(config, stored), nil
}

func SaveConfig(config Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SlogLevel maps LogLevel onto slog, falling back to info.
func (config Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(config.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.Theme != nil && themes[strings.ToLower(*stored.Theme)] {
		merged.Theme = strings.ToLower(*stored.Theme)
	}
	if stored.SortMode != nil {
		merged.SortMode = domainSortMode(*stored.SortMode, base.SortMode)
	}
	if stored.LogLevel != nil {
		if _, ok := logLevels[strings.ToLower(*stored.LogLevel)]; ok {
			merged.LogLevel = strings.ToLower(*stored.LogLevel)
		}
	}
	if stored.Color != nil {
		merged.Color = *stored.Color
	}
	return merged
}

func domainSortMode(value string, fallback domain.SortMode) domain.SortMode {
	if domain.ValidSortMode(value) {
		return domain.SortMode(value)
	}
	return fallback
}
