/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration and merges
// read-only environment overrides on top.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides
// at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	DefaultWorkspace string `yaml:"default_workspace"`
}

type EditorConfig struct {
	UndoDepth       int `yaml:"undo_depth"`        // 0 means unlimited
	UndoMaxBytes    int `yaml:"undo_max_bytes"`    // 0 means default cap
	RevisionsToKeep int `yaml:"revisions_to_keep"` // prune target for the revision history
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Editor        EditorConfig  `yaml:"editor"`
	Archive       ArchiveConfig `yaml:"archive"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{},
		Editor:        EditorConfig{UndoDepth: 0, UndoMaxBytes: 0, RevisionsToKeep: 200},
		Archive:       ArchiveConfig{Enabled: false, DSN: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvDefaultWorkspace = "SWR_WORKSPACE"
	EnvUndoDepth        = "SWR_UNDO_DEPTH"
	EnvRevisionsToKeep  = "SWR_REVISIONS_TO_KEEP"
	EnvArchiveEnabled   = "SWR_ARCHIVE_ENABLED"
	EnvArchiveDSN       = "SWR_PG_DSN"
	EnvLogLevel         = "SWR_LOG_LEVEL"
	EnvLogFormat        = "SWR_LOG_FORMAT"
	EnvLogSource        = "SWR_LOG_SOURCE"
	EnvLogFile          = "SWR_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Screenwright")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Screenwright")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "screenwright")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.DefaultWorkspace) != "" {
		dst.General.DefaultWorkspace = strings.TrimSpace(src.General.DefaultWorkspace)
	}
	if src.Editor.UndoDepth != 0 {
		dst.Editor.UndoDepth = src.Editor.UndoDepth
	}
	if src.Editor.UndoMaxBytes != 0 {
		dst.Editor.UndoMaxBytes = src.Editor.UndoMaxBytes
	}
	if src.Editor.RevisionsToKeep != 0 {
		dst.Editor.RevisionsToKeep = src.Editor.RevisionsToKeep
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Archive.Enabled = src.Archive.Enabled
	if strings.TrimSpace(src.Archive.DSN) != "" {
		dst.Archive.DSN = strings.TrimSpace(src.Archive.DSN)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDefaultWorkspace)); v != "" {
		cfg.General.DefaultWorkspace = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUndoDepth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.UndoDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvRevisionsToKeep)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.RevisionsToKeep = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvArchiveEnabled)); v != "" {
		lv := strings.ToLower(v)
		cfg.Archive.Enabled = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvArchiveDSN)); v != "" {
		cfg.Archive.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
