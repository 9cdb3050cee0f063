package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/voxa/assets"
	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/pkg/filesystem"
	"github.com/doeshing/voxa/internal/ports"
)

// FileLoader loads YAML configuration from ~/.voxa/config.yaml (overridable via VOXA_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded from the
// embedded defaults so first runs work without manual setup.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path reports where configuration is read from, for diagnostics.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("VOXA_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".voxa", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Audio.ListenTimeoutSec == 0 {
		cfg.Audio.ListenTimeoutSec = 5
	}
	if cfg.Audio.PollIntervalMS == 0 {
		cfg.Audio.PollIntervalMS = 1000
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 256
	}
	if cfg.System.CommandTimeoutSec == 0 {
		cfg.System.CommandTimeoutSec = 30
	}
	if cfg.System.HistoryLimit == 0 {
		cfg.System.HistoryLimit = 100
	}
	if cfg.System.QueueCapacity == 0 {
		cfg.System.QueueCapacity = 100
	}
	if cfg.Privacy.PolicyFile == "" {
		cfg.Privacy.PolicyFile = filepath.Join(filesystem.UserHomeDir(), ".voxa", "policy.yaml")
	} else {
		cfg.Privacy.PolicyFile = expandPath(cfg.Privacy.PolicyFile)
	}
	if cfg.Media.MusicDir != "" {
		cfg.Media.MusicDir = expandPath(cfg.Media.MusicDir)
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
