package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server  ServerSettings `json:"server"`
	Sources []SourceConfig `json:"sources"`
	Search  SearchSettings `json:"search"`
	Log     LogConfig      `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// SourceConfig describes one upstream video API provider.
// A non-empty Detail base URL means the provider has no structured detail
// endpoint and detail lookups scrape its HTML pages instead.
type SourceConfig struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	API     string `json:"api"`
	Detail  string `json:"detail,omitempty"`
	Enabled bool   `json:"enabled"`
}

type SearchSettings struct {
	MaxPages              int  `json:"maxPages"`
	TimeoutSeconds        int  `json:"timeoutSeconds"`
	DetailTimeoutSeconds  int  `json:"detailTimeoutSeconds"`
	DisableCategoryFilter bool `json:"disableCategoryFilter"`
}

// LogConfig represents file logging configuration (lumberjack rotation).
type LogConfig struct {
	File       string `json:"file"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns the configuration used when no settings file
// exists yet. The source list mirrors the providers the project ships with;
// ffzy carries a Detail base because its API has no usable detail endpoint.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 3210,
		},
		Sources: []SourceConfig{
			{Key: "dyttzy", Name: "电影天堂资源", API: "http://caiji.dyttzyapi.com/api.php/provide/vod", Enabled: true},
			{Key: "ruyi", Name: "如意资源", API: "https://cj.rycjapi.com/api.php/provide/vod", Enabled: true},
			{Key: "bfzy", Name: "暴风资源", API: "https://bfzyapi.com/api.php/provide/vod", Enabled: true},
			{Key: "tyyszy", Name: "天涯资源", API: "https://tyyszy.com/api.php/provide/vod", Enabled: true},
			{Key: "ffzy", Name: "非凡影视", API: "http://ffzy5.tv/api.php/provide/vod", Detail: "http://ffzy5.tv", Enabled: true},
			{Key: "heimuer", Name: "黑木耳", API: "https://json.heimuer.xyz/api.php/provide/vod", Enabled: true},
			{Key: "zy360", Name: "360资源", API: "https://360zy.com/api.php/provide/vod", Enabled: true},
			{Key: "wolong", Name: "卧龙资源", API: "https://wolongzyw.com/api.php/provide/vod", Enabled: true},
			{Key: "jisu", Name: "极速资源", API: "https://jszyapi.com/api.php/provide/vod", Detail: "https://jszyapi.com", Enabled: true},
			{Key: "dbzy", Name: "豆瓣资源", API: "https://dbzy.tv/api.php/provide/vod", Enabled: true},
		},
		Search: SearchSettings{
			MaxPages:             5,
			TimeoutSeconds:       8,
			DetailTimeoutSeconds: 10,
		},
		Log: LogConfig{
			MaxSize:    10,
			MaxAge:     14,
			MaxBackups: 3,
		},
	}
}

// Manager loads and persists Settings from a JSON file.
type Manager struct {
	mu   sync.Mutex
	path string
}

// NewManager creates a settings manager for the given file path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

func (m *Manager) ensureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads the settings file from disk or creates defaults if missing.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return defaults, nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	// Backfill defaults for fields a hand-edited config may omit.
	if s.Search.MaxPages <= 0 {
		s.Search.MaxPages = 5
	}
	if s.Search.TimeoutSeconds <= 0 {
		s.Search.TimeoutSeconds = 8
	}
	if s.Search.DetailTimeoutSeconds <= 0 {
		s.Search.DetailTimeoutSeconds = 10
	}
	if strings.TrimSpace(s.Server.Host) == "" {
		s.Server.Host = "0.0.0.0"
	}
	if s.Server.Port <= 0 {
		s.Server.Port = 3210
	}

	return s, nil
}

// Save writes the settings file atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}
