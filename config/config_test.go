package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	settings, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(settings.Sources) == 0 {
		t.Fatal("expected default sources")
	}
	if settings.Search.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want 5", settings.Search.MaxPages)
	}
	if settings.Search.TimeoutSeconds != 8 || settings.Search.DetailTimeoutSeconds != 10 {
		t.Errorf("timeouts = %d/%d, want 8/10", settings.Search.TimeoutSeconds, settings.Search.DetailTimeoutSeconds)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	settings := DefaultSettings()
	settings.Server.Port = 9999
	settings.Sources = []SourceConfig{
		{Key: "one", Name: "One", API: "http://one.test/api.php/provide/vod", Enabled: true},
	}
	if err := m.Save(settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("Port = %d, want 9999", loaded.Server.Port)
	}
	if len(loaded.Sources) != 1 || loaded.Sources[0].Key != "one" {
		t.Errorf("unexpected sources: %+v", loaded.Sources)
	}
}

func TestLoadBackfillsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	partial := `{"sources":[{"key":"x","name":"X","api":"http://x.test","enabled":true}]}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	settings, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Search.MaxPages != 5 {
		t.Errorf("MaxPages = %d, want backfilled 5", settings.Search.MaxPages)
	}
	if settings.Server.Port != 3210 {
		t.Errorf("Port = %d, want backfilled 3210", settings.Server.Port)
	}
	if settings.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want backfilled 0.0.0.0", settings.Server.Host)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write bad config: %v", err)
	}
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestManagerWithoutPath(t *testing.T) {
	m := NewManager("")
	if _, err := m.Load(); err == nil {
		t.Fatal("expected error when path is unset")
	}
	if err := m.Save(DefaultSettings()); err == nil {
		t.Fatal("expected error when path is unset")
	}
}
