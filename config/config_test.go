package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.Theme != "dark" || cfg.PageSize != 2000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, filename), []byte("{not json"), 0o644)
	cfg := Load(dir)
	if cfg.Theme != "dark" || cfg.PageSize != 2000 {
		t.Errorf("corrupt file must yield defaults, got %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested") // Save must create it
	want := Config{Theme: "light", BackendURL: "http://localhost:9000", PageSize: 500}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := Load(dir)
	if got != want {
		t.Errorf("round trip: want %+v, got %+v", want, got)
	}
}

func TestLoad_NonPositivePageSizeFallsBack(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, filename), []byte(`{"theme":"light","page_size":-5}`), 0o644)
	cfg := Load(dir)
	if cfg.PageSize != 2000 {
		t.Errorf("want default page size, got %d", cfg.PageSize)
	}
	if cfg.Theme != "light" {
		t.Errorf("valid fields must survive, got %+v", cfg)
	}
}
