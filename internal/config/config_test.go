package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "zerowidth.yaml", "alphabet: binary\nthreads: 4\nmax_bytes: 123\nprovenance:\n  href: https://example.com\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Alphabet == nil || *cfg.Alphabet != "binary" {
		t.Fatalf("expected alphabet=binary, got %#v", cfg.Alphabet)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.Href() != "https://example.com" {
		t.Fatalf("expected provenance href, got %q", cfg.Href())
	}
	if cfg.FailOn != nil {
		t.Fatalf("unset fields must stay nil")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "bad.yml", "threads: [\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "zerowidth.yaml", "threads: 1\n")
	writeTemp(t, dir, ".zerowidth.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .zerowidth.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "zerowidth")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, cfgDir, "config.yml", "log_level: debug\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level=debug from global config, got %#v", cfg.LogLevel)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error when no global config exists")
	}
}

func TestWriteSample(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", ".zerowidth.yml")
	if err := WriteSample(p, false); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("sample must parse: %v", err)
	}
	if cfg.Alphabet == nil || *cfg.Alphabet != "quad" {
		t.Fatalf("unexpected sample alphabet %#v", cfg.Alphabet)
	}
	if err := WriteSample(p, false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if err := WriteSample(p, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
}
