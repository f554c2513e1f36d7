package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withIsolatedEnv points HOME and the working directory at fresh temp dirs
// so config tests never touch the developer's real config files.
func withIsolatedEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	repo := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(repo); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })
}

func TestDefaultConfigConstants(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Identity.MaxShards != 8192 {
		t.Errorf("MaxShards = %d, want 8192", cfg.Identity.MaxShards)
	}
	if cfg.Identity.InlineMaxBytes != 32 {
		t.Errorf("InlineMaxBytes = %d, want 32", cfg.Identity.InlineMaxBytes)
	}
	if cfg.Identity.MaxResolutionHops != 10 {
		t.Errorf("MaxResolutionHops = %d, want 10", cfg.Identity.MaxResolutionHops)
	}
}

func TestLoadConfigWithNoFiles(t *testing.T) {
	withIsolatedEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Identity.MaxShards != DefaultConfig().Identity.MaxShards {
		t.Error("LoadConfig with no files present should fall back to defaults")
	}
}

func TestSetValueAndGetValueRepo(t *testing.T) {
	withIsolatedEnv(t)

	if err := SetValue("user.name", "Ada Lovelace", false); err != nil {
		t.Fatal(err)
	}
	if err := SetValue("user.email", "ada@example.com", false); err != nil {
		t.Fatal(err)
	}

	name, err := GetValue("user.name")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Ada Lovelace" {
		t.Errorf("user.name = %q, want %q", name, "Ada Lovelace")
	}

	if _, err := os.Stat(filepath.Join(".hashstore", "config")); err != nil {
		t.Errorf("expected repo config file to be written: %v", err)
	}
}

func TestSetValueRepoOverridesGlobal(t *testing.T) {
	withIsolatedEnv(t)

	if err := SetValue("storage.data_dir", "global-data", true); err != nil {
		t.Fatal(err)
	}
	if err := SetValue("storage.data_dir", "repo-data", false); err != nil {
		t.Fatal(err)
	}

	got, err := GetValue("storage.data_dir")
	if err != nil {
		t.Fatal(err)
	}
	if got != "repo-data" {
		t.Errorf("storage.data_dir = %q, want %q (repo should win over global)", got, "repo-data")
	}
}

func TestGetAuthorRequiresNameAndEmail(t *testing.T) {
	withIsolatedEnv(t)

	if _, err := GetAuthor(); err == nil {
		t.Error("expected GetAuthor to fail when user.name/email are unset")
	}

	if err := SetValue("user.name", "Ada", true); err != nil {
		t.Fatal(err)
	}
	if err := SetValue("user.email", "ada@example.com", true); err != nil {
		t.Fatal(err)
	}

	author, err := GetAuthor()
	if err != nil {
		t.Fatal(err)
	}
	want := "Ada <ada@example.com>"
	if author != want {
		t.Errorf("GetAuthor() = %q, want %q", author, want)
	}
}

func TestGetValueUnknownKey(t *testing.T) {
	withIsolatedEnv(t)

	if _, err := GetValue("nonsense"); err == nil {
		t.Error("expected an error for a malformed key")
	}
	if _, err := GetValue("user.nonsense"); err == nil {
		t.Error("expected an error for an unknown field")
	}
	if _, err := GetValue("nonsense.field"); err == nil {
		t.Error("expected an error for an unknown section")
	}
}
