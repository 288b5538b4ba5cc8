package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("NPPCFG_CONFIG_HOME", "/tmp/nppcfg-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/nppcfg-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/nppcfg-config")
	}

	t.Setenv("NPPCFG_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/nppcfg" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/nppcfg")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NPPCFG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Paths.SettingsDir != dir {
		t.Fatalf("SettingsDir = %q, want %q", cfg.Paths.SettingsDir, dir)
	}
	if cfg.Limits.UserLangs != 30 {
		t.Fatalf("UserLangs = %d, want 30", cfg.Limits.UserLangs)
	}
	if !cfg.Load.RememberSession {
		t.Fatalf("RememberSession = false, want true")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NPPCFG_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "nppcfg.toml"), `
[paths]
install-dir = "/opt/npp"
theme = "themes/Dark.xml"

[limits]
user-langs = 5
macros = 0

[load]
remember-session = false
debug = true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Paths.InstallDir != "/opt/npp" {
		t.Fatalf("InstallDir = %q, want %q", cfg.Paths.InstallDir, "/opt/npp")
	}
	if cfg.Paths.Theme != "themes/Dark.xml" {
		t.Fatalf("Theme = %q, want %q", cfg.Paths.Theme, "themes/Dark.xml")
	}
	if cfg.Paths.SettingsDir != dir {
		t.Fatalf("SettingsDir = %q, want %q", cfg.Paths.SettingsDir, dir)
	}
	if cfg.Limits.UserLangs != 5 {
		t.Fatalf("UserLangs = %d, want 5", cfg.Limits.UserLangs)
	}
	if cfg.Limits.Macros != 200 {
		t.Fatalf("Macros = %d, want 200", cfg.Limits.Macros)
	}
	if cfg.Load.RememberSession {
		t.Fatalf("RememberSession = true, want false")
	}
	if !cfg.Load.Debug {
		t.Fatalf("Debug = false, want true")
	}
	if len(cfg.Paths.PluginLexers) != 1 {
		t.Fatalf("PluginLexers = %v, want the default", cfg.Paths.PluginLexers)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "[limits\n")
	cfg, err := LoadFile(path)
	if err == nil {
		t.Fatalf("LoadFile error = nil, want parse error")
	}
	if cfg.Limits.LexerStylers != 100 {
		t.Fatalf("LexerStylers = %d, want 100", cfg.Limits.LexerStylers)
	}
}

func TestPluginLexerFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "plugins", "config", "b.xml"), "<NotepadPlus/>")
	writeFile(t, filepath.Join(dir, "plugins", "config", "a.xml"), "<NotepadPlus/>")
	writeFile(t, filepath.Join(dir, "plugins", "config", "notes.txt"), "")

	cfg := Default()
	cfg.Paths.SettingsDir = dir
	cfg.Paths.PluginLexers = append(cfg.Paths.PluginLexers, filepath.Join(dir, "plugins", "config", "a.xml"))
	files, err := cfg.PluginLexerFiles()
	if err != nil {
		t.Fatalf("PluginLexerFiles error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "plugins", "config", "a.xml"),
		filepath.Join(dir, "plugins", "config", "b.xml"),
	}
	if len(files) != len(want) {
		t.Fatalf("PluginLexerFiles = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("PluginLexerFiles[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestInstallPath(t *testing.T) {
	cfg := Default()
	if got := cfg.InstallPath("langs.model.xml"); got != "" {
		t.Fatalf("InstallPath = %q, want empty", got)
	}
	cfg.Paths.InstallDir = "/opt/npp"
	if got := cfg.InstallPath("langs.model.xml"); got != "/opt/npp/langs.model.xml" {
		t.Fatalf("InstallPath = %q, want %q", got, "/opt/npp/langs.model.xml")
	}
}
