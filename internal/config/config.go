// Package config reads nppcfg.toml, the engine's own settings: where the
// settings documents live, table bounds and load behavior.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

type Paths struct {
	SettingsDir  string   `toml:"settings-dir"`
	InstallDir   string   `toml:"install-dir"`
	Theme        string   `toml:"theme"`
	PluginLexers []string `toml:"plugin-lexers"`
}

type Limits struct {
	LexerStylers   int `toml:"lexer-stylers"`
	StylesPerArray int `toml:"styles-per-array"`
	UserLangs      int `toml:"user-langs"`
	ImportedUDL    int `toml:"imported-udl"`
	Macros         int `toml:"macros"`
	UserCommands   int `toml:"user-commands"`
	PluginCommands int `toml:"plugin-commands"`
}

type LoadOptions struct {
	RememberSession bool `toml:"remember-session"`
	Debug           bool `toml:"debug"`
	Watch           bool `toml:"watch"`
}

type Config struct {
	Paths  Paths       `toml:"paths"`
	Limits Limits      `toml:"limits"`
	Load   LoadOptions `toml:"load"`
}

func Default() Config {
	return Config{
		Paths: Paths{
			PluginLexers: []string{filepath.Join("plugins", "config", "*.xml")},
		},
		Limits: Limits{
			LexerStylers:   100,
			StylesPerArray: 64,
			UserLangs:      30,
			ImportedUDL:    50,
			Macros:         200,
			UserCommands:   200,
			PluginCommands: 500,
		},
		Load: LoadOptions{
			RememberSession: true,
		},
	}
}

// Load reads nppcfg.toml from ConfigDir. A missing file yields the defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile overlays the file at path onto Default. Keys the file does not
// set keep their default. An empty settings-dir resolves to ConfigDir.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return resolve(cfg), nil
		}
		return resolve(cfg), err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return resolve(cfg), err
	}

	if userCfg.Paths.SettingsDir != "" {
		cfg.Paths.SettingsDir = userCfg.Paths.SettingsDir
	}
	if userCfg.Paths.InstallDir != "" {
		cfg.Paths.InstallDir = userCfg.Paths.InstallDir
	}
	if userCfg.Paths.Theme != "" {
		cfg.Paths.Theme = userCfg.Paths.Theme
	}
	if md.IsDefined("paths", "plugin-lexers") {
		cfg.Paths.PluginLexers = userCfg.Paths.PluginLexers
	}

	overlayInt(&cfg.Limits.LexerStylers, userCfg.Limits.LexerStylers)
	overlayInt(&cfg.Limits.StylesPerArray, userCfg.Limits.StylesPerArray)
	overlayInt(&cfg.Limits.UserLangs, userCfg.Limits.UserLangs)
	overlayInt(&cfg.Limits.ImportedUDL, userCfg.Limits.ImportedUDL)
	overlayInt(&cfg.Limits.Macros, userCfg.Limits.Macros)
	overlayInt(&cfg.Limits.UserCommands, userCfg.Limits.UserCommands)
	overlayInt(&cfg.Limits.PluginCommands, userCfg.Limits.PluginCommands)

	if md.IsDefined("load", "remember-session") {
		cfg.Load.RememberSession = userCfg.Load.RememberSession
	}
	if md.IsDefined("load", "debug") {
		cfg.Load.Debug = userCfg.Load.Debug
	}
	if md.IsDefined("load", "watch") {
		cfg.Load.Watch = userCfg.Load.Watch
	}

	return resolve(cfg), nil
}

func overlayInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func resolve(cfg Config) Config {
	if cfg.Paths.SettingsDir == "" {
		cfg.Paths.SettingsDir, _ = ConfigDir()
	}
	return cfg
}

// SettingsPath joins name onto the settings directory.
func (c Config) SettingsPath(name string) string {
	return filepath.Join(c.Paths.SettingsDir, name)
}

// InstallPath joins name onto the install directory, or returns "" when
// no install directory is configured.
func (c Config) InstallPath(name string) string {
	if c.Paths.InstallDir == "" {
		return ""
	}
	return filepath.Join(c.Paths.InstallDir, name)
}

// PluginLexerFiles expands the plugin-lexers globs, relative ones against
// the settings directory, into a sorted list without duplicates.
func (c Config) PluginLexerFiles() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range c.Paths.PluginLexers {
		if !filepath.IsAbs(pattern) {
			pattern = c.SettingsPath(pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("NPPCFG_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "nppcfg"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nppcfg"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nppcfg.toml"), nil
}
