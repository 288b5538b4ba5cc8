package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/kobzarvs/nppcfg/internal/app"
	"github.com/kobzarvs/nppcfg/internal/config"
	"github.com/kobzarvs/nppcfg/internal/keys"
	"github.com/kobzarvs/nppcfg/internal/logger"
	"github.com/kobzarvs/nppcfg/internal/store"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nppcfg:", err)
		os.Exit(1)
	}
}

var (
	flagConfig   string
	flagSettings string
	flagDebug    bool
	flagRecover  bool
	flagFormat   string
)

var errCheckFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:   "nppcfg",
	Short: "Inspect and edit editor settings documents",
	Long: `nppcfg loads the editor's XML settings documents (languages, styles,
user-defined languages, shortcuts, session) and reports what it found.

Examples:
  nppcfg                          # Load and print per-document status
  nppcfg check                    # Status plus shortcut conflicts
  nppcfg dump shortcuts -f yaml   # Dump one table
  nppcfg remap 41006 Ctrl+Shift+S # Rebind a menu command
  nppcfg keys                     # Look up what a key chord does
  nppcfg watch                    # Reload on every change`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(a *app.App, s *store.Store) error {
			if err := app.Dump(cmd.OutOrStdout(), s, "status", flagFormat); err != nil {
				return err
			}
			if a.Config().Load.Watch {
				return watchLoop(cmd, s)
			}
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report document failures and conflicting shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			out := cmd.OutOrStdout()
			if err := app.Dump(out, s, "status", flagFormat); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := app.Dump(out, s, "conflicts", flagFormat); err != nil {
				return err
			}
			failed := 0
			for _, st := range s.Status() {
				if st.Err != nil && !st.Missing {
					failed++
				}
			}
			if conflicts := len(s.Shortcuts().FindConflicts()); failed > 0 || conflicts > 0 {
				return fmt.Errorf("%w: %d document(s) failed, %d conflict(s)", errCheckFailed, failed, conflicts)
			}
			return nil
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <table>",
	Short: "Print one settings table",
	Long:  "Print one settings table. Tables: " + strings.Join(app.Tables(), ", "),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			return app.Dump(cmd.OutOrStdout(), s, args[0], flagFormat)
		})
	},
}

var importUDLCmd = &cobra.Command{
	Use:   "import-udl <file>",
	Short: "Import user-defined languages from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			n, err := s.ImportUDL(args[0])
			if n > 0 {
				if serr := s.SaveUserLangs(); serr != nil {
					return serr
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d language(s)\n", n)
			return err
		})
	},
}

var exportUDLCmd = &cobra.Command{
	Use:   "export-udl <name> <file>",
	Short: "Export one user-defined language to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			return s.ExportUDL(args[0], args[1])
		})
	},
}

var remapCmd = &cobra.Command{
	Use:   "remap <command-id> <keys>",
	Short: "Bind a menu command to a key chord and save shortcuts.xml",
	Long: `Bind a menu command to a key chord and save shortcuts.xml.

Keys are written as modifiers and a key name joined by '+', e.g. Ctrl+Shift+S,
Alt+F4 or Ctrl+DEL. An empty string removes the binding.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("command id %q: %w", args[0], err)
		}
		combo, err := keys.Parse(args[1])
		if err != nil {
			return err
		}
		return run(func(_ *app.App, s *store.Store) error {
			if err := s.Remap(id, combo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d -> %s\n", id, combo)
			return nil
		})
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme <file>",
	Short: "Switch the stylers document and record it in config.xml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		return run(func(_ *app.App, s *store.Store) error {
			return s.ReloadStylers(path)
		})
	},
}

var tabCmd = &cobra.Command{
	Use:   "set-tab <language> <settings>",
	Short: "Record tab settings for a built-in language in langs.xml",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("tab settings %q: %w", args[1], err)
		}
		return run(func(_ *app.App, s *store.Store) error {
			return s.SetTabSettings(args[0], v)
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the settings whenever a document changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			return watchLoop(cmd, s)
		})
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show which commands a pressed key chord is bound to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(_ *app.App, s *store.Store) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			app.Keys(screen, s)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Engine config file (default <config dir>/nppcfg.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagSettings, "settings-dir", "s", "", "Settings directory, overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagRecover, "recover", false, "Restore damaged documents from the install directory")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", app.FormatText, "Output format (text/yaml)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(importUDLCmd)
	rootCmd.AddCommand(exportUDLCmd)
	rootCmd.AddCommand(remapCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(tabCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(keysCmd)
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if flagSettings != "" {
		cfg.Paths.SettingsDir = flagSettings
	}
	return cfg, nil
}

func run(fn func(*app.App, *store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(flagDebug || cfg.Load.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "nppcfg: logging disabled:", err)
	}
	defer logger.Close()

	var opts []store.Option
	if flagRecover {
		opts = append(opts, store.WithPrompter(recoverPrompter{}))
	}
	a := app.New(cfg, opts...)
	return a.Run(func(s *store.Store) error {
		return fn(a, s)
	})
}

type recoverPrompter struct{}

func (recoverPrompter) Prompt(doc string, err error) bool {
	fmt.Fprintf(os.Stderr, "%s: %v; restoring from the install directory\n", doc, err)
	return true
}

func watchLoop(cmd *cobra.Command, s *store.Store) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "watching", s.Config().Paths.SettingsDir)
	return app.Watch(ctx, s, func(doc string, err error) {
		if err != nil {
			fmt.Fprintf(out, "%s changed, reloaded with errors: %v\n", doc, err)
			return
		}
		fmt.Fprintf(out, "%s changed, reloaded\n", doc)
	})
}
