// Package cli implements the resloader command-line interface.
//
// The CLI loads a project's resources with the engine in [res] and lets the
// user query them:
//
//   - resolve, string, plural, array, color: look up value resources
//   - layout, menu, prefs: inflate documents and print their trees
//   - raw: copy a raw resource to stdout or a file
//   - list, browse: enumerate loaded resources, or pick a layout
//     interactively
//   - export: write a SQLite snapshot of every value resource
//   - sdk: show how the platform resources were discovered
//   - cache: manage the discovery cache
//
// The project is described by resloader.toml (see [config]). All commands
// support --verbose (-v) for debug-level logging; the logger travels in the
// command context.
//
// [res]: github.com/matzehuels/resloader/pkg/res
// [config]: github.com/matzehuels/resloader/pkg/config
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/buildinfo"
	"github.com/matzehuels/resloader/pkg/cache"
	"github.com/matzehuels/resloader/pkg/config"
	"github.com/matzehuels/resloader/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "resloader"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	strictI18n bool
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the load,
// discovery and cache hooks log through the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Resloader loads and resolves Android application resources",
		Long:         `Resloader reads an application's res/ tree, its libraries and the platform resources of an installed SDK, and resolves resource ids the way the runtime would.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "project configuration file")
	root.PersistentFlags().BoolVar(&c.strictI18n, "strict-i18n", false, "reject literal text in layouts, menus and preferences")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not read or write the SDK discovery cache")

	// Register all subcommands
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.stringCommand())
	root.AddCommand(c.pluralCommand())
	root.AddCommand(c.arrayCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.menuCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.rawCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.sdkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache
// =============================================================================

func (c *CLI) newCache() cache.Cache {
	if c.noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/resloader/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
