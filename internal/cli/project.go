package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/resloader/pkg/cache"
	"github.com/matzehuels/resloader/pkg/config"
	"github.com/matzehuels/resloader/pkg/res"
	"github.com/matzehuels/resloader/pkg/sdk"
)

// project is a loaded configuration with its engine.
type project struct {
	cfg     config.Config
	engine  *res.Engine
	locator *sdk.Locator
	cache   cache.Cache
}

// Close releases the discovery cache.
func (p *project) Close() error {
	return p.cache.Close()
}

// loadConfig reads the configuration. The default file may be missing; an
// explicitly named one may not.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath, c.configPath != config.DefaultFile)
}

// newLocator builds the SDK discovery chain for cfg.
func (c *CLI) newLocator(cfg config.Config, store cache.Cache) *sdk.Locator {
	return &sdk.Locator{
		AppResourceDir: cfg.ResourceDir,
		SDKVersion:     cfg.SDKVersion,
		SDKPath:        cfg.SDKPath,
		Cache:          store,
		Keyer:          cache.NewScopedKeyer(nil, appName+"/"),
		Logger:         c.Logger,
	}
}

// openProject loads the configuration and symbol tables and creates the
// engine. Resources are not loaded until initProject.
func (c *CLI) openProject(ctx context.Context) (*project, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	local, err := res.LoadSymbols(cfg.Symbols, cfg.Package)
	if err != nil {
		return nil, err
	}
	var system *res.SymbolTable
	if cfg.SystemSymbols != "" {
		if system, err = res.LoadSymbols(cfg.SystemSymbols, res.SystemPackage); err != nil {
			return nil, err
		}
	}

	var libs []res.Bundle
	for _, lib := range cfg.Libraries {
		b := res.Bundle{ResourceDir: lib.ResourceDir, AssetsDir: lib.AssetsDir}
		if lib.Symbols != "" {
			pkg := lib.Package
			if pkg == "" {
				pkg = cfg.Package
			}
			if b.Symbols, err = res.LoadSymbols(lib.Symbols, pkg); err != nil {
				return nil, err
			}
		}
		libs = append(libs, b)
	}

	store := c.newCache()
	locator := c.newLocator(cfg, store)
	engine := res.New(local, system, res.Config{
		ResourceDir:      cfg.ResourceDir,
		AssetsDir:        cfg.AssetsDir,
		Libraries:        libs,
		Locator:          locator,
		StrictI18n:       cfg.StrictI18n || c.strictI18n,
		Locale:           cfg.Locale,
		LayoutQualifiers: cfg.LayoutQualifiers,
		Logger:           loggerFromContext(ctx),
	})

	return &project{cfg: cfg, engine: engine, locator: locator, cache: store}, nil
}

// initProject opens the project and loads every bundle behind a spinner.
func (c *CLI) initProject(ctx context.Context) (*project, error) {
	p, err := c.openProject(ctx)
	if err != nil {
		return nil, err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, spinnerOutput(), "Loading resources...")
	spinner.Start()
	err = p.engine.Init(ctx)
	spinner.Stop()
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("load %s: %w", p.cfg.ResourceDir, err)
	}
	prog.step("resources loaded", "ids", p.engine.Index().Len(), "dir", p.cfg.ResourceDir)
	return p, nil
}
