// Package config loads the project configuration: a resloader.toml file
// decoded with BurntSushi/toml, overridden by RESLOADER_* environment
// variables.
//
//	resource_dir   = "res"
//	assets_dir     = "assets"
//	package        = "com.example.app"
//	symbols        = "R.txt"
//	system_symbols = "android-R.txt"
//	sdk_version    = 10
//	strict_i18n    = false
//	locale         = "en"
//
//	[[library]]
//	resource_dir = "../lib/res"
//	symbols      = "../lib/R.txt"
//	package      = "com.example.lib"
//
// Relative paths are resolved against the directory of the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/resloader/pkg/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "resloader.toml"

// Library is one library bundle.
type Library struct {
	ResourceDir string `toml:"resource_dir"`
	AssetsDir   string `toml:"assets_dir"`
	Symbols     string `toml:"symbols"`
	Package     string `toml:"package"`
}

// Config is the project configuration.
type Config struct {
	ResourceDir      string    `toml:"resource_dir" env:"RESLOADER_RESOURCE_DIR"`
	AssetsDir        string    `toml:"assets_dir"`
	Package          string    `toml:"package"`
	Symbols          string    `toml:"symbols"`
	SystemSymbols    string    `toml:"system_symbols"`
	SDKVersion       int       `toml:"sdk_version" env:"RESLOADER_SDK_VERSION"`
	SDKPath          string    `toml:"sdk_path" env:"RESLOADER_SDK_PATH"`
	StrictI18n       bool      `toml:"strict_i18n" env:"RESLOADER_STRICT_I18N"`
	Locale           string    `toml:"locale" env:"RESLOADER_LOCALE"`
	LayoutQualifiers []string  `toml:"layout_qualifiers"`
	Libraries        []Library `toml:"library"`

	// Dir is the directory relative paths were resolved against.
	Dir string `toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ResourceDir: "res",
		AssetsDir:   "assets",
		Package:     "app",
		Symbols:     "R.txt",
		SDKVersion:  10,
	}
}

// Load reads the configuration at path. A missing file is only an error
// when required is set; otherwise the defaults are used relative to the
// working directory. Environment overrides are applied in both cases.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	cfg.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case os.IsNotExist(err) && !required:
		cfg.Dir = "."
	default:
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	cfg.resolve()
	return cfg, cfg.Validate()
}

// ParseEnv applies RESLOADER_* environment overrides to target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) resolve() {
	c.ResourceDir = c.abs(c.ResourceDir)
	c.AssetsDir = c.abs(c.AssetsDir)
	c.Symbols = c.abs(c.Symbols)
	c.SystemSymbols = c.abs(c.SystemSymbols)
	c.SDKPath = c.abs(c.SDKPath)
	for i := range c.Libraries {
		lib := &c.Libraries[i]
		lib.ResourceDir = c.abs(lib.ResourceDir)
		lib.AssetsDir = c.abs(lib.AssetsDir)
		lib.Symbols = c.abs(lib.Symbols)
	}
}

func (c *Config) abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	if c.ResourceDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "resource_dir is required")
	}
	if c.SDKVersion <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "sdk_version must be positive, got %d", c.SDKVersion)
	}
	if err := errors.ValidatePackageName(c.Package); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "package")
	}
	for i, lib := range c.Libraries {
		if lib.ResourceDir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "library %d: resource_dir is required", i+1)
		}
		if lib.Package != "" {
			if err := errors.ValidatePackageName(lib.Package); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "library %d: package", i+1)
			}
		}
	}
	return nil
}
