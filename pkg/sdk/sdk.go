// Package sdk locates the platform resource bundle of an installed Android
// SDK.
//
// Discovery tries, in order, and the first candidate that yields a
// directory wins:
//
//  1. sdk.dir in local.properties, next to the resource directory or in the
//     working directory (${name} references are expanded)
//  2. the ANDROID_HOME environment variable
//  3. the configured SDK path (the android.sdk.path property of the build)
//  4. the output of "which android", bounded by a timeout
//
// Each SDK root is joined with platforms/android-<version>/data/res. A
// failed step never aborts discovery; when every step fails the engine runs
// without platform resources.
package sdk

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/magiconair/properties"

	"github.com/matzehuels/resloader/pkg/cache"
	"github.com/matzehuels/resloader/pkg/errors"
	"github.com/matzehuels/resloader/pkg/observability"
)

// Discovery step names, as reported in results and hooks.
const (
	StepCache           = "cache"
	StepLocalProperties = "local.properties"
	StepEnvironment     = "ANDROID_HOME"
	StepProperty        = "android.sdk.path"
	StepWhich           = "which android"
)

// Defaults.
const (
	DefaultSDKVersion  = 10
	DefaultTimeout     = 5 * time.Second
	DefaultCacheTTL    = 24 * time.Hour
	localPropertiesKey = "sdk.dir"
	whichSuffix        = "tools/android"
)

// Locator runs the discovery chain. The zero value is usable: it searches
// the working directory and the process environment for SDK version 10
// without caching.
type Locator struct {
	// AppResourceDir is the application resource directory; local.properties
	// is looked up in its parent first.
	AppResourceDir string
	SDKVersion     int
	// SDKPath is the configured SDK root consulted after the environment.
	SDKPath string
	// Timeout bounds the "which android" step.
	Timeout time.Duration

	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration

	// Environ replaces the process environment when non-nil.
	Environ map[string]string
	// Which runs the external lookup; nil runs "which android".
	Which func(ctx context.Context) (string, error)

	Logger *log.Logger
	Hooks  observability.DiscoveryHooks
}

// Result describes a successful discovery.
type Result struct {
	Step        string // step that produced the result
	SDKDir      string // SDK root
	ResourceDir string // platform resource directory
}

// Probe is the outcome of one discovery step.
type Probe struct {
	Step        string
	ResourceDir string
	Found       bool
	Err         error
}

type environment struct {
	AndroidHome string `env:"ANDROID_HOME"`
}

type step struct {
	name string
	run  func(ctx context.Context) (sdkDir string, mustExist bool, err error)
}

func (l *Locator) steps() []step {
	return []step{
		{StepLocalProperties, l.fromLocalProperties},
		{StepEnvironment, l.fromEnvironment},
		{StepProperty, l.fromProperty},
		{StepWhich, l.fromWhich},
	}
}

// ResourceDir implements res.SystemLocator. Results are cached when the
// locator has a cache.
func (l *Locator) ResourceDir(ctx context.Context) (string, bool) {
	key := ""
	if l.Cache != nil {
		key = l.keyer().SDKKey(l.projectDir(), l.version())
		if data, hit, err := l.Cache.Get(ctx, key); err == nil && hit && isDir(string(data)) {
			l.logger().Debug("using cached SDK location", "dir", string(data))
			l.hooks().OnDiscoveryStep(ctx, StepCache, true)
			return string(data), true
		}
	}

	r, err := l.Discover(ctx)
	if err != nil {
		l.logger().Debug("SDK discovery failed", "error", err)
		return "", false
	}
	if l.Cache != nil {
		ttl := l.CacheTTL
		if ttl == 0 {
			ttl = DefaultCacheTTL
		}
		if err := l.Cache.Set(ctx, key, []byte(r.ResourceDir), ttl); err != nil {
			l.logger().Warn("failed to cache SDK location", "error", err)
		}
	}
	return r.ResourceDir, true
}

// Discover runs the steps in order and returns the first success.
func (l *Locator) Discover(ctx context.Context) (Result, error) {
	for _, s := range l.steps() {
		p, sdkDir := l.probe(ctx, s)
		if p.Found {
			l.logger().Debug("found Android SDK", "step", s.name, "dir", p.ResourceDir)
			return Result{Step: s.name, SDKDir: sdkDir, ResourceDir: p.ResourceDir}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}
	return Result{}, errors.New(errors.ErrCodeDiscovery, "unable to find path to Android SDK")
}

// ProbeAll runs every step, including those after the first success.
func (l *Locator) ProbeAll(ctx context.Context) []Probe {
	var probes []Probe
	for _, s := range l.steps() {
		p, _ := l.probe(ctx, s)
		probes = append(probes, p)
	}
	return probes
}

func (l *Locator) probe(ctx context.Context, s step) (Probe, string) {
	p := Probe{Step: s.name}
	sdkDir, mustExist, err := s.run(ctx)
	switch {
	case err != nil:
		p.Err = err
	case sdkDir != "":
		p.ResourceDir = l.ResourcePath(sdkDir)
		p.Found = !mustExist || isDir(p.ResourceDir)
	}
	l.hooks().OnDiscoveryStep(ctx, s.name, p.Found)
	return p, sdkDir
}

// ResourcePath joins an SDK root with the platform resource sub-path.
func (l *Locator) ResourcePath(sdkDir string) string {
	return filepath.Join(sdkDir, "platforms", "android-"+strconv.Itoa(l.version()), "data", "res")
}

func (l *Locator) fromLocalProperties(context.Context) (string, bool, error) {
	var candidates []string
	if l.AppResourceDir != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(filepath.Clean(l.AppResourceDir)), "local.properties"))
	}
	candidates = append(candidates, "local.properties")

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		p, err := properties.LoadFile(path, properties.UTF8)
		if err != nil {
			return "", true, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		if dir, ok := p.Get(localPropertiesKey); ok && dir != "" {
			return dir, true, nil
		}
		return "", true, nil
	}
	return "", true, nil
}

func (l *Locator) fromEnvironment(context.Context) (string, bool, error) {
	var e environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: l.Environ}); err != nil {
		return "", false, err
	}
	return e.AndroidHome, false, nil
}

func (l *Locator) fromProperty(context.Context) (string, bool, error) {
	return l.SDKPath, false, nil
}

func (l *Locator) fromWhich(ctx context.Context) (string, bool, error) {
	timeout := l.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	which := l.Which
	if which == nil {
		which = runWhich
	}
	out, err := which(ctx)
	if err != nil {
		return "", true, err
	}
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	if !strings.HasSuffix(line, whichSuffix) {
		return "", true, nil
	}
	return strings.TrimSuffix(line, whichSuffix), true, nil
}

func runWhich(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "which", "android").Output()
	if err != nil {
		return "", fmt.Errorf("which android: %w", err)
	}
	return string(out), nil
}

func (l *Locator) version() int {
	if l.SDKVersion == 0 {
		return DefaultSDKVersion
	}
	return l.SDKVersion
}

func (l *Locator) projectDir() string {
	dir := "."
	if l.AppResourceDir != "" {
		dir = filepath.Dir(filepath.Clean(l.AppResourceDir))
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func (l *Locator) keyer() cache.Keyer {
	if l.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return l.Keyer
}

func (l *Locator) logger() *log.Logger {
	if l.Logger == nil {
		return discardLogger
	}
	return l.Logger
}

func (l *Locator) hooks() observability.DiscoveryHooks {
	if l.Hooks == nil {
		return observability.Discovery()
	}
	return l.Hooks
}

var discardLogger = log.New(io.Discard)

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
