package res

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/matzehuels/resloader/pkg/errors"
	"github.com/matzehuels/resloader/pkg/observability"
)

var discardLogger = log.New(io.Discard)

// Bundle is one local resource root: the application itself or a library.
type Bundle struct {
	ResourceDir string
	AssetsDir   string
	Symbols     *SymbolTable // nil for bundles sharing the application's table
}

// SystemLocator finds the platform resource directory. It reports false
// when no platform bundle is available.
type SystemLocator interface {
	ResourceDir(ctx context.Context) (string, bool)
}

// Config configures an Engine.
type Config struct {
	// ResourceDir and AssetsDir are the application bundle.
	ResourceDir string
	AssetsDir   string

	// Libraries are further bundles in priority order, highest first. The
	// application always has priority over every library.
	Libraries []Bundle

	// SystemResourceDir is the platform resource directory. When empty,
	// Locator is consulted; when both are unset the engine runs without
	// platform resources.
	SystemResourceDir string
	Locator           SystemLocator

	StrictI18n bool

	// Locale selects localized value directories ("values-fr") and plural
	// rules. Empty loads only the default values.
	Locale string

	LayoutQualifiers []string

	Logger *log.Logger
	Hooks  observability.LoadHooks
}

// Engine resolves resource ids for one application symbol table. It loads
// every bundle once, lazily, on first use.
type Engine struct {
	id      uuid.UUID
	cfg     Config
	bundles []Bundle // priority order, application first
	index   *Index
	locale  language.Tag
	policy  *i18nPolicy
	logger  *log.Logger
	hooks   observability.LoadHooks

	strings   *StringLoader
	plurals   *PluralLoader
	arrays    *StringArrayLoader
	colors    *ColorLoader
	attrs     *AttrLoader
	drawables *DrawableLoader
	views     *ViewLoader
	menus     *MenuLoader
	prefs     *PreferenceLoader
	raws      []*RawLoader

	mu      sync.Mutex
	ready   atomic.Bool // set once initErr is final
	initErr error
}

// New creates an engine. local is the application symbol table; library
// tables from cfg.Libraries are registered after it and system last, so on
// id collisions the application wins.
func New(local, system *SymbolTable, cfg Config) *Engine {
	e := &Engine{
		id:     uuid.New(),
		cfg:    cfg,
		index:  NewIndex(),
		policy: &i18nPolicy{},
		logger: cfg.Logger,
		hooks:  cfg.Hooks,
	}
	if e.logger == nil {
		e.logger = discardLogger
	}
	if e.hooks == nil {
		e.hooks = observability.Load()
	}
	e.policy.strict.Store(cfg.StrictI18n)
	if cfg.Locale != "" {
		e.locale = language.Make(cfg.Locale)
	}

	e.index.AddLocalSymbols(local)
	e.bundles = append(e.bundles, Bundle{ResourceDir: cfg.ResourceDir, AssetsDir: cfg.AssetsDir, Symbols: local})
	for _, lib := range cfg.Libraries {
		e.index.AddLocalSymbols(lib.Symbols)
		e.bundles = append(e.bundles, lib)
	}
	e.index.AddSystemSymbols(system)

	e.strings = NewStringLoader(e.index)
	e.plurals = NewPluralLoader(e.index, e.strings, e.locale)
	e.arrays = NewStringArrayLoader(e.index, e.strings)
	e.colors = NewColorLoader(e.index)
	e.attrs = NewAttrLoader(e.index)
	e.drawables = NewDrawableLoader(e.index)
	e.views = NewViewLoader(e.index, e.attrs, e.policy)
	e.views.SetQualifiers(cfg.LayoutQualifiers...)
	e.menus = NewMenuLoader(e.index, e.attrs, e.strings, e.policy)
	e.menus.SetQualifiers(cfg.LayoutQualifiers...)
	e.prefs = NewPreferenceLoader(e.index, e.strings, e.policy)
	for _, b := range e.bundles {
		if b.ResourceDir != "" {
			e.raws = append(e.raws, NewRawLoader(e.index, b.ResourceDir))
		}
	}
	return e
}

// ID returns the engine's instance id.
func (e *Engine) ID() uuid.UUID { return e.id }

// Index returns the engine's resource index.
func (e *Engine) Index() *Index { return e.index }

// Init loads every bundle. It is safe to call concurrently; the first call
// does the work and every call returns its result. A failed load is not
// retried, except when it was interrupted by ctx.
//
// Strict internationalization violations are returned as they are; any
// other failure is wrapped in an INITIALIZATION_FAILED error.
func (e *Engine) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Load() {
		return e.initErr
	}

	start := time.Now()
	e.hooks.OnInitStart(ctx, len(e.bundles))
	err := e.load(ctx)
	if err != nil && !errors.Is(err, errors.ErrCodeI18nViolation) && ctx.Err() == nil {
		err = errors.Wrap(errors.ErrCodeInitialization, err, "load resources")
	}
	e.hooks.OnInitComplete(ctx, time.Since(start), err)
	if err != nil && ctx.Err() != nil {
		return err
	}

	e.initErr = err
	e.ready.Store(true)
	if err != nil {
		e.logger.Error("resource load failed", "error", err)
	} else {
		e.logger.Debug("resources loaded", "engine", e.id, "ids", e.index.Len(), "took", time.Since(start))
	}
	return err
}

// ensure loads on first use. Once loading has finished, reads skip the
// mutex.
func (e *Engine) ensure() error {
	if e.ready.Load() {
		return e.initErr
	}
	return e.Init(context.Background())
}

func (e *Engine) load(ctx context.Context) error {
	if dir, ok := e.systemResourceDir(ctx); ok {
		e.logger.Debug("loading system bundle", "dir", dir)
		if err := e.loadValues(ctx, []string{dir}, true); err != nil {
			return err
		}
		if err := e.newDocumentLoader(e.views).LoadDirs(ctx, subDirs(dir, IsLayoutDirectory), true); err != nil {
			return err
		}
	} else {
		e.logger.Warn("unable to find path to Android SDK, loading without system resources")
	}

	// The lowest priority bundle loads first so that higher priority
	// bundles shadow it.
	var dirs []string
	for i := len(e.bundles) - 1; i >= 0; i-- {
		if dir := e.bundles[i].ResourceDir; dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if err := e.loadValues(ctx, dirs, false); err != nil {
		return err
	}
	for _, dir := range dirs {
		e.logger.Debug("loading bundle documents", "dir", dir)
		steps := []struct {
			loader ElementLoader
			dirs   []string
		}{
			{e.views, subDirs(dir, IsLayoutDirectory)},
			{e.menus, subDirs(dir, IsMenuDirectory)},
			{e.drawables, subDirs(dir, IsDrawableDirectory)},
			{e.prefs, []string{filepath.Join(dir, TypeXML)}},
		}
		for _, step := range steps {
			if err := e.newDocumentLoader(step.loader).LoadDirs(ctx, step.dirs, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadValues runs the value passes over the values/ directories of every
// resource root, then the language directories matching the locale, then
// those naming a region. A localized value therefore beats any default,
// whichever bundle it comes from. Within each group resourceDirs are in
// ascending priority.
//
// The passes load strings first, then plurals, then everything else, so
// that later passes can rely on the strings being present.
func (e *Engine) loadValues(ctx context.Context, resourceDirs []string, system bool) error {
	var defaults, languages, regions []string
	for _, dir := range resourceDirs {
		defaults = append(defaults, filepath.Join(dir, "values"))
		lang, region := e.localeValueDirs(dir)
		languages = append(languages, lang...)
		regions = append(regions, region...)
	}
	dirs := append(append(defaults, languages...), regions...)

	passes := [][]ElementLoader{
		{e.strings},
		{e.plurals},
		{e.arrays, e.colors, e.attrs},
	}
	for _, loaders := range passes {
		if err := e.newDocumentLoader(loaders...).LoadDirs(ctx, dirs, system); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) newDocumentLoader(loaders ...ElementLoader) *DocumentLoader {
	d := NewDocumentLoader(loaders...)
	d.Logger = e.logger
	d.Hooks = e.hooks
	return d
}

func (e *Engine) systemResourceDir(ctx context.Context) (string, bool) {
	if e.cfg.SystemResourceDir != "" {
		return e.cfg.SystemResourceDir, true
	}
	if e.cfg.Locator == nil {
		return "", false
	}
	return e.cfg.Locator.ResourceDir(ctx)
}

// subDirs returns the sub-directories of dir accepted by match, sorted by
// name so that unqualified directories come first.
func subDirs(dir string, match func(string) bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() && match(entry.Name()) {
			out = append(out, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// localeValueDirs returns the values-<qualifier> directories matching the
// engine locale, split into language-only qualifiers and those naming a
// region.
func (e *Engine) localeValueDirs(resourceDir string) (languages, regions []string) {
	if e.locale == language.Und {
		return nil, nil
	}
	entries, err := os.ReadDir(resourceDir)
	if err != nil {
		return nil, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "values-") {
			continue
		}
		tag, ok := localeQualifier(qualifierOf(entry.Name()))
		if !ok {
			continue
		}
		match, region := localeMatches(e.locale, tag)
		switch {
		case !match:
		case region:
			regions = append(regions, filepath.Join(resourceDir, entry.Name()))
		default:
			languages = append(languages, filepath.Join(resourceDir, entry.Name()))
		}
	}
	return languages, regions
}

// localeQualifier parses the locale part of a qualifier: "fr", "fr-rCA",
// "fr-rCA-land". Qualifiers that do not start with a language report false.
func localeQualifier(q string) (language.Tag, bool) {
	parts := strings.Split(q, "-")
	lang := parts[0]
	if len(lang) < 2 || len(lang) > 3 || strings.ToLower(lang) != lang {
		return language.Und, false
	}
	for _, r := range lang {
		if r < 'a' || r > 'z' {
			return language.Und, false
		}
	}
	if _, err := language.ParseBase(lang); err != nil {
		return language.Und, false
	}
	s := lang
	if len(parts) > 1 && len(parts[1]) == 3 && parts[1][0] == 'r' {
		s += "-" + parts[1][1:]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// localeMatches reports whether a directory tagged dir applies to locale,
// and whether dir names a region.
func localeMatches(locale, dir language.Tag) (match, region bool) {
	lb, _ := locale.Base()
	db, _ := dir.Base()
	if lb != db {
		return false, false
	}
	dr, conf := dir.Region()
	if conf != language.Exact {
		return true, false
	}
	lr, lconf := locale.Region()
	return lconf == language.Exact && lr == dr, true
}

// String returns the string resource id.
func (e *Engine) String(id int) (string, error) {
	if err := e.ensure(); err != nil {
		return "", err
	}
	return e.strings.Value(id)
}

// Plural returns the plural form of id for quantity.
func (e *Engine) Plural(id, quantity int) (string, error) {
	if err := e.ensure(); err != nil {
		return "", err
	}
	return e.plurals.Value(id, quantity)
}

// Plurals returns every quantity form defined for id.
func (e *Engine) Plurals(id int) (map[string]string, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	return e.plurals.Quantities(id)
}

// StringArray returns the items of the string array id.
func (e *Engine) StringArray(id int) ([]string, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	return e.arrays.Value(id)
}

// Color returns the ARGB color id. Unregistered ids return ColorMissing.
func (e *Engine) Color(id int) (int, error) {
	if err := e.ensure(); err != nil {
		return ColorMissing, err
	}
	return e.colors.Value(id)
}

// Attr returns the attribute definition id.
func (e *Engine) Attr(id int) (*AttrFormat, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	return e.attrs.Value(id)
}

// IsDrawableXML reports whether drawable id is defined by markup.
func (e *Engine) IsDrawableXML(id int) bool {
	if e.ensure() != nil {
		return false
	}
	return e.drawables.IsXML(id)
}

// DrawableFrameIDs returns the frame drawable ids of animation drawable id.
func (e *Engine) DrawableFrameIDs(id int) []int {
	if e.ensure() != nil {
		return nil
	}
	return e.drawables.FrameIDs(id)
}

// Drawable returns the drawable id, or nil.
func (e *Engine) Drawable(id int) *Drawable {
	if e.ensure() != nil {
		return nil
	}
	return e.drawables.Drawable(id)
}

// AnimDrawable returns an animation drawable for an application id of type
// anim, or nil.
func (e *Engine) AnimDrawable(id int) *Drawable {
	n, ok := e.localName(id, TypeAnim)
	if !ok {
		return nil
	}
	return &Drawable{Name: n.Entry, Kind: DrawableAnimation}
}

// ColorDrawable returns a color drawable for an application id of type
// color, or nil.
func (e *Engine) ColorDrawable(id int) *Drawable {
	n, ok := e.localName(id, TypeColor)
	if !ok {
		return nil
	}
	d := &Drawable{Name: n.Entry, Kind: DrawableColor}
	if c, err := e.colors.Value(id); err == nil {
		d.Color = fmt.Sprintf("#%08X", uint32(c))
	}
	return d
}

func (e *Engine) localName(id int, typ Type) (Name, bool) {
	if e.ensure() != nil {
		return Name{}, false
	}
	n, err := e.index.Name(id)
	if err != nil || n.Type != typ || n.IsSystem() {
		return Name{}, false
	}
	return n, true
}

// InflateView inflates layout id. See ViewLoader.Inflate for parent.
func (e *Engine) InflateView(id int, parent *Node) (*Node, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	return e.views.Inflate(id, parent)
}

// LayoutNode returns the stored layout under key ("layout/main",
// "android:layout/simple_list_item_1"), or nil.
func (e *Engine) LayoutNode(key string) *Node {
	if e.ensure() != nil {
		return nil
	}
	return e.views.Node(key)
}

// SetLayoutQualifierSearchPath sets the qualifiers tried before the
// unqualified layout and menu directories.
func (e *Engine) SetLayoutQualifierSearchPath(qualifiers ...string) {
	e.views.SetQualifiers(qualifiers...)
	e.menus.SetQualifiers(qualifiers...)
}

// InflateMenu adds the items of menu id to menu.
func (e *Engine) InflateMenu(id int, menu Menu) error {
	if err := e.ensure(); err != nil {
		return err
	}
	return e.menus.Inflate(id, menu)
}

// InflatePreferences builds the preference hierarchy id.
func (e *Engine) InflatePreferences(id int) (*Preference, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	return e.prefs.Inflate(id)
}

// OpenRaw opens raw resource id from the first bundle, in priority order,
// that has it. It returns nil and no error when no bundle has it.
func (e *Engine) OpenRaw(id int) (io.ReadCloser, error) {
	if err := e.ensure(); err != nil {
		return nil, err
	}
	for _, l := range e.raws {
		rc, err := l.Open(id)
		if err != nil || rc != nil {
			return rc, err
		}
	}
	return nil, nil
}

// Documents returns the keys of the loaded layout, menu or xml documents.
func (e *Engine) Documents(typ Type) []string {
	if e.ensure() != nil {
		return nil
	}
	switch typ {
	case TypeLayout:
		return e.views.Keys()
	case TypeMenu:
		return e.menus.Keys()
	case TypeXML:
		return e.prefs.Keys()
	}
	return nil
}

// AssetsDirs returns the configured asset directories in bundle priority
// order.
func (e *Engine) AssetsDirs() []string {
	var dirs []string
	for _, b := range e.bundles {
		if b.AssetsDir != "" {
			dirs = append(dirs, b.AssetsDir)
		}
	}
	return dirs
}

// AssetsBase returns the application's asset directory, or "" when no
// bundle has one.
func (e *Engine) AssetsBase() string {
	if dirs := e.AssetsDirs(); len(dirs) > 0 {
		return dirs[0]
	}
	return ""
}

// NameForID returns "package:type/entry" for id.
func (e *Engine) NameForID(id int) (string, error) {
	n, err := e.index.Name(id)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// IDForName resolves "type/entry", "package:type/entry" or a full
// "@type/entry" reference.
func (e *Engine) IDForName(name string) (int, bool) {
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}
	if name == "@null" {
		return 0, false
	}
	return e.index.ResolveReference(name, false)
}

// SetStrictI18n toggles strict internationalization mode. It takes effect
// for inflations after the call; when set before the first load it also
// applies to the load.
func (e *Engine) SetStrictI18n(strict bool) { e.policy.strict.Store(strict) }

// StrictI18n reports whether strict internationalization mode is on.
func (e *Engine) StrictI18n() bool { return e.policy.strict.Load() }
