package cache

// Keyer builds cache keys.
type Keyer interface {
	// SDKKey keys the discovered platform resource directory of a project.
	SDKKey(projectDir string, sdkVersion int) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SDKKey implements Keyer.
func (DefaultKeyer) SDKKey(projectDir string, sdkVersion int) string {
	return hashKey("sdk", projectDir, sdkVersion)
}

// ScopedKeyer prefixes every key of an inner Keyer, so that caches shared
// between tools do not collide.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SDKKey implements Keyer.
func (k *ScopedKeyer) SDKKey(projectDir string, sdkVersion int) string {
	return k.prefix + k.inner.SDKKey(projectDir, sdkVersion)
}
