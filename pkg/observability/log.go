package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks forwards every event to a logger at debug level. It implements
// [LoadHooks], [DiscoveryHooks] and [CacheHooks].
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnInitStart(_ context.Context, bundles int) {
	h.Logger.Debug("load started", "bundles", bundles)
}

func (h *LogHooks) OnDocumentLoaded(_ context.Context, path string, system bool) {
	h.Logger.Debug("document loaded", "path", path, "system", system)
}

func (h *LogHooks) OnInitComplete(_ context.Context, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "took", d.Round(time.Millisecond), "error", err)
		return
	}
	h.Logger.Debug("load complete", "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnDiscoveryStep(_ context.Context, step string, found bool) {
	h.Logger.Debug("sdk discovery", "step", step, "found", found)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// Install registers h for all three categories.
func (h *LogHooks) Install() {
	SetLoadHooks(h)
	SetDiscoveryHooks(h)
	SetCacheHooks(h)
}

var (
	_ LoadHooks      = (*LogHooks)(nil)
	_ DiscoveryHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
)
