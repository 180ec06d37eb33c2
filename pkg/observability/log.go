package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger, or to the default logger
// when logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnSelectStart(_ context.Context, families, individuals int) {
	h.logger.Debug("selection started", "families", families, "individuals", individuals)
}

func (h *LogHooks) OnSelectComplete(_ context.Context, selected int, d time.Duration, err error) {
	h.done("selection", d, err, "selected", selected)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, family string, members int) {
	h.logger.Debug("layout started", "family", family, "members", members)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, family string, d time.Duration, err error) {
	h.done("layout", d, err, "family", family)
}

func (h *LogHooks) OnRenderStart(_ context.Context, family string, formats []string) {
	h.logger.Debug("render started", "family", family, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, family string, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "family", family, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d)
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" finished", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
