package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level. It implements
// all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

func (h *LogHooks) OnGenerateStart(_ context.Context, chord string) {
	h.logger.Debug("generate", "chord", chord)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, chord string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "chord", chord, "error", err)
		return
	}
	h.logger.Debug("generated", "chord", chord, "candidates", n, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, n int) {
	h.logger.Debug("layout", "mode", mode, "nodes", n)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, iterations int, d time.Duration, err error) {
	h.logger.Debug("laid out", "mode", mode, "iterations", iterations, "duration", d, "error", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("rendered", "formats", formats, "duration", d, "error", err)
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}
