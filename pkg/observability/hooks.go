// Package observability provides hooks for metrics, tracing, and logging.
//
// The package keeps the core library free of observability framework
// dependencies: hook interfaces get no-op defaults, and applications
// register real implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlotHooks(&myPlotHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plot().OnLayoutStart(ctx, depth, groups)
//	// ... lay out the level ...
//	observability.Plot().OnLayoutComplete(ctx, depth, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PlotHooks receives events from a treemap build.
type PlotHooks interface {
	// Layout events, one pair per hierarchy depth.
	OnLayoutStart(ctx context.Context, depth, groups int)
	OnLayoutComplete(ctx context.Context, depth int, duration time.Duration, err error)

	// Draw events, one pair per build.
	OnDrawStart(ctx context.Context, levels int)
	OnDrawComplete(ctx context.Context, rects, labels int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	OnHit(ctx context.Context, key string)
	OnMiss(ctx context.Context, key string)
	OnSet(ctx context.Context, key string, size int)
}

// noopPlotHooks is the default PlotHooks implementation.
type noopPlotHooks struct{}

func (noopPlotHooks) OnLayoutStart(context.Context, int, int)                        {}
func (noopPlotHooks) OnLayoutComplete(context.Context, int, time.Duration, error)    {}
func (noopPlotHooks) OnDrawStart(context.Context, int)                               {}
func (noopPlotHooks) OnDrawComplete(context.Context, int, int, time.Duration, error) {}

// noopCacheHooks is the default CacheHooks implementation.
type noopCacheHooks struct{}

func (noopCacheHooks) OnHit(context.Context, string)      {}
func (noopCacheHooks) OnMiss(context.Context, string)     {}
func (noopCacheHooks) OnSet(context.Context, string, int) {}

var (
	mu         sync.RWMutex
	plotHooks  PlotHooks  = noopPlotHooks{}
	cacheHooks CacheHooks = noopCacheHooks{}
)

// SetPlotHooks registers plot hooks. Pass nil to restore the no-op default.
func SetPlotHooks(h PlotHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		plotHooks = noopPlotHooks{}
		return
	}
	plotHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Plot returns the registered plot hooks.
func Plot() PlotHooks {
	mu.RLock()
	defer mu.RUnlock()
	return plotHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
