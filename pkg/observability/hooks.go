// Package observability provides hooks for metrics, tracing, and logging.
//
// Loading and rendering diagrams emit events through the hooks registered
// here. Nothing is recorded by default; consumers register hooks once at
// startup to forward events to the backend of their choice.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLoadHooks(&myLoadHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Load().OnLoadStart(path)
//	// ... read and decode ...
//	observability.Load().OnLoadComplete(path, revision, tables, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// LoadHooks receives events from diagram loads.
type LoadHooks interface {
	OnLoadStart(path string)

	// OnLoadComplete is called once per load. revision is empty when the
	// file could not be parsed, tables is zero on failure.
	OnLoadComplete(path, revision string, tables int, duration time.Duration, err error)
}

// RenderHooks receives events from layout rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, engine string)
	OnRenderComplete(ctx context.Context, engine string, size int, duration time.Duration, err error)
}

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoadStart(string)                                       {}
func (NoopLoadHooks) OnLoadComplete(string, string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

var (
	loadHooks   LoadHooks   = NoopLoadHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetLoadHooks registers custom load hooks. A nil h is ignored.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// SetRenderHooks registers custom render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loadHooks = NoopLoadHooks{}
	renderHooks = NoopRenderHooks{}
}
