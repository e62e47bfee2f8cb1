package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingLoadHooks struct {
	mu     sync.Mutex
	starts []string
	done   []string
}

func (h *recordingLoadHooks) OnLoadStart(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, path)
}

func (h *recordingLoadHooks) OnLoadComplete(path, revision string, tables int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.done = append(h.done, path+":"+revision)
}

type recordingRenderHooks struct {
	engines []string
	errs    []error
}

func (h *recordingRenderHooks) OnRenderStart(_ context.Context, engine string) {
	h.engines = append(h.engines, engine)
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.errs = append(h.errs, err)
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	l := NoopLoadHooks{}
	l.OnLoadStart("a.erm")
	l.OnLoadComplete("a.erm", "grouped", 3, time.Millisecond, nil)

	r := NoopRenderHooks{}
	r.OnRenderStart(context.Background(), "neato")
	r.OnRenderComplete(context.Background(), "neato", 1024, time.Millisecond, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Load() should return NoopLoadHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	lh := &recordingLoadHooks{}
	SetLoadHooks(lh)
	if Load() != lh {
		t.Error("SetLoadHooks should set custom hooks")
	}

	rh := &recordingRenderHooks{}
	SetRenderHooks(rh)
	if Render() != rh {
		t.Error("SetRenderHooks should set custom hooks")
	}

	Load().OnLoadStart("x.erm")
	Load().OnLoadComplete("x.erm", "flat", 1, 0, nil)
	if len(lh.starts) != 1 || lh.done[0] != "x.erm:flat" {
		t.Errorf("load events = %v %v", lh.starts, lh.done)
	}

	Reset()
	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Reset should restore NoopLoadHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetLoadHooks(nil)
	SetRenderHooks(nil)
	if Load() == nil || Render() == nil {
		t.Fatal("nil hooks should be ignored")
	}
}
