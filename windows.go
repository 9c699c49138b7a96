package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const mainWindowID = "main"

// Window is the slice of webview window behavior the shell drives. The Wails
// runtime provides the real implementation; tests substitute recorders.
type Window interface {
	ShowAndFocus()
	Hide()
	Visible() bool
	Eval(script string)
	Navigate(url string)
}

// WindowRegistry tracks live windows by identifier. At most one window
// exists per identifier; the primary window is "main". Windows are hidden on
// close, never removed, so lookups stay valid for the process lifetime.
type WindowRegistry struct {
	mu      sync.RWMutex
	windows map[string]Window
}

// NewWindowRegistry creates an empty registry.
func NewWindowRegistry() *WindowRegistry {
	return &WindowRegistry{windows: make(map[string]Window)}
}

// Register adds a window under id. Registering the same id twice keeps the
// existing window and returns an error.
func (r *WindowRegistry) Register(id string, w Window) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.windows[id]; exists {
		return fmt.Errorf("window %q already registered", id)
	}
	r.windows[id] = w
	return nil
}

// Get returns the window registered under id, or nil.
func (r *WindowRegistry) Get(id string) Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.windows[id]
}

// Main returns the primary window, or nil if it does not exist yet.
func (r *WindowRegistry) Main() Window {
	return r.Get(mainWindowID)
}

// ShowAll shows and focuses every registered window. Used when the platform
// reactivates the app with no visible windows.
func (r *WindowRegistry) ShowAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.windows {
		w.ShowAndFocus()
	}
}

// AnyVisible reports whether at least one window is currently visible.
func (r *WindowRegistry) AnyVisible() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.windows {
		if w.Visible() {
			return true
		}
	}
	return false
}

// wailsWindow drives the Wails webview window through the runtime API. Wails
// does not expose visibility, so the wrapper tracks it alongside the calls.
type wailsWindow struct {
	ctx context.Context

	mu      sync.Mutex
	visible bool
}

func newWailsWindow(ctx context.Context) *wailsWindow {
	return &wailsWindow{ctx: ctx, visible: true}
}

func (w *wailsWindow) ShowAndFocus() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	wailsRuntime.WindowShow(w.ctx)
}

func (w *wailsWindow) Hide() {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	wailsRuntime.WindowHide(w.ctx)
}

func (w *wailsWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *wailsWindow) Eval(script string) {
	wailsRuntime.WindowExecJS(w.ctx, script)
}

// Navigate points the webview at url by replacing the current location. The
// URL is embedded as a JSON string literal so it survives quoting.
func (w *wailsWindow) Navigate(url string) {
	encoded, err := json.Marshal(url)
	if err != nil {
		return
	}
	w.Eval(fmt.Sprintf("window.location.replace(%s);", encoded))
}
