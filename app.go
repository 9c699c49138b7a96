package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/wailsapp/wails/v2/pkg/options"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Version is set at build time via ldflags.
var Version = "0.1.0-dev"

// Package-level hook for testing.
var isDevMode = defaultIsDevMode

func defaultIsDevMode() bool {
	return os.Getenv("WAILS_DEV") != "" || Version == "0.1.0-dev"
}

// App struct holds the application state.
type App struct {
	ctx         context.Context
	sidecar     *SidecarSupervisor
	windows     *WindowRegistry
	activations *ActivationDispatcher
	settings    *DesktopSettingsManager
	watcher     *SettingsWatcher

	quitting atomic.Bool

	mu        sync.Mutex
	coldStart []string // activation URLs delivered on the command line
}

// NewApp creates a new App application struct.
func NewApp() *App {
	windows := NewWindowRegistry()
	settings := NewDesktopSettingsManager()

	a := &App{
		sidecar:     NewSidecarSupervisor(),
		windows:     windows,
		activations: NewActivationDispatcher(windows),
		settings:    settings,
		coldStart:   activationURLsFromArgs(os.Args[1:]),
	}
	a.watcher = NewSettingsWatcher(settings, a.notifySettingsChanged)
	return a
}

// startup is called when the app starts. Launch failures are logged to both
// the structured logger and stderr; the shell keeps running so the UI can
// show its own error state.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.windows.Register(mainWindowID, newWailsWindow(ctx)); err != nil {
		logf("[shell] %v", err)
	}

	geom := loadWindowGeometry()
	wailsRuntime.WindowSetSize(ctx, geom.Width, geom.Height)

	if err := a.sidecar.Launch(); err != nil {
		logf("[sidecar] launch failed: %v", err)
		fmt.Fprintf(os.Stderr, "sidecar launch failed: %v\n", err)
	} else {
		a.navigateMainWindow()
	}

	if err := a.watcher.Start(); err != nil {
		logf("[settings] watcher unavailable: %v", err)
	}
}

// navigateMainWindow points the webview at the sidecar. Launch has already
// waited for readiness (or warned and given up), so this runs unguarded. In
// dev mode the wails dev server owns the URL bar.
func (a *App) navigateMainWindow() {
	if isDevMode() {
		return
	}
	w := a.windows.Main()
	if w == nil {
		return
	}
	w.Navigate(a.sidecar.URL())
}

// domReady runs once the webview has loaded. Activation URLs from a cold
// start are deliverable from this point on.
func (a *App) domReady(ctx context.Context) {
	if urls := a.takeColdStart(); len(urls) > 0 {
		a.activations.Dispatch(urls)
	}
}

func (a *App) takeColdStart() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	urls := a.coldStart
	a.coldStart = nil
	return urls
}

// beforeClose intercepts the native close request: the window hides and the
// shell keeps running. An explicit quit (menu, signal, Quit binding) sets the
// quitting flag first and passes through.
func (a *App) beforeClose(ctx context.Context) bool {
	if a.quitting.Load() {
		return false
	}
	if w := a.windows.Main(); w != nil {
		w.Hide()
	}
	return true
}

// shutdown is called when the app is closing. The sidecar is reaped before
// the run loop returns.
func (a *App) shutdown(ctx context.Context) {
	a.quitting.Store(true)

	width, height := wailsRuntime.WindowGetSize(ctx)
	saveWindowGeometry(width, height)

	a.watcher.Stop()
	a.sidecar.Stop()
}

// Terminate stops the sidecar and quits the shell. Used by the signal
// handler so Ctrl+C and SIGTERM reap the child even if the framework never
// unwinds.
func (a *App) Terminate() {
	a.quitting.Store(true)
	a.sidecar.Stop()
	if a.ctx != nil {
		wailsRuntime.Quit(a.ctx)
	} else {
		os.Exit(0)
	}
}

// handleURLOpen receives a single deep-link activation from macOS.
func (a *App) handleURLOpen(url string) {
	a.activations.Dispatch([]string{url})
}

// handleSecondInstance receives the argument list of a second shell launch.
// Deep-link URLs in it become an activation batch; a bare relaunch just
// brings the existing windows back.
func (a *App) handleSecondInstance(data options.SecondInstanceData) {
	urls := activationURLsFromArgs(data.Args)
	if len(urls) == 0 {
		a.windows.ShowAll()
		return
	}
	a.activations.Dispatch(urls)
}

func (a *App) notifySettingsChanged(theme string) {
	logf("[settings] config changed, theme=%s", theme)
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, settingsChangedEvent, theme)
	}
}

// GetVersion returns the application version.
func (a *App) GetVersion() string {
	return Version
}

// OpenExternalURL opens an http(s) URL in the system's default browser.
func (a *App) OpenExternalURL(url string) error {
	return openExternalURL(url)
}

// Quit exits the shell from the frontend. The window close button only
// hides; this is the real way out besides the platform menu.
func (a *App) Quit() {
	a.quitting.Store(true)
	wailsRuntime.Quit(a.ctx)
}

// ReopenWindows restores the shell after a platform reactivation. Windows
// come back only when none is visible; an already-visible shell is left
// alone.
func (a *App) ReopenWindows() {
	if a.windows.AnyVisible() {
		return
	}
	a.windows.ShowAll()
}

// GetDesktopTheme returns the current desktop theme preference.
// Returns "dark", "light", or "auto".
func (a *App) GetDesktopTheme() string {
	theme, err := a.settings.GetTheme()
	if err != nil {
		return "dark"
	}
	return theme
}

// SetDesktopTheme sets the desktop theme preference.
func (a *App) SetDesktopTheme(theme string) error {
	return a.settings.SetTheme(theme)
}

// LogFrontendDiagnostic writes diagnostic info from the frontend to the
// debug log file, where it can be read without a devtools console.
func (a *App) LogFrontendDiagnostic(message string) {
	logf("[frontend] %s", message)
}

// SidecarStatus is what the frontend needs to render a connection state.
type SidecarStatus struct {
	URL      string `json:"url"`
	Running  bool   `json:"running"`
	LaunchID string `json:"launchId"`
	DevMode  bool   `json:"devMode"`
}

// GetSidecarStatus reports where the UI server should be and whether the
// shell still owns a live process for it.
func (a *App) GetSidecarStatus() SidecarStatus {
	return SidecarStatus{
		URL:      a.sidecar.URL(),
		Running:  a.sidecar.Running(),
		LaunchID: a.sidecar.LaunchID(),
		DevMode:  isDevMode(),
	}
}
