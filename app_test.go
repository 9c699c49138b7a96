package main

import (
	"context"
	"testing"

	"github.com/wailsapp/wails/v2/pkg/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an App with a fake main window already registered.
func newTestApp(t *testing.T) (*App, *fakeWindow) {
	t.Helper()
	setupPathHooks(t)

	a := NewApp()
	a.coldStart = nil // go test arguments are not activations
	w := &fakeWindow{visible: true}
	require.NoError(t, a.windows.Register(mainWindowID, w))
	return a, w
}

func TestBeforeClose_HidesWindowAndKeepsRunning(t *testing.T) {
	a, w := newTestApp(t)

	prevented := a.beforeClose(context.Background())

	assert.True(t, prevented)
	assert.False(t, w.Visible())
	// The window stays registered and retrievable after the close request.
	assert.Same(t, Window(w), a.windows.Main())
	assert.False(t, a.windows.AnyVisible())
}

func TestBeforeClose_ReopenRestoresWindow(t *testing.T) {
	a, w := newTestApp(t)

	require.True(t, a.beforeClose(context.Background()))
	require.False(t, w.Visible())

	// Platform reactivation with no visible windows.
	a.ReopenWindows()

	assert.True(t, w.Visible())
	assert.True(t, a.windows.AnyVisible())
}

func TestReopenWindows_NoopWhileVisible(t *testing.T) {
	a, w := newTestApp(t)

	a.ReopenWindows()

	// No show call was recorded; the visible window was left alone.
	assert.Empty(t, w.operations())
}

func TestBeforeClose_QuittingPassesThrough(t *testing.T) {
	a, w := newTestApp(t)
	a.quitting.Store(true)

	assert.False(t, a.beforeClose(context.Background()))
	assert.True(t, w.Visible())
}

func TestNavigateMainWindow_PointsAtSidecarURL(t *testing.T) {
	a, w := newTestApp(t)
	withDevMode(t, false)

	a.navigateMainWindow()

	assert.Equal(t, []string{"navigate:http://127.0.0.1:3100"}, w.operations())
}

func TestNavigateMainWindow_DevModeIsNoop(t *testing.T) {
	a, w := newTestApp(t)
	withDevMode(t, true)

	a.navigateMainWindow()

	assert.Empty(t, w.operations())
}

func TestDomReady_DispatchesColdStartOnce(t *testing.T) {
	a, w := newTestApp(t)
	a.coldStart = []string{"plutoduck://auth?code=abc"}

	a.domReady(context.Background())

	ops := w.operations()
	require.GreaterOrEqual(t, len(ops), 2)
	assert.Equal(t, "show", ops[0])
	assert.Equal(t, "eval", ops[1])

	scripts := w.evaluated()
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], jsonLiteral(t, "plutoduck://auth?code=abc"))

	// The batch is drained; a reload does not replay it.
	a.domReady(context.Background())
	assert.Len(t, w.evaluated(), 1)
}

func TestDomReady_NoColdStartDoesNothing(t *testing.T) {
	a, w := newTestApp(t)

	a.domReady(context.Background())

	assert.Empty(t, w.operations())
}

func TestHandleSecondInstance_DispatchesDeepLinks(t *testing.T) {
	a, w := newTestApp(t)

	a.handleSecondInstance(options.SecondInstanceData{
		Args: []string{"plutoduck://auth?code=warm"},
	})

	scripts := w.evaluated()
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], "warm")
	assert.True(t, w.Visible())
}

func TestHandleSecondInstance_BareRelaunchShowsWindows(t *testing.T) {
	a, w := newTestApp(t)
	w.Hide()

	a.handleSecondInstance(options.SecondInstanceData{Args: []string{"--some-flag"}})

	assert.True(t, w.Visible())
	assert.Empty(t, w.evaluated())
}

func TestHandleURLOpen_DispatchesSingleURL(t *testing.T) {
	a, w := newTestApp(t)

	a.handleURLOpen("plutoduck://auth?code=mac")

	scripts := w.evaluated()
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], "mac")
}

func TestGetSidecarStatus(t *testing.T) {
	a, _ := newTestApp(t)
	withDevMode(t, true)

	status := a.GetSidecarStatus()
	assert.Equal(t, "http://127.0.0.1:3100", status.URL)
	assert.False(t, status.Running)
	assert.True(t, status.DevMode)
}

func TestGetVersion(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, Version, a.GetVersion())
}
