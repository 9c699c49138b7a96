package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	activationQueueGlobal = "__plutoAuthCallbackQueue"
	activationEventName   = "pluto-auth-callback"
)

// activationScript builds the JS that records rawURL in the in-page queue
// and fires the DOM event. The URL is embedded as a JSON string literal so
// quotes and backslashes survive intact. The queue lives inside the webview:
// UI code that registers its listener late still sees activations that
// arrived early, and the shell keeps no host-side copy.
func activationScript(rawURL string) string {
	encoded, err := json.Marshal(rawURL)
	if err != nil {
		return ""
	}
	literal := string(encoded)

	return fmt.Sprintf(
		"window.%[1]s = window.%[1]s || [];window.%[1]s.push(%[2]s);window.dispatchEvent(new CustomEvent(%[3]q, { detail: { url: %[2]s } }));",
		activationQueueGlobal, literal, activationEventName,
	)
}

// ActivationDispatcher forwards OS-delivered activation URLs into the
// webview runtime of the main window.
type ActivationDispatcher struct {
	windows *WindowRegistry
}

// NewActivationDispatcher creates a dispatcher targeting the given registry.
func NewActivationDispatcher(windows *WindowRegistry) *ActivationDispatcher {
	return &ActivationDispatcher{windows: windows}
}

// Dispatch delivers a batch of activation URLs in order. The main window is
// shown and focused before anything is evaluated. Without a main window the
// batch is dropped; the only queue lives inside the webview.
func (d *ActivationDispatcher) Dispatch(urls []string) {
	if len(urls) == 0 {
		return
	}

	w := d.windows.Main()
	if w == nil {
		logf("[activation] dropping %d url(s): no main window", len(urls))
		return
	}

	batchID := uuid.NewString()
	logf("[activation] dispatching %d url(s) (batch=%s)", len(urls), batchID)

	w.ShowAndFocus()
	for _, u := range urls {
		script := activationScript(u)
		if script == "" {
			continue
		}
		w.Eval(script)
	}
}

// activationURLsFromArgs extracts deep-link URLs from a process argument
// list. On Windows and Linux the OS delivers scheme activations as plain
// arguments, both at cold start and via the second-instance handoff.
func activationURLsFromArgs(args []string) []string {
	var urls []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") || !strings.Contains(arg, "://") {
			continue
		}
		if u, err := url.Parse(arg); err == nil && u.Scheme != "" {
			urls = append(urls, arg)
		}
	}
	return urls
}
