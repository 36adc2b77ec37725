// Package tray provides a system tray interface for the Sigil stroke recognition system.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/gesture"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle  func(enabled bool)
	onOpen    func()
	onQuit    func()
	enabled   bool
	lastMatch string
	templates int
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle    *systray.MenuItem
	menuLastMatch *systray.MenuItem
	menuTemplates *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// Bind connects the tray to an app: toggling enables or disables match
// dispatch and every dispatched match is shown in the menu.
func (t *Tray) Bind(a *app.App) {
	t.mu.Lock()
	t.enabled = a.IsEnabled()
	t.mu.Unlock()

	t.OnToggle(a.SetEnabled)
	a.RegisterMatchCallback(func(m gesture.Match) {
		t.SetLastMatch(m.Template.Name)
	})
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpen sets the callback function to be called when the open menu item is clicked.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Sigil")
	systray.SetTooltip("Sigil Stroke Recognition")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle match actions")
	systray.AddSeparator()

	t.menuLastMatch = systray.AddMenuItem(lastMatchTitle(t.lastMatch), "Last recognized template")
	t.menuLastMatch.Disable()
	t.menuTemplates = systray.AddMenuItem(templatesTitle(t.templates), "Templates in the library")
	t.menuTemplates.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open Canvas...", "Open the drawing canvas in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Sigil")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleOpen handles the open menu item click.
func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

func lastMatchTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

func templatesTitle(n int) string {
	return fmt.Sprintf("Templates: %d", n)
}

// SetLastMatch updates the last match display in the menu.
func (t *Tray) SetLastMatch(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastMatch = name
	if t.menuLastMatch != nil {
		t.menuLastMatch.SetTitle(lastMatchTitle(name))
	}
}

// LastMatch returns the name shown as the last match.
func (t *Tray) LastMatch() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastMatch
}

// SetTemplateCount updates the library size display in the menu.
func (t *Tray) SetTemplateCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.templates = n
	if t.menuTemplates != nil {
		t.menuTemplates.SetTitle(templatesTitle(n))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
