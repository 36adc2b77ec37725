package tray

import (
	"testing"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
)

func TestTray_BindToggle(t *testing.T) {
	a := app.New(app.Config{})
	tr := New()
	tr.Bind(a)

	if !tr.IsEnabled() {
		t.Fatal("expected tray to start enabled")
	}

	tr.handleToggle()

	if tr.IsEnabled() {
		t.Error("expected tray to be disabled after toggle")
	}
	if a.IsEnabled() {
		t.Error("expected app to be disabled after toggle")
	}

	tr.handleToggle()

	if !a.IsEnabled() {
		t.Error("expected app to be re-enabled")
	}
}

func TestTray_BindFollowsAppState(t *testing.T) {
	a := app.New(app.Config{})
	a.SetEnabled(false)

	tr := New()
	tr.Bind(a)

	if tr.IsEnabled() {
		t.Error("expected tray to mirror the disabled app")
	}
}

func TestTray_UpdatesBeforeReady(t *testing.T) {
	tr := New()

	// Menu items do not exist until the tray is running.
	tr.SetLastMatch("box")
	tr.SetTemplateCount(3)

	if tr.LastMatch() != "box" {
		t.Errorf("LastMatch() = %q, want box", tr.LastMatch())
	}
	if got := templatesTitle(3); got != "Templates: 3" {
		t.Errorf("templatesTitle(3) = %q", got)
	}
}

func TestTray_BindShowsMatches(t *testing.T) {
	a := app.New(app.Config{})
	tr := New()
	tr.Bind(a)

	side := []geometry.Point2D{geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 10), geometry.Pt(0, 10)}
	if _, err := a.SaveTemplate([]geometry.Stroke{geometry.NewStroke(side)}, "hook"); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	if m := a.Recognize(side); m == nil {
		t.Fatal("expected a match")
	}

	if tr.LastMatch() != "hook" {
		t.Errorf("LastMatch() = %q, want hook", tr.LastMatch())
	}
}

func TestTray_OpenCallback(t *testing.T) {
	tr := New()
	opened := false
	tr.OnOpen(func() { opened = true })

	tr.handleOpen()

	if !opened {
		t.Error("expected open callback to run")
	}
}

func TestToggleTitle(t *testing.T) {
	if got := toggleTitle(true); got != "● Enabled" {
		t.Errorf("toggleTitle(true) = %q", got)
	}
	if got := toggleTitle(false); got != "○ Disabled" {
		t.Errorf("toggleTitle(false) = %q", got)
	}
	if got := lastMatchTitle(""); got != "Last: none" {
		t.Errorf("lastMatchTitle(\"\") = %q", got)
	}
}
