package hook

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/ayusman/sigil/internal/gesture"
)

func TestDispatcher_Handle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	hookDir := writeManifest(t, tmpDir, "record", Manifest{
		Name:       "record",
		Executable: "record.sh",
		Templates:  []string{"box"},
	})
	out := filepath.Join(tmpDir, "received.json")
	script := "#!/bin/sh\ncat > " + out + "\necho '{\"success\":true}'\n"
	if err := os.WriteFile(filepath.Join(hookDir, "record.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	var mu sync.Mutex
	var results []bool
	d := NewDispatcher(manager, NewExecutor(5000))
	d.OnResult = func(h *Hook, resp *Response, err error) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, err == nil && resp.Success)
	}

	d.Handle(gesture.Match{Template: &gesture.Template{ID: "1", Name: "ring"}})
	d.Handle(gesture.Match{Template: &gesture.Template{ID: "2", Name: "box"}, Score: 1})
	d.Wait()

	if len(results) != 1 || !results[0] {
		t.Fatalf("expected one successful hook run, got %v", results)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("hook did not record its input: %v", err)
	}
	for _, want := range []string{`"template":"box"`, `"template_id":"2"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("request %s missing %s", data, want)
		}
	}
}

func TestDispatcher_NoHooks(t *testing.T) {
	manager := NewManager(filepath.Join(t.TempDir(), "none"))
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	called := false
	d := NewDispatcher(manager, NewExecutor(5000))
	d.OnResult = func(*Hook, *Response, error) { called = true }

	d.Handle(gesture.Match{Template: &gesture.Template{Name: "box"}})
	d.Wait()

	if called {
		t.Error("expected no hook to run")
	}
}
