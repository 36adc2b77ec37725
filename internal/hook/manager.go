package hook

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ayusman/sigil/internal/gesture"
)

// ManifestFile is the manifest name looked up in each hook directory.
const ManifestFile = "hook.json"

// ErrHookNotFound is returned when a requested hook cannot be found.
var ErrHookNotFound = errors.New("hook not found")

// Manager manages hook discovery and access.
type Manager struct {
	hookDir string
	hooks   map[string]*Hook
	mu      sync.RWMutex
}

// NewManager creates a new hook Manager with the given hook directory.
func NewManager(hookDir string) *Manager {
	return &Manager{
		hookDir: hookDir,
		hooks:   make(map[string]*Hook),
	}
}

// Discover scans the hook directory for hook.json files and loads them.
// Each subdirectory of the hook directory is expected to be a hook with a manifest.
func (m *Manager) Discover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks = make(map[string]*Hook)

	info, err := os.Stat(m.hookDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(m.hookDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		hookPath := filepath.Join(m.hookDir, entry.Name())
		manifestData, err := os.ReadFile(filepath.Join(hookPath, ManifestFile))
		if err != nil {
			continue // No readable manifest
		}

		var manifest Manifest
		if err := json.Unmarshal(manifestData, &manifest); err != nil {
			log.Printf("Skipping hook %s: invalid manifest: %v", entry.Name(), err)
			continue
		}
		if manifest.Name == "" {
			manifest.Name = entry.Name()
		}
		if manifest.Executable == "" {
			log.Printf("Skipping hook %s: no executable", manifest.Name)
			continue
		}

		m.hooks[manifest.Name] = &Hook{
			Manifest:   manifest,
			Path:       hookPath,
			Executable: filepath.Join(hookPath, manifest.Executable),
		}
	}

	return nil
}

// Get returns a hook by name.
// Returns ErrHookNotFound if the hook does not exist.
func (m *Manager) Get(name string) (*Hook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hook, ok := m.hooks[name]
	if !ok {
		return nil, ErrHookNotFound
	}

	return hook, nil
}

// List returns all discovered hooks sorted by name.
func (m *Manager) List() []*Hook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hooks := make([]*Hook, 0, len(m.hooks))
	for _, hook := range m.hooks {
		hooks = append(hooks, hook)
	}
	sort.Slice(hooks, func(i, j int) bool {
		return hooks[i].Manifest.Name < hooks[j].Manifest.Name
	})

	return hooks
}

// Matching returns the hooks that handle the match.
func (m *Manager) Matching(match gesture.Match) []*Hook {
	var out []*Hook
	for _, h := range m.List() {
		if h.Handles(match) {
			out = append(out, h)
		}
	}
	return out
}

// HookDir returns the hook directory path.
func (m *Manager) HookDir() string {
	return m.hookDir
}
