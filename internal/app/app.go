// Package app ties recognition, analysis and persistence together for the
// server, the tray and the CLI.
package app

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/sigil/internal/config"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
	"github.com/ayusman/sigil/internal/spell"
	"github.com/ayusman/sigil/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Settings *config.Settings
}

// App owns the template library and dispatches recognition results.
type App struct {
	config     Config
	recognizer *gesture.Recognizer
	trainer    *gesture.Trainer
	spells     *spell.Builder
	spellMu    sync.Mutex
	enabled    bool
	callbacks  []func(m gesture.Match)
	mu         sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	if cfg.Settings == nil {
		cfg.Settings = config.Defaults()
	}

	opts := cfg.Settings.MatchOptions()
	a := &App{
		config:     cfg,
		recognizer: gesture.NewRecognizer(gesture.NewLibrary(), opts),
		trainer:    gesture.NewTrainer(opts),
		spells:     spell.NewBuilder(),
		enabled:    true,
	}
	a.recognizer.OnMatch = logMatch
	return a
}

// SetEnabled enables or disables match callbacks. Recognition still
// returns results while disabled.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether match callbacks are delivered.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// RegisterMatchCallback registers a function called for every match.
func (a *App) RegisterMatchCallback(cb func(m gesture.Match)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callbacks = append(a.callbacks, cb)
}

// Settings returns the settings the app was created with.
func (a *App) Settings() *config.Settings {
	return a.config.Settings
}

// Store returns the backing store, which may be nil.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// LoadTemplates loads every stored template into the library in creation order.
func (a *App) LoadTemplates() error {
	if a.config.Store == nil {
		return nil
	}

	templates, err := a.config.Store.Templates().List()
	if err != nil {
		return err
	}

	lib := gesture.NewLibrary()
	for _, t := range templates {
		strokes, err := a.config.Store.Templates().GetStrokes(t.ID)
		if err != nil {
			log.Printf("Failed to load strokes for %s: %v", t.Name, err)
			continue
		}
		lib.Add(&gesture.Template{ID: t.ID, Name: t.Name, Strokes: strokes})
	}

	a.mu.Lock()
	a.recognizer = gesture.NewRecognizer(lib, a.config.Settings.MatchOptions())
	a.recognizer.OnMatch = logMatch
	a.mu.Unlock()

	log.Printf("Loaded %d templates from database", lib.Len())
	return nil
}

// Templates returns the templates currently in the library.
func (a *App) Templates() []*gesture.Template {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.recognizer.Library().Templates()
}

// Template returns a library template by ID.
func (a *App) Template(id string) (*gesture.Template, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.recognizer.Library().Get(id)
}

// SaveTemplate normalizes the committed strokes into a new template, stores
// it with the raw strokes as samples and appends it to the library.
func (a *App) SaveTemplate(strokes []geometry.Stroke, name string) (*gesture.Template, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.trainer.Train(strokes, name, a.recognizer.Library().Len())
	if err != nil {
		return nil, err
	}
	t.ID = uuid.New().String()

	if s := a.config.Store; s != nil {
		samples := make([]json.RawMessage, 0, len(strokes))
		for _, st := range strokes {
			data, err := json.Marshal(gesture.Sample{Points: st.Points})
			if err != nil {
				return nil, fmt.Errorf("failed to encode sample: %w", err)
			}
			samples = append(samples, data)
		}
		if err := s.Templates().CreateWithStrokes(&store.Template{ID: t.ID, Name: t.Name}, t.Strokes, samples); err != nil {
			return nil, fmt.Errorf("failed to store template: %w", err)
		}
	}

	a.recognizer.Library().Add(t)
	log.Printf("Saved template %q with %d strokes", t.Name, len(t.Strokes))
	return t, nil
}

// RemoveTemplate deletes a template from the store and the library.
func (a *App) RemoveTemplate(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s := a.config.Store; s != nil {
		if err := s.Templates().Delete(id); err != nil {
			return err
		}
	}
	a.recognizer.Library().Remove(id)
	return nil
}

// RenameTemplate changes a template's label. The library gets a renamed
// copy; templates already handed out keep their old name.
func (a *App) RenameTemplate(id, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.recognizer.Library().Get(id)
	if !ok {
		return store.ErrNotFound
	}
	if s := a.config.Store; s != nil {
		if err := s.Templates().Update(&store.Template{ID: id, Name: name}); err != nil {
			return err
		}
	}

	renamed := *current
	renamed.Name = name
	a.recognizer.Library().Replace(&renamed)
	return nil
}

// RetrainTemplate replaces a template's strokes with the normalized form of
// the given JSON samples and stores the samples.
func (a *App) RetrainTemplate(id string, samples []json.RawMessage) (*gesture.Template, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.recognizer.Library().Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	trained, err := a.trainer.TrainSamples(samples, current.Name, 0)
	if err != nil {
		return nil, err
	}

	if s := a.config.Store; s != nil {
		if err := s.Templates().Retrain(id, trained.Strokes, samples); err != nil {
			return nil, fmt.Errorf("failed to store retrained template: %w", err)
		}
	}

	retrained := &gesture.Template{ID: id, Name: current.Name, Strokes: trained.Strokes}
	a.recognizer.Library().Replace(retrained)
	log.Printf("Retrained template %q from %d samples", retrained.Name, len(samples))
	return retrained, nil
}

// Rank returns every template's distance to the stroke, closest first.
func (a *App) Rank(points []geometry.Point2D) []gesture.Match {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rank(points)
}

func (a *App) rank(points []geometry.Point2D) []gesture.Match {
	ranked := a.recognizer.Rank(points)
	for _, m := range ranked {
		log.Printf("Matching %s with distance: %f", m.Template.Name, m.Distance)
	}
	return ranked
}

// Recognize returns the best template for the stroke or nil. Registered
// callbacks receive the match when the app is enabled.
func (a *App) Recognize(points []geometry.Point2D) *gesture.Match {
	_, m := a.RankAndRecognize(points)
	return m
}

// RankAndRecognize ranks the stroke once and returns both the ranking and
// the accepted match, if any. The match is dispatched like Recognize.
func (a *App) RankAndRecognize(points []geometry.Point2D) ([]gesture.Match, *gesture.Match) {
	a.mu.RLock()
	ranked := a.rank(points)
	m := a.recognizer.Best(ranked)
	a.mu.RUnlock()

	if m == nil {
		log.Printf("No template matched %d points", len(points))
		return ranked, nil
	}
	a.dispatch(*m)
	return ranked, m
}

// Analyze runs the stroke analysis with the configured tolerances.
func (a *App) Analyze(stroke geometry.Stroke) geometry.Report {
	return geometry.Analyze(stroke, a.config.Settings.AnalysisOptions())
}

// NewSession starts a live capture buffer using the configured limits.
func (a *App) NewSession() *Session {
	return NewSession(a.config.Settings.MinPointDistance, a.config.Settings.MaxPoints)
}

// Cast adds a stroke to the spell being built. A new spell is started unless
// layer is set and a spell is already in progress. The layer is named after
// the matched template, if any.
func (a *App) Cast(stroke geometry.Stroke, m *gesture.Match, layer bool) spell.Spell {
	a.spellMu.Lock()
	defer a.spellMu.Unlock()

	name := ""
	if m != nil {
		name = m.Template.Name
	}
	strokes := []geometry.Stroke{stroke}
	if layer && len(a.spells.Current().Layers) > 0 {
		a.spells.AddLayer(strokes, name)
		return a.spells.Current()
	}
	return a.spells.BuildNew(strokes, name)
}

// CurrentSpell returns the spell being built.
func (a *App) CurrentSpell() spell.Spell {
	a.spellMu.Lock()
	defer a.spellMu.Unlock()
	return a.spells.Current()
}

// ClearSpell discards the spell being built.
func (a *App) ClearSpell() {
	a.spellMu.Lock()
	defer a.spellMu.Unlock()
	a.spells.Clear()
}

// SaveSpell stores the spell being built and starts a new one.
func (a *App) SaveSpell() (*store.SpellRecord, error) {
	a.spellMu.Lock()
	defer a.spellMu.Unlock()

	current := a.spells.Current()
	if len(current.Layers) == 0 {
		return nil, fmt.Errorf("no spell in progress")
	}
	if a.config.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}

	current.ID = uuid.New().String()
	rec, err := a.config.Store.Spells().Create(&current)
	if err != nil {
		return nil, fmt.Errorf("failed to save spell: %w", err)
	}
	a.spells.Clear()
	log.Printf("Saved spell %q with %d layers", rec.Name, len(rec.Layers))
	return rec, nil
}

func logMatch(m gesture.Match) {
	log.Printf("Gesture matched: %s (score: %.3f)", m.Template.Name, m.Score)
}

func (a *App) dispatch(m gesture.Match) {
	a.mu.RLock()
	enabled := a.enabled
	callbacks := append([]func(gesture.Match){}, a.callbacks...)
	a.mu.RUnlock()

	if !enabled {
		return
	}
	for _, cb := range callbacks {
		cb(m)
	}
}
