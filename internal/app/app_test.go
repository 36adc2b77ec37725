package app

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ayusman/sigil/internal/config"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
	"github.com/ayusman/sigil/internal/store"
)

func square(side float64) geometry.Stroke {
	corners := []geometry.Point2D{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}, {X: 0, Y: 0}}
	pts := []geometry.Point2D{corners[0]}
	for c := 1; c < len(corners); c++ {
		for i := 1; i <= 20; i++ {
			pts = append(pts, corners[c-1].Lerp(corners[c], float64(i)/20))
		}
	}
	return geometry.Stroke{Points: pts}
}

func line(length float64) geometry.Stroke {
	pts := make([]geometry.Point2D, 0, 21)
	for i := 0; i <= 20; i++ {
		pts = append(pts, geometry.Pt(float64(i)*length/20, float64(i)*length/40))
	}
	return geometry.Stroke{Points: pts}
}

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return New(Config{Store: s, Settings: config.Defaults()}), s
}

// failSampleInserts makes every later insert into stroke_samples abort, so
// the last write of a template save fails after the others succeeded.
func failSampleInserts(t *testing.T, s *store.Store) {
	t.Helper()
	_, err := s.DB().Exec(`CREATE TRIGGER fail_samples BEFORE INSERT ON stroke_samples
		BEGIN SELECT RAISE(ABORT, 'samples unavailable'); END`)
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}
}

func TestApp_SaveAndRecognize(t *testing.T) {
	a, _ := newTestApp(t)

	sq, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	if sq.ID == "" {
		t.Error("saved template should have an ID")
	}
	if _, err := a.SaveTemplate([]geometry.Stroke{line(100)}, ""); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	var matched []string
	a.RegisterMatchCallback(func(m gesture.Match) {
		matched = append(matched, m.Template.Name)
	})

	m := a.Recognize(square(300).Points)
	if m == nil {
		t.Fatal("expected the square to be recognized")
	}
	if m.Template.ID != sq.ID {
		t.Errorf("wrong template matched: %s", m.Template.Name)
	}
	if len(matched) != 1 || matched[0] != "Square" {
		t.Errorf("callback not triggered or wrong template: %v", matched)
	}

	ranked := a.Rank(square(300).Points)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}
	if ranked[1].Template.Name != "Template 1" {
		t.Errorf("expected default name 'Template 1' for second template, got %q", ranked[1].Template.Name)
	}
}

func TestApp_RankAndRecognize(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square"); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	if _, err := a.SaveTemplate([]geometry.Stroke{line(100)}, "Line"); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	calls := 0
	a.RegisterMatchCallback(func(gesture.Match) { calls++ })

	ranked, m := a.RankAndRecognize(square(60).Points)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}
	if m == nil || m.Template != ranked[0].Template || m.Distance != ranked[0].Distance {
		t.Fatalf("match %+v is not the top candidate %+v", m, ranked[0])
	}
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}

	strict := config.Defaults()
	strict.MaxDistance = 1e-9
	s, err := store.New(filepath.Join(t.TempDir(), "strict.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	b := New(Config{Store: s, Settings: strict})
	if _, err := b.SaveTemplate([]geometry.Stroke{square(100)}, "Square"); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	b.RegisterMatchCallback(func(gesture.Match) { calls++ })

	ranked, m = b.RankAndRecognize(line(100).Points)
	if len(ranked) != 1 {
		t.Errorf("ranking should list candidates past the threshold, got %d", len(ranked))
	}
	if m != nil {
		t.Errorf("expected no match past the threshold, got %+v", m)
	}
	if calls != 1 {
		t.Errorf("callback fired without a match, calls = %d", calls)
	}
}

func TestApp_DisabledSkipsCallbacks(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square"); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	called := false
	a.RegisterMatchCallback(func(gesture.Match) { called = true })
	a.SetEnabled(false)

	if m := a.Recognize(square(100).Points); m == nil {
		t.Fatal("recognition should still return a match while disabled")
	}
	if called {
		t.Error("callback should not fire while disabled")
	}
	if a.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
}

func TestApp_LoadTemplates(t *testing.T) {
	a, s := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	samples, err := s.Samples().GetByTemplateID(saved.ID)
	if err != nil {
		t.Fatalf("failed to get samples: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("expected 1 raw sample stored, got %d", len(samples))
	}

	fresh := New(Config{Store: s, Settings: config.Defaults()})
	if err := fresh.LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() error = %v", err)
	}

	templates := fresh.Templates()
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if len(templates[0].Strokes) != 1 || len(templates[0].Strokes[0].Points) != gesture.DefaultResolution {
		t.Errorf("strokes not restored: %+v", templates[0].Strokes)
	}
	if m := fresh.Recognize(square(50).Points); m == nil || m.Template.ID != saved.ID {
		t.Error("expected loaded template to be recognized")
	}
}

func TestApp_RemoveTemplate(t *testing.T) {
	a, s := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	if err := a.RemoveTemplate(saved.ID); err != nil {
		t.Fatalf("RemoveTemplate() error = %v", err)
	}
	if _, ok := a.Template(saved.ID); ok {
		t.Error("template should be gone from the library")
	}
	if _, err := s.Templates().GetByID(saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound from store, got %v", err)
	}
	if err := a.RemoveTemplate(saved.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestApp_SaveTemplate_Degenerate(t *testing.T) {
	a, _ := newTestApp(t)

	dot := geometry.Stroke{Points: []geometry.Point2D{{X: 1, Y: 1}, {X: 1, Y: 1}}}
	if _, err := a.SaveTemplate([]geometry.Stroke{dot}, ""); !errors.Is(err, gesture.ErrDegeneratePath) {
		t.Errorf("expected ErrDegeneratePath, got %v", err)
	}
	if len(a.Templates()) != 0 {
		t.Error("failed save should not add a template")
	}
}

func TestApp_Analyze(t *testing.T) {
	a := New(Config{})

	r := a.Analyze(square(100))
	if r.RightAngleCount < 4 {
		t.Errorf("expected at least 4 right angles, got %d", r.RightAngleCount)
	}
	if !r.Closed {
		t.Error("square should be closed")
	}
}

func TestApp_RenameTemplate(t *testing.T) {
	a, s := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	if err := a.RenameTemplate(saved.ID, "Box"); err != nil {
		t.Fatalf("RenameTemplate() error = %v", err)
	}

	if tmpl, _ := a.Template(saved.ID); tmpl.Name != "Box" {
		t.Errorf("library name = %q, want Box", tmpl.Name)
	}
	stored, err := s.Templates().GetByID(saved.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Name != "Box" {
		t.Errorf("stored name = %q, want Box", stored.Name)
	}
}

func TestApp_RetrainTemplate(t *testing.T) {
	a, s := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{line(100)}, "Shape")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}

	sample, err := json.Marshal(gesture.Sample{Points: square(80).Points})
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}
	if _, err := a.RetrainTemplate(saved.ID, []json.RawMessage{sample}); err != nil {
		t.Fatalf("RetrainTemplate() error = %v", err)
	}

	ranked := a.Rank(square(100).Points)
	if len(ranked) != 1 || ranked[0].Template.ID != saved.ID {
		t.Fatalf("expected the retrained template to rank first, got %+v", ranked)
	}
	if ranked[0].Distance > 0.5 {
		t.Errorf("retrained template should be close to the square, got distance %f", ranked[0].Distance)
	}
	if _, err := a.RetrainTemplate("missing", []json.RawMessage{sample}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	samples, err := s.Samples().GetByTemplateID(saved.ID)
	if err != nil {
		t.Fatalf("failed to get samples: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("expected samples to be replaced, got %d", len(samples))
	}
}

func TestApp_CastAndSaveSpell(t *testing.T) {
	a, s := newTestApp(t)
	sq, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Ward")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	m := &gesture.Match{Template: sq}

	sp := a.Cast(square(100), m, true)
	if sp.Name != "Ward" || len(sp.Layers) != 1 {
		t.Fatalf("first cast should start a spell named after the match: %+v", sp)
	}

	sp = a.Cast(line(50), nil, true)
	if len(sp.Layers) != 2 || sp.Layers[1].Name != "Unnamed" {
		t.Fatalf("expected a second unnamed layer, got %+v", sp.Layers)
	}

	rec, err := a.SaveSpell()
	if err != nil {
		t.Fatalf("SaveSpell() error = %v", err)
	}
	if len(a.CurrentSpell().Layers) != 0 {
		t.Error("saving should start a new spell")
	}

	stored, err := s.Spells().GetByID(rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(stored.Layers) != 2 {
		t.Errorf("expected 2 stored layers, got %d", len(stored.Layers))
	}

	if _, err := a.SaveSpell(); err == nil {
		t.Error("expected error when no spell is in progress")
	}
}

func TestApp_CastWithoutLayerStartsNewSpell(t *testing.T) {
	a := New(Config{})

	a.Cast(square(100), nil, false)
	sp := a.Cast(line(100), nil, false)

	if len(sp.Layers) != 1 {
		t.Errorf("expected a fresh spell with 1 layer, got %d", len(sp.Layers))
	}
	if sp.Name == "" {
		t.Error("unnamed spell should get a generated name")
	}

	a.ClearSpell()
	if len(a.CurrentSpell().Layers) != 0 {
		t.Error("ClearSpell should empty the spell")
	}
}

func TestApp_SaveTemplateFailureStoresNothing(t *testing.T) {
	a, s := newTestApp(t)
	failSampleInserts(t, s)

	if _, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square"); err == nil {
		t.Fatal("expected SaveTemplate to fail when samples cannot be stored")
	}

	if len(a.Templates()) != 0 {
		t.Errorf("library should be unchanged, got %d templates", len(a.Templates()))
	}
	stored, err := s.Templates().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("template row survived a failed save: %+v", stored[0])
	}

	fresh := New(Config{Store: s, Settings: config.Defaults()})
	if err := fresh.LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() error = %v", err)
	}
	if len(fresh.Templates()) != 0 {
		t.Errorf("expected nothing to load, got %d templates", len(fresh.Templates()))
	}
}

func TestApp_RetrainTemplateFailureKeepsTemplate(t *testing.T) {
	a, s := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{line(100)}, "Shape")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	failSampleInserts(t, s)

	sample, err := json.Marshal(gesture.Sample{Points: square(80).Points})
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}
	if _, err := a.RetrainTemplate(saved.ID, []json.RawMessage{sample}); err == nil {
		t.Fatal("expected RetrainTemplate to fail")
	}

	current, _ := a.Template(saved.ID)
	if current != saved {
		t.Error("library template should be unchanged after a failed retrain")
	}
	strokes, err := s.Templates().GetStrokes(saved.ID)
	if err != nil {
		t.Fatalf("GetStrokes() error = %v", err)
	}
	if len(strokes) != 1 || strokes[0].Points[0] != saved.Strokes[0].Points[0] {
		t.Error("stored strokes changed by a failed retrain")
	}
}

func TestApp_UpdatesDoNotMutateHandedOutTemplates(t *testing.T) {
	a, _ := newTestApp(t)
	saved, err := a.SaveTemplate([]geometry.Stroke{square(100)}, "Square")
	if err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	m := a.Recognize(square(50).Points)
	if m == nil {
		t.Fatal("expected a match")
	}

	// Readers hold template pointers outside the app lock.
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, tmpl := range a.Templates() {
				_ = tmpl.Name
				_ = len(tmpl.Strokes)
			}
			_ = m.Template.Name
		}
	}()

	sample, err := json.Marshal(gesture.Sample{Points: line(100).Points})
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}
	for i := 0; i < 20; i++ {
		if err := a.RenameTemplate(saved.ID, "Box"); err != nil {
			t.Fatalf("RenameTemplate() error = %v", err)
		}
		if _, err := a.RetrainTemplate(saved.ID, []json.RawMessage{sample}); err != nil {
			t.Fatalf("RetrainTemplate() error = %v", err)
		}
	}
	close(stop)
	wg.Wait()

	if m.Template.Name != "Square" || saved.Name != "Square" {
		t.Errorf("handed-out templates were mutated: %q, %q", m.Template.Name, saved.Name)
	}
	current, _ := a.Template(saved.ID)
	if current.Name != "Box" {
		t.Errorf("library name = %q, want Box", current.Name)
	}
	if len(a.Templates()) != 1 {
		t.Errorf("expected 1 template, got %d", len(a.Templates()))
	}
}
