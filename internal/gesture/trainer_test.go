package gesture

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ayusman/sigil/internal/geometry"
)

func TestTrainer_Train(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	strokes := []geometry.Stroke{
		{Points: squarePoints(100)},
		{Points: linePoints(10)},
	}

	tmpl, err := trainer.Train(strokes, "", 3)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	if tmpl.Name != "Template 3" {
		t.Errorf("expected default name 'Template 3', got %q", tmpl.Name)
	}
	if len(tmpl.Strokes) != 2 {
		t.Fatalf("expected 2 strokes, got %d", len(tmpl.Strokes))
	}
	for i, s := range tmpl.Strokes {
		if len(s.Points) != DefaultResolution {
			t.Errorf("stroke %d has %d points, expected %d", i, len(s.Points), DefaultResolution)
		}
		box := geometry.BoundingBox(s.Points)
		if box.Width() > DefaultSize+1e-9 || box.Height() > DefaultSize+1e-9 {
			t.Errorf("stroke %d not scaled into unit square: %v", i, box)
		}
	}
}

func TestTrainer_Train_KeepsName(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	tmpl, err := trainer.Train([]geometry.Stroke{{Points: linePoints(5)}}, "Slash", 0)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if tmpl.Name != "Slash" {
		t.Errorf("expected name 'Slash', got %q", tmpl.Name)
	}
}

func TestTrainer_Train_Degenerate(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	strokes := []geometry.Stroke{
		{Points: linePoints(5)},
		{Points: []geometry.Point2D{{X: 2, Y: 2}, {X: 2, Y: 2}}},
	}

	_, err := trainer.Train(strokes, "", 0)
	if !errors.Is(err, ErrDegeneratePath) {
		t.Errorf("expected ErrDegeneratePath, got %v", err)
	}
}

func TestTrainer_Train_Empty(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	if _, err := trainer.Train(nil, "", 0); err == nil {
		t.Error("expected error for no strokes")
	}
}

func TestTrainer_TrainSamples(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	samples := []json.RawMessage{
		json.RawMessage(`{"points": [{"x": 0, "y": 0}, {"x": 10, "y": 0}, {"x": 10, "y": 10}], "timestamp": 1000}`),
	}

	tmpl, err := trainer.TrainSamples(samples, "Corner", 0)
	if err != nil {
		t.Fatalf("TrainSamples() error = %v", err)
	}
	if len(tmpl.Strokes) != 1 || len(tmpl.Strokes[0].Points) != DefaultResolution {
		t.Errorf("unexpected template shape: %d strokes", len(tmpl.Strokes))
	}
}

func TestTrainer_ParseSamples_Errors(t *testing.T) {
	trainer := NewTrainer(DefaultOptions())

	tests := []struct {
		name    string
		samples []json.RawMessage
	}{
		{"empty", nil},
		{"invalid json", []json.RawMessage{json.RawMessage(`{"points": [`)}},
		{"one point", []json.RawMessage{json.RawMessage(`{"points": [{"x": 1, "y": 1}]}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := trainer.ParseSamples(tt.samples)
			if !errors.Is(err, ErrInvalidSample) {
				t.Errorf("expected ErrInvalidSample, got %v", err)
			}
		})
	}
}
