package gesture

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayusman/sigil/internal/geometry"
)

// ErrInvalidSample is returned for malformed or empty training input.
var ErrInvalidSample = errors.New("invalid sample")

// Trainer turns committed strokes into normalized templates.
type Trainer struct {
	Resolution int
	Size       float64
}

// NewTrainer creates a Trainer that normalizes with the given options.
func NewTrainer(opts Options) *Trainer {
	return &Trainer{
		Resolution: opts.Resolution,
		Size:       opts.Size,
	}
}

// Sample is a recorded stroke as sent by a client.
type Sample struct {
	Points    []geometry.Point2D `json:"points"`
	Timestamp int64              `json:"timestamp,omitempty"`
}

// DefaultName returns the label given to an unnamed template saved into a
// library that already holds n templates.
func DefaultName(n int) string {
	return fmt.Sprintf("Template %d", n)
}

// Train normalizes every stroke independently and returns them as a new
// template. An empty name becomes DefaultName(librarySize).
func (t *Trainer) Train(strokes []geometry.Stroke, name string, librarySize int) (*Template, error) {
	if len(strokes) == 0 {
		return nil, fmt.Errorf("no strokes provided: %w", ErrInvalidSample)
	}
	if name == "" {
		name = DefaultName(librarySize)
	}

	normalized := make([]geometry.Stroke, 0, len(strokes))
	for i, s := range strokes {
		cloud, err := Normalize(s.Points, t.Resolution, t.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize stroke %d: %w", i, err)
		}
		normalized = append(normalized, geometry.Stroke{Points: cloud})
	}

	return &Template{
		Name:    name,
		Strokes: normalized,
	}, nil
}

// ParseSamples decodes raw JSON samples into strokes.
func (t *Trainer) ParseSamples(samples []json.RawMessage) ([]geometry.Stroke, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided: %w", ErrInvalidSample)
	}

	strokes := make([]geometry.Stroke, 0, len(samples))
	for i, raw := range samples {
		var sample Sample
		if err := json.Unmarshal(raw, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w: %w", i, ErrInvalidSample, err)
		}
		if len(sample.Points) < 2 {
			return nil, fmt.Errorf("sample %d has insufficient points: %w", i, ErrInvalidSample)
		}
		strokes = append(strokes, geometry.NewStroke(sample.Points))
	}
	return strokes, nil
}

// TrainSamples parses raw JSON samples and trains a template from them.
func (t *Trainer) TrainSamples(samples []json.RawMessage, name string, librarySize int) (*Template, error) {
	strokes, err := t.ParseSamples(samples)
	if err != nil {
		return nil, err
	}
	return t.Train(strokes, name, librarySize)
}
