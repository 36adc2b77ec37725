// Package hook runs external executables when a template is recognized.
package hook

import (
	"encoding/json"

	"github.com/ayusman/sigil/internal/gesture"
)

// Manifest describes a hook and the templates it reacts to.
type Manifest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Executable  string          `json:"executable"`
	Templates   []string        `json:"templates"` // template names; empty means all
	MinScore    float64         `json:"min_score,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Request is written to a hook's stdin.
type Request struct {
	Template   string          `json:"template"`
	TemplateID string          `json:"template_id"`
	Distance   float64         `json:"distance"`
	Score      float64         `json:"score"`
	Config     json.RawMessage `json:"config,omitempty"`
}

// Response is read from a hook's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Handles reports whether the hook should run for the match.
func (h *Hook) Handles(m gesture.Match) bool {
	if m.Score < h.Manifest.MinScore {
		return false
	}
	if len(h.Manifest.Templates) == 0 {
		return true
	}
	for _, name := range h.Manifest.Templates {
		if name == m.Template.Name {
			return true
		}
	}
	return false
}

// NewRequest builds the request sent to the hook for a match.
func (h *Hook) NewRequest(m gesture.Match) *Request {
	return &Request{
		Template:   m.Template.Name,
		TemplateID: m.Template.ID,
		Distance:   m.Distance,
		Score:      m.Score,
		Config:     h.Manifest.Config,
	}
}
