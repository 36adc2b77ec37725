// Package gesture provides point-cloud normalization and template matching
// for freehand strokes.
package gesture

import (
	"log"
	"sort"

	"github.com/ayusman/sigil/internal/geometry"
)

// DefaultMaxDistance is the largest cloud distance accepted as a match.
const DefaultMaxDistance = 100.0

// Template is a named reference gesture made of one or more strokes.
type Template struct {
	ID      string            `json:"id"`      // Unique identifier for the template
	Name    string            `json:"name"`    // Label, not required to be unique
	Strokes []geometry.Stroke `json:"strokes"` // Normalized strokes in drawing order
}

// Points flattens the template's strokes into a single point sequence by
// concatenation.
func (t *Template) Points() []geometry.Point2D {
	var n int
	for _, s := range t.Strokes {
		n += len(s.Points)
	}
	out := make([]geometry.Point2D, 0, n)
	for _, s := range t.Strokes {
		out = append(out, s.Points...)
	}
	return out
}

// Match is the result of comparing an input cloud with one template.
type Match struct {
	Template *Template // The compared template
	Distance float64   // Cloud distance between input and template
	Score    float64   // 1 / (1 + Distance), higher is better
}

// Library is an ordered list of templates. Matching reads it in order.
type Library struct {
	templates []*Template
}

// NewLibrary creates a library holding the given templates in order.
func NewLibrary(templates ...*Template) *Library {
	l := &Library{templates: make([]*Template, 0, len(templates))}
	for _, t := range templates {
		l.Add(t)
	}
	return l
}

// Add appends a template to the library. Nil templates are ignored.
func (l *Library) Add(t *Template) {
	if t == nil {
		return
	}
	l.templates = append(l.templates, t)
}

// Remove removes a template by its ID.
func (l *Library) Remove(id string) {
	for i, t := range l.templates {
		if t.ID == id {
			l.templates = append(l.templates[:i], l.templates[i+1:]...)
			return
		}
	}
}

// Replace swaps the template with t.ID for t, keeping its position. It
// reports whether a template was replaced. The old value is left untouched
// for callers still holding it.
func (l *Library) Replace(t *Template) bool {
	if t == nil {
		return false
	}
	for i, old := range l.templates {
		if old.ID == t.ID {
			l.templates[i] = t
			return true
		}
	}
	return false
}

// Get returns the template with the given ID.
func (l *Library) Get(id string) (*Template, bool) {
	for _, t := range l.templates {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Templates returns a copy of the library's template list.
func (l *Library) Templates() []*Template {
	out := make([]*Template, len(l.templates))
	copy(out, l.templates)
	return out
}

// Len returns the number of templates.
func (l *Library) Len() int {
	return len(l.templates)
}

// Options controls normalization and the match threshold.
type Options struct {
	Resolution  int     // Points per normalized cloud
	Size        float64 // Side of the normalization square
	MaxDistance float64 // Largest distance accepted as a match
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Resolution:  DefaultResolution,
		Size:        DefaultSize,
		MaxDistance: DefaultMaxDistance,
	}
}

// Recognizer matches strokes against a template library.
type Recognizer struct {
	library *Library
	opts    Options
	OnMatch func(m Match)
}

// NewRecognizer creates a Recognizer over the given library.
func NewRecognizer(library *Library, opts Options) *Recognizer {
	if library == nil {
		library = NewLibrary()
	}
	return &Recognizer{library: library, opts: opts}
}

// Library returns the library the recognizer searches.
func (r *Recognizer) Library() *Library {
	return r.library
}

// Options returns the recognizer's options.
func (r *Recognizer) Options() Options {
	return r.opts
}

// Rank compares the input with every template and returns all candidates
// sorted by ascending distance. Templates with equal distance keep library
// order. Templates that cannot be normalized are skipped.
func (r *Recognizer) Rank(input []geometry.Point2D) []Match {
	if len(input) == 0 || r.library.Len() == 0 {
		return nil
	}

	cloud, err := Normalize(input, r.opts.Resolution, r.opts.Size)
	if err != nil {
		log.Printf("Cannot normalize input stroke: %v", err)
		return nil
	}

	matches := make([]Match, 0, r.library.Len())
	for _, t := range r.library.templates {
		candidate, err := Normalize(t.Points(), r.opts.Resolution, r.opts.Size)
		if err != nil {
			log.Printf("Skipping template %q: %v", t.Name, err)
			continue
		}
		d, err := CloudDistance(cloud, candidate)
		if err != nil {
			log.Printf("Skipping template %q: %v", t.Name, err)
			continue
		}
		matches = append(matches, Match{
			Template: t,
			Distance: d,
			Score:    1.0 / (1.0 + d),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// Recognize returns the closest template whose distance is within the
// threshold, or nil when nothing qualifies. OnMatch is called on a match.
func (r *Recognizer) Recognize(input []geometry.Point2D) *Match {
	return r.Best(r.Rank(input))
}

// Best picks the first of a Rank result when it is within the distance
// threshold, calling OnMatch for it.
func (r *Recognizer) Best(ranked []Match) *Match {
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	if best.Distance > r.opts.MaxDistance {
		return nil
	}
	if r.OnMatch != nil {
		r.OnMatch(best)
	}
	return &best
}

// Recognize matches input against templates with the default resolution and
// size. It returns nil when input or templates is empty or when the closest
// template is farther than maxDistance.
func Recognize(input []geometry.Point2D, templates []*Template, maxDistance float64) *Match {
	opts := DefaultOptions()
	opts.MaxDistance = maxDistance
	return NewRecognizer(NewLibrary(templates...), opts).Recognize(input)
}
