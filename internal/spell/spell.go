// Package spell composes recognized strokes into layered spells.
package spell

import (
	"log"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/ayusman/sigil/internal/geometry"
)

func init() {
	petname.NonDeterministicMode()
}

// Spell is an ordered stack of layers plus modifiers that apply to all of them.
type Spell struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Layers          []Layer  `json:"layers"`
	GlobalModifiers []string `json:"global_modifiers"`
}

// Layer is one gesture's strokes inside a spell.
type Layer struct {
	Name      string            `json:"name"`
	Strokes   []geometry.Stroke `json:"strokes"`
	Modifiers []string          `json:"modifiers"`
}

// Strokes returns every stroke of every layer in drawing order.
func (s *Spell) Strokes() []geometry.Stroke {
	var out []geometry.Stroke
	for _, l := range s.Layers {
		out = append(out, l.Strokes...)
	}
	return out
}

// Builder assembles the spell currently being cast.
type Builder struct {
	current Spell
}

// NewBuilder creates a Builder with an empty spell.
func NewBuilder() *Builder {
	return &Builder{}
}

// RandomName returns a generated spell name such as "brave-otter".
func RandomName() string {
	return petname.Generate(2, "-")
}

// BuildNew discards the current spell and starts a new one whose first layer
// holds strokes. An empty name is replaced with a generated one.
func (b *Builder) BuildNew(strokes []geometry.Stroke, name string) Spell {
	b.Clear()
	if name == "" {
		name = RandomName()
	}
	b.current.Name = name
	b.AddLayer(strokes, name)
	log.Printf("New spell built with initial layer: %s", name)
	return b.Current()
}

// AddLayer appends a layer to the current spell.
func (b *Builder) AddLayer(strokes []geometry.Stroke, name string) {
	if name == "" {
		name = "Unnamed"
	}
	layer := Layer{
		Name:      name,
		Strokes:   make([]geometry.Stroke, len(strokes)),
		Modifiers: []string{},
	}
	for i, s := range strokes {
		layer.Strokes[i] = s.Clone()
	}
	b.current.Layers = append(b.current.Layers, layer)
	log.Printf("Layer '%s' added. Total layers: %d", name, len(b.current.Layers))
}

// Clear removes every layer and modifier.
func (b *Builder) Clear() {
	b.current = Spell{}
}

// Current returns a copy of the spell being built.
func (b *Builder) Current() Spell {
	s := b.current
	s.Layers = append([]Layer(nil), b.current.Layers...)
	s.GlobalModifiers = append([]string{}, b.current.GlobalModifiers...)
	return s
}
