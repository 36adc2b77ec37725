// Package fixtures embeds sample strokes used by tests and demos.
package fixtures

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ayusman/sigil/internal/svgio"
)

//go:embed strokes/*.svg
var strokesFS embed.FS

// Load loads a fixture by name, without the .svg extension.
func Load(name string) (*svgio.Document, error) {
	f, err := strokesFS.Open("strokes/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", name, err)
	}
	defer f.Close()

	doc, err := svgio.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return doc, nil
}

// Names lists every embedded fixture in alphabetical order.
func Names() ([]string, error) {
	entries, err := strokesFS.ReadDir("strokes")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names, nil
}

// LoadAll loads every fixture, in the order returned by Names.
func LoadAll() ([]*svgio.Document, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}

	docs := make([]*svgio.Document, 0, len(names))
	for _, name := range names {
		doc, err := Load(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
