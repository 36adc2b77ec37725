// Package cmd implements the sigil command line.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/config"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/store"
	"github.com/ayusman/sigil/internal/svgio"
)

var (
	dataDir string
	noColor bool
	au      = aurora.NewAurora(true)
)

var rootCmd = &cobra.Command{
	Use:   "sigil",
	Short: "Recognize and analyze drawn strokes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		au = aurora.NewAurora(!noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding settings and templates (default ~/.sigil)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	return config.DefaultDir()
}

// openApp loads settings and the template library. The returned func closes
// the store.
func openApp() (*app.App, func()) {
	dir, err := resolveDataDir()
	if err != nil {
		log.Fatal("Failed to resolve data directory:", err)
	}

	settings, err := config.Load(dir)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	st, err := store.New(config.DatabasePath(dir))
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}

	a := app.New(app.Config{Store: st, Settings: settings})
	if err := a.LoadTemplates(); err != nil {
		st.Close()
		log.Fatal("Failed to load templates:", err)
	}
	return a, func() { st.Close() }
}

func loadSVG(path string) (*svgio.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := svgio.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// joinStrokes concatenates strokes into one point sequence.
func joinStrokes(strokes []geometry.Stroke) []geometry.Point2D {
	var pts []geometry.Point2D
	for _, s := range strokes {
		pts = append(pts, s.Points...)
	}
	return pts
}
