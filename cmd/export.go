package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
	"github.com/ayusman/sigil/internal/store"
	"github.com/ayusman/sigil/internal/svgio"
)

var exportCmd = &cobra.Command{
	Use:   "export [template] [file]",
	Short: "Write a template's recorded strokes as SVG",
	Long: `Writes the raw strokes a template was trained from. Templates without
stored samples are written in their normalized form. The SVG goes to stdout
when no file is given.`,
	Args: cobra.RangeArgs(1, 2),
	Run:  exportTemplate,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func exportTemplate(cmd *cobra.Command, args []string) {
	a, done := openApp()
	defer done()

	t := findTemplate(a, args[0])
	if t == nil {
		log.Fatalf("Template not found: %s", args[0])
	}

	samples, err := a.Store().Samples().GetByTemplateID(t.ID)
	if err != nil {
		log.Fatal("Failed to load samples:", err)
	}

	strokes, err := sampleStrokes(samples)
	if err != nil {
		log.Fatal("Failed to decode samples:", err)
	}
	if len(strokes) == 0 {
		strokes = t.Strokes
	}

	data := svgio.Encode(t.Name, strokes)
	if len(args) < 2 {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		log.Fatal("Failed to write SVG:", err)
	}
	fmt.Printf("Exported %s to %s\n", au.Cyan(t.Name), args[1])
}

func sampleStrokes(samples []store.Sample) ([]geometry.Stroke, error) {
	strokes := make([]geometry.Stroke, 0, len(samples))
	for _, s := range samples {
		var sample gesture.Sample
		if err := json.Unmarshal(s.Data, &sample); err != nil {
			return nil, fmt.Errorf("failed to parse sample %d: %w", s.SampleIndex, err)
		}
		strokes = append(strokes, geometry.NewStroke(sample.Points))
	}
	return strokes, nil
}
