package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/render"
)

var (
	analyzeDraw  bool
	analyzeWidth int
	analyzeOut   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [svg]",
	Short: "Report lines, right angles and self-intersections of each stroke",
	Args:  cobra.ExactArgs(1),
	Run:   analyzeFile,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVarP(&analyzeDraw, "draw", "d", false, "draw each analyzed stroke inline (iTerm2)")
	analyzeCmd.Flags().IntVar(&analyzeWidth, "width", 320, "inline image width in pixels")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write a PNG preview of all strokes to this file")
}

func analyzeFile(cmd *cobra.Command, args []string) {
	doc, err := loadSVG(args[0])
	if err != nil {
		log.Fatal(err)
	}

	a, done := openApp()
	defer done()

	var markers []geometry.Point2D
	for i, s := range doc.Strokes {
		report := a.Analyze(s)
		fmt.Printf("%s %d\n", au.Bold("Stroke"), i+1)
		printReport(os.Stdout, report)

		if analyzeDraw {
			img := render.DrawReport(s, report, render.PreviewSize)
			if err := render.Cat(img, os.Stdout, analyzeWidth); err != nil {
				log.Printf("Failed to draw stroke %d: %v", i+1, err)
			}
		}
		markers = append(markers, report.RightAngles...)
	}

	if analyzeOut != "" {
		data, err := render.PNG(doc.Strokes, markers, render.PreviewSize)
		if err != nil {
			log.Fatal("Failed to render preview:", err)
		}
		if err := os.WriteFile(analyzeOut, data, 0644); err != nil {
			log.Fatal("Failed to write preview:", err)
		}
		fmt.Println("Wrote preview to", analyzeOut)
	}
}

func yesNo(b bool) interface{} {
	if b {
		return au.Green("yes")
	}
	return au.Red("no")
}

func printReport(w io.Writer, r geometry.Report) {
	fmt.Fprintf(w, "  points:          %d\n", r.Points)
	fmt.Fprintf(w, "  length:          %.1f\n", r.PathLength)
	fmt.Fprintf(w, "  straight line:   %v\n", yesNo(r.ContainsLine))
	fmt.Fprintf(w, "  right angles:    %d\n", r.RightAngleCount)
	fmt.Fprintf(w, "  intersections:   %d\n", len(r.Intersections))
	fmt.Fprintf(w, "  closed:          %v\n", yesNo(r.Closed))
	fmt.Fprintf(w, "  simplified to:   %d points\n", len(r.Simplified))
	fmt.Fprintf(w, "  aspect ratio:    %.2f\n", r.AspectRatio)
	fmt.Fprintf(w, "  direction:       %.1f°\n", r.AverageDirection)
}
