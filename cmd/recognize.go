package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/gesture"
)

var recognizeTop int

var recognizeCmd = &cobra.Command{
	Use:   "recognize [svg]",
	Short: "Match the strokes of an SVG file against the stored templates",
	Args:  cobra.ExactArgs(1),
	Run:   recognizeFile,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().IntVarP(&recognizeTop, "top", "t", 3, "number of candidates to show")
}

func recognizeFile(cmd *cobra.Command, args []string) {
	doc, err := loadSVG(args[0])
	if err != nil {
		log.Fatal(err)
	}

	a, done := openApp()
	defer done()

	points := joinStrokes(doc.Strokes)
	ranked, match := a.RankAndRecognize(points)
	printMatches(os.Stdout, match, ranked, recognizeTop)
}

func printMatches(w io.Writer, match *gesture.Match, ranked []gesture.Match, top int) {
	if match == nil {
		fmt.Fprintln(w, au.Yellow("No template matched"))
	} else {
		fmt.Fprintf(w, "Matched %s (distance %.3f, score %.3f)\n",
			au.Bold(au.Green(match.Template.Name)), match.Distance, match.Score)
	}

	if len(ranked) == 0 || top <= 0 {
		return
	}
	fmt.Fprintln(w, "Candidates:")
	for i, m := range ranked {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %d. %-20s %8.3f\n", i+1, m.Template.Name, m.Distance)
	}
}
