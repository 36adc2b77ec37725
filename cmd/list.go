package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored templates",
	Run:   listTemplates,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listTemplates(cmd *cobra.Command, args []string) {
	a, done := openApp()
	defer done()

	templates, err := a.Store().Templates().List()
	if err != nil {
		log.Fatal("Failed to list templates:", err)
	}
	printTemplates(os.Stdout, templates)
}

func printTemplates(w io.Writer, templates []*store.Template) {
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates stored")
		return
	}

	fmt.Fprintln(w, "Stored templates:")
	for _, t := range templates {
		fmt.Fprintf(w, "   %s  %s  %d stroke(s)\n", au.Bold(au.Cyan(t.Name)), au.Faint(t.ID), t.Strokes)
	}
}
