package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/gesture"
)

var removeCmd = &cobra.Command{
	Use:   "remove [template]",
	Short: "Remove a template by ID or name",
	Run:   removeTemplate,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func removeTemplate(cmd *cobra.Command, args []string) {
	if len(args) <= 0 {
		log.Fatalf("Please specify a template")
	}

	a, done := openApp()
	defer done()

	t := findTemplate(a, args[0])
	if t == nil {
		log.Fatalf("Template not found: %s", args[0])
	}

	if err := a.RemoveTemplate(t.ID); err != nil {
		log.Fatal("Failed to remove template:", err)
	}

	fmt.Println("Removed template:", au.Cyan(t.Name))
}

// findTemplate looks a template up by ID, then by name.
func findTemplate(a *app.App, key string) *gesture.Template {
	if t, ok := a.Template(key); ok {
		return t
	}
	for _, t := range a.Templates() {
		if t.Name == key {
			return t
		}
	}
	return nil
}
