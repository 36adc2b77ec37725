package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import [svg...]",
	Short: "Save the polylines of SVG files as templates",
	Long: `Each file becomes one template holding all of its polylines and polygons.
The template is named by --name, the SVG <title>, or the file name.`,
	Args: cobra.MinimumNArgs(1),
	Run:  importTemplates,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "template name (single file only)")
}

func importTemplates(cmd *cobra.Command, args []string) {
	if importName != "" && len(args) > 1 {
		log.Fatalf("--name can only be used with a single file")
	}

	a, done := openApp()
	defer done()

	for _, path := range args {
		doc, err := loadSVG(path)
		if err != nil {
			log.Fatal(err)
		}

		name := templateName(importName, doc.Title, path)
		t, err := a.SaveTemplate(doc.Strokes, name)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", path, err)
		}
		fmt.Printf("Imported %s as %s (%d stroke(s))\n", path, au.Cyan(t.Name), len(t.Strokes))
	}
}

// templateName picks the first non-empty of the flag, the title and the file's base name.
func templateName(flag, title, path string) string {
	if flag != "" {
		return flag
	}
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
