package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/config"
	"github.com/ayusman/sigil/internal/hook"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the hooks run when a template is recognized",
	Run:   listHooks,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
}

func listHooks(cmd *cobra.Command, args []string) {
	dir, err := resolveDataDir()
	if err != nil {
		log.Fatal("Failed to resolve data directory:", err)
	}

	mgr := hook.NewManager(config.HooksPath(dir))
	if err := mgr.Discover(); err != nil {
		log.Fatal("Failed to discover hooks:", err)
	}
	printHooks(os.Stdout, mgr.HookDir(), mgr.List())
}

func printHooks(w io.Writer, dir string, hooks []*hook.Hook) {
	if len(hooks) == 0 {
		fmt.Fprintf(w, "No hooks in %s\n", dir)
		return
	}

	fmt.Fprintln(w, "Hooks:")
	for _, h := range hooks {
		templates := "all templates"
		if len(h.Manifest.Templates) > 0 {
			templates = strings.Join(h.Manifest.Templates, ", ")
		}
		fmt.Fprintf(w, "   %s  %s\n", au.Bold(au.Cyan(h.Manifest.Name)), au.Faint(templates))
		if h.Manifest.Description != "" {
			fmt.Fprintf(w, "      %s\n", h.Manifest.Description)
		}
	}
}
