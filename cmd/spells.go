package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayusman/sigil/internal/store"
)

var spellsCmd = &cobra.Command{
	Use:   "spells [id]",
	Short: "List saved spells, or show one with its layers",
	Args:  cobra.MaximumNArgs(1),
	Run:   showSpells,
}

func init() {
	rootCmd.AddCommand(spellsCmd)
}

func showSpells(cmd *cobra.Command, args []string) {
	a, done := openApp()
	defer done()

	if len(args) == 1 {
		rec, err := a.Store().Spells().GetByID(args[0])
		if err != nil {
			log.Fatalf("Failed to get spell %s: %v", args[0], err)
		}
		printSpell(os.Stdout, rec)
		return
	}

	spells, err := a.Store().Spells().List()
	if err != nil {
		log.Fatal("Failed to list spells:", err)
	}
	if len(spells) == 0 {
		fmt.Println("No spells saved")
		return
	}
	fmt.Println("Saved spells:")
	for _, s := range spells {
		fmt.Printf("   %s  %s  %s\n", au.Bold(au.Magenta(s.Name)), au.Faint(s.ID), s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printSpell(w io.Writer, rec *store.SpellRecord) {
	fmt.Fprintf(w, "%s  %s\n", au.Bold(au.Magenta(rec.Name)), au.Faint(rec.ID))
	if len(rec.GlobalModifiers) > 0 {
		fmt.Fprintf(w, "  modifiers: %s\n", strings.Join(rec.GlobalModifiers, ", "))
	}
	for i, l := range rec.Layers {
		fmt.Fprintf(w, "  %d. %s (%d stroke(s))\n", i+1, l.Name, len(l.Strokes))
	}
}
