package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <title>",
	Short: "Remove books by title",
	Long: `Remove every book whose title matches exactly, ignoring case.

If two books share a title, both are removed. Nothing is written when no
book matches.

Examples:
  shelf remove "Dune"
  shelf remove dune`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])

	c := mustLoadCatalog()
	removed, err := c.Remove(title)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if removed == 0 {
			fmt.Println("Book not found in the library")
		} else {
			fmt.Printf("Removed %d %s titled %s\n", removed, plural(removed, "book"), quoted(title))
		}
	} else {
		outputJSON(RemoveResponse{Title: title, Removed: removed})
	}

	return nil
}
