package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/catalog"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/index"
)

var statsByGenre bool

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	catalog.Stats
	Genres []index.GenreCount `json:"genres,omitempty"`
}

func init() {
	statsCmd.Flags().BoolVar(&statsByGenre, "by-genre", false, "Include a per-genre breakdown")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show the total number of books, how many are read, and the percentage read.

Examples:
  shelf stats
  shelf stats --by-genre --human`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	c := mustLoadCatalog()
	resp := StatsResponse{Stats: c.Stats()}

	if statsByGenre {
		db, _ := mustOpenIndex(c, false)
		defer db.Close()

		genres, err := db.GenreBreakdown()
		if err != nil {
			exitWithError(ExitError, "computing genre breakdown: %v", err)
		}
		resp.Genres = genres
	}

	if humanOutput {
		fmt.Println("Library statistics:")
		fmt.Printf("  Total books: %d\n", resp.Total)
		fmt.Printf("  Books read:  %d (%.2f%%)\n", resp.ReadCount, resp.PercentRead)
		if len(resp.Genres) > 0 {
			fmt.Println("\nBy genre:")
			for _, g := range resp.Genres {
				name := g.Genre
				if name == "" {
					name = "(none)"
				}
				fmt.Printf("  %-20s %d read of %d\n", name, g.Read, g.Total)
			}
		}
	} else {
		outputJSON(resp)
	}

	return nil
}
