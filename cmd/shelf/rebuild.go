package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/catalog"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/config"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/index"
)

// RebuildResponse is the response for the rebuild command.
type RebuildResponse struct {
	Status string `json:"status"`
	Books  int    `json:"books"`
	Path   string `json:"path"`
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the catalog file",
	Long: `Rebuild the SQLite index used by 'shelf query' and 'shelf stats --by-genre'.

The index lives in .shelf/index.db next to the catalog file and is rebuilt
automatically when the catalog changes, so this is only needed if the
index gets out of sync or is deleted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	c := mustLoadCatalog()
	db, n := mustOpenIndex(c, true)
	defer db.Close()

	indexPath := config.IndexPath(settings.LibraryFile)
	if humanOutput {
		fmt.Printf("Indexed %d %s into %s\n", n, plural(n, "book"), indexPath)
	} else {
		outputJSON(RebuildResponse{Status: "rebuilt", Books: n, Path: indexPath})
	}

	return nil
}

// mustOpenIndex opens the query index, rebuilding it when force is set
// or when the catalog file has changed since the last rebuild.
// Returns the number of indexed books. The caller must Close the DB.
func mustOpenIndex(c *catalog.Catalog, force bool) (*index.DB, int) {
	indexPath := config.IndexPath(c.Path())
	db, err := index.Open(indexPath)
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}

	hash, err := index.HashFile(c.Path())
	if err != nil {
		db.Close()
		exitWithError(ExitError, "hashing catalog: %v", err)
	}
	stored, err := db.SourceHash()
	if err != nil {
		db.Close()
		exitWithError(ExitError, "reading index: %v", err)
	}

	if !force && stored == hash {
		n, err := db.Count()
		if err != nil {
			db.Close()
			exitWithError(ExitError, "reading index: %v", err)
		}
		logger.Debugw("index up to date", "path", indexPath, "books", n)
		return db, n
	}

	n, err := db.Rebuild(c.List(), hash)
	if err != nil {
		db.Close()
		exitWithError(ExitError, "rebuilding index: %v", err)
	}
	logger.Debugw("index rebuilt", "path", indexPath, "books", n, "forced", force)
	return db, n
}
