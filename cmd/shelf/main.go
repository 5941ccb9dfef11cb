// Package main provides the shelf CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/catalog"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/config"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	libraryFlag string
	verbose     bool
)

// Resolved in setup before any command runs.
var (
	settings config.Settings
	logger   *zap.SugaredLogger = logging.Nop()
)

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Personal book catalog",
	Long: `shelf keeps a small catalog of your books in a single JSON file.

Commands:
  add      Add a book
  remove   Remove every book with a given title
  search   Search by title or author
  list     List all books
  stats    Show how much of the catalog you have read
  query    Filter by genre, year, or read status
  rebuild  Rebuild the query index
  export   Export books as BibTeX
  config   Show or change settings

The catalog file is chosen by --file, then $SHELF_LIBRARY_FILE (also read
from a .env file), then library_file in ~/.config/shelf/config.yml, then
./library.txt.

All commands output JSON by default; use --human for text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVarP(&libraryFlag, "file", "f", "", "Catalog file (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.Version = Version
}

// setup resolves settings and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	s, err := config.Resolve(libraryFlag)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if verbose {
		s.LogLevel = "debug"
	}

	l, err := logging.New(s.LogLevel)
	if err != nil {
		exitWithError(ExitConfigError, "creating logger: %v", err)
	}

	settings = s
	logger = l
	logger.Debugw("settings resolved", "library_file", s.LibraryFile, "source", s.Source, "log_level", s.LogLevel)
	return nil
}

// mustLoadCatalog loads the configured catalog. A missing or unreadable
// file gives an empty catalog; the latter is logged as a warning.
func mustLoadCatalog() *catalog.Catalog {
	c, res := catalog.Load(settings.LibraryFile, catalog.WithLogger(logger))
	if res.Status == catalog.LoadedCorrupt {
		logger.Warnw("catalog file could not be read, starting with an empty catalog",
			"path", settings.LibraryFile, "error", res.Err)
	}
	return c
}
