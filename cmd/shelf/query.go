package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/index"
)

var (
	queryGenre  string
	queryYear   string
	queryRead   bool
	queryUnread bool
	queryLimit  int
)

func init() {
	queryCmd.Flags().StringVarP(&queryGenre, "genre", "g", "", "Filter by genre (exact, ignoring case)")
	queryCmd.Flags().StringVar(&queryYear, "year", "", "Filter by year: exact (1965), range (1960:1970), or open (1960: or :1970)")
	queryCmd.Flags().BoolVar(&queryRead, "read", false, "Only books you have read")
	queryCmd.Flags().BoolVar(&queryUnread, "unread", false, "Only books you have not read")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum results to return (0 = all)")
	queryCmd.MarkFlagsMutuallyExclusive("read", "unread")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter books by genre, year, or read status",
	Long: `Filter the catalog using the SQLite index.

Year syntax:
  --year 1965         - Exact year
  --year 1960:1970    - Range (inclusive)
  --year 1960:        - 1960 and later
  --year :1960        - 1960 and earlier
  --year=-400:0       - Year 0 and negative years work; use = before a leading -

Examples:
  shelf query --genre scifi --unread
  shelf query --year 1800:1899 --human`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	filter := index.Filter{
		Genre: strings.TrimSpace(queryGenre),
		Limit: queryLimit,
	}

	if queryYear != "" {
		from, to, err := parseYearRange(queryYear)
		if err != nil {
			exitWithError(ExitDataError, "invalid year format: %v", err)
		}
		filter.YearFrom = from
		filter.YearTo = to
	}

	switch {
	case queryRead:
		read := true
		filter.Read = &read
	case queryUnread:
		read := false
		filter.Read = &read
	}

	c := mustLoadCatalog()
	db, _ := mustOpenIndex(c, false)
	defer db.Close()

	books, err := db.Query(filter)
	if err != nil {
		exitWithError(ExitError, "querying: %v", err)
	}

	if humanOutput {
		printBooksHuman(fmt.Sprintf("Found %d %s:", len(books), plural(len(books), "book")), "No matching books found", books)
	} else {
		outputJSON(books)
	}

	return nil
}

// parseYearRange parses a year specification into optional from/to bounds.
// Supported formats: "1965", "1960:1970", "1960:", ":1970". Year 0 and
// negative years are valid bounds; nil means open.
func parseYearRange(spec string) (from, to *int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if p := strings.TrimSpace(parts[0]); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid start year %q", parts[0])
			}
			from = &n
		}

		if p := strings.TrimSpace(parts[1]); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid end year %q", parts[1])
			}
			to = &n
		}

		if from != nil && to != nil && *from > *to {
			return nil, nil, fmt.Errorf("start year %d is after end year %d", *from, *to)
		}
		return from, to, nil
	}

	year, err := strconv.Atoi(spec)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid year %q", spec)
	}

	return &year, &year, nil
}
