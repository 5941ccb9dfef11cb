package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/pdf"
)

var (
	addAuthor string
	addYear   string
	addGenre  string
	addRead   string
	addPDF    string
)

func init() {
	addCmd.Flags().StringVarP(&addAuthor, "author", "a", "", "Author name")
	addCmd.Flags().StringVarP(&addYear, "year", "y", "", "Publication year (integer)")
	addCmd.Flags().StringVarP(&addGenre, "genre", "g", "", "Genre")
	addCmd.Flags().StringVar(&addRead, "read", "no", "Whether you have read it (yes/no)")
	addCmd.Flags().Lookup("read").NoOptDefVal = "yes"
	addCmd.Flags().StringVar(&addPDF, "pdf", "", "Fill in title and author from a PDF's metadata")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a book to the catalog",
	Long: `Add a book to the end of the catalog and save it.

Books with the same title may be added more than once. The year must be
an integer. With --pdf, a missing title or author is taken from the PDF.

Examples:
  shelf add "Dune" --author "Frank Herbert" --year 1965 --genre SciFi --read
  shelf add --pdf ~/books/dune.pdf --year 1965 --genre SciFi`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	author := addAuthor

	if addPDF != "" {
		meta, err := pdf.Extract(addPDF)
		if err != nil {
			exitWithError(ExitError, "reading PDF %s: %v", addPDF, err)
		}
		logger.Debugw("pdf metadata", "path", addPDF, "title", meta.Title, "author", meta.Author)
		if title == "" {
			title = meta.Title
		}
		if author == "" {
			author = meta.Author
		}
	}

	b, err := book.Parse(title, author, addYear, addGenre, addRead)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	c := mustLoadCatalog()
	added, err := c.Add(b)
	if err != nil {
		var verr *book.ValidationError
		if errors.As(err, &verr) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Added %s by %s\n", quoted(added.Title), added.Author)
	} else {
		outputJSON(AddResponse{Status: "added", Book: added})
	}

	return nil
}
