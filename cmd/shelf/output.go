package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

// Constants for output formatting.
const (
	ListTitleMaxLen = 60 // Used in list/search/query output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		enc.Encode(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AddResponse is the response for the add command.
type AddResponse struct {
	Status string    `json:"status"`
	Book   book.Book `json:"book"`
}

// RemoveResponse is the response for the remove command.
type RemoveResponse struct {
	Title   string `json:"title"`
	Removed int    `json:"removed"`
}

// formatBook renders one catalog line, numbered from 1.
func formatBook(num int, b book.Book) string {
	status := "Unread"
	if b.Read {
		status = "Read"
	}
	return fmt.Sprintf("%d. %s by %s (%d) - %s - %s",
		num, truncateString(b.Title, ListTitleMaxLen), b.Author, b.Year, b.Genre, status)
}

// printBooksHuman prints books one per line, or empty when there are none.
func printBooksHuman(header, empty string, books []book.Book) {
	if len(books) == 0 {
		fmt.Println(empty)
		return
	}
	fmt.Println(header)
	for i, b := range books {
		fmt.Println(formatBook(i+1, b))
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// plural returns word with an "s" unless n is 1.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// quoted trims and wraps a title for messages.
func quoted(s string) string {
	return "'" + strings.TrimSpace(s) + "'"
}
