// Package catalog owns the in-memory book list and keeps it in sync with
// its JSON file. Every mutation rewrites the whole file.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

// Field selects which book attribute a search matches against.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldAny    Field = "any" // title or author
)

// ErrUnknownField is returned by ParseField for unsupported search fields.
var ErrUnknownField = errors.New("unknown search field")

// ParseField converts a user-supplied field name.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldTitle, FieldAuthor, FieldAny:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: title, author, any)", ErrUnknownField, s)
	}
}

// Stats summarizes the catalog.
type Stats struct {
	Total       int     `json:"total"`
	ReadCount   int     `json:"read_count"`
	PercentRead float64 `json:"percent_read"`
}

// Catalog is an ordered list of books bound to a file path.
// It is not safe for concurrent use.
type Catalog struct {
	path  string
	books []book.Book
	log   *zap.SugaredLogger
	lower cases.Caser
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

func newCatalog(path string, books []book.Book, opts []Option) *Catalog {
	c := &Catalog{
		path:  path,
		books: books,
		log:   zap.NewNop().Sugar(),
		lower: cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads the catalog at path. It always returns a usable catalog;
// the result says whether the file was missing or unreadable.
func Load(path string, opts ...Option) (*Catalog, LoadResult) {
	books, res := readFile(path)
	c := newCatalog(path, books, opts)
	c.log.Debugw("catalog loaded", "path", path, "status", res.Status.String(), "books", len(books))
	return c, res
}

// New returns a catalog holding books that has not been saved yet.
func New(path string, books []book.Book, opts ...Option) *Catalog {
	cp := make([]book.Book, len(books))
	copy(cp, books)
	return newCatalog(path, cp, opts)
}

// Path returns the file the catalog is saved to.
func (c *Catalog) Path() string {
	return c.path
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// Save writes the full catalog to its file.
func (c *Catalog) Save() error {
	if err := writeFile(c.path, c.books); err != nil {
		return err
	}
	c.log.Debugw("catalog saved", "path", c.path, "books", len(c.books))
	return nil
}

// Add validates b, appends it and saves. If saving fails the book stays
// in memory and the save error is returned, so Save can be retried.
func (c *Catalog) Add(b book.Book) (book.Book, error) {
	if err := b.Validate(); err != nil {
		return book.Book{}, err
	}

	c.books = append(c.books, b)
	if err := c.Save(); err != nil {
		return b, fmt.Errorf("saving after add: %w", err)
	}
	return b, nil
}

// Remove deletes every book whose title equals title, ignoring case.
// Titles are compared lowercased, so "Straße" and "Strasse" stay distinct.
// Storage is rewritten only when something was removed.
func (c *Catalog) Remove(title string) (int, error) {
	key := c.lower.String(title)

	kept := make([]book.Book, 0, len(c.books))
	for _, b := range c.books {
		if c.lower.String(b.Title) != key {
			kept = append(kept, b)
		}
	}

	removed := len(c.books) - len(kept)
	if removed == 0 {
		c.log.Debugw("no books matched", "title", title)
		return 0, nil
	}

	c.books = kept
	if err := c.Save(); err != nil {
		return removed, fmt.Errorf("saving after remove: %w", err)
	}
	return removed, nil
}

// Search returns books whose field contains query, ignoring case,
// in catalog order. No match yields an empty slice.
func (c *Catalog) Search(field Field, query string) ([]book.Book, error) {
	if _, err := ParseField(string(field)); err != nil {
		return nil, err
	}

	q := c.lower.String(query)
	results := []book.Book{}
	for _, b := range c.books {
		if c.matches(b, field, q) {
			results = append(results, b)
		}
	}
	return results, nil
}

func (c *Catalog) matches(b book.Book, field Field, q string) bool {
	switch field {
	case FieldTitle:
		return strings.Contains(c.lower.String(b.Title), q)
	case FieldAuthor:
		return strings.Contains(c.lower.String(b.Author), q)
	default:
		return strings.Contains(c.lower.String(b.Title), q) ||
			strings.Contains(c.lower.String(b.Author), q)
	}
}

// List returns a copy of all books in insertion order.
func (c *Catalog) List() []book.Book {
	out := make([]book.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Stats counts books and read books.
func (c *Catalog) Stats() Stats {
	s := Stats{Total: len(c.books)}
	for _, b := range c.books {
		if b.Read {
			s.ReadCount++
		}
	}
	if s.Total > 0 {
		s.PercentRead = float64(s.ReadCount) / float64(s.Total) * 100
	}
	return s
}
