// Package index keeps an ephemeral SQLite copy of the catalog for
// filtered queries. The JSON file stays the source of truth; the
// database can be deleted and rebuilt at any time.
package index

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

const (
	sourceHashKey    = "source_hash"
	schemaVersionKey = "schema_version"

	// Bump when the books table changes; older indexes are dropped.
	schemaVersion = "2"
)

// DB wraps a SQLite database connection.
type DB struct {
	db    *sql.DB
	lower cases.Caser
}

// Filter narrows a Query. Zero values and nil pointers mean no restriction.
type Filter struct {
	Genre    string // case-insensitive equality
	YearFrom *int   // inclusive
	YearTo   *int   // inclusive
	Read     *bool
	Limit    int
}

// GenreCount is a per-genre tally.
type GenreCount struct {
	Genre string `json:"genre"`
	Total int    `json:"total"`
	Read  int    `json:"read"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, lower: cases.Lower(language.Und)}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`); err != nil {
		return err
	}

	var version string
	err := db.QueryRow("SELECT value FROM meta WHERE key = ?", schemaVersionKey).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version != schemaVersion {
		// Forget the source hash too so the next command rebuilds.
		if _, err := db.Exec("DROP TABLE IF EXISTS books"); err != nil {
			return fmt.Errorf("dropping old index: %w", err)
		}
		if _, err := db.Exec("DELETE FROM meta WHERE key = ?", sourceHashKey); err != nil {
			return fmt.Errorf("clearing source hash: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS books (
			position INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			year INTEGER NOT NULL,
			genre TEXT NOT NULL,
			genre_key TEXT NOT NULL,
			read INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_books_genre_key ON books(genre_key);
		CREATE INDEX IF NOT EXISTS idx_books_year ON books(year);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		schemaVersionKey, schemaVersion,
	)
	return err
}

// Rebuild replaces the indexed books and records the hash of the
// catalog file they came from.
func (d *DB) Rebuild(books []book.Book, sourceHash string) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM books"); err != nil {
		return 0, fmt.Errorf("clearing books table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO books (position, title, author, year, genre, genre_key, read)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range books {
		if _, err := stmt.Exec(i, b.Title, b.Author, b.Year, b.Genre, d.genreKey(b.Genre), boolToInt(b.Read)); err != nil {
			return 0, fmt.Errorf("inserting book %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		sourceHashKey, sourceHash,
	); err != nil {
		return 0, fmt.Errorf("recording source hash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(books), nil
}

// SourceHash returns the catalog hash recorded at the last rebuild,
// or "" if the index has never been built.
func (d *DB) SourceHash() (string, error) {
	var hash string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = ?", sourceHashKey).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading source hash: %w", err)
	}
	return hash, nil
}

// Count returns the number of indexed books.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return n, nil
}

// Query returns books matching f in catalog order.
func (d *DB) Query(f Filter) ([]book.Book, error) {
	var conditions []string
	var args []any

	if f.Genre != "" {
		conditions = append(conditions, "genre_key = ?")
		args = append(args, d.genreKey(f.Genre))
	}
	if f.YearFrom != nil {
		conditions = append(conditions, "year >= ?")
		args = append(args, *f.YearFrom)
	}
	if f.YearTo != nil {
		conditions = append(conditions, "year <= ?")
		args = append(args, *f.YearTo)
	}
	if f.Read != nil {
		conditions = append(conditions, "read = ?")
		args = append(args, boolToInt(*f.Read))
	}

	query := "SELECT title, author, year, genre, read FROM books"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY position"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		var b book.Book
		var read int
		if err := rows.Scan(&b.Title, &b.Author, &b.Year, &b.Genre, &read); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.Read = read != 0
		books = append(books, b)
	}
	return books, rows.Err()
}

// GenreBreakdown tallies books per genre, ordered by genre name.
// Genres differing only in case are grouped together.
func (d *DB) GenreBreakdown() ([]GenreCount, error) {
	rows, err := d.db.Query(`
		SELECT MIN(genre), COUNT(*), SUM(read)
		FROM books
		GROUP BY genre_key
		ORDER BY genre_key
	`)
	if err != nil {
		return nil, fmt.Errorf("querying genres: %w", err)
	}
	defer rows.Close()

	counts := []GenreCount{}
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Total, &gc.Read); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err()
}

// HashFile computes a SHA256 hash of a file's contents.
// A missing file hashes as empty content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// genreKey is the lowercased genre used for matching and grouping.
func (d *DB) genreKey(genre string) string {
	return d.lower.String(strings.TrimSpace(genre))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
