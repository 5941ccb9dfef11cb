package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

// LoadStatus reports how a catalog file was read.
type LoadStatus int

const (
	// LoadedFromFile means the file existed and parsed.
	LoadedFromFile LoadStatus = iota
	// LoadedMissing means there was no file; the catalog starts empty.
	LoadedMissing
	// LoadedCorrupt means the file could not be read or parsed; the catalog starts empty.
	LoadedCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadedFromFile:
		return "loaded"
	case LoadedMissing:
		return "missing"
	case LoadedCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult is the outcome of reading a catalog file.
// Err is set only when Status is LoadedCorrupt.
type LoadResult struct {
	Status LoadStatus
	Err    error
}

// readFile reads a JSON array of books. A missing file or bad content
// yields an empty slice with the matching status, never an error.
func readFile(path string) ([]book.Book, LoadResult) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []book.Book{}, LoadResult{Status: LoadedMissing}
		}
		return []book.Book{}, LoadResult{Status: LoadedCorrupt, Err: fmt.Errorf("reading catalog: %w", err)}
	}

	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return []book.Book{}, LoadResult{Status: LoadedCorrupt, Err: fmt.Errorf("parsing catalog: %w", err)}
	}
	if books == nil {
		// "null" is valid JSON
		books = []book.Book{}
	}

	return books, LoadResult{Status: LoadedFromFile}
}

// writeFile replaces path with the JSON encoding of books.
// Uses temp file + rename so a crash never leaves a partial file.
func writeFile(path string, books []book.Book) error {
	if books == nil {
		books = []book.Book{}
	}
	data, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
