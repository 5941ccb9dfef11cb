// Package integration provides integration tests for shelf commands.
package integration

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	shelfBinary     string
	shelfBinaryOnce sync.Once
	shelfBinaryErr  error
)

// getShelfBinary builds the shelf binary once and returns its path.
func getShelfBinary(t *testing.T) string {
	t.Helper()
	shelfBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			shelfBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "shelf-test-*")
		if err != nil {
			shelfBinaryErr = err
			return
		}
		shelfBinary = filepath.Join(tmpDir, "shelf")

		cmd := exec.Command("go", "build", "-o", shelfBinary, "./cmd/shelf")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			shelfBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if shelfBinaryErr != nil {
		t.Fatalf("failed to build shelf: %v", shelfBinaryErr)
	}
	return shelfBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

type book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Read   bool   `json:"read"`
}

// env isolates a run from the user's config and environment.
type env struct {
	dir     string
	library string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0755); err != nil {
		t.Fatal(err)
	}
	return env{dir: dir, library: filepath.Join(dir, "library.txt")}
}

// run executes shelf and returns stdout and the exit code.
func (e env) run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(getShelfBinary(t), append([]string{"--file", e.library}, args...)...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(e.dir, "config"),
		"SHELF_LIBRARY_FILE=",
		"SHELF_LOG_LEVEL=",
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode()
		}
		t.Fatalf("running shelf %v: %v", args, err)
	}
	return string(out), 0
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, code := e.run(t, args...)
	if code != 0 {
		t.Fatalf("shelf %v exited %d: %s", args, code, out)
	}
	return out
}

func decodeBooks(t *testing.T, out string) []book {
	t.Helper()
	var books []book
	if err := json.Unmarshal([]byte(out), &books); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	return books
}

func TestAddListRemove(t *testing.T) {
	e := newEnv(t)

	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965", "--genre", "SciFi", "--read")
	e.mustRun(t, "add", "Dune", "--author", "Doe", "--year", "2020", "--genre", "SciFi")

	books := decodeBooks(t, e.mustRun(t, "list"))
	if len(books) != 2 {
		t.Fatalf("list returned %d books, want 2", len(books))
	}
	if books[0].Author != "Herbert" || !books[0].Read {
		t.Errorf("first book = %+v", books[0])
	}
	if books[1].Author != "Doe" || books[1].Read {
		t.Errorf("second book = %+v", books[1])
	}

	var removed struct {
		Removed int `json:"removed"`
	}
	if err := json.Unmarshal([]byte(e.mustRun(t, "remove", "dune")), &removed); err != nil {
		t.Fatalf("decoding remove output: %v", err)
	}
	if removed.Removed != 2 {
		t.Errorf("removed = %d, want 2", removed.Removed)
	}

	if books := decodeBooks(t, e.mustRun(t, "list")); len(books) != 0 {
		t.Errorf("list after remove returned %d books, want 0", len(books))
	}
}

func TestFileFormat(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "Emma", "--author", "Jane Austen", "--year", "1815", "--genre", "Classic")

	data, err := os.ReadFile(e.library)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("catalog file is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("file has %d entries, want 1", len(raw))
	}
	for _, key := range []string{"title", "author", "year", "genre", "read"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("entry missing key %q", key)
		}
	}
	if year, ok := raw[0]["year"].(float64); !ok || year != 1815 {
		t.Errorf("year = %v, want integer 1815", raw[0]["year"])
	}
}

func TestAdd_InvalidYear(t *testing.T) {
	e := newEnv(t)
	_, code := e.run(t, "add", "Dune", "--author", "Herbert", "--year", "nineteen")
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if _, err := os.Stat(e.library); !os.IsNotExist(err) {
		t.Error("catalog file should not be created for invalid input")
	}
}

func TestRemove_NotFound(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965")

	out := e.mustRun(t, "--human", "remove", "Emma")
	if !strings.Contains(out, "not found") {
		t.Errorf("output = %q, want not found message", out)
	}
}

func TestSearch(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965")
	e.mustRun(t, "add", "Emma", "--author", "Jane Austen", "--year", "1815")

	books := decodeBooks(t, e.mustRun(t, "search", "her", "--field", "author"))
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("search author=her = %+v, want [Dune]", books)
	}

	if books := decodeBooks(t, e.mustRun(t, "search", "zzz")); len(books) != 0 {
		t.Errorf("search zzz = %+v, want empty", books)
	}

	if _, code := e.run(t, "search", "x", "--field", "genre"); code != 3 {
		t.Errorf("search with bad field exit code = %d, want 3", code)
	}
}

func TestStats(t *testing.T) {
	e := newEnv(t)

	var empty struct {
		Total       int     `json:"total"`
		ReadCount   int     `json:"read_count"`
		PercentRead float64 `json:"percent_read"`
	}
	if err := json.Unmarshal([]byte(e.mustRun(t, "stats")), &empty); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if empty.Total != 0 || empty.ReadCount != 0 || empty.PercentRead != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965", "--genre", "SciFi", "--read")
	e.mustRun(t, "add", "Emma", "--author", "Austen", "--year", "1815", "--genre", "Classic")

	var stats struct {
		Total       int     `json:"total"`
		ReadCount   int     `json:"read_count"`
		PercentRead float64 `json:"percent_read"`
		Genres      []struct {
			Genre string `json:"genre"`
			Total int    `json:"total"`
		} `json:"genres"`
	}
	if err := json.Unmarshal([]byte(e.mustRun(t, "stats", "--by-genre")), &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.Total != 2 || stats.ReadCount != 1 || stats.PercentRead != 50 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.Genres) != 2 {
		t.Errorf("genres = %+v, want 2 entries", stats.Genres)
	}
}

func TestQuery_TracksCatalogChanges(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965", "--genre", "SciFi", "--read")

	if books := decodeBooks(t, e.mustRun(t, "query", "--genre", "scifi")); len(books) != 1 {
		t.Fatalf("query returned %d books, want 1", len(books))
	}

	// The index must notice the new book without an explicit rebuild.
	e.mustRun(t, "add", "Neuromancer", "--author", "Gibson", "--year", "1984", "--genre", "SciFi")
	books := decodeBooks(t, e.mustRun(t, "query", "--genre", "scifi", "--unread"))
	if len(books) != 1 || books[0].Title != "Neuromancer" {
		t.Errorf("query --unread = %+v, want [Neuromancer]", books)
	}

	books = decodeBooks(t, e.mustRun(t, "query", "--year", "1960:1970"))
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Errorf("query --year = %+v, want [Dune]", books)
	}

	e.mustRun(t, "rebuild")
	if _, err := os.Stat(filepath.Join(e.dir, ".shelf", "index.db")); err != nil {
		t.Errorf("index not created: %v", err)
	}
}

func TestCorruptCatalogStartsEmpty(t *testing.T) {
	e := newEnv(t)
	if err := os.WriteFile(e.library, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if books := decodeBooks(t, e.mustRun(t, "list")); len(books) != 0 {
		t.Errorf("list on corrupt file = %+v, want empty", books)
	}
}

func TestConfigSetAndShow(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "config", "set", "log_level", "info")

	var cfg struct {
		LogLevel string `json:"log_level"`
		Source   string `json:"source"`
	}
	if err := json.Unmarshal([]byte(e.mustRun(t, "config", "show")), &cfg); err != nil {
		t.Fatalf("decoding config show: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", cfg.LogLevel)
	}
	if cfg.Source != "flag" {
		t.Errorf("source = %q, want flag", cfg.Source)
	}

	if _, code := e.run(t, "config", "set", "log_level", "loud"); code != 2 {
		t.Errorf("invalid log level exit code = %d, want 2", code)
	}
}

func (e env) writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, "config", "shelf", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigSetKeepsTildePath(t *testing.T) {
	e := newEnv(t)
	path := e.writeConfig(t, "library_file: ~/books.json\n")

	e.mustRun(t, "config", "set", "log_level", "info")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "library_file: ~/books.json") {
		t.Errorf("config after set = %q, want library_file kept as ~/books.json", data)
	}
}

func TestConfigSetReplacesUnreadableConfig(t *testing.T) {
	e := newEnv(t)
	path := e.writeConfig(t, "library_file: [unterminated\n")

	var resp struct {
		Status   string `json:"status"`
		Replaced bool   `json:"replaced"`
	}
	if err := json.Unmarshal([]byte(e.mustRun(t, "config", "set", "log_level", "info")), &resp); err != nil {
		t.Fatalf("decoding config set: %v", err)
	}
	if !resp.Replaced {
		t.Errorf("replaced = false, want true for an unreadable config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "log_level: info") {
		t.Errorf("config after set = %q, want log_level: info", data)
	}
}

func TestQueryYearZeroAndNegative(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "add", "Zero", "--author", "A", "--year", "0", "--genre", "Myth")
	e.mustRun(t, "add", "Dune", "--author", "Herbert", "--year", "1965", "--genre", "SciFi")
	e.mustRun(t, "add", "Anabasis", "--author", "Xenophon", "--year=-370", "--genre", "History")

	tests := []struct {
		year string
		want []string
	}{
		{"0", []string{"Zero"}},
		{"0:100", []string{"Zero"}},
		{":-1", []string{"Anabasis"}},
		{"-400:0", []string{"Zero", "Anabasis"}},
	}
	for _, tt := range tests {
		books := decodeBooks(t, e.mustRun(t, "query", "--year="+tt.year))
		got := make([]string, len(books))
		for i, b := range books {
			got[i] = b.Title
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("query --year=%s = %v, want %v", tt.year, got, tt.want)
		}
	}
}
