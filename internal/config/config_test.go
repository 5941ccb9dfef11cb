package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Precedence(t *testing.T) {
	home := useConfigHome(t)
	writeGlobalConfig(t, home, "library_file: /from/config.json\nlog_level: info\n")

	tests := []struct {
		name       string
		flag       string
		env        string
		wantFile   string
		wantSource string
	}{
		{"flag wins", "/from/flag.json", "/from/env.json", "/from/flag.json", "flag"},
		{"env over config", "", "/from/env.json", "/from/env.json", "env"},
		{"config when nothing else", "", "", "/from/config.json", "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLibraryFile, tt.env)
			t.Setenv(EnvLogLevel, "")

			s, err := Resolve(tt.flag)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if s.LibraryFile != tt.wantFile {
				t.Errorf("LibraryFile = %q, want %q", s.LibraryFile, tt.wantFile)
			}
			if s.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", s.Source, tt.wantSource)
			}
			if s.LogLevel != "info" {
				t.Errorf("LogLevel = %q, want info", s.LogLevel)
			}
		})
	}
}

func TestResolve_ExpandsTildeFromConfig(t *testing.T) {
	home := useConfigHome(t)
	writeGlobalConfig(t, home, "library_file: ~/books.json\n")
	t.Setenv(EnvLibraryFile, "")
	t.Setenv(EnvLogLevel, "")

	userHome, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	s, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := filepath.Join(userHome, "books.json"); s.LibraryFile != want {
		t.Errorf("LibraryFile = %q, want %q", s.LibraryFile, want)
	}
	if s.Source != "config" {
		t.Errorf("Source = %q, want config", s.Source)
	}
}

func TestResolve_Defaults(t *testing.T) {
	useConfigHome(t)
	t.Setenv(EnvLibraryFile, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.LibraryFile != DefaultLibraryFile {
		t.Errorf("LibraryFile = %q, want %q", s.LibraryFile, DefaultLibraryFile)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", s.LogLevel, DefaultLogLevel)
	}
	if s.Source != "default" {
		t.Errorf("Source = %q, want default", s.Source)
	}
}

func TestResolve_EnvLogLevel(t *testing.T) {
	useConfigHome(t)
	t.Setenv(EnvLogLevel, "DEBUG")

	s, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestResolve_InvalidLogLevel(t *testing.T) {
	useConfigHome(t)
	t.Setenv(EnvLogLevel, "loud")

	if _, err := Resolve(""); err == nil {
		t.Error("Resolve() expected error for invalid log level")
	}
}

func TestIndexPath(t *testing.T) {
	got := IndexPath("/data/books/library.txt")
	want := filepath.Join("/data/books", ".shelf", "index.db")
	if got != want {
		t.Errorf("IndexPath() = %q, want %q", got, want)
	}

	if got := IndexPath("library.txt"); got != filepath.Join(".shelf", "index.db") {
		t.Errorf("IndexPath(relative) = %q", got)
	}
}

func TestGlobalConfig_GetSet(t *testing.T) {
	cfg := &GlobalConfig{}

	if err := cfg.Set(KeyLibraryFile, "/x.json"); err != nil {
		t.Fatalf("Set(library_file) error = %v", err)
	}
	if err := cfg.Set(KeyLogLevel, "ERROR"); err != nil {
		t.Fatalf("Set(log_level) error = %v", err)
	}

	if v, _ := cfg.Get(KeyLibraryFile); v != "/x.json" {
		t.Errorf("Get(library_file) = %q", v)
	}
	if v, _ := cfg.Get(KeyLogLevel); v != "error" {
		t.Errorf("Get(log_level) = %q, want error", v)
	}

	if err := cfg.Set(KeyLogLevel, "verbose"); err == nil {
		t.Error("Set(log_level, verbose) expected error")
	}
	if err := cfg.Set(KeyLibraryFile, ""); err == nil {
		t.Error("Set(library_file, \"\") expected error")
	}
	if err := cfg.Set("color", "blue"); err == nil {
		t.Error("Set(color) expected error")
	}
	if _, err := cfg.Get("color"); err == nil {
		t.Error("Get(color) expected error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/books.json", filepath.Join(home, "books.json")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
