package main

import (
	"strings"
	"testing"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

func TestFormatBook(t *testing.T) {
	b := book.Book{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "SciFi", Read: true}
	got := formatBook(1, b)
	want := "1. Dune by Herbert (1965) - SciFi - Read"
	if got != want {
		t.Errorf("formatBook() = %q, want %q", got, want)
	}

	b.Read = false
	if got := formatBook(2, b); !strings.HasSuffix(got, "- Unread") || !strings.HasPrefix(got, "2. ") {
		t.Errorf("formatBook() = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ééééééééééé", 6, "ééé..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "book"); got != "book" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "book"); got != "books" {
		t.Errorf("plural(0) = %q", got)
	}
	if got := plural(3, "book"); got != "books" {
		t.Errorf("plural(3) = %q", got)
	}
}
