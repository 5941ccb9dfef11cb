// Package export renders catalog books in citation formats.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/areeba-awan/Personal-CLI-Library-Management-System/internal/book"
)

// ToBibTeX converts a book to a BibTeX @book entry with the given key.
func ToBibTeX(b book.Book, key string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("@book{%s,\n", key))

	if b.Author != "" {
		sb.WriteString(fmt.Sprintf("  author = {%s},\n", escapeLatex(b.Author)))
	}
	sb.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(b.Title)))
	sb.WriteString(fmt.Sprintf("  year = {%d},\n", b.Year))

	if b.Genre != "" {
		sb.WriteString(fmt.Sprintf("  keywords = {%s},\n", escapeLatex(b.Genre)))
	}

	sb.WriteString("}\n")

	return sb.String()
}

// ToBibTeXList converts books to BibTeX, giving each a unique cite key.
func ToBibTeXList(books []book.Book) string {
	seen := make(map[string]bool, len(books))
	entries := make([]string, 0, len(books))
	for _, b := range books {
		key := uniqueKey(seen, CiteKey(b))
		seen[key] = true
		entries = append(entries, ToBibTeX(b, key))
	}
	return strings.Join(entries, "\n")
}

// CiteKey builds a key from the author's last name and the year,
// e.g. "Herbert1965". Books without an author use the first title word.
func CiteKey(b book.Book) string {
	base := lastWord(b.Author)
	if base == "" {
		base = firstWord(b.Title)
	}
	if base == "" {
		base = "book"
	}
	return fmt.Sprintf("%s%d", base, b.Year)
}

// uniqueKey returns base, or base-2, base-3, ... if already taken.
func uniqueKey(seen map[string]bool, base string) string {
	if !seen[base] {
		return base
	}
	// Start at 2: base is taken, so first duplicate becomes base-2
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !seen[candidate] {
			return candidate
		}
	}
}

func lastWord(s string) string {
	words := strings.Fields(keyChars(s))
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

func firstWord(s string) string {
	words := strings.Fields(keyChars(s))
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

// keyChars keeps letters, digits and spaces, which are safe in cite keys.
func keyChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
