// Package pdf pulls book details out of PDF files.
package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// minTitleLen is the shortest first-page line accepted as a title.
const minTitleLen = 4

// Metadata holds the details found in a PDF. Fields may be empty.
type Metadata struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Extract reads the document info dictionary of a PDF. When it has no
// title, the first substantial line of page 1 is used instead.
func Extract(filePath string) (Metadata, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	meta := Metadata{
		Title:  cleanField(info.Key("Title").Text()),
		Author: cleanField(info.Key("Author").Text()),
	}
	if meta.Title != "" || r.NumPage() < 1 {
		return meta, nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return meta, nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return meta, nil // best effort
	}
	meta.Title = titleFromText(text)

	return meta, nil
}

// titleFromText returns the first line that looks like a title.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= minTitleLen && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// cleanField drops placeholder values some tools write into the info dictionary.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "untitled", "unknown", "anonymous":
		return ""
	}
	if strings.HasSuffix(strings.ToLower(s), ".pdf") {
		return ""
	}
	return s
}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "copyright") || strings.Contains(lower, "©") {
		return true
	}
	if strings.Contains(lower, "all rights reserved") {
		return true
	}
	if strings.HasPrefix(lower, "isbn") {
		return true
	}
	if strings.HasPrefix(lower, "page ") {
		return true
	}
	return false
}
