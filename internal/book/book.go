// Package book defines the catalog record and its construction from user input.
package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Book is a single catalog entry. Title is the natural key.
type Book struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	Year   int    `json:"year" validate:"gte=-9999,lte=9999"`
	Genre  string `json:"genre"`
	Read   bool   `json:"read"`
}

// ErrInvalidYear is returned when a year cannot be parsed as an integer.
var ErrInvalidYear = errors.New("year must be an integer")

// ValidationError describes a field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = validator.New()

// New builds a book from typed values, trimming the text fields.
func New(title, author string, year int, genre string, read bool) (Book, error) {
	b := Book{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Year:   year,
		Genre:  strings.TrimSpace(genre),
		Read:   read,
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Parse builds a book from raw text input as typed at a prompt or on the
// command line. The year must be an integer; it is never coerced.
func Parse(title, author, year, genre, read string) (Book, error) {
	y, err := ParseYear(year)
	if err != nil {
		return Book{}, err
	}
	return New(title, author, y, genre, ParseReadStatus(read))
}

// Validate checks the struct constraints on b.
func (b Book) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating book: %w", err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Reason: "must not be empty", Err: err}
	case "gte", "lte":
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%v is out of range", fe.Value()), Err: err}
	default:
		return &ValidationError{Field: field, Reason: fe.Tag(), Err: err}
	}
}

// ParseYear parses a publication year. Surrounding whitespace is ignored.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "year", Reason: fmt.Sprintf("%q is not an integer", s), Err: ErrInvalidYear}
	}
	return y, nil
}

// ParseReadStatus interprets a yes/no answer. Anything not affirmative is unread.
func ParseReadStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true
	default:
		return false
	}
}

// Status returns "read" or "unread".
func (b Book) Status() string {
	if b.Read {
		return "read"
	}
	return "unread"
}
