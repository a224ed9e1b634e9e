package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen is the longest title accepted, counted in code points.
const MaxTitleLen = 60

// DefaultCategories are offered when the config does not list any.
var DefaultCategories = []string{"general", "work", "personal"}

// Item is the domain model for a list entry.
// ID and CreatedAt are fixed at creation; only Text changes afterwards.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"` // ms since epoch
}

// Created returns CreatedAt as a time.Time.
func (it Item) Created() time.Time { return time.UnixMilli(it.CreatedAt) }

var (
	ErrEmptyTitle      = errors.New("title is empty")
	ErrTitleTooLong    = fmt.Errorf("title longer than %d chars", MaxTitleLen)
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidateTitle trims text and checks it against the title rules.
// Invalid UTF-8 is replaced with U+FFFD so the stored text survives a JSON
// round trip. The cleaned value is returned so callers store exactly what
// was validated.
func ValidateTitle(text string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// ValidateCategory reports ErrUnknownCategory unless category is one of allowed.
func ValidateCategory(category string, allowed []string) error {
	for _, c := range allowed {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrUnknownCategory)
}
