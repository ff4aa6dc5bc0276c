package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"spendwise/internal/analysis"
	"spendwise/internal/repository"
)

// sanitizeUTF8 removes invalid UTF-8 sequences from string
// This prevents PostgreSQL encoding errors when saving text
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// cleanNotes trims and sanitizes free-text notes. Blank notes become nil.
func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	cleaned := strings.TrimSpace(sanitizeUTF8(*notes))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// monthFilter limits an expense listing to one "YYYY-MM" month.
// An empty month yields an unbounded filter.
func monthFilter(month string) (repository.ExpenseFilter, error) {
	if month == "" {
		return repository.ExpenseFilter{}, nil
	}
	start, err := analysis.ParseMonth(month, time.UTC)
	if err != nil {
		return repository.ExpenseFilter{}, fmt.Errorf("parse month: %w", err)
	}
	return repository.ExpenseFilter{From: start, To: start.AddDate(0, 1, 0)}, nil
}

func utcDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
