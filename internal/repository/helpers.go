package repository

import (
	"strings"
	"time"
)

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// utc normalizes instants before they reach the store. SQLite compares the
// stored text form, so every value has to carry the same offset.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func clampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
