package apiutil

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be greater than 0"}
	}
	return value, nil
}

// IDFromPath parses a positive integer path segment registered with the
// given pattern name.
func IDFromPath(r *http.Request, name string) (int64, error) {
	return ParsePositiveInt64Field(r.PathValue(name), name)
}

// ParseDateField accepts only the YYYY-MM-DD layout used across the store.
func ParseDateField(raw string, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", FieldError{Field: field, Reason: "must be a valid date (YYYY-MM-DD)"}
	}
	return raw, nil
}
