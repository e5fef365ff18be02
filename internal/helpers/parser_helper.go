package helpers

import (
	"strconv"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
	"github.com/google/uuid"
)

// ParseAmount reads a non-negative base-10 integer. Surrounding whitespace and a
// leading '+' are accepted.
func ParseAmount(text string) (int64, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, apperr.InvalidInput(apperr.CodeInvalidAmount, "amount is empty")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, apperr.InvalidInput(apperr.CodeInvalidAmount, "amount %q is not a non-negative integer", text)
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput(apperr.CodeInvalidAmount, "amount %q out of range", text)
	}
	return v, nil
}

// SplitFullName cuts a display name at its first space: the first token is the
// given name and everything after it is the family name.
func SplitFullName(fullName string) (first, last string, err error) {
	name := strings.TrimSpace(fullName)
	first, last, ok := strings.Cut(name, " ")
	if !ok {
		return "", "", apperr.InvalidInput(apperr.CodeInvalidName, "full name %q has no space to split on", fullName)
	}
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return "", "", apperr.InvalidInput(apperr.CodeInvalidName, "full name %q has an empty part", fullName)
	}
	return first, last, nil
}

// ParseID reads a path or body identifier.
func ParseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperr.InvalidInput(apperr.CodeRequired, "invalid %s %q", field, raw)
	}
	return id, nil
}
