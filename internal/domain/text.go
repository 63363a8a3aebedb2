package domain

import "strings"

// msgNUL is the field message for text Postgres cannot store.
const msgNUL = "must not contain NUL characters"

// HasNUL reports whether s contains a 0x00 byte. Postgres text columns
// reject it.
func HasNUL(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// CheckText appends a field error to errs when s holds a NUL byte.
func CheckText(errs []FieldError, field, s string) []FieldError {
	if HasNUL(s) {
		return append(errs, FieldError{Field: field, Message: msgNUL})
	}
	return errs
}

// CheckTextPtr is CheckText for optional fields.
func CheckTextPtr(errs []FieldError, field string, s *string) []FieldError {
	if s == nil {
		return errs
	}
	return CheckText(errs, field, *s)
}
