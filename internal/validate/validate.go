// Package validate checks untrusted form input against declarative
// per-field rules before it can reach the data layer. All field failures
// are collected, not short-circuited, so a form can be re-rendered with
// every problem at once.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors maps a field name to its first failing rule's message.
type Errors map[string]string

// Charset is the set of runes a field accepts.
type Charset struct {
	Letters bool
	Digits  bool
	Extra   string
}

// Field is one declarative rule set, evaluated in order: min length, max
// length, charset, equality.
type Field struct {
	Name  string
	Label string
	Min   int
	Max   int

	// Unit overrides "characters" in the length messages.
	Unit string

	Charset    *Charset
	CharsetMsg string

	// Optional skips every check when the value is blank, used for
	// update-without-password-change.
	Optional bool

	// EqualTo names another field whose value must match exactly.
	EqualTo  string
	EqualMsg string
}

// Check evaluates every field against the form accessor and returns all
// failures keyed by field name. An empty map means the input is clean.
func Check(form func(string) string, fields []Field) Errors {
	errs := make(Errors)
	for _, f := range fields {
		value := form(f.Name)
		if f.Optional && value == "" {
			continue
		}
		if msg := f.check(value, form); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

func (f Field) check(value string, form func(string) string) string {
	length := utf8.RuneCountInString(value)
	if f.Min > 0 && length < f.Min {
		return minLenMsg(f.Label, f.Min, f.Unit)
	}
	if f.Max > 0 && length > f.Max {
		return maxLenMsg(f.Label, f.Max, f.Unit)
	}
	if f.Charset != nil && !allowedRunes(value, *f.Charset) {
		return f.CharsetMsg
	}
	if f.EqualTo != "" && value != form(f.EqualTo) {
		return f.EqualMsg
	}
	return ""
}

// allowedRunes checks the ASCII classes only; accented letters and
// non-ASCII digit scripts fail the charset rule.
func allowedRunes(value string, cs Charset) bool {
	for _, r := range value {
		switch {
		case cs.Digits && r >= '0' && r <= '9':
		case cs.Letters && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
		case strings.ContainsRune(cs.Extra, r):
		default:
			return false
		}
	}
	return true
}

func minLenMsg(label string, min int, unit string) string {
	if unit == "" {
		unit = "characters"
	}
	return fmt.Sprintf("%s must have at least %d %s", label, min, unit)
}

func maxLenMsg(label string, max int, unit string) string {
	if unit == "" {
		unit = "characters"
	}
	return fmt.Sprintf("%s cannot have more than %d %s", label, max, unit)
}

// ParseID parses a numeric path identifier. A malformed or negative id is
// not a validation error; callers treat it as "no matching route".
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
