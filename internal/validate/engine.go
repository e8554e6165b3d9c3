package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule is a single lazily evaluated check. It returns nil when the check
// passes. Rules must not have side effects.
type Rule func() *Failure

// Run evaluates rules in order and returns the first failure.
func Run(rules ...Rule) Result {
	for _, rule := range rules {
		if f := rule(); f != nil {
			return Result{Field: f.Field, Reason: f.Reason}
		}
	}
	return Valid
}

// Chain combines rules into one rule that short-circuits like Run.
func Chain(rules ...Rule) Rule {
	return func() *Failure {
		for _, rule := range rules {
			if f := rule(); f != nil {
				return f
			}
		}
		return nil
	}
}

// Present fails when value is empty after trimming.
func Present(field, value, reason string) Rule {
	return func() *Failure {
		if strings.TrimSpace(value) == "" {
			return &Failure{Field: field, Reason: reason}
		}
		return nil
	}
}

// Matches fails when value does not match re.
func Matches(field, value string, re *regexp.Regexp, reason string) Rule {
	return func() *Failure {
		if !re.MatchString(value) {
			return &Failure{Field: field, Reason: reason}
		}
		return nil
	}
}

// NotEmpty fails when items has no elements.
func NotEmpty[T any](field string, items []T, reason string) Rule {
	return func() *Failure {
		if len(items) == 0 {
			return &Failure{Field: field, Reason: reason}
		}
		return nil
	}
}

// Each applies the rules produced by fn to every item in order.
func Each[T any](items []T, fn func(i int, item T) Rule) Rule {
	return func() *Failure {
		for i, item := range items {
			if f := fn(i, item)(); f != nil {
				return f
			}
		}
		return nil
	}
}

// XMLText fails when any value holds invalid UTF-8 or a character outside
// the XML 1.0 Char production.
func XMLText(field, reason string, values ...string) Rule {
	return func() *Failure {
		for _, v := range values {
			if !isXMLText(v) {
				return &Failure{Field: field, Reason: reason}
			}
		}
		return nil
	}
}

func isXMLText(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return false
			}
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
