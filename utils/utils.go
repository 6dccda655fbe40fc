package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeString lowercases s and trims surrounding whitespace.
// Inner spaces are kept because several triggers are multi-word phrases.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// TitleCase capitalizes every whitespace separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// IsQuitCommand reports whether input ends an interactive session.
func IsQuitCommand(input string) bool {
	switch NormalizeString(input) {
	case "quit", "exit", "bye":
		return true
	}
	return false
}
