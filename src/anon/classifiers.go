package anon

import (
	"strings"
	"time"
)

// CANONICAL_DATETIME_LAYOUT is the only rendering accepted and produced for
// ISO8601_Z_DATETIME values.
const CANONICAL_DATETIME_LAYOUT = "2006-01-02T15:04:05Z"

// BASE32_MIN_LENGTH is the length a value must exceed to be considered Base32.
const BASE32_MIN_LENGTH = 16

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIIAlpha(r rune) bool { return isASCIILower(r) || isASCIIUpper(r) }

func isBase32Digit(r rune) bool { return r >= '2' && r <= '7' }

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func all(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// IsAlphaWord reports whether s is a non-empty run of ASCII lowercase letters.
func IsAlphaWord(s string) bool {
	return s != "" && all(s, isASCIILower)
}

// IsUppercaseWord reports whether s is a non-empty run of ASCII uppercase letters.
func IsUppercaseWord(s string) bool {
	return s != "" && all(s, isASCIIUpper)
}

// IsCapitalizedWord reports whether s is an ASCII uppercase letter followed by
// zero or more ASCII lowercase letters.
func IsCapitalizedWord(s string) bool {
	if s == "" || !isASCIIUpper(rune(s[0])) {
		return false
	}
	return all(s[1:], isASCIILower)
}

// IsSnakeCaseWord reports whether s consists of ASCII lowercase letters and
// underscores with at least one underscore. Leading and trailing underscores are allowed.
func IsSnakeCaseWord(s string) bool {
	if s == "" {
		return false
	}
	hasUnderscore := false
	for _, r := range s {
		if r == '_' {
			hasUnderscore = true
		} else if !isASCIILower(r) {
			return false
		}
	}
	return hasUnderscore
}

// IsTitleCaseSentence reports whether s has more than one whitespace separated
// token and every token, once stripped of surrounding non-letters, is a single
// uppercase letter or a capitalized word.
func IsTitleCaseSentence(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return false
	}
	for _, token := range tokens {
		word := trimNonAlpha(token)
		if word == "" {
			return false
		}
		if len(word) == 1 {
			if !IsUppercaseWord(word) {
				return false
			}
		} else if !IsCapitalizedWord(word) {
			return false
		}
	}
	return true
}

func trimNonAlpha(token string) string {
	return strings.TrimFunc(token, func(r rune) bool { return !isASCIIAlpha(r) })
}

// IsIso8601ZDatetime reports whether s is an RFC 3339 timestamp in UTC whose
// canonical rendering (CANONICAL_DATETIME_LAYOUT) is exactly s. Fractional
// seconds and numeric offsets are rejected.
func IsIso8601ZDatetime(s string) bool {
	if !strings.HasSuffix(s, "Z") {
		return false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return false
	}
	return t.UTC().Format(CANONICAL_DATETIME_LAYOUT) == s
}

// IsBase32Lowercase reports whether s is longer than BASE32_MIN_LENGTH and drawn
// from a-z and 2-7 only.
func IsBase32Lowercase(s string) bool {
	return len(s) > BASE32_MIN_LENGTH && all(s, func(r rune) bool {
		return isASCIILower(r) || isBase32Digit(r)
	})
}

// IsBase32Uppercase reports whether s is longer than BASE32_MIN_LENGTH and drawn
// from A-Z and 2-7 only.
func IsBase32Uppercase(s string) bool {
	return len(s) > BASE32_MIN_LENGTH && all(s, func(r rune) bool {
		return isASCIIUpper(r) || isBase32Digit(r)
	})
}
