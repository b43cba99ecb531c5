package anon

import (
	"encoding/hex"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// DecodeHumaniseInput interprets raw as hex when, with whitespace removed, it is
// a non-empty even-length hex string. Otherwise raw is returned unchanged.
func DecodeHumaniseInput(raw []byte) []byte {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(raw))
	if stripped == "" || len(stripped)%2 != 0 {
		return raw
	}
	decoded, err := hex.DecodeString(stripped)
	if err != nil {
		return raw
	}
	return decoded
}

type SyllableCount struct {
	Syllable string
	Count    int
}

var wordRegex = regexp.MustCompile(`[A-Za-z]+`)

// CountSyllables counts the rough syllables of every ASCII word in text, words
// lower-cased first. The result is sorted by syllable.
func CountSyllables(text string) []SyllableCount {
	freq := make(map[string]int)
	for _, word := range wordRegex.FindAllString(text, -1) {
		for _, syllable := range RoughEnglishSyllables(strings.ToLower(word)) {
			freq[syllable]++
		}
	}

	keys := lo.Keys(freq)
	slices.Sort(keys)
	return lo.Map(keys, func(k string, _ int) SyllableCount {
		return SyllableCount{Syllable: k, Count: freq[k]}
	})
}
