package anon

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/renatgalimov/pipefog/src/errs"
)

var base32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// obfuscateAlphaWord replaces a lowercase word with syllables of the same length.
func obfuscateAlphaWord(word string) string {
	return Render(digestString(strings.ToLower(word)), len(word), SyllableAlphabet)
}

// obfuscateUppercaseWord reuses the lowercase syllable rendering of the word and
// upper-cases it, so "SECRET" and "secret" share their disguise modulo case.
func obfuscateUppercaseWord(word string) string {
	return strings.ToUpper(obfuscateAlphaWord(strings.ToLower(word)))
}

func obfuscateCapitalizedWord(word string) string {
	hashed := obfuscateAlphaWord(strings.ToLower(word))
	if hashed == "" {
		return hashed
	}
	return strings.ToUpper(hashed[:1]) + hashed[1:]
}

// obfuscateSnakeCaseWord hashes the whole word, underscores included, and
// rebuilds the underscore-free core as groups of syllable pairs joined by single
// underscores. The number of groups follows the rough syllable count of the
// letters, bounded so that the result keeps the input length and at least one
// underscore. Leading and trailing underscore runs are kept as they are.
func obfuscateSnakeCaseWord(word string) string {
	core := strings.Trim(word, "_")
	if core == "" {
		return word
	}
	leading := word[:len(word)-len(strings.TrimLeft(word, "_"))]
	trailing := word[len(strings.TrimRight(word, "_")):]

	letters := strings.ReplaceAll(core, "_", "")
	groups := (len(RoughEnglishSyllables(letters)) + 1) / 2

	minGroups := 1
	if leading == "" && trailing == "" {
		// the only underscores are inside the core, one must survive
		minGroups = 2
	}
	maxGroups := (len(core) + 1) / 2
	groups = max(minGroups, min(groups, maxGroups))

	budget := len(core) - (groups - 1)
	cycle := NewByteCycle(digestString(word))
	parts := make([]string, groups)
	for i := range parts {
		size := budget / groups
		if i < budget%groups {
			size++
		}
		parts[i] = renderSyllablePair(cycle, size)
	}
	return leading + strings.Join(parts, "_") + trailing
}

// renderSyllablePair consumes two syllables from cycle, more if they are shorter
// than size, and truncates to size.
func renderSyllablePair(cycle *ByteCycle, size int) string {
	pair := SYLLABLES[cycle.Next()] + SYLLABLES[cycle.Next()]
	if len(pair) < size {
		pair += renderFrom(cycle, size-len(pair), SyllableAlphabet)
	}
	return pair[:size]
}

// obfuscateTitleCaseSentence hashes the sentence once and draws the letters of
// every word from the same byte cycle. Punctuation around words is kept and
// words are joined with single spaces.
func obfuscateTitleCaseSentence(sentence string) string {
	cycle := NewByteCycle(digestString(sentence))
	tokens := strings.Fields(sentence)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		trimmedLeft := strings.TrimLeftFunc(token, func(r rune) bool { return !isASCIIAlpha(r) })
		word := trimNonAlpha(trimmedLeft)
		prefix := token[:len(token)-len(trimmedLeft)]
		suffix := trimmedLeft[len(word):]

		rendered := renderFrom(cycle, len(word), SyllableAlphabet)
		if len(word) == 1 {
			rendered = strings.ToUpper(rendered)
		} else if rendered != "" {
			rendered = strings.ToUpper(rendered[:1]) + rendered[1:]
		}
		out = append(out, prefix+rendered+suffix)
	}
	return strings.Join(out, " ")
}

func obfuscateBase32Lowercase(value string) string {
	return obfuscateBase32(value, strings.ToLower)
}

func obfuscateBase32Uppercase(value string) string {
	return obfuscateBase32(value, strings.ToUpper)
}

// obfuscateBase32 encodes the digest of value as unpadded Base32 in the case
// chosen by fold, cycled or truncated to the input length. At least one digit
// from 2-7 is guaranteed so the result cannot be taken for a plain word.
func obfuscateBase32(value string, fold func(string) string) string {
	digest := digestString(value)
	encoded := fold(base32NoPadding.EncodeToString(digest[:]))

	out := make([]byte, len(value))
	for i := range out {
		out[i] = encoded[i%len(encoded)]
	}
	if !strings.ContainsAny(string(out), "234567") {
		out[int(digest[0])%len(out)] = '2' + digest[1]%6
	}
	return string(out)
}

// obfuscateIso8601ZDatetime shifts the timestamp onto baseline and renders it
// canonically. A shifted year outside 0000-9999 has no canonical form.
func obfuscateIso8601ZDatetime(value string, baseline *TimestampBaseline) (string, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("parse datetime: %w", err)
	}
	shifted := baseline.Translate(t)
	if year := shifted.Year(); year < 0 || year > 9999 {
		return "", fmt.Errorf("shifted year %d: %w", year, errs.ErrDatetimeOutOfRange)
	}
	return shifted.Format(CANONICAL_DATETIME_LAYOUT), nil
}

// obfuscateOther returns the hex SHA3-256 digest of value.
func obfuscateOther(value string) string {
	digest := digestString(value)
	return hex.EncodeToString(digest[:])
}
