package anon

import (
	"fmt"
	"strings"
)

// SYLLABLE_COUNT is the number of entries in SYLLABLES, one per possible byte value.
const SYLLABLE_COUNT = 256

// SYLLABLES maps a single hash byte to a short lowercase fragment. The table is
// ordered roughly by how rare the fragment is in English text.
var SYLLABLES = [...]string{
	"plac", "most", "sam", "ke", "uth", "arl", "het", "giv", "fa", "first", "own", "li", "van",
	"form", "pres", "ond", "men", "bef", "old", "agr", "must", "two", "ight", "mak", "cons", "nat",
	"den", "rem", "inst", "eb", "itt", "iss", "tak", "ars", "ap", "app", "iz", "wher", "ec", "mad",
	"cont", "pe", "such", "lik", "ung", "rec", "gen", "now", "how", "urs", "wa", "ver", "than", "don",
	"com", "mo", "ught", "pa", "min", "vi", "comm", "sho", "thes", "ents", "then", "aft", "fe", "ek",
	"ha", "ins", "ep", "ich", "acc", "elf", "ans", "can", "ass", "att", "ni", "ex", "work", "par",
	"ef", "te", "part", "ho", "onl", "des", "vo", "tim", "ib", "lo", "has", "tho", "proj", "ert",
	"gre", "ord", "off", "stat", "what", "ort", "der", "eg", "gut", "ach", "art", "si", "ett", "ern",
	"als", "enb", "bo", "ud", "ys", "them", "som", "mor", "act", "unt", "who", "ac", "ak", "ik",
	"ish", "ast", "when", "erg", "po", "ne", "ard", "will", "go", "ugh", "ro", "um", "da", "ens",
	"ow", "ja", "my", "ind", "ok", "op", "wo", "anc", "ill", "abl", "ther", "fo", "she", "av", "him",
	"ot", "oth", "ig", "ov", "its", "ell", "wer", "enc", "ma", "man", "di", "od", "end", "do", "up",
	"re", "no", "im", "le", "ab", "om", "sa", "ul", "ant", "co", "if", "uld", "ist", "hav", "ons",
	"la", "we", "from", "me", "had", "but", "her", "which", "so", "ag", "int", "se", "est", "ol",
	"os", "qu", "un", "this", "ev", "ect", "ers", "iv", "em", "not", "am", "by", "ess", "und", "ad",
	"il", "his", "ir", "all", "for", "was", "id", "de", "with", "et", "that", "be", "ut", "ic", "us",
	"el", "ur", "he", "ent", "as", "or", "al", "ar", "is", "an", "u", "ing", "at", "it", "es", "to",
	"and", "en", "on", "of", "ed", "o", "in", "er", "i", "a", "y", "the", "e",
}

func init() {
	if err := validateSyllableTable(SYLLABLES[:]); err != nil {
		panic(err)
	}
}

func validateSyllableTable(table []string) error {
	if len(table) != SYLLABLE_COUNT {
		return fmt.Errorf("syllable table has %d entries, want %d", len(table), SYLLABLE_COUNT)
	}
	for i, s := range table {
		if s == "" || strings.TrimFunc(s, isASCIILower) != "" {
			return fmt.Errorf("syllable %d (%q) is not a non-empty lowercase ASCII word", i, s)
		}
	}
	return nil
}

// RoughEnglishSyllables splits word into approximate syllables: every vowel
// (a, e, i, o, u, y) closes a syllable together with the consonants that follow
// it. Leading consonants join the next syllable and a trailing consonant run with
// no vowel becomes a syllable of its own.
func RoughEnglishSyllables(word string) []string {
	var syllables []string
	var buffer strings.Builder

	for i := 0; i < len(word); {
		buffer.WriteByte(word[i])
		if !isVowel(word[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(word) && !isVowel(word[j]) {
			buffer.WriteByte(word[j])
			j++
		}
		syllables = append(syllables, buffer.String())
		buffer.Reset()
		i = j
	}

	if buffer.Len() > 0 {
		syllables = append(syllables, buffer.String())
	}
	return syllables
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiouy", c) >= 0
}
