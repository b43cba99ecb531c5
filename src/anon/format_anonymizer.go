package anon

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"

	"github.com/renatgalimov/pipefog/src/errs"
)

// Rule pairs a format class with its predicate. Rules are evaluated in order
// and the first match wins, several predicates overlap (a single uppercase
// letter is both an uppercase word and a capitalized word).
type Rule struct {
	Class   FormatClass
	Matches func(string) bool

	obfuscate func(a *FormatAnonymizer, value string) (string, error)
}

func pure(fn func(string) string) func(*FormatAnonymizer, string) (string, error) {
	return func(_ *FormatAnonymizer, value string) (string, error) {
		return fn(value), nil
	}
}

var rules = []Rule{
	{Class: ALPHA_WORD, Matches: IsAlphaWord, obfuscate: pure(obfuscateAlphaWord)},
	{Class: UPPERCASE_WORD, Matches: IsUppercaseWord, obfuscate: pure(obfuscateUppercaseWord)},
	{Class: CAPITALIZED_WORD, Matches: IsCapitalizedWord, obfuscate: pure(obfuscateCapitalizedWord)},
	{Class: SNAKE_CASE_WORD, Matches: IsSnakeCaseWord, obfuscate: pure(obfuscateSnakeCaseWord)},
	{Class: TITLE_CASE_SENTENCE, Matches: IsTitleCaseSentence, obfuscate: pure(obfuscateTitleCaseSentence)},
	{Class: ISO8601_Z_DATETIME, Matches: IsIso8601ZDatetime, obfuscate: func(a *FormatAnonymizer, value string) (string, error) {
		return obfuscateIso8601ZDatetime(value, a.baseline)
	}},
	{Class: BASE32_LOWERCASE, Matches: IsBase32Lowercase, obfuscate: pure(obfuscateBase32Lowercase)},
	{Class: BASE32_UPPERCASE, Matches: IsBase32Uppercase, obfuscate: pure(obfuscateBase32Uppercase)},
}

var otherRule = Rule{
	Class:     OTHER,
	Matches:   func(string) bool { return true },
	obfuscate: pure(obfuscateOther),
}

// Rules returns the classifier rules in priority order, OTHER excluded.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classes returns every format class in priority order, OTHER last.
func Classes() []FormatClass {
	classes := lo.Map(rules, func(r Rule, _ int) FormatClass { return r.Class })
	return append(classes, OTHER)
}

func selectRule(value string) Rule {
	// every predicate is ASCII-only, anything else is opaque text
	if !isASCII(value) {
		return otherRule
	}
	for _, r := range rules {
		if r.Matches(value) {
			return r
		}
	}
	return otherRule
}

func ruleFor(class FormatClass) (Rule, bool) {
	if class == OTHER {
		return otherRule, true
	}
	for _, r := range rules {
		if r.Class == class {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify returns the format class of value.
func Classify(value string) FormatClass {
	return selectRule(value).Class
}

// FormatAnonymizer replaces string values with deterministic substitutes of the
// same format class. It is safe for concurrent use; the timestamp baseline is
// the only state shared between calls.
type FormatAnonymizer struct {
	baseline *TimestampBaseline
}

// NewFormatAnonymizer creates an anonymizer around baseline. A nil baseline is
// replaced by one with a random reference instant.
func NewFormatAnonymizer(baseline *TimestampBaseline) *FormatAnonymizer {
	if baseline == nil {
		baseline = NewRandomTimestampBaseline(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), time.Now())
	}
	return &FormatAnonymizer{baseline: baseline}
}

func (a *FormatAnonymizer) Baseline() *TimestampBaseline {
	return a.baseline
}

func (a *FormatAnonymizer) Anonymize(value string) (string, error) {
	out, _, err := a.Obfuscate(value)
	return out, err
}

// Obfuscate classifies value and returns its substitute along with the class used.
func (a *FormatAnonymizer) Obfuscate(value string) (string, FormatClass, error) {
	r := selectRule(value)
	out, err := r.obfuscate(a, value)
	if err != nil {
		return "", r.Class, errs.NewObfuscationError(r.Class.String(), err)
	}
	return out, r.Class, nil
}

// ObfuscateAs applies the obfuscator of class to value, regardless of priority
// order. value must satisfy the class predicate.
func (a *FormatAnonymizer) ObfuscateAs(class FormatClass, value string) (string, error) {
	r, ok := ruleFor(class)
	if !ok {
		return "", fmt.Errorf("unknown format class %q", class)
	}
	if !r.Matches(value) {
		return "", errs.NewObfuscationError(class.String(), errs.ErrPreconditionViolated)
	}
	out, err := r.obfuscate(a, value)
	if err != nil {
		return "", errs.NewObfuscationError(class.String(), err)
	}
	return out, nil
}
