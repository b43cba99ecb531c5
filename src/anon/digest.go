package anon

import (
	"strings"

	"golang.org/x/crypto/sha3"
)

// DIGEST_SIZE is the number of bytes produced by Digest.
const DIGEST_SIZE = 32

// Digest returns the SHA3-256 hash of b.
func Digest(b []byte) [DIGEST_SIZE]byte {
	return sha3.Sum256(b)
}

func digestString(s string) [DIGEST_SIZE]byte {
	return Digest([]byte(s))
}

// ByteCycle yields the bytes of a digest in order and wraps back to the first
// byte once the end is reached. It never runs dry, so a fixed size digest can
// drive output of any length.
type ByteCycle struct {
	digest [DIGEST_SIZE]byte
	pos    int
}

func NewByteCycle(digest [DIGEST_SIZE]byte) *ByteCycle {
	return &ByteCycle{digest: digest}
}

func (c *ByteCycle) Next() byte {
	b := c.digest[c.pos]
	c.pos = (c.pos + 1) % DIGEST_SIZE
	return b
}

// Alphabet turns one hash byte into a printable token.
type Alphabet interface {
	Token(b byte) string
}

type syllableAlphabet struct{}

func (syllableAlphabet) Token(b byte) string {
	return SYLLABLES[b]
}

type letterAlphabet struct {
	first byte
}

func (a letterAlphabet) Token(b byte) string {
	return string(rune(a.first + b%26))
}

var (
	// SyllableAlphabet renders word-shaped lowercase text from SYLLABLES.
	SyllableAlphabet Alphabet = syllableAlphabet{}
	// LetterAlphabet maps each byte to one of 'a'..'z' (byte % 26).
	LetterAlphabet Alphabet = letterAlphabet{first: 'a'}
	// UpperLetterAlphabet maps each byte to one of 'A'..'Z' (byte % 26).
	UpperLetterAlphabet Alphabet = letterAlphabet{first: 'A'}
)

// Render concatenates the tokens of the digest bytes, cycling over the digest as
// often as needed, and truncates the result to exactly length bytes.
func Render(digest [DIGEST_SIZE]byte, length int, alphabet Alphabet) string {
	return renderFrom(NewByteCycle(digest), length, alphabet)
}

func renderFrom(cycle *ByteCycle, length int, alphabet Alphabet) string {
	if length <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(length + 8)
	for sb.Len() < length {
		sb.WriteString(alphabet.Token(cycle.Next()))
	}
	return sb.String()[:length]
}

// HumaniseBytes renders every byte of b as its syllable, without truncation.
func HumaniseBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteString(SYLLABLES[c])
	}
	return sb.String()
}
