package anon

// FormatClass names the shape of a string value. The zero value is not a valid class.
type FormatClass string

const (
	ALPHA_WORD          FormatClass = "alpha_word"
	UPPERCASE_WORD      FormatClass = "uppercase_word"
	CAPITALIZED_WORD    FormatClass = "capitalized_word"
	SNAKE_CASE_WORD     FormatClass = "snake_case_word"
	TITLE_CASE_SENTENCE FormatClass = "title_case_sentence"
	ISO8601_Z_DATETIME  FormatClass = "iso8601_z_datetime"
	BASE32_LOWERCASE    FormatClass = "base32_lowercase"
	BASE32_UPPERCASE    FormatClass = "base32_uppercase"
	OTHER               FormatClass = "other" // fallback, no shape guarantee
)

func (c FormatClass) String() string {
	return string(c)
}

// interface to be implemented by any new anonymizer
type Anonymizer interface {
	Anonymize(input string) (string, error)
}
