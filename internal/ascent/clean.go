package ascent

import (
	"fmt"
	"strings"
	"unicode"
)

// Confidence describes how much guessing Clean needed for a token list.
// Values are ordered from most to least trustworthy.
type Confidence int

const (
	// Certain means no token contained a digit; the list was returned unchanged.
	Certain Confidence = iota
	// Trimmed means trailing tokens starting with a digit (usually a year) were dropped.
	Trimmed
	// Guessed means a token was cut mid-text, or the first token carries digits
	// that Clean is not allowed to remove.
	Guessed
	// Unresolved means there was nothing to extract.
	Unresolved
)

var confidenceNames = map[Confidence]string{
	Certain:    "certain",
	Trimmed:    "trimmed",
	Guessed:    "guessed",
	Unresolved: "unresolved",
}

func (c Confidence) String() string {
	if name, ok := confidenceNames[c]; ok {
		return name
	}
	return fmt.Sprintf("confidence(%d)", int(c))
}

// NeedsReview reports whether a result at this confidence should be checked
// against the override table before it is trusted.
func (c Confidence) NeedsReview() bool {
	return c >= Guessed
}

// MarshalText implements encoding.TextMarshaler.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confidence) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for value, name := range confidenceNames {
		if name == s {
			*c = value
			return nil
		}
	}
	return fmt.Errorf("unknown confidence: %q", s)
}

// Cleaned is the outcome of cleaning a token list.
type Cleaned struct {
	Names      []string   `json:"names" yaml:"names"`
	Dropped    []string   `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// Clean returns the prefix of tokens that holds only names.
func Clean(tokens []string) []string {
	return CleanWithConfidence(tokens).Names
}

// CleanWithConfidence truncates tokens at the first token containing a digit.
//
// The first token is exempt: a digit there never triggers truncation. For any
// later token, a leading digit drops that token and everything after it; a
// digit further in keeps the token cut just before the digit (trailing
// whitespace removed) and drops everything after it.
func CleanWithConfidence(tokens []string) Cleaned {
	if len(tokens) == 0 {
		return Cleaned{Names: []string{}, Confidence: Unresolved}
	}

	confidence := Certain
	for i, tok := range tokens {
		at := firstDigit(tok)
		if at < 0 {
			continue
		}
		if i == 0 {
			confidence = Guessed
			continue
		}

		kept := strings.TrimRightFunc(tok[:at], unicode.IsSpace)
		if strings.TrimSpace(kept) == "" {
			return Cleaned{
				Names:      clone(tokens[:i]),
				Dropped:    clone(tokens[i:]),
				Confidence: max(confidence, Trimmed),
			}
		}

		names := clone(tokens[:i+1])
		names[i] = kept
		return Cleaned{
			Names:      names,
			Dropped:    append([]string{tok[at:]}, tokens[i+1:]...),
			Confidence: Guessed,
		}
	}

	return Cleaned{Names: clone(tokens), Confidence: confidence}
}

// Extract splits and cleans a raw attribution string.
func Extract(raw string) Cleaned {
	return CleanWithConfidence(Split(raw))
}

// firstDigit returns the byte offset of the first digit in s, or -1.
func firstDigit(s string) int {
	return strings.IndexFunc(s, unicode.IsDigit)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
