package ascent

import (
	"regexp"
	"strings"
)

// separatorPattern lists the separators seen in attribution strings.
// Longer alternatives come first so ", and " is not consumed as ", ".
var separatorPattern = regexp.MustCompile(`, and |, |,|: | and | & | - |- |-`)

// Split tokenizes a raw attribution string into name-like substrings.
//
// Parenthetical notes such as "(solo)" act as a separator and their contents
// are discarded; an unclosed "(" discards the rest of the string. Tokens are
// returned verbatim without trimming, but empty and whitespace-only tokens
// are dropped.
func Split(raw string) []string {
	tokens := make([]string, 0)
	for _, segment := range outsideParens(raw) {
		for _, part := range separatorPattern.Split(segment, -1) {
			if strings.TrimSpace(part) == "" {
				continue
			}
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// outsideParens returns the runs of text that are not enclosed in parentheses.
func outsideParens(s string) []string {
	segments := make([]string, 0, 1)
	depth := 0
	start := 0

	for i, r := range s {
		switch r {
		case '(':
			if depth == 0 {
				segments = append(segments, s[start:i])
			}
			depth++
		case ')':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				start = i + 1
			}
		}
	}

	if depth == 0 {
		segments = append(segments, s[start:])
	}
	return segments
}
