package cmdlang

import (
	"strings"
	"unicode"
)

// Tokenize splits input into shell-like tokens.
//
// Double and single quotes group text into one token and are dropped from the
// output. A backslash makes the next character literal, inside or outside
// quotes. An unterminated quote swallows the rest of the input into the
// current token and a trailing lone backslash is ignored.
func Tokenize(input string) []string {
	tokens := []string{}
	var cur strings.Builder
	var quote rune
	escaped := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, ch := range input {
		if escaped {
			cur.WriteRune(ch)
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if quote != 0 {
			if ch == quote {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			quote = ch
			continue
		}
		if unicode.IsSpace(ch) {
			flush()
			continue
		}
		cur.WriteRune(ch)
	}
	flush()

	return tokens
}
