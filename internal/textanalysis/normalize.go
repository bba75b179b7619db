// Package textanalysis turns free-text survey answers into word counts and
// sentiment labels.
package textanalysis

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// punctuationCutset is stripped from both ends of every token.
const punctuationCutset = `.,;:!?¡¿()[]{}"'-`

// MinWordLength is the shortest token the frequency path keeps (exclusive).
const MinWordLength = 3

// lower applies Spanish casing rules. A Caser is stateful, so one is built per call.
func lower(text string) string {
	return cases.Lower(language.Spanish).String(text)
}

// Normalize lowercases text, splits it on whitespace and trims surrounding
// punctuation from each token. Accents are kept: "útil" and "util" differ.
func Normalize(text string) []string {
	fields := strings.Fields(lower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, punctuationCutset)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
