package textanalysis

import (
	"sort"
	"strings"
)

const (
	MinTopN     = 10
	MaxTopN     = 50
	DefaultTopN = 20
)

// WordFrequency is one row of a frequency table.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CountWords counts every token and orders the table by count descending.
// Ties keep the order in which words were first seen.
func CountWords(tokens []string) []WordFrequency {
	index := make(map[string]int, len(tokens))
	table := make([]WordFrequency, 0)

	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			table[i].Count++
			continue
		}
		index[tok] = len(table)
		table = append(table, WordFrequency{Word: tok, Count: 1})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})
	return table
}

// ClampTopN bounds n to the selectable range; n <= 0 selects the default.
func ClampTopN(n int) int {
	switch {
	case n <= 0:
		return DefaultTopN
	case n < MinTopN:
		return MinTopN
	case n > MaxTopN:
		return MaxTopN
	}
	return n
}

// TopWords returns at most n entries of CountWords.
func TopWords(tokens []string, n int) []WordFrequency {
	if n <= 0 {
		return []WordFrequency{}
	}
	table := CountWords(tokens)
	if len(table) > n {
		table = table[:n]
	}
	return table
}

// WordFrequencies runs the full frequency path over a set of answers with n
// bounded to the selectable range.
func WordFrequencies(texts []string, n int) []WordFrequency {
	tokens := FilterStopWords(Normalize(strings.Join(texts, " ")))
	return TopWords(tokens, ClampTopN(n))
}
