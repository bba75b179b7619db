package textanalysis

import (
	"errors"
	"fmt"
	"strings"
)

// Label is the discrete sentiment assigned to one answer.
type Label string

const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

// Labels lists every label in display order.
var Labels = []Label{Positive, Neutral, Negative}

// Mode selects the sentiment implementation.
type Mode string

const (
	ModeBasic   Mode = "basic"
	ModeLexicon Mode = "lexicon"
)

var (
	ErrAnalyzerUnavailable = errors.New("sentiment analyzer unavailable")
	ErrUnknownMode         = errors.New("unknown sentiment mode")
)

// ParseMode maps user input to a Mode; empty input selects def.
func ParseMode(s string, def Mode) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case ModeBasic:
		return ModeBasic, nil
	case ModeLexicon:
		return ModeLexicon, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SentimentResult is the outcome for one answer. Polarity and Subjectivity are
// only set by analyzers that produce continuous scores.
type SentimentResult struct {
	Label        Label    `json:"label"`
	Polarity     *float64 `json:"polarity,omitempty"`
	Subjectivity *float64 `json:"subjectivity,omitempty"`
}

// SentimentAnalyzer classifies one raw answer.
type SentimentAnalyzer interface {
	Analyze(text string) (SentimentResult, error)
}

var positiveKeywords = map[string]struct{}{
	"excelente": {}, "bueno": {}, "buena": {}, "increíble": {}, "genial": {},
	"fantástico": {}, "maravilloso": {}, "perfecto": {}, "impresionante": {},
	"útil": {}, "interesante": {}, "motivador": {}, "inspirador": {},
	"profesional": {}, "calidad": {}, "aprendí": {}, "enriquecedor": {},
	"valioso": {}, "gratificante": {}, "satisfactorio": {}, "positivo": {},
	"destacado": {}, "sobresaliente": {}, "relevante": {},
}

var negativeKeywords = map[string]struct{}{
	"malo": {}, "mala": {}, "terrible": {}, "pésimo": {}, "deficiente": {},
	"inadecuado": {}, "insuficiente": {}, "problemático": {}, "confuso": {},
	"aburrido": {}, "desorganizado": {}, "poco": {}, "falta": {}, "mejorar": {},
	"negativo": {}, "escaso": {}, "limitado": {}, "débil": {}, "ineficiente": {},
}

// KeywordHits counts how many keywords of each set occur anywhere in text.
// Matching is by substring, so "bueno" also hits inside "buenosdias".
func KeywordHits(text string) (positive, negative int) {
	t := lower(text)
	for kw := range positiveKeywords {
		if strings.Contains(t, kw) {
			positive++
		}
	}
	for kw := range negativeKeywords {
		if strings.Contains(t, kw) {
			negative++
		}
	}
	return positive, negative
}

// ClassifyBasic labels text by keyword vote.
func ClassifyBasic(text string) Label {
	p, n := KeywordHits(text)
	switch {
	case p > n:
		return Positive
	case n > p:
		return Negative
	}
	return Neutral
}

// KeywordAnalyzer is the dependency-free analyzer.
type KeywordAnalyzer struct{}

func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

func (KeywordAnalyzer) Analyze(text string) (SentimentResult, error) {
	return SentimentResult{Label: ClassifyBasic(text)}, nil
}

// Registry holds the analyzers configured at startup. A mode that failed to
// initialise stays unavailable for the life of the process.
type Registry struct {
	analyzers   map[Mode]SentimentAnalyzer
	unavailable map[Mode]error
}

func NewRegistry() *Registry {
	return &Registry{
		analyzers:   make(map[Mode]SentimentAnalyzer),
		unavailable: make(map[Mode]error),
	}
}

// Register makes an analyzer available under mode.
func (r *Registry) Register(mode Mode, a SentimentAnalyzer) {
	delete(r.unavailable, mode)
	r.analyzers[mode] = a
}

// Disable records why mode cannot be served.
func (r *Registry) Disable(mode Mode, reason error) {
	delete(r.analyzers, mode)
	r.unavailable[mode] = reason
}

// Get returns the analyzer for mode or ErrAnalyzerUnavailable.
func (r *Registry) Get(mode Mode) (SentimentAnalyzer, error) {
	if a, ok := r.analyzers[mode]; ok {
		return a, nil
	}
	if reason, ok := r.unavailable[mode]; ok && reason != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAnalyzerUnavailable, mode, reason)
	}
	return nil, fmt.Errorf("%w: %s", ErrAnalyzerUnavailable, mode)
}

// Available reports whether mode can be served.
func (r *Registry) Available(mode Mode) bool {
	_, ok := r.analyzers[mode]
	return ok
}

// AnalyzeAll classifies texts in order, stopping at the first error.
func AnalyzeAll(a SentimentAnalyzer, texts []string) ([]SentimentResult, error) {
	out := make([]SentimentResult, len(texts))
	for i, text := range texts {
		r, err := a.Analyze(text)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
