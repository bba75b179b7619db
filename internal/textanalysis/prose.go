package textanalysis

import (
	"fmt"
	"time"

	"github.com/tsawler/prose/v3"
)

const proseTimeout = 5 * time.Second

// ProseScorer scores Spanish text with the prose sentiment lexicon.
type ProseScorer struct {
	analyzer *prose.SentimentAnalyzer
}

// NewProseScorer builds the scorer. A non-empty lexiconPath merges an external
// lexicon file; failure to load it makes the lexicon mode unavailable.
func NewProseScorer(lexiconPath string) (*ProseScorer, error) {
	cfg := prose.DefaultSentimentConfig()
	cfg.UseML = false

	if lexiconPath == "" {
		return &ProseScorer{analyzer: prose.NewSentimentAnalyzer(prose.Spanish, cfg)}, nil
	}

	a, err := prose.NewSentimentAnalyzerWithExternal(prose.Spanish, cfg, lexiconPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load lexicon %s: %v", ErrAnalyzerUnavailable, lexiconPath, err)
	}
	return &ProseScorer{analyzer: a}, nil
}

// Score implements PolarityScorer. prose leaves Subjectivity unset for lexicon-only
// analysis, so its intensity stands in for it.
func (p *ProseScorer) Score(text string) (float64, float64, error) {
	doc, err := prose.NewDocument(text,
		prose.WithLanguage(prose.Spanish),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTimeout(proseTimeout),
	)
	if err != nil {
		return 0, 0, fmt.Errorf("prose document: %w", err)
	}

	score := p.analyzer.AnalyzeDocument(doc)
	subjectivity := score.Subjectivity
	if subjectivity == 0 {
		subjectivity = score.Intensity
	}
	return score.Polarity, subjectivity, nil
}
