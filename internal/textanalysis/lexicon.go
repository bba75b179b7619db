package textanalysis

import (
	"fmt"
	"math"
	"sync"

	"github.com/godilite/jii-dashboard/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// PolarityDeadband is the half-width of the Neutral band around zero polarity.
const PolarityDeadband = 0.1

// PolarityScorer is an external lexicon analyzer: polarity in [-1,1],
// subjectivity in [0,1].
type PolarityScorer interface {
	Score(text string) (polarity, subjectivity float64, err error)
}

// LabelForPolarity thresholds a continuous polarity.
func LabelForPolarity(p float64) Label {
	switch {
	case p > PolarityDeadband:
		return Positive
	case p < -PolarityDeadband:
		return Negative
	}
	return Neutral
}

// LexiconAnalyzer labels answers from a PolarityScorer and memoizes results per
// exact input text.
type LexiconAnalyzer struct {
	scorer PolarityScorer

	mu   sync.RWMutex
	memo map[string]SentimentResult
	sf   singleflight.Group
}

// NewLexiconAnalyzer fails with ErrAnalyzerUnavailable when no scorer is given.
func NewLexiconAnalyzer(scorer PolarityScorer) (*LexiconAnalyzer, error) {
	if scorer == nil {
		return nil, fmt.Errorf("%w: no lexicon scorer configured", ErrAnalyzerUnavailable)
	}
	return &LexiconAnalyzer{
		scorer: scorer,
		memo:   make(map[string]SentimentResult),
	}, nil
}

func (a *LexiconAnalyzer) Analyze(text string) (SentimentResult, error) {
	a.mu.RLock()
	r, ok := a.memo[text]
	a.mu.RUnlock()
	if ok {
		metrics.SentimentCacheLookups.WithLabelValues("hit").Inc()
		return r, nil
	}
	metrics.SentimentCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := a.sf.Do(text, func() (any, error) {
		a.mu.RLock()
		cached, ok := a.memo[text]
		a.mu.RUnlock()
		if ok {
			return cached, nil
		}

		p, s, err := a.scorer.Score(text)
		if err != nil {
			return nil, fmt.Errorf("lexicon score: %w", err)
		}
		res := resultFromScores(p, s)

		a.mu.Lock()
		a.memo[text] = res
		a.mu.Unlock()
		return res, nil
	})
	if err != nil {
		return SentimentResult{}, err
	}
	return v.(SentimentResult), nil
}

// CacheSize reports how many distinct texts are memoized.
func (a *LexiconAnalyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.memo)
}

// ResetCache drops every memoized result.
func (a *LexiconAnalyzer) ResetCache() {
	a.mu.Lock()
	a.memo = make(map[string]SentimentResult)
	a.mu.Unlock()
}

func resultFromScores(polarity, subjectivity float64) SentimentResult {
	p := clamp(polarity, -1, 1)
	s := clamp(subjectivity, 0, 1)
	return SentimentResult{
		Label:        LabelForPolarity(p),
		Polarity:     &p,
		Subjectivity: &s,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
