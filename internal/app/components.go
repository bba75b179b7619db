package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

var errLexiconDisabled = errors.New("disabled by SENTIMENT_LEXICON_ENABLED")

// LoadCatalog reads the question catalog from path, or returns the built-in
// one when path is empty.
func LoadCatalog(path string, logger *zap.Logger) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("question catalog loaded", zap.String("path", path), zap.Int("questions", len(cat.Questions())))
	return cat, nil
}

// BuildAnalyzers registers the keyword analyzer and, when enabled, the
// lexicon analyzer. A lexicon that fails to load leaves that mode
// unavailable without stopping startup.
func BuildAnalyzers(lexiconEnabled bool, lexiconPath string, logger *zap.Logger) *textanalysis.Registry {
	r := textanalysis.NewRegistry()
	r.Register(textanalysis.ModeBasic, textanalysis.NewKeywordAnalyzer())

	if !lexiconEnabled {
		r.Disable(textanalysis.ModeLexicon, errLexiconDisabled)
		return r
	}

	scorer, err := textanalysis.NewProseScorer(lexiconPath)
	if err != nil {
		logger.Warn("lexicon sentiment unavailable", zap.Error(err))
		r.Disable(textanalysis.ModeLexicon, err)
		return r
	}
	analyzer, err := textanalysis.NewLexiconAnalyzer(scorer)
	if err != nil {
		logger.Warn("lexicon sentiment unavailable", zap.Error(err))
		r.Disable(textanalysis.ModeLexicon, err)
		return r
	}
	r.Register(textanalysis.ModeLexicon, analyzer)
	logger.Info("lexicon sentiment enabled", zap.String("lexicon", lexiconPath))
	return r
}

// DefaultMode resolves the configured default sentiment mode, falling back
// to basic when the configured one is unknown or unavailable.
func DefaultMode(configured string, r *textanalysis.Registry, logger *zap.Logger) textanalysis.Mode {
	m, err := textanalysis.ParseMode(configured, textanalysis.ModeBasic)
	if err != nil {
		logger.Warn("unknown SENTIMENT_MODE, using basic", zap.String("mode", configured))
		return textanalysis.ModeBasic
	}
	if !r.Available(m) {
		logger.Warn("default sentiment mode unavailable, using basic", zap.String("mode", string(m)))
		return textanalysis.ModeBasic
	}
	return m
}
