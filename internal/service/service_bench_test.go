package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/godilite/jii-dashboard/internal/repository"
	"github.com/godilite/jii-dashboard/internal/repository/repotest"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

func setupSeededRepo(tb testing.TB) *repository.EventRepository {
	tb.Helper()
	return repository.NewEventRepository(repotest.OpenSeeded(tb), "sqlite3")
}

func BenchmarkGetQuestionSummaries(b *testing.B) {
	svc := NewSurveyService(setupSeededRepo(b), catalog.Default(), zap.NewNop())

	b.ReportAllocs()

	for b.Loop() {
		_, _ = svc.GetQuestionSummaries(context.Background())
	}
}

func BenchmarkGetSentimentBasic(b *testing.B) {
	analyzers := textanalysis.NewRegistry()
	analyzers.Register(textanalysis.ModeBasic, textanalysis.NewKeywordAnalyzer())
	svc := NewTextService(setupSeededRepo(b), catalog.Default(), analyzers, textanalysis.ModeBasic, zap.NewNop())

	b.ReportAllocs()

	for b.Loop() {
		_, _ = svc.GetSentiment(context.Background(), 11, "")
	}
}
