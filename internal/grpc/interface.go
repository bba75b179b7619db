package grpc

import (
	"context"
	"time"

	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/internal/survey"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type DashboardService interface {
	GetOverview(ctx context.Context) (service.Overview, error)
	GetBreakdown(ctx context.Context, dimension string) (service.Breakdown, error)
	GetTimeline(ctx context.Context, series string) (service.Timeline, error)
}

type SurveyService interface {
	GetSurveyStats(ctx context.Context) (service.SurveyStats, error)
	GetQuestionSummaries(ctx context.Context) ([]survey.QuestionSummary, error)
	GetCategoryScores(ctx context.Context) ([]survey.CategoryScore, error)
	GetQuestionDistribution(ctx context.Context, questionID int) (service.QuestionDistribution, error)
}

type TextService interface {
	GetTextOverview(ctx context.Context) (service.TextOverview, error)
	GetTextResponses(ctx context.Context, questionID int) (service.TextResponses, error)
	GetWordFrequencies(ctx context.Context, questionID, topN int) (service.WordFrequencies, error)
	GetSentiment(ctx context.Context, questionID int, mode string) (service.SentimentReport, error)
}
