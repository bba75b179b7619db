package mocks

import (
	"context"
	"errors"

	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/internal/survey"
)

// MockDashboardService is a function-based mock of the dashboard service.
type MockDashboardService struct {
	GetOverviewFunc  func(ctx context.Context) (service.Overview, error)
	GetBreakdownFunc func(ctx context.Context, dimension string) (service.Breakdown, error)
	GetTimelineFunc  func(ctx context.Context, series string) (service.Timeline, error)
}

func (m *MockDashboardService) GetOverview(ctx context.Context) (service.Overview, error) {
	if m.GetOverviewFunc != nil {
		return m.GetOverviewFunc(ctx)
	}
	return service.Overview{}, errors.New("GetOverviewFunc not implemented")
}

func (m *MockDashboardService) GetBreakdown(ctx context.Context, dimension string) (service.Breakdown, error) {
	if m.GetBreakdownFunc != nil {
		return m.GetBreakdownFunc(ctx, dimension)
	}
	return service.Breakdown{}, errors.New("GetBreakdownFunc not implemented")
}

func (m *MockDashboardService) GetTimeline(ctx context.Context, series string) (service.Timeline, error) {
	if m.GetTimelineFunc != nil {
		return m.GetTimelineFunc(ctx, series)
	}
	return service.Timeline{}, errors.New("GetTimelineFunc not implemented")
}

// MockSurveyService is a function-based mock of the survey service.
type MockSurveyService struct {
	GetSurveyStatsFunc          func(ctx context.Context) (service.SurveyStats, error)
	GetQuestionSummariesFunc    func(ctx context.Context) ([]survey.QuestionSummary, error)
	GetCategoryScoresFunc       func(ctx context.Context) ([]survey.CategoryScore, error)
	GetQuestionDistributionFunc func(ctx context.Context, questionID int) (service.QuestionDistribution, error)
}

func (m *MockSurveyService) GetSurveyStats(ctx context.Context) (service.SurveyStats, error) {
	if m.GetSurveyStatsFunc != nil {
		return m.GetSurveyStatsFunc(ctx)
	}
	return service.SurveyStats{}, errors.New("GetSurveyStatsFunc not implemented")
}

func (m *MockSurveyService) GetQuestionSummaries(ctx context.Context) ([]survey.QuestionSummary, error) {
	if m.GetQuestionSummariesFunc != nil {
		return m.GetQuestionSummariesFunc(ctx)
	}
	return nil, errors.New("GetQuestionSummariesFunc not implemented")
}

func (m *MockSurveyService) GetCategoryScores(ctx context.Context) ([]survey.CategoryScore, error) {
	if m.GetCategoryScoresFunc != nil {
		return m.GetCategoryScoresFunc(ctx)
	}
	return nil, errors.New("GetCategoryScoresFunc not implemented")
}

func (m *MockSurveyService) GetQuestionDistribution(ctx context.Context, questionID int) (service.QuestionDistribution, error) {
	if m.GetQuestionDistributionFunc != nil {
		return m.GetQuestionDistributionFunc(ctx, questionID)
	}
	return service.QuestionDistribution{}, errors.New("GetQuestionDistributionFunc not implemented")
}

// MockTextService is a function-based mock of the text service.
type MockTextService struct {
	GetTextOverviewFunc    func(ctx context.Context) (service.TextOverview, error)
	GetTextResponsesFunc   func(ctx context.Context, questionID int) (service.TextResponses, error)
	GetWordFrequenciesFunc func(ctx context.Context, questionID, topN int) (service.WordFrequencies, error)
	GetSentimentFunc       func(ctx context.Context, questionID int, mode string) (service.SentimentReport, error)
}

func (m *MockTextService) GetTextOverview(ctx context.Context) (service.TextOverview, error) {
	if m.GetTextOverviewFunc != nil {
		return m.GetTextOverviewFunc(ctx)
	}
	return service.TextOverview{}, errors.New("GetTextOverviewFunc not implemented")
}

func (m *MockTextService) GetTextResponses(ctx context.Context, questionID int) (service.TextResponses, error) {
	if m.GetTextResponsesFunc != nil {
		return m.GetTextResponsesFunc(ctx, questionID)
	}
	return service.TextResponses{}, errors.New("GetTextResponsesFunc not implemented")
}

func (m *MockTextService) GetWordFrequencies(ctx context.Context, questionID, topN int) (service.WordFrequencies, error) {
	if m.GetWordFrequenciesFunc != nil {
		return m.GetWordFrequenciesFunc(ctx, questionID, topN)
	}
	return service.WordFrequencies{}, errors.New("GetWordFrequenciesFunc not implemented")
}

func (m *MockTextService) GetSentiment(ctx context.Context, questionID int, mode string) (service.SentimentReport, error) {
	if m.GetSentimentFunc != nil {
		return m.GetSentimentFunc(ctx, questionID, mode)
	}
	return service.SentimentReport{}, errors.New("GetSentimentFunc not implemented")
}
