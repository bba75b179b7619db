package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/godilite/jii-dashboard/internal/repository/models"
	"github.com/godilite/jii-dashboard/internal/survey"
)

// SurveyService serves the rating side of the satisfaction survey.
type SurveyService struct {
	storage EventRepository
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewSurveyService creates a new SurveyService. A nil catalog selects the default one.
func NewSurveyService(storage EventRepository, cat *catalog.Catalog, logger *zap.Logger) *SurveyService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &SurveyService{storage: storage, catalog: cat, logger: logger}
}

func toResponses(rows []models.SurveyAnswer) []survey.Response {
	out := make([]survey.Response, len(rows))
	for i, r := range rows {
		submitted, _ := parseTimestamp(r.Timestamp)
		out[i] = survey.Response{
			ParticipantID:   r.ParticipantEmail,
			ParticipantName: r.ParticipantName,
			QuestionID:      r.QuestionID,
			QuestionText:    r.QuestionText,
			Answer:          r.Answer,
			SubmittedAt:     submitted,
		}
	}
	return out
}

func (s *SurveyService) fetchAll(ctx context.Context) ([]survey.Response, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListSurveyAnswers(dbCtx)
	if err != nil {
		return nil, noData(s.logger, "list survey answers", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no survey answers", ErrNoData)
	}
	return toResponses(rows), nil
}

func (s *SurveyService) logDropped(op string, d survey.Dropped) {
	if d.UnknownQuestion == 0 && d.Malformed == 0 {
		return
	}
	s.logger.Debug("answers excluded from aggregation",
		zap.String("op", op),
		zap.Int("unknown_question", d.UnknownQuestion),
		zap.Int("malformed", d.Malformed))
}

// GetSurveyStats returns response totals across every question.
func (s *SurveyService) GetSurveyStats(ctx context.Context) (SurveyStats, error) {
	responses, err := s.fetchAll(ctx)
	if err != nil {
		return SurveyStats{}, err
	}

	participants := make(map[string]struct{})
	questions := make(map[int]struct{})
	for _, r := range responses {
		participants[r.ParticipantID] = struct{}{}
		questions[r.QuestionID] = struct{}{}
	}

	st := SurveyStats{
		TotalResponses:     len(responses),
		UniqueParticipants: len(participants),
		AnsweredQuestions:  len(questions),
	}
	if st.UniqueParticipants > 0 {
		st.AvgResponsesPerParticipant = float64(st.TotalResponses) / float64(st.UniqueParticipants)
	}
	return st, nil
}

// GetQuestionSummaries returns per-question rating statistics, lowest mean first.
func (s *SurveyService) GetQuestionSummaries(ctx context.Context) ([]survey.QuestionSummary, error) {
	responses, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	out, dropped := survey.SummarizeQuestions(responses, s.catalog)
	s.logDropped("question summaries", dropped)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no numeric ratings", ErrNoData)
	}
	return out, nil
}

// GetCategoryScores returns pooled category means, lowest first.
func (s *SurveyService) GetCategoryScores(ctx context.Context) ([]survey.CategoryScore, error) {
	responses, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	out, dropped := survey.SummarizeCategories(responses, s.catalog)
	s.logDropped("category scores", dropped)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no numeric ratings in any category", ErrNoData)
	}
	return out, nil
}

// GetQuestionDistribution returns the value counts and statistics of one
// rating question.
func (s *SurveyService) GetQuestionDistribution(ctx context.Context, questionID int) (QuestionDistribution, error) {
	q, err := lookupQuestion(s.catalog, questionID, catalog.TypeRating)
	if err != nil {
		return QuestionDistribution{}, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListAnswersByQuestion(dbCtx, questionID)
	if err != nil {
		return QuestionDistribution{}, noData(s.logger, "list answers", err)
	}

	values, dropped := survey.RatingValues(toResponses(rows), s.catalog)
	s.logDropped("distribution", dropped)

	st, ok := survey.Summarize(values[questionID])
	if !ok {
		return QuestionDistribution{}, fmt.Errorf("%w: question %d has no numeric ratings", ErrNoData, questionID)
	}
	return QuestionDistribution{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		Stats:        st,
		Buckets:      survey.Distribute(values[questionID]),
	}, nil
}

// lookupQuestion resolves id in the catalog and checks its type.
func lookupQuestion(cat *catalog.Catalog, id int, want catalog.QuestionType) (catalog.Question, error) {
	q, ok := cat.Lookup(id)
	if !ok {
		return catalog.Question{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, id)
	}
	if q.Type != want {
		return catalog.Question{}, fmt.Errorf("%w: %d is %s, not %s", ErrUnknownQuestion, id, q.Type, want)
	}
	return q, nil
}
