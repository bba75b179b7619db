package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/godilite/jii-dashboard/internal/repository/models"
	"github.com/godilite/jii-dashboard/internal/survey"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
	"github.com/godilite/jii-dashboard/pkg/metrics"
)

// MaxExamples is how many answers per label a sentiment report quotes.
const MaxExamples = 5

// TextService serves the open-ended answers: exploration, word counts and sentiment.
type TextService struct {
	storage     EventRepository
	catalog     *catalog.Catalog
	analyzers   *textanalysis.Registry
	defaultMode textanalysis.Mode
	logger      *zap.Logger
}

// NewTextService creates a new TextService. analyzers must hold at least the
// modes callers will ask for; an empty mode resolves to defaultMode.
func NewTextService(storage EventRepository, cat *catalog.Catalog, analyzers *textanalysis.Registry, defaultMode textanalysis.Mode, logger *zap.Logger) *TextService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if analyzers == nil {
		panic("analyzers must not be nil")
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if defaultMode == "" {
		defaultMode = textanalysis.ModeBasic
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &TextService{
		storage:     storage,
		catalog:     cat,
		analyzers:   analyzers,
		defaultMode: defaultMode,
		logger:      logger,
	}
}

// nonBlank keeps the answers with visible text.
func nonBlank(rows []models.SurveyAnswer) []models.SurveyAnswer {
	out := make([]models.SurveyAnswer, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *TextService) fetchQuestion(ctx context.Context, questionID int) (catalog.Question, []models.SurveyAnswer, error) {
	q, err := lookupQuestion(s.catalog, questionID, catalog.TypeLongText)
	if err != nil {
		return catalog.Question{}, nil, err
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListAnswersByQuestion(dbCtx, questionID)
	if err != nil {
		return catalog.Question{}, nil, noData(s.logger, "list answers", err)
	}
	rows = nonBlank(rows)
	if len(rows) == 0 {
		return catalog.Question{}, nil, fmt.Errorf("%w: question %d has no text answers", ErrNoData, questionID)
	}
	return q, rows, nil
}

// GetTextOverview summarises every non-blank long-text answer.
func (s *TextService) GetTextOverview(ctx context.Context) (TextOverview, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.ListSurveyAnswers(dbCtx)
	if err != nil {
		return TextOverview{}, noData(s.logger, "list survey answers", err)
	}

	longText := s.catalog.IDsByType(catalog.TypeLongText)
	participants := make(map[string]struct{})
	questions := make(map[int]struct{})
	var texts []string
	for _, r := range nonBlank(rows) {
		if _, ok := longText[r.QuestionID]; !ok {
			continue
		}
		participants[r.ParticipantEmail] = struct{}{}
		questions[r.QuestionID] = struct{}{}
		texts = append(texts, r.Answer)
	}

	lengths, ok := survey.MeasureLengths(texts)
	if !ok {
		return TextOverview{}, fmt.Errorf("%w: no text answers", ErrNoData)
	}
	return TextOverview{
		TotalResponses:     len(texts),
		UniqueParticipants: len(participants),
		QuestionsWithText:  len(questions),
		AvgLength:          lengths.Mean,
	}, nil
}

// GetTextResponses lists the answers to one long-text question with length stats.
func (s *TextService) GetTextResponses(ctx context.Context, questionID int) (TextResponses, error) {
	q, rows, err := s.fetchQuestion(ctx, questionID)
	if err != nil {
		return TextResponses{}, err
	}

	out := TextResponses{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		Responses:    make([]TextResponse, len(rows)),
	}
	texts := make([]string, len(rows))
	for i, r := range rows {
		out.Responses[i] = TextResponse{Participant: r.ParticipantName, Email: r.ParticipantEmail, Answer: r.Answer}
		texts[i] = r.Answer
	}
	out.Lengths, _ = survey.MeasureLengths(texts)
	return out, nil
}

// GetWordFrequencies counts the most frequent meaningful words of one question.
// topN is bounded to the selectable range.
func (s *TextService) GetWordFrequencies(ctx context.Context, questionID, topN int) (WordFrequencies, error) {
	_, rows, err := s.fetchQuestion(ctx, questionID)
	if err != nil {
		return WordFrequencies{}, err
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Answer
	}
	n := textanalysis.ClampTopN(topN)
	return WordFrequencies{
		QuestionID: questionID,
		TopN:       n,
		Words:      textanalysis.WordFrequencies(texts, n),
	}, nil
}

// GetSentiment labels every answer of one question with the analyzer for
// mode. An empty mode uses the configured default.
func (s *TextService) GetSentiment(ctx context.Context, questionID int, mode string) (SentimentReport, error) {
	m, err := textanalysis.ParseMode(mode, s.defaultMode)
	if err != nil {
		return SentimentReport{}, err
	}
	analyzer, err := s.analyzers.Get(m)
	if err != nil {
		return SentimentReport{}, err
	}

	q, rows, err := s.fetchQuestion(ctx, questionID)
	if err != nil {
		return SentimentReport{}, err
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Answer
	}
	results, err := textanalysis.AnalyzeAll(analyzer, texts)
	if err != nil {
		s.logger.Error("sentiment analysis failed", zap.String("mode", string(m)), zap.Error(err))
		return SentimentReport{}, fmt.Errorf("%w: %v", textanalysis.ErrAnalyzerUnavailable, err)
	}

	report := SentimentReport{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		Mode:         m,
		Total:        len(results),
		Examples:     make(map[textanalysis.Label][]ClassifiedResponse),
		Responses:    make([]ClassifiedResponse, len(results)),
	}

	counts := make(map[textanalysis.Label]int)
	for i, res := range results {
		cr := ClassifiedResponse{Participant: rows[i].ParticipantName, Answer: rows[i].Answer, SentimentResult: res}
		report.Responses[i] = cr
		counts[res.Label]++
		if len(report.Examples[res.Label]) < MaxExamples {
			report.Examples[res.Label] = append(report.Examples[res.Label], cr)
		}
		metrics.SentimentLabelsTotal.WithLabelValues(string(m), string(res.Label)).Inc()
	}

	for _, l := range textanalysis.Labels {
		if counts[l] == 0 {
			continue
		}
		report.Shares = append(report.Shares, LabelShare{
			Label:   l,
			Count:   counts[l],
			Percent: float64(counts[l]) / float64(report.Total) * 100,
		})
	}
	return report, nil
}
