package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/internal/survey"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeyOverview             CacheKeyType = "grpc:overview"
	cacheKeyBreakdown            CacheKeyType = "grpc:breakdown"
	cacheKeyTimeline             CacheKeyType = "grpc:timeline"
	cacheKeySurveyStats          CacheKeyType = "grpc:survey_stats"
	cacheKeyQuestionSummaries    CacheKeyType = "grpc:question_summaries"
	cacheKeyQuestionDistribution CacheKeyType = "grpc:question_distribution"
	cacheKeyCategoryScores       CacheKeyType = "grpc:category_scores"
	cacheKeyTextOverview         CacheKeyType = "grpc:text_overview"
	cacheKeyTextResponses        CacheKeyType = "grpc:text_responses"
	cacheKeyWordFrequencies      CacheKeyType = "grpc:word_frequencies"
	cacheKeySentiment            CacheKeyType = "grpc:sentiment"
)

func (k CacheKeyType) label() string {
	return strings.TrimPrefix(string(k), "grpc:")
}

// Handlers implements AnalyticsServer on top of the dashboard services.
type Handlers struct {
	dashboard DashboardService
	survey    SurveyService
	text      TextService
	cache     Cacher
	logger    *zap.Logger
	sfGroup   singleflight.Group
	cacheTTL  time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(dashboard DashboardService, surveys SurveyService, text TextService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if dashboard == nil || surveys == nil || text == nil {
		panic("nil service provided to NewGRPCHandlers")
	}
	if cache == nil {
		panic("nil Cacher provided to NewGRPCHandlers")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		dashboard: dashboard,
		survey:    surveys,
		text:      text,
		cache:     cache,
		logger:    logger.Named("grpc-handler"),
		cacheTTL:  ttl,
	}
}

// normalizeKey joins the request parameters onto prefix. Strings are
// lowercased so equivalent requests share an entry.
func normalizeKey(prefix CacheKeyType, parts ...any) string {
	var b strings.Builder
	b.WriteString(string(prefix))
	for _, p := range parts {
		b.WriteByte(':')
		switch v := p.(type) {
		case string:
			if v == "" {
				v = "default"
			}
			b.WriteString(strings.ToLower(v))
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

func (h *Handlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		h.logger.Warn("request timed out", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrNoData):
		return status.Error(codes.NotFound, service.ErrNoData.Error())
	case errors.Is(err, service.ErrUnknownQuestion),
		errors.Is(err, service.ErrUnknownDimension),
		errors.Is(err, service.ErrUnknownSeries),
		errors.Is(err, service.ErrUnknownView),
		errors.Is(err, textanalysis.ErrUnknownMode):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, textanalysis.ErrAnalyzerUnavailable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// respond encodes value or maps err.
func (h *Handlers) respond(ctx context.Context, op string, value any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, h.handleError(ctx, op, err)
	}
	out, err := toStruct(value)
	if err != nil {
		h.logger.Error("response encoding failed", zap.String("op", op), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
	return out, nil
}

func (h *Handlers) GetOverview(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	overview, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyOverview, normalizeKey(cacheKeyOverview), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.Overview, error) {
			return h.dashboard.GetOverview(fetchCtx)
		})
	return h.respond(ctx, "GetOverview", overview, err)
}

func (h *Handlers) GetBreakdown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dimension, err := stringField(req, "dimension", true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	breakdown, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyBreakdown, normalizeKey(cacheKeyBreakdown, dimension), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.Breakdown, error) {
			return h.dashboard.GetBreakdown(fetchCtx, dimension)
		})
	return h.respond(ctx, "GetBreakdown", breakdown, err)
}

func (h *Handlers) GetTimeline(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	series, err := stringField(req, "series", true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	timeline, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyTimeline, normalizeKey(cacheKeyTimeline, series), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.Timeline, error) {
			return h.dashboard.GetTimeline(fetchCtx, series)
		})
	return h.respond(ctx, "GetTimeline", timeline, err)
}

func (h *Handlers) GetSurveyStats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	stats, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeySurveyStats, normalizeKey(cacheKeySurveyStats), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.SurveyStats, error) {
			return h.survey.GetSurveyStats(fetchCtx)
		})
	return h.respond(ctx, "GetSurveyStats", stats, err)
}

func (h *Handlers) GetQuestionSummaries(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	summaries, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyQuestionSummaries, normalizeKey(cacheKeyQuestionSummaries), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]survey.QuestionSummary, error) {
			return h.survey.GetQuestionSummaries(fetchCtx)
		})
	return h.respond(ctx, "GetQuestionSummaries", map[string]any{"questions": summaries}, err)
}

func (h *Handlers) GetQuestionDistribution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	questionID, err := intField(req, "question_id", true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	dist, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyQuestionDistribution, normalizeKey(cacheKeyQuestionDistribution, questionID), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.QuestionDistribution, error) {
			return h.survey.GetQuestionDistribution(fetchCtx, questionID)
		})
	return h.respond(ctx, "GetQuestionDistribution", dist, err)
}

func (h *Handlers) GetCategoryScores(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	scores, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyCategoryScores, normalizeKey(cacheKeyCategoryScores), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) ([]survey.CategoryScore, error) {
			return h.survey.GetCategoryScores(fetchCtx)
		})
	return h.respond(ctx, "GetCategoryScores", map[string]any{"categories": scores}, err)
}

func (h *Handlers) GetTextOverview(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	overview, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyTextOverview, normalizeKey(cacheKeyTextOverview), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.TextOverview, error) {
			return h.text.GetTextOverview(fetchCtx)
		})
	return h.respond(ctx, "GetTextOverview", overview, err)
}

func (h *Handlers) GetTextResponses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	questionID, err := intField(req, "question_id", true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	responses, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyTextResponses, normalizeKey(cacheKeyTextResponses, questionID), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.TextResponses, error) {
			return h.text.GetTextResponses(fetchCtx, questionID)
		})
	return h.respond(ctx, "GetTextResponses", responses, err)
}

func (h *Handlers) GetWordFrequencies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	questionID, err := intField(req, "question_id", true)
	if err != nil {
		return nil, err
	}
	topN, err := intField(req, "top_n", false)
	if err != nil {
		return nil, err
	}
	topN = textanalysis.ClampTopN(topN)

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	words, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeyWordFrequencies, normalizeKey(cacheKeyWordFrequencies, questionID, topN), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.WordFrequencies, error) {
			return h.text.GetWordFrequencies(fetchCtx, questionID, topN)
		})
	return h.respond(ctx, "GetWordFrequencies", words, err)
}

func (h *Handlers) GetSentiment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	questionID, err := intField(req, "question_id", true)
	if err != nil {
		return nil, err
	}
	mode, err := stringField(req, "mode", false)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	report, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKeySentiment, normalizeKey(cacheKeySentiment, questionID, mode), h.cacheTTL, h.logger,
		func(fetchCtx context.Context) (service.SentimentReport, error) {
			return h.text.GetSentiment(fetchCtx, questionID, mode)
		})
	return h.respond(ctx, "GetSentiment", report, err)
}
