package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	analytics "github.com/godilite/jii-dashboard/internal/grpc"
	"github.com/godilite/jii-dashboard/internal/grpc/mocks"
	"github.com/godilite/jii-dashboard/internal/repository"
	"github.com/godilite/jii-dashboard/internal/repository/repotest"
	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
	"github.com/godilite/jii-dashboard/pkg/grpc/server"
)

// startServer serves the analytics service over an in-memory connection
// backed by the seeded sqlite store.
func startServer(t *testing.T, seeded bool) *analytics.AnalyticsClient {
	t.Helper()
	logger := zaptest.NewLogger(t)

	open := repotest.Open
	if seeded {
		open = repotest.OpenSeeded
	}
	db := open(t)
	repo := repository.NewEventRepository(db, "sqlite3")

	registry := textanalysis.NewRegistry()
	registry.Register(textanalysis.ModeBasic, textanalysis.NewKeywordAnalyzer())
	registry.Disable(textanalysis.ModeLexicon, errors.New("lexicon not configured"))

	handlers := analytics.NewGRPCHandlers(
		service.NewDashboardService(repo, logger),
		service.NewSurveyService(repo, nil, logger),
		service.NewTextService(repo, nil, registry, textanalysis.ModeBasic, logger),
		mocks.NewMemoryCache(),
		logger,
		time.Minute,
	)

	lis := bufconn.Listen(1 << 20)
	srv, err := server.New(
		server.WithListener(lis),
		server.WithLogger(logger),
		server.WithLogging(true),
		server.WithMetrics(true),
	)
	require.NoError(t, err)
	srv.RegisterServiceWithHealth(analytics.ServiceName, func(s *grpc.Server) {
		analytics.RegisterAnalyticsServer(s, handlers)
	})
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return analytics.NewAnalyticsClient(conn)
}

func call(t *testing.T, c *analytics.AnalyticsClient, method string, req map[string]any) (*structpb.Struct, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := structpb.NewStruct(req)
	require.NoError(t, err)
	return c.Call(ctx, method, s)
}

func TestAnalyticsServer_Seeded(t *testing.T) {
	client := startServer(t, true)

	t.Run("overview", func(t *testing.T) {
		resp, err := call(t, client, "GetOverview", nil)
		require.NoError(t, err)
		f := resp.GetFields()
		assert.Equal(t, 4.0, f["participants"].GetNumberValue())
		assert.Equal(t, 4.0, f["registrations"].GetNumberValue())
		assert.Equal(t, 3.0, f["teams"].GetNumberValue())
		assert.Equal(t, 50.0, f["survey_completion_pct"].GetNumberValue())
	})

	t.Run("breakdown", func(t *testing.T) {
		resp, err := call(t, client, "GetBreakdown", map[string]any{"dimension": "participants_by_program"})
		require.NoError(t, err)
		groups := resp.GetFields()["groups"].GetListValue().GetValues()
		require.Len(t, groups, 3)
		first := groups[0].GetStructValue().GetFields()
		assert.Equal(t, "Ingeniería Industrial", first["label"].GetStringValue())
		assert.Equal(t, 2.0, first["count"].GetNumberValue())
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, err := call(t, client, "GetBreakdown", map[string]any{"dimension": "by_shoe_size"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("question summaries lowest mean first", func(t *testing.T) {
		resp, err := call(t, client, "GetQuestionSummaries", nil)
		require.NoError(t, err)
		qs := resp.GetFields()["questions"].GetListValue().GetValues()
		require.Len(t, qs, 3)
		var ids []float64
		for _, q := range qs {
			ids = append(ids, q.GetStructValue().GetFields()["question_id"].GetNumberValue())
		}
		assert.Equal(t, []float64{17, 1, 2}, ids)
	})

	t.Run("distribution of an unknown question", func(t *testing.T) {
		_, err := call(t, client, "GetQuestionDistribution", map[string]any{"question_id": 99})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("basic sentiment", func(t *testing.T) {
		resp, err := call(t, client, "GetSentiment", map[string]any{"question_id": 11, "mode": "basic"})
		require.NoError(t, err)
		f := resp.GetFields()
		assert.Equal(t, 2.0, f["total"].GetNumberValue())
		assert.Len(t, f["shares"].GetListValue().GetValues(), 2)
	})

	t.Run("lexicon sentiment when disabled", func(t *testing.T) {
		_, err := call(t, client, "GetSentiment", map[string]any{"question_id": 11, "mode": "lexicon"})
		assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	})

	t.Run("unknown sentiment mode", func(t *testing.T) {
		_, err := call(t, client, "GetSentiment", map[string]any{"question_id": 11, "mode": "transformer"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("question with only blank answers", func(t *testing.T) {
		_, err := call(t, client, "GetTextResponses", map[string]any{"question_id": 12})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("request id is echoed", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(context.Background(), server.RequestIDKey, "req-42")
		var header metadata.MD
		_, err := client.Call(ctx, "GetSurveyStats", nil, grpc.Header(&header))
		require.NoError(t, err)
		assert.Equal(t, []string{"req-42"}, header.Get(server.RequestIDKey))
	})
}

func TestAnalyticsServer_EmptyStore(t *testing.T) {
	client := startServer(t, false)

	resp, err := call(t, client, "GetOverview", nil)
	require.NoError(t, err)
	assert.Zero(t, resp.GetFields()["participants"].GetNumberValue())

	for _, method := range []string{"GetSurveyStats", "GetQuestionSummaries", "GetCategoryScores", "GetTextOverview"} {
		_, err := call(t, client, method, nil)
		assert.Equal(t, codes.NotFound, status.Code(err), method)
	}
}
