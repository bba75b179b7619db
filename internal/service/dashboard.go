package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	dbTimeout = 2 * time.Second

	// unlabelled names the group of rows with no value in the counted column.
	unlabelled = "Sin especificar"
)

type column struct {
	table, name string
}

// Breakdown dimensions: the value counts the dashboard charts.
var dimensions = map[string]column{
	"participants_by_program":   {"participantes", "programa"},
	"participants_by_category":  {"participantes", "categoria"},
	"registrations_by_status":   {"asistencias", "estado"},
	"registrations_by_activity": {"asistencias", "actividad_codigo"},
	"teams_by_status":           {"equipos_concurso", "estado_registro"},
	"activities_by_type":        {"actividades", "tipo"},
}

// Timeline series: timestamp columns the dashboard plots over time.
var series = map[string]column{
	"attendance":         {"asistencias", "fecha_asistencia"},
	"team_registrations": {"equipos_concurso", "fecha_registro"},
}

// Dimensions lists the accepted breakdown names, sorted.
func Dimensions() []string { return sortedKeys(dimensions) }

// Series lists the accepted timeline names, sorted.
func Series() []string { return sortedKeys(series) }

func sortedKeys(m map[string]column) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DashboardService computes the event-wide KPIs, breakdowns and timelines.
type DashboardService struct {
	storage EventRepository
	logger  *zap.Logger
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(storage EventRepository, logger *zap.Logger) *DashboardService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &DashboardService{storage: storage, logger: logger}
}

// GetOverview returns the headline counts. An empty store yields zeros.
func (s *DashboardService) GetOverview(ctx context.Context) (Overview, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	t, err := s.storage.GetTotals(dbCtx)
	if err != nil {
		return Overview{}, noData(s.logger, "get totals", err)
	}

	o := Overview{
		Participants:    t.Participants,
		Registrations:   t.Registrations,
		Teams:           t.Teams,
		SurveyResponses: t.SurveyResponses,
		SurveyCompleted: t.SurveyCompleted,
		Wristbands:      t.Wristbands,
	}
	if t.Participants > 0 {
		o.SurveyCompletionPct = float64(t.SurveyCompleted) / float64(t.Participants) * 100
	}

	s.logger.Debug("fetched overview",
		zap.Int64("participants", o.Participants),
		zap.Int64("survey_responses", o.SurveyResponses))
	return o, nil
}

// GetBreakdown returns the value counts of one dimension, largest first.
func (s *DashboardService) GetBreakdown(ctx context.Context, dimension string) (Breakdown, error) {
	col, ok := dimensions[dimension]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.storage.CountBy(dbCtx, col.table, col.name)
	if err != nil {
		return Breakdown{}, noData(s.logger, "count "+dimension, err)
	}
	if len(rows) == 0 {
		return Breakdown{}, fmt.Errorf("%w: %s", ErrNoData, dimension)
	}

	b := Breakdown{Dimension: dimension, Groups: make([]Group, 0, len(rows))}
	for _, r := range rows {
		b.Total += r.Count
	}
	for _, r := range rows {
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = unlabelled
		}
		b.Groups = append(b.Groups, Group{
			Label:   label,
			Count:   r.Count,
			Percent: float64(r.Count) / float64(b.Total) * 100,
		})
	}
	return b, nil
}

// GetTimeline buckets one timestamp series by hour or by day.
func (s *DashboardService) GetTimeline(ctx context.Context, name string) (Timeline, error) {
	col, ok := series[name]
	if !ok {
		return Timeline{}, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	raw, err := s.storage.ListTimestamps(dbCtx, col.table, col.name)
	if err != nil {
		return Timeline{}, noData(s.logger, "list "+name, err)
	}

	stamps := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		ts, ok := parseTimestamp(r)
		if !ok {
			continue
		}
		stamps = append(stamps, ts)
	}
	dropped := len(raw) - len(stamps)
	if dropped > 0 {
		s.logger.Debug("dropped unparsable timestamps", zap.String("series", name), zap.Int("count", dropped))
	}
	if len(stamps) == 0 {
		return Timeline{}, fmt.Errorf("%w: %s", ErrNoData, name)
	}

	tl := bucketTimes(stamps)
	tl.Series = name
	tl.Dropped = dropped
	return tl, nil
}
