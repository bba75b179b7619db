package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/godilite/jii-dashboard/internal/export"
	"github.com/godilite/jii-dashboard/internal/survey"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
	"github.com/godilite/jii-dashboard/pkg/metrics"
)

// ExportService builds the downloadable CSV view of each dashboard table.
type ExportService struct {
	storage EventRepository
	catalog *catalog.Catalog
	logger  *zap.Logger
	views   map[string]func(context.Context) (export.Table, error)
}

// NewExportService creates a new ExportService. A nil catalog selects the default one.
func NewExportService(storage EventRepository, cat *catalog.Catalog, logger *zap.Logger) *ExportService {
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
	s := &ExportService{storage: storage, catalog: cat, logger: logger}
	s.views = map[string]func(context.Context) (export.Table, error){
		"participantes":    s.participants,
		"asistencias":      s.attendance,
		"equipos_concurso": s.teams,
		"actividades":      s.activities,
		"respuestas_texto": s.textAnswers,
		"calificaciones":   s.ratings,
		"promedios":        s.averages,
	}
	return s
}

// Views lists the exportable view names, sorted.
func (s *ExportService) Views() []string {
	out := make([]string, 0, len(s.views))
	for v := range s.views {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Export builds one view. An empty view is still a valid table with a header.
func (s *ExportService) Export(ctx context.Context, view string) (export.Table, error) {
	build, ok := s.views[view]
	if !ok {
		return export.Table{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	t, err := build(dbCtx)
	if err != nil {
		return export.Table{}, noData(s.logger, "export "+view, err)
	}
	t.Name = view

	metrics.ExportedRowsTotal.WithLabelValues(view).Add(float64(t.Len()))
	s.logger.Info("exported view", zap.String("view", view), zap.Int("rows", t.Len()))
	return t, nil
}

func (s *ExportService) participants(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListParticipants(ctx)
	if err != nil {
		return export.Table{}, err
	}
	t := export.Table{Header: []string{
		"id", "nombre_completo", "email", "programa", "categoria", "encuesta_completada", "brazalete", "created_at",
	}}
	for _, p := range rows {
		t.Append(export.Int(p.ID), p.FullName, p.Email, p.Program, p.Category,
			export.Bool(p.SurveyCompleted), p.Wristband.String, p.CreatedAt)
	}
	return t, nil
}

func (s *ExportService) attendance(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListAttendance(ctx)
	if err != nil {
		return export.Table{}, err
	}
	t := export.Table{Header: []string{
		"participante_email", "actividad_codigo", "estado", "fecha_asistencia", "created_at",
	}}
	for _, a := range rows {
		t.Append(a.ParticipantEmail, a.ActivityCode, a.Status, a.AttendedAt, a.CreatedAt)
	}
	return t, nil
}

func (s *ExportService) teams(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListTeams(ctx)
	if err != nil {
		return export.Table{}, err
	}
	t := export.Table{Header: []string{"nombre", "estado_registro", "fecha_registro"}}
	for _, tm := range rows {
		t.Append(tm.Name, tm.Status, tm.RegisteredAt)
	}
	return t, nil
}

func (s *ExportService) activities(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListActivities(ctx)
	if err != nil {
		return export.Table{}, err
	}
	t := export.Table{Header: []string{"codigo", "nombre", "tipo", "fecha_inicio"}}
	for _, a := range rows {
		t.Append(a.Code, a.Name, a.Type, a.StartsAt)
	}
	return t, nil
}

// textAnswers exports every non-blank long-text answer with its keyword-vote label.
func (s *ExportService) textAnswers(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListSurveyAnswers(ctx)
	if err != nil {
		return export.Table{}, err
	}
	longText := s.catalog.IDsByType(catalog.TypeLongText)

	t := export.Table{Header: []string{
		"pregunta_id", "pregunta_texto", "nombre_completo", "participante_email", "respuesta", "sentimiento", "timestamp",
	}}
	for _, r := range nonBlank(rows) {
		if _, ok := longText[r.QuestionID]; !ok {
			continue
		}
		t.Append(strconv.Itoa(r.QuestionID), r.QuestionText, r.ParticipantName, r.ParticipantEmail,
			r.Answer, string(textanalysis.ClassifyBasic(r.Answer)), r.Timestamp)
	}
	return t, nil
}

// ratings exports rating answers with their numeric value; the value is blank
// when the answer is not a number.
func (s *ExportService) ratings(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListSurveyAnswers(ctx)
	if err != nil {
		return export.Table{}, err
	}
	ratingIDs := s.catalog.IDsByType(catalog.TypeRating)

	t := export.Table{Header: []string{
		"participante_email", "nombre_completo", "pregunta_id", "pregunta_texto", "respuesta", "respuesta_num", "timestamp",
	}}
	for _, r := range rows {
		if _, ok := ratingIDs[r.QuestionID]; !ok {
			continue
		}
		num := ""
		if v, ok := survey.ParseRating(r.Answer); ok {
			num = export.Float(v)
		}
		t.Append(r.ParticipantEmail, r.ParticipantName, strconv.Itoa(r.QuestionID), r.QuestionText,
			r.Answer, num, r.Timestamp)
	}
	return t, nil
}

// averages exports the per-question statistics, lowest mean first.
func (s *ExportService) averages(ctx context.Context) (export.Table, error) {
	rows, err := s.storage.ListSurveyAnswers(ctx)
	if err != nil {
		return export.Table{}, err
	}
	summaries, _ := survey.SummarizeQuestions(toResponses(rows), s.catalog)

	t := export.Table{Header: []string{
		"pregunta_id", "pregunta_texto", "promedio", "mediana", "moda", "desv_std", "total",
	}}
	for _, q := range summaries {
		t.Append(strconv.Itoa(q.QuestionID), q.QuestionText, export.Float(q.Mean), export.Float(q.Median),
			export.Float(q.Mode), export.Float(q.Std), strconv.Itoa(q.Count))
	}
	return t, nil
}
