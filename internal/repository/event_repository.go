package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/godilite/jii-dashboard/internal/repository/models"
)

// ErrUnknownColumn is returned for a table/column pair outside the allowed set.
var ErrUnknownColumn = errors.New("column not allowed")

// groupable lists the columns that may be counted or read as a timeline.
// Table and column names are spliced into SQL, so only these are accepted.
var groupable = map[string]map[string]bool{
	"participantes":    {"programa": true, "categoria": true},
	"asistencias":      {"estado": true, "actividad_codigo": true, "fecha_asistencia": true},
	"equipos_concurso": {"estado_registro": true, "fecha_registro": true},
	"actividades":      {"tipo": true},
}

type EventRepository struct {
	db     *sql.DB
	driver string
}

// NewEventRepository wraps db. driver selects the placeholder style: "postgres"
// uses $n, anything else ?.
func NewEventRepository(db *sql.DB, driver string) *EventRepository {
	return &EventRepository{db: db, driver: driver}
}

// rebind rewrites ? placeholders for drivers that use numbered ones.
func (r *EventRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func checkColumn(table, column string) error {
	if cols, ok := groupable[table]; ok && cols[column] {
		return nil
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, column)
}

// GetTotals computes the headline counts in a single round trip.
func (r *EventRepository) GetTotals(ctx context.Context) (models.Totals, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM participantes) AS participants,
			(SELECT COUNT(*) FROM asistencias) AS registrations,
			(SELECT COUNT(*) FROM equipos_concurso) AS teams,
			(SELECT COUNT(*) FROM encuesta_respuestas) AS survey_responses,
			(SELECT COUNT(*) FROM participantes WHERE encuesta_completada = ?) AS survey_completed,
			(SELECT COUNT(*) FROM participantes WHERE brazalete IS NOT NULL) AS wristbands
	`

	var t models.Totals
	err := r.db.QueryRowContext(ctx, r.rebind(query), true).Scan(
		&t.Participants, &t.Registrations, &t.Teams, &t.SurveyResponses, &t.SurveyCompleted, &t.Wristbands)
	if err != nil {
		return models.Totals{}, fmt.Errorf("query GetTotals: %w", err)
	}
	return t, nil
}

// CountBy groups table rows by column. Null and empty values share the "" label.
// Largest groups first, ties by label.
func (r *EventRepository) CountBy(ctx context.Context, table, column string) ([]models.LabelCount, error) {
	if err := checkColumn(table, column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(%[2]s, '') AS label, COUNT(*) AS total
		FROM %[1]s
		GROUP BY COALESCE(%[2]s, '')
		ORDER BY total DESC, label ASC
	`, table, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query CountBy %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var results []models.LabelCount
	for rows.Next() {
		var lc models.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan CountBy row: %w", err)
		}
		results = append(results, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate CountBy: %w", err)
	}
	return results, nil
}

// ListTimestamps returns the non-null values of a timestamp column as text.
func (r *EventRepository) ListTimestamps(ctx context.Context, table, column string) ([]string, error) {
	if err := checkColumn(table, column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %[2]s FROM %[1]s WHERE %[2]s IS NOT NULL ORDER BY %[2]s`, table, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListTimestamps %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var ts sql.NullString
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan ListTimestamps row: %w", err)
		}
		results = append(results, ts.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListTimestamps: %w", err)
	}
	return results, nil
}

func (r *EventRepository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	const query = `
		SELECT id, nombre_completo, email, programa, categoria, encuesta_completada, brazalete, created_at
		FROM participantes
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListParticipants: %w", err)
	}
	defer rows.Close()

	var results []models.Participant
	for rows.Next() {
		var p models.Participant
		var name, email, program, category, createdAt sql.NullString
		var completed sql.NullBool
		if err := rows.Scan(&p.ID, &name, &email, &program, &category, &completed, &p.Wristband, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ListParticipants row: %w", err)
		}
		p.FullName = name.String
		p.Email = email.String
		p.Program = program.String
		p.Category = category.String
		p.SurveyCompleted = completed.Valid && completed.Bool
		p.CreatedAt = createdAt.String
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListParticipants: %w", err)
	}
	return results, nil
}

func (r *EventRepository) ListActivities(ctx context.Context) ([]models.Activity, error) {
	const query = `
		SELECT codigo, nombre, tipo, fecha_inicio
		FROM actividades
		ORDER BY fecha_inicio, codigo
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListActivities: %w", err)
	}
	defer rows.Close()

	var results []models.Activity
	for rows.Next() {
		var code, name, kind, startsAt sql.NullString
		if err := rows.Scan(&code, &name, &kind, &startsAt); err != nil {
			return nil, fmt.Errorf("scan ListActivities row: %w", err)
		}
		results = append(results, models.Activity{
			Code:     code.String,
			Name:     name.String,
			Type:     kind.String,
			StartsAt: startsAt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListActivities: %w", err)
	}
	return results, nil
}

func (r *EventRepository) ListAttendance(ctx context.Context) ([]models.Attendance, error) {
	const query = `
		SELECT participante_email, actividad_codigo, estado, fecha_asistencia, created_at
		FROM asistencias
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListAttendance: %w", err)
	}
	defer rows.Close()

	var results []models.Attendance
	for rows.Next() {
		var email, code, status, attendedAt, createdAt sql.NullString
		if err := rows.Scan(&email, &code, &status, &attendedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ListAttendance row: %w", err)
		}
		results = append(results, models.Attendance{
			ParticipantEmail: email.String,
			ActivityCode:     code.String,
			Status:           status.String,
			AttendedAt:       attendedAt.String,
			CreatedAt:        createdAt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListAttendance: %w", err)
	}
	return results, nil
}

func (r *EventRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	const query = `
		SELECT nombre, estado_registro, fecha_registro
		FROM equipos_concurso
		ORDER BY fecha_registro
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListTeams: %w", err)
	}
	defer rows.Close()

	var results []models.Team
	for rows.Next() {
		var name, status, registeredAt sql.NullString
		if err := rows.Scan(&name, &status, &registeredAt); err != nil {
			return nil, fmt.Errorf("scan ListTeams row: %w", err)
		}
		results = append(results, models.Team{
			Name:         name.String,
			Status:       status.String,
			RegisteredAt: registeredAt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListTeams: %w", err)
	}
	return results, nil
}

// ListSurveyAnswers returns every answer, oldest first.
func (r *EventRepository) ListSurveyAnswers(ctx context.Context) ([]models.SurveyAnswer, error) {
	const query = `
		SELECT participante_email, nombre_completo, pregunta_id, pregunta_texto, respuesta, timestamp
		FROM encuesta_respuestas
		ORDER BY timestamp
	`
	return r.querySurveyAnswers(ctx, "ListSurveyAnswers", query)
}

// ListAnswersByQuestion returns the answers to one question, oldest first.
func (r *EventRepository) ListAnswersByQuestion(ctx context.Context, questionID int) ([]models.SurveyAnswer, error) {
	const query = `
		SELECT participante_email, nombre_completo, pregunta_id, pregunta_texto, respuesta, timestamp
		FROM encuesta_respuestas
		WHERE pregunta_id = ?
		ORDER BY timestamp
	`
	return r.querySurveyAnswers(ctx, "ListAnswersByQuestion", query, questionID)
}

func (r *EventRepository) querySurveyAnswers(ctx context.Context, op, query string, args ...any) ([]models.SurveyAnswer, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}
	defer rows.Close()

	var results []models.SurveyAnswer
	for rows.Next() {
		var a models.SurveyAnswer
		var email, name, text, answer, submittedAt sql.NullString
		var questionID sql.NullInt64
		if err := rows.Scan(&email, &name, &questionID, &text, &answer, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", op, err)
		}
		a.ParticipantEmail = email.String
		a.ParticipantName = name.String
		a.QuestionID = int(questionID.Int64)
		a.QuestionText = text.String
		a.Answer = answer.String
		a.Timestamp = submittedAt.String
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", op, err)
	}
	return results, nil
}
