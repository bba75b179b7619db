package service

import (
	"context"

	"github.com/godilite/jii-dashboard/internal/repository/models"
)

// EventRepository is the read side of the event store.
type EventRepository interface {
	GetTotals(ctx context.Context) (models.Totals, error)
	CountBy(ctx context.Context, table, column string) ([]models.LabelCount, error)
	ListTimestamps(ctx context.Context, table, column string) ([]string, error)
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	ListAttendance(ctx context.Context) ([]models.Attendance, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListSurveyAnswers(ctx context.Context) ([]models.SurveyAnswer, error)
	ListAnswersByQuestion(ctx context.Context, questionID int) ([]models.SurveyAnswer, error)
}
