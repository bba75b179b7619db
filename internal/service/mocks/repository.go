package mocks

import (
	"context"
	"errors"

	"github.com/godilite/jii-dashboard/internal/repository/models"
)

// MockEventRepository is a mock implementation of the EventRepository interface
// for testing the service layer. Unset funcs fail the call.
type MockEventRepository struct {
	GetTotalsFunc             func(ctx context.Context) (models.Totals, error)
	CountByFunc               func(ctx context.Context, table, column string) ([]models.LabelCount, error)
	ListTimestampsFunc        func(ctx context.Context, table, column string) ([]string, error)
	ListParticipantsFunc      func(ctx context.Context) ([]models.Participant, error)
	ListActivitiesFunc        func(ctx context.Context) ([]models.Activity, error)
	ListAttendanceFunc        func(ctx context.Context) ([]models.Attendance, error)
	ListTeamsFunc             func(ctx context.Context) ([]models.Team, error)
	ListSurveyAnswersFunc     func(ctx context.Context) ([]models.SurveyAnswer, error)
	ListAnswersByQuestionFunc func(ctx context.Context, questionID int) ([]models.SurveyAnswer, error)
}

func notImplemented(name string) error {
	return errors.New(name + " not implemented")
}

func (m *MockEventRepository) GetTotals(ctx context.Context) (models.Totals, error) {
	if m.GetTotalsFunc != nil {
		return m.GetTotalsFunc(ctx)
	}
	return models.Totals{}, notImplemented("GetTotalsFunc")
}

func (m *MockEventRepository) CountBy(ctx context.Context, table, column string) ([]models.LabelCount, error) {
	if m.CountByFunc != nil {
		return m.CountByFunc(ctx, table, column)
	}
	return nil, notImplemented("CountByFunc")
}

func (m *MockEventRepository) ListTimestamps(ctx context.Context, table, column string) ([]string, error) {
	if m.ListTimestampsFunc != nil {
		return m.ListTimestampsFunc(ctx, table, column)
	}
	return nil, notImplemented("ListTimestampsFunc")
}

func (m *MockEventRepository) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx)
	}
	return nil, notImplemented("ListParticipantsFunc")
}

func (m *MockEventRepository) ListActivities(ctx context.Context) ([]models.Activity, error) {
	if m.ListActivitiesFunc != nil {
		return m.ListActivitiesFunc(ctx)
	}
	return nil, notImplemented("ListActivitiesFunc")
}

func (m *MockEventRepository) ListAttendance(ctx context.Context) ([]models.Attendance, error) {
	if m.ListAttendanceFunc != nil {
		return m.ListAttendanceFunc(ctx)
	}
	return nil, notImplemented("ListAttendanceFunc")
}

func (m *MockEventRepository) ListTeams(ctx context.Context) ([]models.Team, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(ctx)
	}
	return nil, notImplemented("ListTeamsFunc")
}

func (m *MockEventRepository) ListSurveyAnswers(ctx context.Context) ([]models.SurveyAnswer, error) {
	if m.ListSurveyAnswersFunc != nil {
		return m.ListSurveyAnswersFunc(ctx)
	}
	return nil, notImplemented("ListSurveyAnswersFunc")
}

func (m *MockEventRepository) ListAnswersByQuestion(ctx context.Context, questionID int) ([]models.SurveyAnswer, error) {
	if m.ListAnswersByQuestionFunc != nil {
		return m.ListAnswersByQuestionFunc(ctx, questionID)
	}
	return nil, notImplemented("ListAnswersByQuestionFunc")
}
