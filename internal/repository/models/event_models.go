package models

import "database/sql"

// Participant is a row of participantes.
type Participant struct {
	ID              int64
	FullName        string
	Email           string
	Program         string
	Category        string
	SurveyCompleted bool
	Wristband       sql.NullString
	CreatedAt       string
}

// Activity is a row of actividades.
type Activity struct {
	Code     string
	Name     string
	Type     string
	StartsAt string
}

// Attendance is a row of asistencias: one sign-up of a participant to an activity.
type Attendance struct {
	ParticipantEmail string
	ActivityCode     string
	Status           string
	AttendedAt       string
	CreatedAt        string
}

// Team is a row of equipos_concurso.
type Team struct {
	Name         string
	Status       string
	RegisteredAt string
}

// SurveyAnswer is a row of encuesta_respuestas.
type SurveyAnswer struct {
	ParticipantEmail string
	ParticipantName  string
	QuestionID       int
	QuestionText     string
	Answer           string
	Timestamp        string
}

// Totals holds the headline counts, computed in SQL.
type Totals struct {
	Participants    int64
	Registrations   int64
	Teams           int64
	SurveyResponses int64
	SurveyCompleted int64
	Wristbands      int64
}

// LabelCount is one group of a GROUP BY count.
type LabelCount struct {
	Label string
	Count int64
}
