package service

import (
	"github.com/godilite/jii-dashboard/internal/survey"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

type Overview struct {
	Participants        int64   `json:"participants"`
	Registrations       int64   `json:"registrations"`
	Teams               int64   `json:"teams"`
	SurveyResponses     int64   `json:"survey_responses"`
	SurveyCompleted     int64   `json:"survey_completed"`
	SurveyCompletionPct float64 `json:"survey_completion_pct"`
	Wristbands          int64   `json:"wristbands"`
}

type Group struct {
	Label   string  `json:"label"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

type Breakdown struct {
	Dimension string  `json:"dimension"`
	Total     int64   `json:"total"`
	Groups    []Group `json:"groups"`
}

type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
)

type TimelinePoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type Timeline struct {
	Series      string          `json:"series"`
	Granularity Granularity     `json:"granularity"`
	Points      []TimelinePoint `json:"points"`
	Dropped     int             `json:"dropped"`
}

type SurveyStats struct {
	TotalResponses             int     `json:"total_responses"`
	UniqueParticipants         int     `json:"unique_participants"`
	AnsweredQuestions          int     `json:"answered_questions"`
	AvgResponsesPerParticipant float64 `json:"avg_responses_per_participant"`
}

type QuestionDistribution struct {
	QuestionID   int             `json:"question_id"`
	QuestionText string          `json:"question_text"`
	Stats        survey.Stats    `json:"stats"`
	Buckets      []survey.Bucket `json:"buckets"`
}

type TextOverview struct {
	TotalResponses     int     `json:"total_responses"`
	UniqueParticipants int     `json:"unique_participants"`
	QuestionsWithText  int     `json:"questions_with_text"`
	AvgLength          float64 `json:"avg_length"`
}

type TextResponse struct {
	Participant string `json:"participant"`
	Email       string `json:"email"`
	Answer      string `json:"answer"`
}

type TextResponses struct {
	QuestionID   int                `json:"question_id"`
	QuestionText string             `json:"question_text"`
	Responses    []TextResponse     `json:"responses"`
	Lengths      survey.LengthStats `json:"lengths"`
}

type WordFrequencies struct {
	QuestionID int                          `json:"question_id"`
	TopN       int                          `json:"top_n"`
	Words      []textanalysis.WordFrequency `json:"words"`
}

type LabelShare struct {
	Label   textanalysis.Label `json:"label"`
	Count   int                `json:"count"`
	Percent float64            `json:"percent"`
}

type ClassifiedResponse struct {
	Participant string `json:"participant"`
	Answer      string `json:"answer"`
	textanalysis.SentimentResult
}

type SentimentReport struct {
	QuestionID   int                                         `json:"question_id"`
	QuestionText string                                      `json:"question_text"`
	Mode         textanalysis.Mode                           `json:"mode"`
	Total        int                                         `json:"total"`
	Shares       []LabelShare                                `json:"shares"`
	Examples     map[textanalysis.Label][]ClassifiedResponse `json:"examples"`
	Responses    []ClassifiedResponse                        `json:"responses"`
}
