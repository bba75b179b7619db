package survey

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/godilite/jii-dashboard/internal/catalog"
)

// Response is one answer to one survey question.
type Response struct {
	ParticipantID   string
	ParticipantName string
	QuestionID      int
	QuestionText    string
	Answer          string
	SubmittedAt     time.Time
}

// Dropped counts answers left out of an aggregation.
type Dropped struct {
	UnknownQuestion int
	Malformed       int
}

// QuestionSummary is the rating statistics of one question.
type QuestionSummary struct {
	QuestionID   int    `json:"question_id"`
	QuestionText string `json:"question_text"`
	Stats
}

// CategoryScore is the pooled mean of every rating given to a category's questions.
type CategoryScore struct {
	Name        string  `json:"name"`
	QuestionIDs []int   `json:"question_ids"`
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
}

// RatingValues groups the valid numeric answers of rating questions by
// question id, in response order.
func RatingValues(responses []Response, cat *catalog.Catalog) (map[int][]float64, Dropped) {
	var dropped Dropped
	values := make(map[int][]float64)

	for _, r := range responses {
		q, ok := cat.Lookup(r.QuestionID)
		if !ok {
			dropped.UnknownQuestion++
			continue
		}
		if q.Type != catalog.TypeRating {
			continue
		}
		v, ok := ParseRating(r.Answer)
		if !ok {
			dropped.Malformed++
			continue
		}
		values[q.ID] = append(values[q.ID], v)
	}
	return values, dropped
}

// SummarizeQuestions returns Stats for every rating question with at least one
// valid answer, lowest mean first. Ties are ordered by question id.
func SummarizeQuestions(responses []Response, cat *catalog.Catalog) ([]QuestionSummary, Dropped) {
	values, dropped := RatingValues(responses, cat)

	out := make([]QuestionSummary, 0, len(values))
	for id, vs := range values {
		st, ok := Summarize(vs)
		if !ok {
			continue
		}
		q, _ := cat.Lookup(id)
		out = append(out, QuestionSummary{QuestionID: id, QuestionText: q.Text, Stats: st})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean < out[j].Mean
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	return out, dropped
}

// SummarizeCategories pools the raw ratings of each category's questions and
// averages them. Categories without any valid rating are left out. Lowest mean
// first, ties by name.
func SummarizeCategories(responses []Response, cat *catalog.Catalog) ([]CategoryScore, Dropped) {
	values, dropped := RatingValues(responses, cat)

	out := make([]CategoryScore, 0)
	for _, c := range cat.Categories() {
		var pooled []float64
		for _, id := range c.QuestionIDs {
			pooled = append(pooled, values[id]...)
		}
		st, ok := Summarize(pooled)
		if !ok {
			continue
		}
		out = append(out, CategoryScore{
			Name:        c.Name,
			QuestionIDs: c.QuestionIDs,
			Count:       st.Count,
			Mean:        st.Mean,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean < out[j].Mean
		}
		return out[i].Name < out[j].Name
	})
	return out, dropped
}

// Bucket is one bar of a rating distribution.
type Bucket struct {
	Value   float64 `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribute counts each distinct value, ordered by value.
func Distribute(values []float64) []Bucket {
	counts := make(map[float64]int)
	for _, v := range values {
		counts[v]++
	}

	out := make([]Bucket, 0, len(counts))
	for v, c := range counts {
		out = append(out, Bucket{
			Value:   v,
			Count:   c,
			Percent: float64(c) / float64(len(values)) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// LengthStats describes answer lengths in characters.
type LengthStats struct {
	Count  int     `json:"count"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// MeasureLengths reports false when texts is empty.
func MeasureLengths(texts []string) (LengthStats, bool) {
	if len(texts) == 0 {
		return LengthStats{}, false
	}

	lengths := make([]float64, len(texts))
	for i, t := range texts {
		lengths[i] = float64(utf8.RuneCountInString(t))
	}
	st, _ := Summarize(lengths)

	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths[1:] {
		minLen = min(minLen, l)
		maxLen = max(maxLen, l)
	}

	return LengthStats{
		Count:  st.Count,
		Min:    int(minLen),
		Max:    int(maxLen),
		Mean:   st.Mean,
		Median: st.Median,
	}, true
}
