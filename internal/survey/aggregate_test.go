package survey

import (
	"testing"

	"github.com/godilite/jii-dashboard/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answers(qid int, raw ...string) []Response {
	out := make([]Response, len(raw))
	for i, a := range raw {
		out[i] = Response{ParticipantID: "p", QuestionID: qid, Answer: a}
	}
	return out
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Question{
			{ID: 1, Text: "Organización", Type: catalog.TypeRating},
			{ID: 2, Text: "Horarios", Type: catalog.TypeRating},
			{ID: 3, Text: "Comentarios", Type: catalog.TypeLongText},
			{ID: 4, Text: "Workshop", Type: catalog.TypeRating},
		},
		[]catalog.Category{
			{Name: "General", QuestionIDs: []int{1, 2}},
			{Name: "Workshop", QuestionIDs: []int{4}},
		},
	)
	require.NoError(t, err)
	return c
}

func TestSummarizeQuestions(t *testing.T) {
	cat := testCatalog(t)

	t.Run("malformed ratings are excluded", func(t *testing.T) {
		got, dropped := SummarizeQuestions(answers(1, "3", "abc", "5"), cat)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Count)
		assert.InDelta(t, 4.0, got[0].Mean, 1e-9)
		assert.Equal(t, 1, dropped.Malformed)
	})

	t.Run("unknown ids and text questions are skipped", func(t *testing.T) {
		var rs []Response
		rs = append(rs, answers(99, "5")...)
		rs = append(rs, answers(3, "muy bien")...)
		rs = append(rs, answers(2, "4")...)

		got, dropped := SummarizeQuestions(rs, cat)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].QuestionID)
		assert.Equal(t, "Horarios", got[0].QuestionText)
		assert.Equal(t, 1, dropped.UnknownQuestion)
		assert.Equal(t, 0, dropped.Malformed)
	})

	t.Run("ascending by mean, ties by id", func(t *testing.T) {
		var rs []Response
		rs = append(rs, answers(4, "3")...)
		rs = append(rs, answers(1, "5", "4")...)
		rs = append(rs, answers(2, "3")...)

		got, _ := SummarizeQuestions(rs, cat)
		require.Len(t, got, 3)
		assert.Equal(t, []int{2, 4, 1}, []int{got[0].QuestionID, got[1].QuestionID, got[2].QuestionID})
	})

	t.Run("no valid ratings", func(t *testing.T) {
		got, _ := SummarizeQuestions(answers(1, "", "n/a"), cat)
		assert.Empty(t, got)
	})
}

func TestSummarizeCategories(t *testing.T) {
	cat := testCatalog(t)

	t.Run("pooled at response level", func(t *testing.T) {
		var rs []Response
		rs = append(rs, answers(1, "2", "2", "2")...)
		rs = append(rs, answers(2, "4")...)

		got, _ := SummarizeCategories(rs, cat)
		require.Len(t, got, 1)
		assert.Equal(t, "General", got[0].Name)
		assert.Equal(t, 4, got[0].Count)
		assert.InDelta(t, 2.5, got[0].Mean, 1e-9)
	})

	t.Run("ascending by mean", func(t *testing.T) {
		var rs []Response
		rs = append(rs, answers(1, "5")...)
		rs = append(rs, answers(4, "2", "3")...)

		got, _ := SummarizeCategories(rs, cat)
		require.Len(t, got, 2)
		assert.Equal(t, "Workshop", got[0].Name)
		assert.Equal(t, "General", got[1].Name)
	})

	t.Run("empty input", func(t *testing.T) {
		got, _ := SummarizeCategories(nil, cat)
		assert.Empty(t, got)
	})
}

func TestDistribute(t *testing.T) {
	got := Distribute([]float64{5, 4, 5, 3})

	assert.Equal(t, []Bucket{
		{Value: 3, Count: 1, Percent: 25},
		{Value: 4, Count: 1, Percent: 25},
		{Value: 5, Count: 2, Percent: 50},
	}, got)
	assert.Empty(t, Distribute(nil))
}

func TestMeasureLengths(t *testing.T) {
	st, ok := MeasureLengths([]string{"útil", "excelente", "no"})
	require.True(t, ok)
	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 2, st.Min)
	assert.Equal(t, 9, st.Max)
	assert.InDelta(t, 5.0, st.Mean, 1e-9)
	assert.InDelta(t, 4.0, st.Median, 1e-9)

	_, ok = MeasureLengths(nil)
	assert.False(t, ok)
}
