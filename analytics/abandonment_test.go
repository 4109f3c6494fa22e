package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizfunnel/api/models"
)

func TestBuildAbandonmentReportSingleQuestion(t *testing.T) {
	// Q1 viewed 8 times, abandoned twice with time_spent 10 and 20.
	report := BuildAbandonmentReport(
		[]AbandonGroup{{QuestionID: "q1", QuestionOrder: 1, Abandons: 2, AvgTimeSpent: 15}},
		map[string]uint64{"q1": 8},
	)

	require.Len(t, report, 1)
	assert.Equal(t, models.QuestionAbandonment{
		QuestionID:    "q1",
		QuestionOrder: 1,
		Views:         8,
		Abandons:      2,
		AbandonRate:   25.0,
		AvgTime:       15.0,
	}, report[0])
}

func TestBuildAbandonmentReportOrderedByQuestionOrder(t *testing.T) {
	report := BuildAbandonmentReport(
		[]AbandonGroup{
			{QuestionID: "q3", QuestionOrder: 3, Abandons: 5, AvgTimeSpent: 8},
			{QuestionID: "q1", QuestionOrder: 1, Abandons: 1, AvgTimeSpent: 30},
			{QuestionID: "q2", QuestionOrder: 2, Abandons: 2, AvgTimeSpent: 12},
		},
		map[string]uint64{"q1": 10, "q2": 10, "q3": 10},
	)

	require.Len(t, report, 3)
	assert.Equal(t, "q1", report[0].QuestionID)
	assert.Equal(t, "q2", report[1].QuestionID)
	assert.Equal(t, "q3", report[2].QuestionID)
}

func TestBuildAbandonmentReportUnviewedQuestion(t *testing.T) {
	// No view data for the question: defensive 0 views and 0 rate instead
	// of a division by zero.
	report := BuildAbandonmentReport(
		[]AbandonGroup{{QuestionID: "q9", QuestionOrder: 9, Abandons: 3, AvgTimeSpent: 5}},
		map[string]uint64{},
	)

	require.Len(t, report, 1)
	assert.Zero(t, report[0].Views)
	assert.Zero(t, report[0].AbandonRate)
	assert.Equal(t, uint64(3), report[0].Abandons)
}

func TestBuildAbandonmentReportAllTimeSpentMissing(t *testing.T) {
	// avg over zero non-null values comes back NaN from the store query.
	report := BuildAbandonmentReport(
		[]AbandonGroup{{QuestionID: "q1", QuestionOrder: 1, Abandons: 2, AvgTimeSpent: math.NaN()}},
		map[string]uint64{"q1": 4},
	)

	require.Len(t, report, 1)
	assert.Zero(t, report[0].AvgTime)
}

func TestBuildAbandonmentReportRounding(t *testing.T) {
	report := BuildAbandonmentReport(
		[]AbandonGroup{{QuestionID: "q1", QuestionOrder: 1, Abandons: 1, AvgTimeSpent: 7.25}},
		map[string]uint64{"q1": 3},
	)

	require.Len(t, report, 1)
	assert.Equal(t, 33.33, report[0].AbandonRate)
	assert.Equal(t, 7.3, report[0].AvgTime)
}

func TestBuildAbandonmentReportEmpty(t *testing.T) {
	report := BuildAbandonmentReport(nil, nil)

	assert.Empty(t, report)
	assert.NotNil(t, report)
}

func TestTopAbandonedTruncatesToWorstThree(t *testing.T) {
	report := []models.QuestionAbandonment{
		{QuestionID: "q1", AbandonRate: 10},
		{QuestionID: "q2", AbandonRate: 40},
		{QuestionID: "q3", AbandonRate: 25},
		{QuestionID: "q4", AbandonRate: 30},
	}

	top := TopAbandoned(report, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "q2", top[0].QuestionID)
	assert.Equal(t, "q4", top[1].QuestionID)
	assert.Equal(t, "q3", top[2].QuestionID)

	// Input order is untouched.
	assert.Equal(t, "q1", report[0].QuestionID)
}

func TestTopAbandonedFewerThanN(t *testing.T) {
	report := []models.QuestionAbandonment{{QuestionID: "q1", AbandonRate: 50}}

	assert.Len(t, TopAbandoned(report, 3), 1)
}
