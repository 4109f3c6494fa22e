package analytics

import (
	"math"
	"sort"

	"quizfunnel/api/models"
)

// AbandonGroup is one quiz_abandoned group keyed by question id.
// QuestionOrder is a representative value picked per group; a question whose
// abandonment events disagree on order surfaces whichever one the query
// returned. AvgTimeSpent averages only the events that carried time_spent and
// is NaN when none did.
type AbandonGroup struct {
	QuestionID    string
	QuestionOrder int32
	Abandons      uint64
	AvgTimeSpent  float64
}

// BuildAbandonmentReport joins abandonment groups against question view
// counts and orders the result by question position. Only questions with at
// least one abandonment appear; the report answers "where do people drop
// off", not "full funnel per question". A question missing from the view
// counts gets 0 views and therefore a 0 rate.
func BuildAbandonmentReport(groups []AbandonGroup, views map[string]uint64) []models.QuestionAbandonment {
	report := make([]models.QuestionAbandonment, 0, len(groups))

	for _, g := range groups {
		viewCount := views[g.QuestionID]

		var rate float64
		if viewCount > 0 {
			rate = round2(float64(g.Abandons) / float64(viewCount) * 100)
		}

		avgTime := g.AvgTimeSpent
		if math.IsNaN(avgTime) {
			avgTime = 0
		}

		report = append(report, models.QuestionAbandonment{
			QuestionID:    g.QuestionID,
			QuestionOrder: g.QuestionOrder,
			Views:         viewCount,
			Abandons:      g.Abandons,
			AbandonRate:   rate,
			AvgTime:       round1(avgTime),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].QuestionOrder < report[j].QuestionOrder
	})

	return report
}

// TopAbandoned returns the n worst questions by abandonment rate. The input
// slice is left untouched.
func TopAbandoned(report []models.QuestionAbandonment, n int) []models.QuestionAbandonment {
	top := make([]models.QuestionAbandonment, len(report))
	copy(top, report)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].AbandonRate > top[j].AbandonRate
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
