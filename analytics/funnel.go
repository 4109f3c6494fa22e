// Package analytics turns raw per-quiz aggregates from the stores into the
// report types served by the API. Everything here is pure arithmetic over
// rows the stores already fetched, so it stays testable without a database.
package analytics

import (
	"math"

	"quizfunnel/api/models"
)

// FunnelCounts are the raw staged counts for one quiz: distinct sessions,
// distinct sessions with a start/completion event, and total lead rows
// (deliberately not session-deduplicated).
type FunnelCounts struct {
	TotalVisits     uint64
	QuizStarts      uint64
	QuizCompletions uint64
	TotalLeads      uint64
}

// BuildFunnelReport derives the three conversion rates. Each rate guards its
// denominator: no visits means a 0 start and conversion rate, no starts means
// a 0 completion rate.
func BuildFunnelReport(c FunnelCounts) models.FunnelReport {
	report := models.FunnelReport{
		TotalVisits:     c.TotalVisits,
		QuizStarts:      c.QuizStarts,
		QuizCompletions: c.QuizCompletions,
		TotalLeads:      c.TotalLeads,
	}

	if c.TotalVisits > 0 {
		report.QuizStartRate = round2(float64(c.QuizStarts) / float64(c.TotalVisits) * 100)
		report.ConversionRate = round2(float64(c.TotalLeads) / float64(c.TotalVisits) * 100)
	}
	if c.QuizStarts > 0 {
		report.CompletionRate = round2(float64(c.QuizCompletions) / float64(c.QuizStarts) * 100)
	}

	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
