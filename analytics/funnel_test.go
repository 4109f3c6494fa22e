package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizfunnel/api/models"
)

func TestBuildFunnelReportTypicalFunnel(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{
		TotalVisits:     10,
		QuizStarts:      6,
		QuizCompletions: 3,
		TotalLeads:      2,
	})

	assert.Equal(t, models.FunnelReport{
		TotalVisits:     10,
		QuizStarts:      6,
		QuizCompletions: 3,
		TotalLeads:      2,
		QuizStartRate:   60.0,
		CompletionRate:  50.0,
		ConversionRate:  20.0,
	}, report)
}

func TestBuildFunnelReportNoData(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{})

	assert.Equal(t, models.FunnelReport{}, report)
}

func TestBuildFunnelReportVisitsWithoutStarts(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{TotalVisits: 5})

	assert.Equal(t, uint64(5), report.TotalVisits)
	assert.Zero(t, report.QuizStartRate)
	assert.Zero(t, report.CompletionRate)
	assert.Zero(t, report.ConversionRate)
}

func TestBuildFunnelReportRounding(t *testing.T) {
	report := BuildFunnelReport(FunnelCounts{
		TotalVisits: 3,
		QuizStarts:  1,
		TotalLeads:  2,
	})

	// 1/3 and 2/3 of 100, rounded half-up to 2 decimals.
	assert.Equal(t, 33.33, report.QuizStartRate)
	assert.Equal(t, 66.67, report.ConversionRate)
}

func TestBuildFunnelReportDuplicateLeadsCount(t *testing.T) {
	// Leads are not deduplicated by session, so the conversion rate can
	// exceed 100%.
	report := BuildFunnelReport(FunnelCounts{TotalVisits: 2, TotalLeads: 3})

	assert.Equal(t, 150.0, report.ConversionRate)
}

func TestBuildFunnelReportIsDeterministic(t *testing.T) {
	counts := FunnelCounts{TotalVisits: 7, QuizStarts: 4, QuizCompletions: 2, TotalLeads: 1}

	assert.Equal(t, BuildFunnelReport(counts), BuildFunnelReport(counts))
}

func TestBuildFunnelReportCompletionMonotonic(t *testing.T) {
	before := BuildFunnelReport(FunnelCounts{TotalVisits: 10, QuizStarts: 6, QuizCompletions: 3})
	after := BuildFunnelReport(FunnelCounts{TotalVisits: 10, QuizStarts: 6, QuizCompletions: 4})

	assert.GreaterOrEqual(t, after.QuizCompletions, before.QuizCompletions)
	assert.GreaterOrEqual(t, after.CompletionRate, before.CompletionRate)
}
