package models

// FunnelReport holds the staged per-quiz counts with derived rates, rounded
// to two decimals. An unknown quiz id produces the zero value, not an error.
type FunnelReport struct {
	TotalVisits     uint64  `json:"total_visits"`
	QuizStarts      uint64  `json:"quiz_starts"`
	QuizCompletions uint64  `json:"quiz_completions"`
	TotalLeads      uint64  `json:"total_leads"`
	QuizStartRate   float64 `json:"quiz_start_rate"`
	CompletionRate  float64 `json:"completion_rate"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// QuestionAbandonment ranks one question's drop-off. Views count repeated
// views by the same session; avg_time averages only events that carried a
// time_spent value.
type QuestionAbandonment struct {
	QuestionID    string  `json:"question_id"`
	QuestionOrder int32   `json:"question_order"`
	Views         uint64  `json:"views"`
	Abandons      uint64  `json:"abandons"`
	AbandonRate   float64 `json:"abandon_rate"`
	AvgTime       float64 `json:"avg_time"`
}

// AnalyticsReport is the full per-quiz analytics payload. The top list is a
// derived view of the abandonment rows, not separately stored data.
type AnalyticsReport struct {
	Funnel                  FunnelReport          `json:"funnel"`
	Abandonment             []QuestionAbandonment `json:"abandonment"`
	TopAbandonmentQuestions []QuestionAbandonment `json:"top_abandonment_questions"`
}
