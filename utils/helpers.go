package utils

// IsKnownEventType reports whether an event type belongs to one of the funnel
// stages. Unknown types are still stored, they just never bucket into a stage.
func IsKnownEventType(eventType string) bool {
	switch eventType {
	case "quiz_visited", "quiz_started", "question_viewed", "answer_submitted", "quiz_completed", "quiz_abandoned":
		return true
	default:
		return false
	}
}
