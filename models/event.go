package models

import "time"

// TrackEventRequest is the payload the tracking snippet posts for every event.
// Only session_id and quiz_id are required; the question, answer, and session
// metadata fields are present or absent depending on the event type, and
// absent values are stored as NULL. event_type itself is optional to mirror
// the permissive client input. A missing timestamp_event defaults to the
// server clock.
type TrackEventRequest struct {
	SessionID     string     `json:"session_id" binding:"required"`
	QuizID        string     `json:"quiz_id" binding:"required"`
	EventType     *string    `json:"event_type"`
	QuestionID    *string    `json:"question_id"`
	QuestionOrder *int32     `json:"question_order"`
	AnswerValue   *string    `json:"answer_value"`
	TimeSpent     *int32     `json:"time_spent"`
	Timestamp     *time.Time `json:"timestamp_event"`

	// Session metadata, only meaningful on the first event of a session.
	// IPAddress is always overwritten server-side.
	Device    string `json:"device"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	IPAddress string `json:"ip_address"`
	Referrer  string `json:"referrer"`
	UTMSource string `json:"utm_source"`
}

// JourneyEvent is one step of a lead's session timeline, ordered by event
// timestamp ascending.
type JourneyEvent struct {
	Type      *string   `json:"type"`
	Question  *string   `json:"question"`
	Order     *int32    `json:"order"`
	Answer    *string   `json:"answer"`
	Time      *int32    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventQuizVisited     = "quiz_visited"
	EventQuizStarted     = "quiz_started"
	EventQuestionViewed  = "question_viewed"
	EventAnswerSubmitted = "answer_submitted"
	EventQuizCompleted   = "quiz_completed"
	EventQuizAbandoned   = "quiz_abandoned"
)
