package models

import (
	"encoding/json"
	"time"
)

// SubmitLeadRequest carries a conversion. Contact fields are stored as-is;
// malformed emails or phone numbers are the consumer's problem, not ours.
type SubmitLeadRequest struct {
	SessionID  string          `json:"session_id" binding:"required"`
	QuizID     string          `json:"quiz_id" binding:"required"`
	Name       *string         `json:"name"`
	Email      *string         `json:"email"`
	Phone      *string         `json:"phone"`
	ExtraData  json.RawMessage `json:"extra_data,omitempty"`
	QuizResult *string         `json:"quiz_result"`
}

// LeadSummary is the projection returned by the per-quiz lead list and the
// CSV export, ordered by submission time descending.
type LeadSummary struct {
	LeadID     string    `json:"lead_id"`
	SessionID  string    `json:"session_id"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	QuizResult *string   `json:"quiz_result"`
	Timestamp  time.Time `json:"timestamp"`
}

type Lead struct {
	LeadID      string
	SessionID   string
	QuizID      string
	Name        *string
	Email       *string
	Phone       *string
	ExtraData   *string
	QuizResult  *string
	SubmittedAt time.Time
}

// LeadDetail is the lead record plus its reconstructed session journey.
type LeadDetail struct {
	LeadID      string                 `json:"lead_id"`
	SessionID   string                 `json:"session_id"`
	QuizID      string                 `json:"quiz_id"`
	Name        *string                `json:"name"`
	Email       *string                `json:"email"`
	Phone       *string                `json:"phone"`
	ExtraData   map[string]interface{} `json:"extra_data"`
	QuizResult  *string                `json:"quiz_result"`
	Timestamp   time.Time              `json:"timestamp"`
	UserJourney []JourneyEvent         `json:"user_journey"`
}

// EncodeExtraData serializes the opaque extra-data payload for storage.
// A missing payload is stored as an empty object so round-trips stay stable.
func EncodeExtraData(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}

// DecodeExtraData parses stored extra-data text back into a mapping.
// NULL or unparseable text yields an empty mapping rather than an error;
// the column holds whatever the client originally sent.
func DecodeExtraData(stored *string) map[string]interface{} {
	out := map[string]interface{}{}
	if stored == nil || *stored == "" {
		return out
	}
	if err := json.Unmarshal([]byte(*stored), &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}
