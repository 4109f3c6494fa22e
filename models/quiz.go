package models

import "time"

type RegisterQuizRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Quiz is registered once and immutable afterwards. TrackingCode is the
// capability token embed pages use to fetch the tracking snippet; it is
// generated from crypto/rand and carries no relation to the quiz id.
type Quiz struct {
	ID           string    `json:"quiz_id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	TrackingCode string    `json:"tracking_code"`
	CreatedAt    time.Time `json:"created_at"`
}
