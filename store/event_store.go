package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"quizfunnel/api/database"
	"quizfunnel/api/models"
)

// EventStore appends tracking events to ClickHouse and creates the session
// row in Postgres the first time a session id is seen.
type EventStore struct {
	db *database.DBClient
	ch *database.ClickHouseClient
}

func NewEventStore(db *database.DBClient, ch *database.ClickHouseClient) *EventStore {
	return &EventStore{db: db, ch: ch}
}

// RecordEvent stores one event and returns its freshly assigned id. Session
// metadata rides along on the payload; whatever fields accompany the first
// event of the session become the session record, and later events never
// update it. Events are append-only and are never validated beyond the
// required session and quiz ids.
func (s *EventStore) RecordEvent(ctx context.Context, req models.TrackEventRequest) (string, error) {
	if err := s.ensureSession(ctx, req); err != nil {
		return "", err
	}

	eventID := uuid.New().String()
	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	query := `
		INSERT INTO quiz_events (
			event_id, session_id, quiz_id, event_type, question_id,
			question_order, answer_value, time_spent, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	err := s.ch.Conn.Exec(ctx, query,
		eventID,
		req.SessionID,
		req.QuizID,
		req.EventType,
		req.QuestionID,
		req.QuestionOrder,
		req.AnswerValue,
		req.TimeSpent,
		timestamp,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return eventID, nil
}

// ensureSession inserts the session row on first sight. ON CONFLICT DO
// NOTHING makes the duplicate-first-event race a no-op: session metadata is
// write-once descriptive data, so whichever concurrent insert lands first
// wins and the loser is silently dropped.
func (s *EventStore) ensureSession(ctx context.Context, req models.TrackEventRequest) error {
	query := `
		INSERT INTO sessions (session_id, quiz_id, device, browser, os, ip_address, referrer, utm_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO NOTHING;
	`
	_, err := s.db.DB.ExecContext(ctx, query,
		req.SessionID,
		req.QuizID,
		req.Device,
		req.Browser,
		req.OS,
		req.IPAddress,
		req.Referrer,
		req.UTMSource,
	)
	if err != nil {
		log.Printf("Error upserting session %s: %v", req.SessionID, err)
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}
