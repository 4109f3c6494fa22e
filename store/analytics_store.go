package store

import (
	"context"
	"fmt"
	"math"

	"quizfunnel/api/analytics"
	"quizfunnel/api/database"
	"quizfunnel/api/models"
)

// AnalyticsStore reads raw per-quiz aggregates for the report builders.
// Session and lead counts come from Postgres; everything event-shaped comes
// from ClickHouse. All queries are read-only and safe to run repeatedly.
type AnalyticsStore struct {
	db *database.DBClient
	ch *database.ClickHouseClient
}

func NewAnalyticsStore(db *database.DBClient, ch *database.ClickHouseClient) *AnalyticsStore {
	return &AnalyticsStore{db: db, ch: ch}
}

// FunnelCounts gathers the four staged counts for one quiz. An unknown quiz
// id is not an error; every query just comes back zero.
func (s *AnalyticsStore) FunnelCounts(ctx context.Context, quizID string) (analytics.FunnelCounts, error) {
	var counts analytics.FunnelCounts

	// Visits are sessions, not events. Sessions only exist once a first
	// event arrives, and session_id is the primary key, so a plain row
	// count is already distinct.
	err := s.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE quiz_id = $1;`, quizID,
	).Scan(&counts.TotalVisits)
	if err != nil {
		return counts, fmt.Errorf("failed to count sessions: %w", err)
	}

	err = s.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE quiz_id = $1;`, quizID,
	).Scan(&counts.TotalLeads)
	if err != nil {
		return counts, fmt.Errorf("failed to count leads: %w", err)
	}

	counts.QuizStarts, err = s.distinctSessionsWithEvent(ctx, quizID, models.EventQuizStarted)
	if err != nil {
		return counts, err
	}

	counts.QuizCompletions, err = s.distinctSessionsWithEvent(ctx, quizID, models.EventQuizCompleted)
	if err != nil {
		return counts, err
	}

	return counts, nil
}

func (s *AnalyticsStore) distinctSessionsWithEvent(ctx context.Context, quizID, eventType string) (uint64, error) {
	var count uint64
	query := `SELECT uniqExact(session_id) FROM quiz_events WHERE quiz_id = ? AND event_type = ?`
	if err := s.ch.Conn.QueryRow(ctx, query, quizID, eventType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count distinct '%s' sessions: %w", eventType, err)
	}
	return count, nil
}

// AbandonmentGroups groups quiz_abandoned events by question id. The order
// value is whichever one any() picked for the group; abandonment events for a
// question are expected to agree on it. avg(time_spent) skips NULLs and the
// result is NULL when every event in the group lacked one, which we surface
// as NaN for the report builder to zero out.
func (s *AnalyticsStore) AbandonmentGroups(ctx context.Context, quizID string) ([]analytics.AbandonGroup, error) {
	query := `
		SELECT
			coalesce(question_id, '') AS question,
			coalesce(any(question_order), 0) AS position,
			count() AS abandons,
			avg(time_spent) AS avg_time
		FROM quiz_events
		WHERE quiz_id = ? AND event_type = ?
		GROUP BY question
	`
	rows, err := s.ch.Conn.Query(ctx, query, quizID, models.EventQuizAbandoned)
	if err != nil {
		return nil, fmt.Errorf("failed to query abandonment groups: %w", err)
	}
	defer rows.Close()

	var groups []analytics.AbandonGroup
	for rows.Next() {
		var (
			group   analytics.AbandonGroup
			avgTime *float64
		)
		if err := rows.Scan(&group.QuestionID, &group.QuestionOrder, &group.Abandons, &avgTime); err != nil {
			return nil, fmt.Errorf("failed to scan abandonment group: %w", err)
		}
		if avgTime != nil {
			group.AvgTimeSpent = *avgTime
		} else {
			group.AvgTimeSpent = math.NaN()
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during abandonment group query: %w", err)
	}

	return groups, nil
}

// QuestionViewCounts counts question_viewed events per question id. Repeated
// views by the same session are counted every time.
func (s *AnalyticsStore) QuestionViewCounts(ctx context.Context, quizID string) (map[string]uint64, error) {
	query := `
		SELECT coalesce(question_id, '') AS question, count() AS views
		FROM quiz_events
		WHERE quiz_id = ? AND event_type = ?
		GROUP BY question
	`
	rows, err := s.ch.Conn.Query(ctx, query, quizID, models.EventQuestionViewed)
	if err != nil {
		return nil, fmt.Errorf("failed to query question view counts: %w", err)
	}
	defer rows.Close()

	views := make(map[string]uint64)
	for rows.Next() {
		var question string
		var count uint64
		if err := rows.Scan(&question, &count); err != nil {
			return nil, fmt.Errorf("failed to scan view count row: %w", err)
		}
		views[question] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during view count query: %w", err)
	}

	return views, nil
}

// SessionJourney returns every event of one session ordered by event
// timestamp ascending. Chronology comes from the recorded timestamps, never
// from insertion order.
func (s *AnalyticsStore) SessionJourney(ctx context.Context, sessionID string) ([]models.JourneyEvent, error) {
	query := `
		SELECT event_type, question_id, question_order, answer_value, time_spent, timestamp
		FROM quiz_events
		WHERE session_id = ?
		ORDER BY timestamp ASC
	`
	rows, err := s.ch.Conn.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session journey: %w", err)
	}
	defer rows.Close()

	journey := []models.JourneyEvent{}
	for rows.Next() {
		var event models.JourneyEvent
		if err := rows.Scan(
			&event.Type,
			&event.Question,
			&event.Order,
			&event.Answer,
			&event.Time,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journey event: %w", err)
		}
		journey = append(journey, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during session journey query: %w", err)
	}

	return journey, nil
}
