package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"quizfunnel/api/models"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// CreateLead stores one immutable conversion record. Contact fields are not
// validated; duplicate submissions from the same session each get their own
// row and all count toward the funnel's lead total.
func (s *LeadStore) CreateLead(ctx context.Context, req models.SubmitLeadRequest) (string, error) {
	leadID := uuid.New().String()

	query := `
		INSERT INTO leads (lead_id, session_id, quiz_id, name, email, phone, extra_data, quiz_result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := s.db.ExecContext(ctx, query,
		leadID,
		req.SessionID,
		req.QuizID,
		req.Name,
		req.Email,
		req.Phone,
		models.EncodeExtraData(req.ExtraData),
		req.QuizResult,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create lead: %w", err)
	}

	log.Printf("Lead created: ID=%s, Quiz=%s", leadID, req.QuizID)
	return leadID, nil
}

func (s *LeadStore) GetLead(ctx context.Context, leadID string) (*models.Lead, error) {
	lead := &models.Lead{}
	query := `
		SELECT lead_id, session_id, quiz_id, name, email, phone, extra_data, quiz_result, submitted_at
		FROM leads
		WHERE lead_id = $1;
	`
	err := s.db.QueryRowContext(ctx, query, leadID).Scan(
		&lead.LeadID,
		&lead.SessionID,
		&lead.QuizID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.ExtraData,
		&lead.QuizResult,
		&lead.SubmittedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

// ListLeads returns the per-quiz lead projection, newest submission first.
// The CSV export reuses this ordering.
func (s *LeadStore) ListLeads(ctx context.Context, quizID string) ([]models.LeadSummary, error) {
	query := `
		SELECT lead_id, session_id, name, email, phone, quiz_result, submitted_at
		FROM leads
		WHERE quiz_id = $1
		ORDER BY submitted_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []models.LeadSummary{}
	for rows.Next() {
		var lead models.LeadSummary
		if err := rows.Scan(
			&lead.LeadID,
			&lead.SessionID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.QuizResult,
			&lead.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during lead list query: %w", err)
	}

	return leads, nil
}
