package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"quizfunnel/api/models"
	"quizfunnel/api/utils"
)

var ErrQuizNotFound = errors.New("quiz not found")
var ErrTrackingCodeNotFound = errors.New("tracking code not found")

type QuizStore struct {
	db *sql.DB
}

func NewQuizStore(db *sql.DB) *QuizStore {
	return &QuizStore{db: db}
}

// RegisterQuiz inserts a new quiz with a fresh id and tracking code.
// Quizzes are immutable after registration.
func (s *QuizStore) RegisterQuiz(ctx context.Context, name, url string) (*models.Quiz, error) {
	if name == "" {
		name = "Untitled Quiz"
	}

	trackingCode, err := utils.GenerateTrackingCode()
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:           uuid.New().String(),
		Name:         name,
		URL:          url,
		TrackingCode: trackingCode,
	}

	query := `
		INSERT INTO quizzes (id, name, url, tracking_code)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;
	`
	err = s.db.QueryRowContext(ctx, query, quiz.ID, quiz.Name, quiz.URL, quiz.TrackingCode).Scan(&quiz.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to register quiz: %w", err)
	}

	log.Printf("Quiz registered: ID=%s, Name=%s", quiz.ID, quiz.Name)
	return quiz, nil
}

// ResolveTrackingCode maps a capability token back to its quiz id. An unknown
// code yields ErrTrackingCodeNotFound so the snippet endpoint can 404.
func (s *QuizStore) ResolveTrackingCode(ctx context.Context, code string) (string, error) {
	var quizID string
	query := `SELECT id FROM quizzes WHERE tracking_code = $1;`
	err := s.db.QueryRowContext(ctx, query, code).Scan(&quizID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrTrackingCodeNotFound
		}
		return "", fmt.Errorf("failed to resolve tracking code: %w", err)
	}
	return quizID, nil
}

func (s *QuizStore) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	query := `
		SELECT id, name, url, tracking_code, created_at
		FROM quizzes
		WHERE id = $1;
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&quiz.ID,
		&quiz.Name,
		&quiz.URL,
		&quiz.TrackingCode,
		&quiz.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz, nil
}
