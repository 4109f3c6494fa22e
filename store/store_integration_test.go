package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizfunnel/api/database"
	"quizfunnel/api/models"
)

// These tests run against live databases and are skipped unless
// INTEGRATION_TEST=1 is set together with DATABASE_URL and the CLICKHOUSE_*
// variables the database package reads.
func integrationClients(t *testing.T) (*database.DBClient, *database.ClickHouseClient) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("set INTEGRATION_TEST=1 to run store integration tests")
	}

	db, err := database.NewPostgresDB()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ch, err := database.NewClickHouseDB()
	require.NoError(t, err)
	t.Cleanup(ch.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, ch.EnsureSchema(ctx))

	return db, ch
}

func TestGetLeadUnknownIDReturnsNotFound(t *testing.T) {
	db, _ := integrationClients(t)
	leadStore := NewLeadStore(db.DB)

	_, err := leadStore.GetLead(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestResolveUnknownTrackingCode(t *testing.T) {
	db, _ := integrationClients(t)
	quizStore := NewQuizStore(db.DB)

	_, err := quizStore.ResolveTrackingCode(context.Background(), "definitely-not-a-code")

	assert.ErrorIs(t, err, ErrTrackingCodeNotFound)
}

func TestRecordEventCreatesSessionOnce(t *testing.T) {
	db, ch := integrationClients(t)
	eventStore := NewEventStore(db, ch)
	ctx := context.Background()

	sessionID := uuid.New().String()
	quizID := uuid.New().String()
	visited := models.EventQuizVisited
	started := models.EventQuizStarted

	// Two events for a brand-new session in rapid succession: both must
	// succeed and leave exactly one session row behind.
	firstID, err := eventStore.RecordEvent(ctx, models.TrackEventRequest{
		SessionID: sessionID,
		QuizID:    quizID,
		EventType: &visited,
		Device:    "desktop",
		Browser:   "Firefox",
	})
	require.NoError(t, err)

	secondID, err := eventStore.RecordEvent(ctx, models.TrackEventRequest{
		SessionID: sessionID,
		QuizID:    quizID,
		EventType: &started,
		Device:    "mobile",
	})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	var sessionRows int
	err = db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE session_id = $1`, sessionID,
	).Scan(&sessionRows)
	require.NoError(t, err)
	assert.Equal(t, 1, sessionRows)

	// First event wins: the session keeps the metadata it was created with.
	var device string
	err = db.DB.QueryRowContext(ctx,
		`SELECT device FROM sessions WHERE session_id = $1`, sessionID,
	).Scan(&device)
	require.NoError(t, err)
	assert.Equal(t, "desktop", device)
}

func TestLeadExtraDataSurvivesStoreFetch(t *testing.T) {
	db, _ := integrationClients(t)
	leadStore := NewLeadStore(db.DB)
	ctx := context.Background()

	extra := json.RawMessage(`{"plan":"pro","score":7}`)
	leadID, err := leadStore.CreateLead(ctx, models.SubmitLeadRequest{
		SessionID: uuid.New().String(),
		QuizID:    uuid.New().String(),
		ExtraData: extra,
	})
	require.NoError(t, err)

	lead, err := leadStore.GetLead(ctx, leadID)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"plan": "pro", "score": float64(7)},
		models.DecodeExtraData(lead.ExtraData))
}
