package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownEventType(t *testing.T) {
	for _, eventType := range []string{
		"quiz_visited", "quiz_started", "question_viewed",
		"answer_submitted", "quiz_completed", "quiz_abandoned",
	} {
		assert.True(t, IsKnownEventType(eventType), eventType)
	}

	assert.False(t, IsKnownEventType("page_view"))
	assert.False(t, IsKnownEventType(""))
}
