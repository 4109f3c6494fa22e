package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTrackerSnippet(t *testing.T) {
	script, err := RenderTrackerSnippet("quiz-123", "code-abc", "session-xyz")
	require.NoError(t, err)

	assert.Contains(t, script, `var QUIZ_ID = "quiz-123";`)
	assert.Contains(t, script, `var TRACKING_CODE = "code-abc";`)
	assert.Contains(t, script, `var SESSION_ID = "session-xyz";`)

	// No unexpanded template actions left behind.
	assert.NotContains(t, script, "{{")

	// The page-facing hooks the quiz integrates against.
	for _, hook := range []string{
		"window.trackQuizStart",
		"window.trackQuestionView",
		"window.trackAnswer",
		"window.trackQuizComplete",
		"window.trackAbandon",
	} {
		assert.Contains(t, script, hook)
	}
}

func TestRenderTrackerSnippetPostsToEventEndpoint(t *testing.T) {
	script, err := RenderTrackerSnippet("q", "c", "s")
	require.NoError(t, err)

	assert.True(t, strings.Contains(script, `"/api/event"`))
	assert.Contains(t, script, `"quiz_visited"`)
	assert.Contains(t, script, `"quiz_abandoned"`)
}
