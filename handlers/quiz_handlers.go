package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quizfunnel/api/analytics"
	"quizfunnel/api/models"
	"quizfunnel/api/store"
)

type QuizHandlers struct {
	QuizStore      *store.QuizStore
	AnalyticsStore *store.AnalyticsStore
	LeadStore      *store.LeadStore
}

func NewQuizHandlers(quizStore *store.QuizStore, analyticsStore *store.AnalyticsStore, leadStore *store.LeadStore) *QuizHandlers {
	return &QuizHandlers{
		QuizStore:      quizStore,
		AnalyticsStore: analyticsStore,
		LeadStore:      leadStore,
	}
}

func (h *QuizHandlers) RegisterQuiz(c *gin.Context) {
	var req models.RegisterQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	quiz, err := h.QuizStore.RegisterQuiz(ctx, req.Name, req.URL)
	if err != nil {
		log.Printf("Error registering quiz: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register quiz"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"quiz_id":       quiz.ID,
		"tracking_code": quiz.TrackingCode,
		"script_url":    fmt.Sprintf("/api/tracker/%s.js", quiz.TrackingCode),
	})
}

func (h *QuizHandlers) GetQuiz(c *gin.Context) {
	quizID := c.Param("quiz_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	quiz, err := h.QuizStore.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, store.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		log.Printf("Error fetching quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quiz"})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// TrackerScript serves the embeddable snippet for a tracking code. The code
// is the only credential; an unknown one gets a console.error body so a stale
// embed fails loudly in the page's devtools instead of silently.
func (h *QuizHandlers) TrackerScript(c *gin.Context) {
	trackingCode := strings.TrimSuffix(c.Param("tracking_code"), ".js")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	quizID, err := h.QuizStore.ResolveTrackingCode(ctx, trackingCode)
	if err != nil {
		if errors.Is(err, store.ErrTrackingCodeNotFound) {
			c.Data(http.StatusNotFound, "application/javascript", []byte(`console.error("Invalid tracking code");`))
			return
		}
		log.Printf("Error resolving tracking code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tracking code"})
		return
	}

	script, err := RenderTrackerSnippet(quizID, trackingCode, uuid.New().String())
	if err != nil {
		log.Printf("Error rendering tracker snippet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render tracking script"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/javascript", []byte(script))
}

// GetAnalytics computes the funnel and abandonment reports fresh from the
// stores. A quiz with no recorded data yields a zeroed report, not an error.
func (h *QuizHandlers) GetAnalytics(c *gin.Context) {
	quizID := c.Param("quiz_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	counts, err := h.AnalyticsStore.FunnelCounts(ctx, quizID)
	if err != nil {
		log.Printf("Error fetching funnel counts for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute funnel"})
		return
	}

	groups, err := h.AnalyticsStore.AbandonmentGroups(ctx, quizID)
	if err != nil {
		log.Printf("Error fetching abandonment groups for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute abandonment"})
		return
	}

	views, err := h.AnalyticsStore.QuestionViewCounts(ctx, quizID)
	if err != nil {
		log.Printf("Error fetching question view counts for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute abandonment"})
		return
	}

	abandonment := analytics.BuildAbandonmentReport(groups, views)

	c.JSON(http.StatusOK, models.AnalyticsReport{
		Funnel:                  analytics.BuildFunnelReport(counts),
		Abandonment:             abandonment,
		TopAbandonmentQuestions: analytics.TopAbandoned(abandonment, 3),
	})
}

func (h *QuizHandlers) ListLeads(c *gin.Context) {
	quizID := c.Param("quiz_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	leads, err := h.LeadStore.ListLeads(ctx, quizID)
	if err != nil {
		log.Printf("Error listing leads for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	c.JSON(http.StatusOK, leads)
}

// ExportLeads streams the lead list as a CSV attachment, same projection and
// ordering as ListLeads.
func (h *QuizHandlers) ExportLeads(c *gin.Context) {
	quizID := c.Param("quiz_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	leads, err := h.LeadStore.ListLeads(ctx, quizID)
	if err != nil {
		log.Printf("Error exporting leads for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export leads"})
		return
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	writer.Write([]string{"Name", "Email", "Phone", "Quiz Result", "Submitted At"})
	for _, lead := range leads {
		writer.Write([]string{
			stringOrEmpty(lead.Name),
			stringOrEmpty(lead.Email),
			stringOrEmpty(lead.Phone),
			stringOrEmpty(lead.QuizResult),
			lead.Timestamp.Format(time.RFC3339),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("Error writing lead CSV for quiz %s: %v", quizID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export leads"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=leads_%s.csv", quizID))
	c.Data(http.StatusOK, "text/csv", []byte(sb.String()))
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
