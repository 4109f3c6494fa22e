package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quizfunnel/api/models"
	"quizfunnel/api/store"
	"quizfunnel/api/utils"
)

type TrackingHandlers struct {
	EventStore     *store.EventStore
	LeadStore      *store.LeadStore
	AnalyticsStore *store.AnalyticsStore
}

func NewTrackingHandlers(eventStore *store.EventStore, leadStore *store.LeadStore, analyticsStore *store.AnalyticsStore) *TrackingHandlers {
	return &TrackingHandlers{
		EventStore:     eventStore,
		LeadStore:      leadStore,
		AnalyticsStore: analyticsStore,
	}
}

// TrackEvent ingests one tracking event from the snippet. Only session_id and
// quiz_id are mandatory; everything else, event_type included, is stored as
// sent. The client's IP is captured server-side so the snippet never has to
// know it.
func (h *TrackingHandlers) TrackEvent(c *gin.Context) {
	var req models.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding incoming event JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.IPAddress = c.ClientIP()

	// Unknown types are stored anyway; they just never bucket into a
	// funnel stage. Log them so new client event types get noticed.
	if req.EventType != nil && !utils.IsKnownEventType(*req.EventType) {
		log.Printf("Storing unknown event type %q for session %s", *req.EventType, req.SessionID)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	eventID, err := h.EventStore.RecordEvent(ctx, req)
	if err != nil {
		log.Printf("Error recording event for session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event_id": eventID})
}

func (h *TrackingHandlers) SubmitLead(c *gin.Context) {
	var req models.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding incoming lead JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	leadID, err := h.LeadStore.CreateLead(ctx, req)
	if err != nil {
		log.Printf("Error creating lead for session %s: %v", req.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit lead"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lead_id": leadID})
}

// GetLeadDetail returns the lead record plus its session's full event
// timeline. An unknown lead id is a 404, never an empty record.
func (h *TrackingHandlers) GetLeadDetail(c *gin.Context) {
	leadID := c.Param("lead_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	lead, err := h.LeadStore.GetLead(ctx, leadID)
	if err != nil {
		if errors.Is(err, store.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		log.Printf("Error fetching lead %s: %v", leadID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lead"})
		return
	}

	journey, err := h.AnalyticsStore.SessionJourney(ctx, lead.SessionID)
	if err != nil {
		log.Printf("Error fetching journey for session %s: %v", lead.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lead journey"})
		return
	}

	c.JSON(http.StatusOK, models.LeadDetail{
		LeadID:      lead.LeadID,
		SessionID:   lead.SessionID,
		QuizID:      lead.QuizID,
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		ExtraData:   models.DecodeExtraData(lead.ExtraData),
		QuizResult:  lead.QuizResult,
		Timestamp:   lead.SubmittedAt,
		UserJourney: journey,
	})
}
