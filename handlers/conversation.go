package handlers

import (
	"errors"
	"net/http"

	"advisordesk/services/conversation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversationHandler exposes the turn-by-turn dialogue API.
type ConversationHandler struct {
	Svc    conversation.Service
	Logger *zap.Logger
}

func NewConversationHandler(svc conversation.Service, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Logger: logger}
}

// StartSessionHandler opens a new dialogue session and returns the greeting.
func (h *ConversationHandler) StartSessionHandler(c *gin.Context) {
	var input struct {
		Source string `json:"source"`
	}
	// The body is optional; an empty one means a text session.
	_ = c.ShouldBindJSON(&input)
	if input.Source != "voice" {
		input.Source = "text"
	}

	session, action, err := h.Svc.StartSession(c.Request.Context(), input.Source)
	if err != nil {
		h.Logger.Error("failed to start conversation session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"state":     session.State,
		"reply":     action,
	})
}

// TurnHandler feeds one user utterance into an existing session.
func (h *ConversationHandler) TurnHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, action, warnings, err := h.Svc.Step(c.Request.Context(), sessionID, input.Text)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
			return
		}
		h.Logger.Error("conversation turn failed", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process turn"})
		return
	}

	resp := gin.H{
		"sessionId": session.ID,
		"state":     session.State,
		"reply":     action,
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}
