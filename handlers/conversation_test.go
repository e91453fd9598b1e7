package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"advisordesk/models"
	"advisordesk/services/conversation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubConversationService struct {
	session  models.Session
	action   models.DialogueAction
	warnings []string
	stepErr  error
}

func (s *stubConversationService) StartSession(ctx context.Context, source string) (*models.Session, models.DialogueAction, error) {
	sess := s.session
	sess.Source = source
	return &sess, s.action, nil
}

func (s *stubConversationService) Step(ctx context.Context, sessionID, text string) (*models.Session, models.DialogueAction, []string, error) {
	if s.stepErr != nil {
		return nil, models.DialogueAction{}, nil, s.stepErr
	}
	return &s.session, s.action, s.warnings, nil
}

func newConversationRouter(svc conversation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewConversationHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/api/conversation/session", h.StartSessionHandler)
	r.POST("/api/conversation/session/:sessionID/turn", h.TurnHandler)
	return r
}

func TestStartSessionHandler(t *testing.T) {
	svc := &stubConversationService{
		session: models.Session{ID: "s-1", State: models.StateAwaitingIntent},
		action:  models.DialogueAction{Type: models.ActionPrompt, Text: "Hello!"},
	}
	router := newConversationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/session", strings.NewReader(`{"source":"voice"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		SessionID string                `json:"sessionId"`
		State     string                `json:"state"`
		Reply     models.DialogueAction `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "s-1", resp.SessionID)
	assert.Equal(t, string(models.StateAwaitingIntent), resp.State)
	assert.Equal(t, "Hello!", resp.Reply.Text)
}

func TestStartSessionHandlerDefaultsToText(t *testing.T) {
	svc := &stubConversationService{session: models.Session{ID: "s-1", State: models.StateAwaitingIntent}}
	router := newConversationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTurnHandler(t *testing.T) {
	svc := &stubConversationService{
		session:  models.Session{ID: "s-1", State: models.StateCompleted},
		action:   models.DialogueAction{Type: models.ActionFinalize, Text: "Done!"},
		warnings: []string{"calendar: sink call failed"},
	}
	router := newConversationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/session/s-1/turn", strings.NewReader(`{"text":"yes"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		State    string   `json:"state"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(models.StateCompleted), resp.State)
	assert.Equal(t, []string{"calendar: sink call failed"}, resp.Warnings)
}

func TestTurnHandlerRequiresText(t *testing.T) {
	svc := &stubConversationService{}
	router := newConversationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/session/s-1/turn", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTurnHandlerUnknownSession(t *testing.T) {
	svc := &stubConversationService{stepErr: conversation.ErrSessionNotFound}
	router := newConversationRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/conversation/session/gone/turn", strings.NewReader(`{"text":"hi"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
