package conversation

import (
	"context"

	"advisordesk/models"
	"advisordesk/services/actions"
)

// Service is the turn-by-turn conversation API consumed by the HTTP
// handlers and the voice bridge. StartSession opens a dialogue and
// returns the greeting; Step feeds one user utterance and returns the
// updated session, the engine's reply, and any downstream side-effect
// warnings (failed calendar holds, sheet rows, email drafts).
type Service interface {
	StartSession(ctx context.Context, source string) (*models.Session, models.DialogueAction, error)
	Step(ctx context.Context, sessionID, text string) (*models.Session, models.DialogueAction, []string, error)
}

// DefaultConversationService wires the engine to session storage and the
// side-effect runner.
type DefaultConversationService struct {
	Engine *Engine
	Store  SessionStore
	Sinks  *actions.Runner
}

func (svc *DefaultConversationService) StartSession(ctx context.Context, source string) (*models.Session, models.DialogueAction, error) {
	session := svc.Engine.NewSession(source)
	session, action := svc.Engine.Step(ctx, session, "")
	if err := svc.Store.Save(ctx, &session); err != nil {
		return nil, models.DialogueAction{}, err
	}
	return &session, action, nil
}

func (svc *DefaultConversationService) Step(ctx context.Context, sessionID, text string) (*models.Session, models.DialogueAction, []string, error) {
	session, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, models.DialogueAction{}, nil, err
	}

	updated, action := svc.Engine.Step(ctx, *session, text)
	if err := svc.Store.Save(ctx, &updated); err != nil {
		return nil, models.DialogueAction{}, nil, err
	}

	warnings := svc.dispatch(ctx, action)
	return &updated, action, warnings, nil
}

// dispatch fans a completed turn out to the downstream sinks. Sink
// failures never affect the dialogue outcome; they come back as warnings.
func (svc *DefaultConversationService) dispatch(ctx context.Context, action models.DialogueAction) []string {
	if svc.Sinks == nil || action.Record == nil {
		return nil
	}
	var res actions.Result
	switch {
	case action.Type == models.ActionFinalize && action.Reason == ReasonRescheduled:
		res = svc.Sinks.OnRescheduleComplete(ctx, action.Record)
	case action.Type == models.ActionFinalize:
		res = svc.Sinks.OnBookingComplete(ctx, action.Record)
	case action.Type == models.ActionTerminate && action.Reason == ReasonCancelled:
		res = svc.Sinks.OnCancelComplete(ctx, action.Record)
	default:
		return nil
	}
	return res.Warnings
}
