package conversation

import (
	"context"
	"strings"
	"time"

	"advisordesk/models"
	"advisordesk/services/availability"
	"advisordesk/services/booking"
	"advisordesk/services/intelligence"
	"advisordesk/services/nlp"
	"advisordesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reason codes carried on DialogueAction. Extraction reasons come from
// the nlp package; these cover the engine's own causes.
const (
	ReasonUnknownIntent      = "unknownIntent"
	ReasonMissingCode        = "missingCode"
	ReasonAmbiguousChoice    = "ambiguousChoice"
	ReasonAmbiguousReply     = "ambiguousReply"
	ReasonRetryLimitExceeded = "retryLimitExceeded"
	ReasonNoAvailability     = "noAvailability"
	ReasonSlotTaken          = "slotTaken"
	ReasonNotFound           = "notFound"
	ReasonInternal           = "internalError"
	ReasonSessionClosed      = "sessionClosed"
	ReasonBooked             = "booked"
	ReasonRescheduled        = "rescheduled"
	ReasonCancelled          = "cancelled"
)

// Policy bundles the tunables the engine consults every turn.
type Policy struct {
	RetryLimit       int
	HorizonDays      int
	AdjacentDayRange int
	TimezoneLabel    string
	Location         *time.Location
}

// Engine is the dialogue state machine. Step is pure with respect to the
// session: it takes the current Session by value and returns the updated
// copy plus exactly one DialogueAction, so callers own persistence.
type Engine struct {
	Classifier *intelligence.Classifier
	Registry   booking.RegistryService
	Calendar   availability.Source
	Policy     Policy
	Clock      func() time.Time
}

func NewEngine(classifier *intelligence.Classifier, registry booking.RegistryService, calendar availability.Source, policy Policy) *Engine {
	return &Engine{
		Classifier: classifier,
		Registry:   registry,
		Calendar:   calendar,
		Policy:     policy,
		Clock:      time.Now,
	}
}

// NewSession creates a fresh session in the greeting state.
func (e *Engine) NewSession(source string) models.Session {
	return models.Session{
		ID:        uuid.New().String(),
		State:     models.StateGreeting,
		Intent:    models.IntentUnknown,
		Source:    source,
		CreatedAt: e.now(),
	}
}

func (e *Engine) now() time.Time {
	return e.Clock().In(e.Policy.Location)
}

// Step processes one user turn. Invalid input never advances the state
// machine; it only increments the retry counter, and the session fails
// once the counter reaches the policy limit.
func (e *Engine) Step(ctx context.Context, s models.Session, text string) (models.Session, models.DialogueAction) {
	if s.State.Terminal() {
		return s, models.DialogueAction{
			Type:   models.ActionReject,
			Reason: ReasonSessionClosed,
			Text:   "This conversation has ended. Please start a new session.",
		}
	}

	switch s.State {
	case models.StateGreeting:
		s.State = models.StateAwaitingIntent
		if strings.TrimSpace(text) == "" {
			return s, prompt("", msgGreeting)
		}
		return e.stepAwaitingIntent(ctx, s, text)
	case models.StateAwaitingIntent:
		return e.stepAwaitingIntent(ctx, s, text)
	case models.StateAwaitingTopic:
		return e.stepAwaitingTopic(s, text)
	case models.StateAwaitingBookingCode:
		return e.stepAwaitingBookingCode(ctx, s, text)
	case models.StateAwaitingTimeRange:
		return e.stepAwaitingTimeRange(s, text)
	case models.StateAwaitingTimePreference, models.StateAwaitingNewTimePreference:
		return e.stepAwaitingTime(s, text)
	case models.StateAwaitingSlotChoice:
		return e.stepAwaitingSlotChoice(s, text)
	case models.StateAwaitingConfirmation:
		return e.stepAwaitingConfirmation(ctx, s, text)
	case models.StateAwaitingCancelConfirmation:
		return e.stepAwaitingCancelConfirmation(ctx, s, text)
	default:
		utils.GetLogger().Error("session in unknown state", zap.String("sessionId", s.ID), zap.String("state", string(s.State)))
		s.State = models.StateFailed
		return s, terminate(ReasonInternal, msgAbandoned)
	}
}

func (e *Engine) stepAwaitingIntent(ctx context.Context, s models.Session, text string) (models.Session, models.DialogueAction) {
	intent := e.Classifier.Classify(ctx, text)

	switch intent.Label {
	case models.IntentBook:
		s = resetProgress(s)
		s.Intent = models.IntentBook
		// One utterance can carry intent, topic and time all at once.
		if topic, err := nlp.MatchTopic(text); err == nil {
			s.Topic = topic
			if next, action, handled := e.tryTimeFromUtterance(s, text); handled {
				return next, action
			}
			s.State = models.StateAwaitingTimePreference
			return s, prompt("", promptTimeForTopic(topic.Label, e.Policy.HorizonDays))
		}
		s.State = models.StateAwaitingTopic
		return s, prompt("", promptTopicMenu())

	case models.IntentReschedule, models.IntentCancel:
		s = resetProgress(s)
		s.Intent = intent.Label
		s.State = models.StateAwaitingBookingCode
		// The code may already be in the same utterance.
		if code := findCodeToken(text); code != "" {
			return e.stepAwaitingBookingCode(ctx, s, code)
		}
		return s, prompt("", msgAskBookingCode)

	case models.IntentPrepare:
		s.Retries = 0
		return s, prompt("", msgPrepareChecklist)

	case models.IntentCheckAvailability:
		s = resetProgress(s)
		s.Intent = models.IntentCheckAvailability
		s.State = models.StateAwaitingTimeRange
		return s, prompt("", msgAskTimeRange)

	default:
		// A pleasantry is not a failed turn.
		if isPleasantry(text) {
			return s, prompt("", msgPleasantryReply)
		}
		return e.retry(s, ReasonUnknownIntent, msgAskIntent)
	}
}

func (e *Engine) stepAwaitingTopic(s models.Session, text string) (models.Session, models.DialogueAction) {
	topic, err := nlp.MatchTopic(text)
	if err != nil {
		return e.retry(s, nlp.ReasonUnknownTopic, "Sorry, I didn't recognise that topic. "+promptTopicMenu())
	}
	s.Retries = 0
	s.Topic = topic
	if next, action, handled := e.tryTimeFromUtterance(s, text); handled {
		return next, action
	}
	s.State = models.StateAwaitingTimePreference
	return s, prompt("", promptTimeForTopic(topic.Label, e.Policy.HorizonDays))
}

func (e *Engine) stepAwaitingBookingCode(ctx context.Context, s models.Session, text string) (models.Session, models.DialogueAction) {
	code := utils.NormalizeBookingCode(text)
	if code == "" {
		return e.retry(s, ReasonMissingCode, msgAskBookingCode)
	}

	record, err := e.Registry.Resolve(ctx, code)
	if err != nil {
		if booking.IsCode(err, booking.CodeNotFound) {
			return e.retry(s, ReasonNotFound, msgCodeNotFound)
		}
		utils.GetLogger().Error("booking code lookup failed", zap.String("sessionId", s.ID), zap.Error(err))
		return s, reject(ReasonInternal, "Something went wrong looking that up. Could you give me the code once more?")
	}

	s.Retries = 0
	s.TargetBookingCode = record.Code
	topic := record.Topic
	s.Topic = &topic

	if s.Intent == models.IntentCancel {
		s.State = models.StateAwaitingCancelConfirmation
		return s, confirm("", promptConfirmCancel(record, e.Policy.TimezoneLabel))
	}
	s.State = models.StateAwaitingNewTimePreference
	return s, prompt("", msgAskNewTime)
}

func (e *Engine) stepAwaitingTimeRange(s models.Session, text string) (models.Session, models.DialogueAction) {
	pref, err := nlp.ExtractDateTime(text, e.now(), e.Policy.HorizonDays)
	if err != nil {
		return e.retryExtract(s, err)
	}
	s.Retries = 0

	slots, err := e.Calendar.Query(pref.Window())
	if err != nil {
		utils.GetLogger().Error("availability query failed", zap.String("sessionId", s.ID), zap.Error(err))
		return s, reject(ReasonInternal, "I couldn't reach the calendar just now. Could you try that again?")
	}

	now := e.now()
	open := slots[:0:0]
	for _, slot := range slots {
		if slot.Start.After(now) {
			open = append(open, slot)
		}
	}
	if len(open) == 0 {
		return s, prompt(ReasonNoAvailability, promptNoAvailabilityInWindow())
	}
	if len(open) > 6 {
		open = open[:6]
	}
	s.State = models.StateAwaitingIntent
	return s, prompt("", promptAvailabilityList(open, e.Policy.TimezoneLabel))
}

func (e *Engine) stepAwaitingTime(s models.Session, text string) (models.Session, models.DialogueAction) {
	pref, err := nlp.ExtractDateTime(text, e.now(), e.Policy.HorizonDays)
	if err != nil {
		return e.retryExtract(s, err)
	}
	s.Retries = 0
	s.TimePreference = pref
	return e.offerFromPreference(s)
}

// tryTimeFromUtterance attempts to pull a time preference out of a turn
// that already settled intent or topic, skipping a prompt when it works.
func (e *Engine) tryTimeFromUtterance(s models.Session, text string) (models.Session, models.DialogueAction, bool) {
	pref, err := nlp.ExtractDateTime(text, e.now(), e.Policy.HorizonDays)
	if err != nil {
		return s, models.DialogueAction{}, false
	}
	s.Retries = 0
	s.TimePreference = pref
	next, action := e.offerFromPreference(s)
	return next, action, true
}

// offerFromPreference runs slot selection for the session's time
// preference and moves to the slot choice state when anything is open.
func (e *Engine) offerFromPreference(s models.Session) (models.Session, models.DialogueAction) {
	slots, err := booking.OfferSlots(*s.TimePreference, e.now(), e.Calendar, e.Policy.AdjacentDayRange)
	if err != nil {
		utils.GetLogger().Error("slot selection failed", zap.String("sessionId", s.ID), zap.Error(err))
		s.State = e.timePreferenceState(s)
		return s, reject(ReasonInternal, "I couldn't reach the calendar just now. Could you try that again?")
	}
	if len(slots) == 0 {
		s.State = e.timePreferenceState(s)
		return s, prompt(ReasonNoAvailability, msgNoAvailability)
	}
	s.OfferedSlots = slots
	s.ChosenSlot = nil
	s.State = models.StateAwaitingSlotChoice
	return s, prompt("", promptOffer(slots, e.Policy.TimezoneLabel))
}

// timePreferenceState picks which awaiting-time state a flow returns to.
func (e *Engine) timePreferenceState(s models.Session) models.SessionState {
	if s.Intent == models.IntentReschedule {
		return models.StateAwaitingNewTimePreference
	}
	return models.StateAwaitingTimePreference
}

func (e *Engine) stepAwaitingSlotChoice(s models.Session, text string) (models.Session, models.DialogueAction) {
	idx, none, ok := parseSlotChoice(text, len(s.OfferedSlots))
	if ok {
		s.Retries = 0
		if none {
			s.OfferedSlots = nil
			s.State = e.timePreferenceState(s)
			return s, prompt("", msgAskNewTime)
		}
		chosen := s.OfferedSlots[idx]
		s.ChosenSlot = &chosen
		s.State = models.StateAwaitingConfirmation
		if s.Intent == models.IntentReschedule {
			return s, confirm("", promptConfirmReschedule(s.TargetBookingCode, chosen, e.Policy.TimezoneLabel))
		}
		return s, confirm("", promptConfirm(s.Topic.Label, chosen, e.Policy.TimezoneLabel))
	}

	// A fresh day/time mid-choice restarts the offer from the new
	// preference instead of forcing a "none" first.
	if pref, err := nlp.ExtractDateTime(text, e.now(), e.Policy.HorizonDays); err == nil {
		s.Retries = 0
		s.TimePreference = pref
		return e.offerFromPreference(s)
	}

	return e.retry(s, ReasonAmbiguousChoice, msgAmbiguousChoice)
}

func (e *Engine) stepAwaitingConfirmation(ctx context.Context, s models.Session, text string) (models.Session, models.DialogueAction) {
	yes, ok := parseYesNo(text)
	if !ok {
		return e.retry(s, ReasonAmbiguousReply, msgAmbiguousConfirm)
	}
	s.Retries = 0

	if !yes {
		s.ChosenSlot = nil
		s.OfferedSlots = nil
		s.State = e.timePreferenceState(s)
		return s, prompt("", msgAskNewTime)
	}

	// Availability can change between the offer and the confirmation,
	// so the slot is re-checked before anything is written.
	free, err := booking.SlotStillFree(*s.ChosenSlot, e.Calendar)
	if err != nil {
		utils.GetLogger().Error("slot re-check failed", zap.String("sessionId", s.ID), zap.Error(err))
		return s, reject(ReasonInternal, "I couldn't reach the calendar just now. Could you confirm once more?")
	}
	if !free {
		s.ChosenSlot = nil
		next, action := e.offerFromPreference(s)
		action.Type = models.ActionReject
		action.Reason = ReasonSlotTaken
		action.Text = msgSlotTaken + " " + action.Text
		return next, action
	}

	if s.Intent == models.IntentReschedule {
		record, err := e.Registry.Reschedule(ctx, s.TargetBookingCode, *s.ChosenSlot)
		if err != nil {
			utils.GetLogger().Error("reschedule failed", zap.String("sessionId", s.ID), zap.Error(err))
			return s, reject(ReasonInternal, "I couldn't update the booking just now. Shall I try again?")
		}
		s.BookingCode = record.Code
		s.State = models.StateCompleted
		return s, models.DialogueAction{
			Type:   models.ActionFinalize,
			Reason: ReasonRescheduled,
			Text:   promptRescheduled(record, e.Policy.TimezoneLabel),
			Record: record,
		}
	}

	record, err := e.Registry.Finalize(ctx, s)
	if err != nil {
		utils.GetLogger().Error("finalize failed", zap.String("sessionId", s.ID), zap.Error(err))
		return s, reject(ReasonInternal, "I couldn't complete the booking just now. Shall I try again?")
	}
	s.BookingCode = record.Code
	s.State = models.StateCompleted
	return s, models.DialogueAction{
		Type:   models.ActionFinalize,
		Reason: ReasonBooked,
		Text:   promptBooked(record, e.Policy.TimezoneLabel),
		Record: record,
	}
}

func (e *Engine) stepAwaitingCancelConfirmation(ctx context.Context, s models.Session, text string) (models.Session, models.DialogueAction) {
	yes, ok := parseYesNo(text)
	if !ok {
		return e.retry(s, ReasonAmbiguousReply, msgAmbiguousConfirm)
	}
	s.Retries = 0

	if !yes {
		s.State = models.StateAwaitingIntent
		return s, prompt("", msgCancelKept)
	}

	record, err := e.Registry.Cancel(ctx, s.TargetBookingCode)
	if err != nil {
		utils.GetLogger().Error("cancel failed", zap.String("sessionId", s.ID), zap.Error(err))
		return s, reject(ReasonInternal, "I couldn't cancel the booking just now. Shall I try again?")
	}
	s.State = models.StateCancelled
	return s, models.DialogueAction{
		Type:   models.ActionTerminate,
		Reason: ReasonCancelled,
		Text:   promptCancelled(record),
		Record: record,
	}
}

// retry counts one invalid input and abandons the session at the limit.
func (e *Engine) retry(s models.Session, reason, text string) (models.Session, models.DialogueAction) {
	s.Retries++
	if s.Retries >= e.Policy.RetryLimit {
		s.State = models.StateFailed
		return s, terminate(ReasonRetryLimitExceeded, msgAbandoned)
	}
	return s, prompt(reason, text)
}

func (e *Engine) retryExtract(s models.Session, err error) (models.Session, models.DialogueAction) {
	switch nlp.Reason(err) {
	case nlp.ReasonPastTime:
		return e.retry(s, nlp.ReasonPastTime, msgPastTime)
	case nlp.ReasonBeyondHorizon:
		return e.retry(s, nlp.ReasonBeyondHorizon, promptBeyondHorizon(e.Policy.HorizonDays))
	default:
		return e.retry(s, nlp.ReasonUnparseable, msgBadDateTime)
	}
}

// resetProgress clears booking progress when a new flow starts, keeping
// identity fields intact.
func resetProgress(s models.Session) models.Session {
	s.Retries = 0
	s.Topic = nil
	s.TimePreference = nil
	s.OfferedSlots = nil
	s.ChosenSlot = nil
	s.TargetBookingCode = ""
	return s
}

func prompt(reason, text string) models.DialogueAction {
	return models.DialogueAction{Type: models.ActionPrompt, Reason: reason, Text: text}
}

func confirm(reason, text string) models.DialogueAction {
	return models.DialogueAction{Type: models.ActionConfirm, Reason: reason, Text: text}
}

func reject(reason, text string) models.DialogueAction {
	return models.DialogueAction{Type: models.ActionReject, Reason: reason, Text: text}
}

func terminate(reason, text string) models.DialogueAction {
	return models.DialogueAction{Type: models.ActionTerminate, Reason: reason, Text: text}
}
