package models

// IntentLabel is one of the closed set of caller intents.
type IntentLabel string

const (
	IntentBook              IntentLabel = "book"
	IntentReschedule        IntentLabel = "reschedule"
	IntentCancel            IntentLabel = "cancel"
	IntentPrepare           IntentLabel = "prepare"
	IntentCheckAvailability IntentLabel = "check_availability"
	IntentUnknown           IntentLabel = "unknown"
)

// Intent is the result of classifying one utterance. It lives only for
// the duration of a turn.
type Intent struct {
	Label      IntentLabel `json:"label"`
	Utterance  string      `json:"utterance"`
	Confidence float64     `json:"confidence"`
}
