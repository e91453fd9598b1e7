package models

// ActionType names the single dialogue action the engine emits per turn.
type ActionType string

const (
	ActionPrompt    ActionType = "prompt"
	ActionConfirm   ActionType = "confirm"
	ActionFinalize  ActionType = "finalize"
	ActionReject    ActionType = "reject"
	ActionTerminate ActionType = "terminate"
)

// DialogueAction is the engine's reply for one turn. Text is the utterance
// to render (or speak); Reason carries the machine-readable cause for
// prompts, rejections and terminations; Record is set when a turn
// produced or changed a booking record.
type DialogueAction struct {
	Type   ActionType     `json:"type"`
	Text   string         `json:"text"`
	Reason string         `json:"reason,omitempty"`
	Record *BookingRecord `json:"record,omitempty"`
}
