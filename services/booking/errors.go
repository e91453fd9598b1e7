package booking

import "fmt"

// Flow error codes surfaced to the conversation engine.
const (
	CodeNotFound       = "notFound"
	CodeNoAvailability = "noAvailability"
	CodeSlotTaken      = "slotTaken"
)

type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewFlowError(code, msg string) error {
	return &FlowError{Code: code, Message: msg}
}

// IsCode reports whether err is a FlowError with the given code.
func IsCode(err error, code string) bool {
	fe, ok := err.(*FlowError)
	return ok && fe.Code == code
}
