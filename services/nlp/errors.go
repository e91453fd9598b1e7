package nlp

import "fmt"

// Extraction failure codes. These are returned as values so the
// conversation engine can choose a clarifying prompt per reason.
const (
	ReasonUnparseable   = "unparseableInput"
	ReasonPastTime      = "pastTime"
	ReasonBeyondHorizon = "beyondHorizon"
	ReasonUnknownTopic  = "unknownTopic"
)

type ExtractError struct {
	Code    string
	Message string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewExtractError(code, msg string) error {
	return &ExtractError{Code: code, Message: msg}
}

// Reason returns the extraction failure code, or "" for other errors.
func Reason(err error) string {
	if ee, ok := err.(*ExtractError); ok {
		return ee.Code
	}
	return ""
}
