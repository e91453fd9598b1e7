package models

// Topic is a canonical advisory topic plus the raw phrase that matched it.
// It is never stored on a session unless it matched a taxonomy entry.
type Topic struct {
	Label  string `json:"label"`
	Phrase string `json:"phrase"`
}
