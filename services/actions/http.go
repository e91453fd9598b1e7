package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"advisordesk/models"
)

// Package-level HTTP client for sink bridge calls, bounded so a slow
// integration can never stall a turn.
var sinkHTTPClient = &http.Client{Timeout: 5 * time.Second}

// sinkRequest is the wire payload for every bridge call.
type sinkRequest struct {
	Action    string `json:"action"`
	Code      string `json:"code"`
	Topic     string `json:"topic"`
	SlotLabel string `json:"slotLabel"`
	SlotStart string `json:"slotStart"`
	Status    string `json:"status"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Recipient string `json:"recipient,omitempty"`
}

func newSinkRequest(action string, record *models.BookingRecord, tzLabel string) sinkRequest {
	return sinkRequest{
		Action:    action,
		Code:      record.Code,
		Topic:     record.Topic.Label,
		SlotLabel: record.Slot.Label(tzLabel),
		SlotStart: record.Slot.Start.Format(time.RFC3339),
		Status:    record.Status,
		Source:    record.Source,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// postJSON forwards one sink request. An empty URL is a configured skip.
func postJSON(ctx context.Context, url string, payload sinkRequest) Outcome {
	if url == "" {
		return Outcome{Status: StatusSkipped, Detail: "sink not configured"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Status: StatusFailed, Detail: fmt.Sprintf("failed to marshal sink request: %v", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return Outcome{Status: StatusFailed, Detail: fmt.Sprintf("failed to build sink request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := sinkHTTPClient.Do(req)
	if err != nil {
		return Outcome{Status: StatusFailed, Detail: fmt.Sprintf("sink call failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{Status: StatusFailed, Detail: fmt.Sprintf("sink returned status %d", resp.StatusCode)}
	}
	return Outcome{Status: StatusOK, Detail: payload.Action}
}

// HTTPCalendarSink bridges calendar holds to an external MCP endpoint.
type HTTPCalendarSink struct {
	URL     string
	TZLabel string
}

func (s *HTTPCalendarSink) CreateHold(ctx context.Context, record *models.BookingRecord) Outcome {
	return postJSON(ctx, s.URL, newSinkRequest("create_hold", record, s.TZLabel))
}

func (s *HTTPCalendarSink) MoveHold(ctx context.Context, record *models.BookingRecord) Outcome {
	return postJSON(ctx, s.URL, newSinkRequest("move_hold", record, s.TZLabel))
}

func (s *HTTPCalendarSink) DeleteHold(ctx context.Context, record *models.BookingRecord) Outcome {
	return postJSON(ctx, s.URL, newSinkRequest("delete_hold", record, s.TZLabel))
}

// HTTPSheetSink bridges pre-booking log rows to an external MCP endpoint.
type HTTPSheetSink struct {
	URL     string
	TZLabel string
}

func (s *HTTPSheetSink) AppendRow(ctx context.Context, record *models.BookingRecord) Outcome {
	return postJSON(ctx, s.URL, newSinkRequest("append_row", record, s.TZLabel))
}

func (s *HTTPSheetSink) UpdateRow(ctx context.Context, record *models.BookingRecord) Outcome {
	return postJSON(ctx, s.URL, newSinkRequest("update_row", record, s.TZLabel))
}

// HTTPEmailSink bridges advisor email drafts to an external MCP endpoint.
type HTTPEmailSink struct {
	URL     string
	TZLabel string
}

func (s *HTTPEmailSink) CreateDraft(ctx context.Context, record *models.BookingRecord, recipient string) Outcome {
	payload := newSinkRequest("create_draft", record, s.TZLabel)
	payload.Recipient = recipient
	return postJSON(ctx, s.URL, payload)
}
