// Package audit records the electronic-signature trail: who asked for a
// code, what the verification attempt concluded, which device it came from.
// Events are best-effort telemetry; losing one never fails a request.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names what happened.
type EventType string

const (
	EventCodeIssued     EventType = "code_issued"
	EventCodeSendFailed EventType = "code_send_failed"
	EventCodeChecked    EventType = "code_checked"
	EventTicketMinted   EventType = "ticket_minted"
)

// Event is one signature-trail entry.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Email      string    `json:"email"`
	DocumentID string    `json:"document_id"`
	// Outcome carries the verification outcome for code_checked events.
	Outcome string `json:"outcome,omitempty"`
	// Device is a human-readable device label parsed from the User-Agent.
	Device    string    `json:"device,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent builds an event with a fresh ID and the given timestamp.
func NewEvent(t EventType, email, documentID string, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Email:      email,
		DocumentID: documentID,
		Timestamp:  at,
	}
}

// Recorder accepts events. The pipeline implementation is non-blocking; a
// Noop recorder serves tests.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Noop drops every event.
type Noop struct{}

func (Noop) Record(context.Context, Event) {}
