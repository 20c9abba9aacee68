package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBatchIssued   EventType = "batch_issued"
	EventTicketScanned EventType = "ticket_scanned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	ActorName string      `json:"actor_name"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BatchIssuedPayload describes a completed issuance call.
type BatchIssuedPayload struct {
	BatchID      string  `json:"batch_id"`
	TotalTickets int     `json:"total_tickets"`
	TotalValue   float64 `json:"total_value"`
	Shift        string  `json:"shift"`
}

// TicketScannedPayload describes a successful first scan.
type TicketScannedPayload struct {
	TicketID     string `json:"ticket_id"`
	CategoryName string `json:"category_name"`
}
