package dto

import (
	"time"

	"github.com/aquaflow/ticketing/internal/domain"
)

// BatchItemRequest is one line of a batch issuance payload.
type BatchItemRequest struct {
	CategoryID string  `json:"category_id"`
	Quantity   int     `json:"quantity"`
	NIM        *string `json:"nim"`
}

// CreateBatchRequest payload.
type CreateBatchRequest struct {
	Tickets []BatchItemRequest `json:"tickets"`
}

// TicketResponse is the fixed wire shape for tickets. The field set is a
// compatibility contract with existing scanner and receptionist clients.
type TicketResponse struct {
	ID            string              `json:"id"`
	BatchID       string              `json:"batch_id"`
	CategoryID    string              `json:"category_id"`
	CategoryName  string              `json:"category_name"`
	Status        domain.TicketStatus `json:"status"`
	Price         float64             `json:"price"`
	NIM           *string             `json:"nim"`
	QRCode        string              `json:"qr_code"`
	CreatedBy     string              `json:"created_by"`
	CreatedByName string              `json:"created_by_name"`
	Shift         string              `json:"shift"`
	CreatedAt     time.Time           `json:"created_at"`
	ScannedAt     *time.Time          `json:"scanned_at"`
	ScannedBy     *string             `json:"scanned_by"`
}

// BatchResponse is the issuance result envelope.
type BatchResponse struct {
	BatchID      string           `json:"batch_id"`
	TotalTickets int              `json:"total_tickets"`
	Tickets      []TicketResponse `json:"tickets"`
}

// ScanRequest payload.
type ScanRequest struct {
	TicketID string `json:"ticket_id"`
}

// ScanResponse is the scanner's entire feedback vocabulary.
type ScanResponse struct {
	Success bool              `json:"success"`
	Status  domain.ScanStatus `json:"status"`
	Message string            `json:"message"`
	Ticket  *TicketResponse   `json:"ticket"`
}

// ScanLogResponse is one redemption audit entry.
type ScanLogResponse struct {
	ID            string    `json:"id"`
	TicketID      string    `json:"ticket_id"`
	ScannedBy     string    `json:"scanned_by"`
	ScannedByName string    `json:"scanned_by_name"`
	ScannedAt     time.Time `json:"scanned_at"`
	CategoryName  string    `json:"category_name"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		BatchID:       ticket.BatchID,
		CategoryID:    ticket.CategoryID,
		CategoryName:  ticket.CategoryName,
		Status:        ticket.Status,
		Price:         ticket.Price,
		NIM:           ticket.NIM,
		QRCode:        ticket.QRCode,
		CreatedBy:     ticket.CreatedBy,
		CreatedByName: ticket.CreatedByName,
		Shift:         ticket.Shift,
		CreatedAt:     ticket.CreatedAt,
		ScannedAt:     ticket.ScannedAt,
		ScannedBy:     ticket.ScannedBy,
	}
}

// NewTicketResponses maps a ticket slice.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, NewTicketResponse(&tickets[i]))
	}
	return result
}

// NewScanLogResponse maps a domain scan log entry.
func NewScanLogResponse(entry *domain.ScanLog) ScanLogResponse {
	return ScanLogResponse{
		ID:            entry.ID,
		TicketID:      entry.TicketID,
		ScannedBy:     entry.ScannedBy,
		ScannedByName: entry.ScannedByName,
		ScannedAt:     entry.ScannedAt,
		CategoryName:  entry.CategoryName,
	}
}
