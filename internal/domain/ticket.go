package domain

import "time"

// TicketStatus enumerates lifecycle states for admission tickets.
type TicketStatus string

const (
	TicketStatusUnused TicketStatus = "UNUSED"
	TicketStatusUsed   TicketStatus = "USED"
)

// Ticket is one admission right, minted with a category/price snapshot and
// redeemable exactly once. Tickets are never deleted; the only mutation after
// creation is the UNUSED->USED transition, which sets ScannedAt and ScannedBy
// together.
type Ticket struct {
	ID            string
	BatchID       string
	CategoryID    string
	CategoryName  string
	Status        TicketStatus
	Price         float64
	NIM           *string
	QRCode        string
	CreatedBy     string
	CreatedByName string
	Shift         string
	CreatedAt     time.Time
	ScannedAt     *time.Time
	ScannedBy     *string
}

// IsUsed reports whether the ticket has been redeemed.
func (t *Ticket) IsUsed() bool {
	return t.Status == TicketStatusUsed
}
