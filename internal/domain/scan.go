package domain

import "time"

// ScanStatus is the scanner-facing outcome vocabulary.
type ScanStatus string

const (
	ScanStatusValid       ScanStatus = "VALID"
	ScanStatusAlreadyUsed ScanStatus = "ALREADY_USED"
	ScanStatusInvalid     ScanStatus = "INVALID"
)

// ScanResult is returned for every scan attempt. Ticket carries the current
// record for VALID and ALREADY_USED outcomes and is nil for INVALID.
type ScanResult struct {
	Success bool
	Status  ScanStatus
	Message string
	Ticket  *Ticket
}

// ScanLog is an immutable audit entry created once per successful first scan
// of a ticket.
type ScanLog struct {
	ID            string
	TicketID      string
	ScannedBy     string
	ScannedByName string
	ScannedAt     time.Time
	CategoryName  string
}
