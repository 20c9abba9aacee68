package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow/ticketing/internal/domain"
	"github.com/aquaflow/ticketing/internal/events"
	"github.com/aquaflow/ticketing/internal/repository"
)

// ScanService is the redemption state machine. A ticket moves UNUSED->USED at
// most once; concurrent scanners are arbitrated by the ledger's conditional
// write, never by in-process locks.
type ScanService struct {
	tickets    repository.TicketRepository
	scanLogs   repository.ScanLogRepository
	dispatcher events.Dispatcher
}

// ScanDependencies bundles repositories for the scan service.
type ScanDependencies struct {
	TicketRepo  repository.TicketRepository
	ScanLogRepo repository.ScanLogRepository
	Dispatcher  events.Dispatcher
}

// NewScanService constructs the service.
func NewScanService(deps ScanDependencies) *ScanService {
	return &ScanService{
		tickets:    deps.TicketRepo,
		scanLogs:   deps.ScanLogRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Scan attempts to redeem a ticket. Outcomes:
//   - INVALID: no such ticket, nothing written.
//   - ALREADY_USED: the ticket was redeemed earlier (or another scanner won
//     the race an instant ago); current ticket data returned, nothing written.
//   - VALID: this call performed the transition; one scan log entry appended.
func (s *ScanService) Scan(ctx context.Context, ticketID string, scanner *domain.User) (*domain.ScanResult, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &domain.ScanResult{
				Success: false,
				Status:  domain.ScanStatusInvalid,
				Message: "Ticket not found",
			}, nil
		}
		return nil, err
	}

	if ticket.IsUsed() {
		return alreadyUsed(ticket), nil
	}

	now := time.Now().UTC()
	won, err := s.tickets.MarkUsed(ctx, ticketID, scanner.ID, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// Lost the race to a concurrent scan between the read and the write.
		// Re-read for the authoritative redemption data instead of guessing.
		current, err := s.tickets.GetByID(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		return alreadyUsed(current), nil
	}

	entry := &domain.ScanLog{
		ID:            uuid.NewString(),
		TicketID:      ticket.ID,
		ScannedBy:     scanner.ID,
		ScannedByName: scanner.Name,
		ScannedAt:     now,
		CategoryName:  ticket.CategoryName,
	}
	if err := s.scanLogs.Create(ctx, entry); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketScanned,
			ActorID:   scanner.ID,
			ActorName: scanner.Name,
			Timestamp: now,
			Payload: events.TicketScannedPayload{
				TicketID:     ticket.ID,
				CategoryName: ticket.CategoryName,
			},
		})
	}

	ticket.Status = domain.TicketStatusUsed
	ticket.ScannedAt = &now
	scannerID := scanner.ID
	ticket.ScannedBy = &scannerID

	return &domain.ScanResult{
		Success: true,
		Status:  domain.ScanStatusValid,
		Message: "Ticket validated successfully",
		Ticket:  ticket,
	}, nil
}

// ListScanLogs exposes the redemption audit log for reporting consumers.
func (s *ScanService) ListScanLogs(ctx context.Context, limit int) ([]domain.ScanLog, error) {
	return s.scanLogs.List(ctx, limit)
}

func alreadyUsed(ticket *domain.Ticket) *domain.ScanResult {
	return &domain.ScanResult{
		Success: false,
		Status:  domain.ScanStatusAlreadyUsed,
		Message: "This ticket has already been used",
		Ticket:  ticket,
	}
}
