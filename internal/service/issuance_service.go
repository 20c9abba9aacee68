package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow/ticketing/internal/domain"
	"github.com/aquaflow/ticketing/internal/events"
	"github.com/aquaflow/ticketing/internal/repository"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

// shiftLabel buckets a timestamp into the minute-granularity shift label all
// tickets of one batch share.
const shiftLabelLayout = "2006-01-02 15:04"

// shiftHourPrefix is the hour-granularity prefix the shift report matches on.
const shiftHourLayout = "2006-01-02 15"

func shiftLabel(t time.Time) string {
	return t.UTC().Format(shiftLabelLayout)
}

func shiftHourPrefix(t time.Time) string {
	return t.UTC().Format(shiftHourLayout)
}

// redemptionPayload derives the encoded QR payload from a ticket id. Image
// rendering is left to clients.
func redemptionPayload(ticketID string) string {
	return "aquaflow://ticket/" + ticketID
}

// IssuanceService mints ticket batches against a category/price snapshot.
type IssuanceService struct {
	tickets    repository.TicketRepository
	categories repository.CategoryRepository
	prices     repository.PriceRepository
	dispatcher events.Dispatcher
}

// IssuanceDependencies bundles repositories for the issuance service.
type IssuanceDependencies struct {
	TicketRepo   repository.TicketRepository
	CategoryRepo repository.CategoryRepository
	PriceRepo    repository.PriceRepository
	Dispatcher   events.Dispatcher
}

// BatchItemInput is one line of an issuance request.
type BatchItemInput struct {
	CategoryID string
	Quantity   int
	NIM        *string
}

// BatchResult is the outcome of one issuance call.
type BatchResult struct {
	BatchID string
	Tickets []domain.Ticket
}

// NewIssuanceService constructs the service.
func NewIssuanceService(deps IssuanceDependencies) *IssuanceService {
	return &IssuanceService{
		tickets:    deps.TicketRepo,
		categories: deps.CategoryRepo,
		prices:     deps.PriceRepo,
		dispatcher: deps.Dispatcher,
	}
}

type resolvedItem struct {
	input    BatchItemInput
	category *domain.Category
	price    float64
}

// IssueBatch validates every request item, then mints all tickets and
// persists them in one ledger insert. Any validation failure rejects the
// whole batch before anything is written.
func (s *IssuanceService) IssueBatch(ctx context.Context, issuer *domain.User, items []BatchItemInput) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("at least one ticket item required", nil)
	}

	resolved := make([]resolvedItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1", map[string]any{
				"category_id": item.CategoryID,
			})
		}

		category, err := s.categories.GetByID(ctx, item.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"category_id": item.CategoryID})
			}
			return nil, err
		}

		price, err := s.prices.GetByCategory(ctx, item.CategoryID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("price for category "+category.Name, map[string]any{
					"category_id": item.CategoryID,
				})
			}
			return nil, err
		}

		if category.RequiresNIM && (item.NIM == nil || *item.NIM == "") {
			return nil, apperrors.NewValidationError("nim required for category "+category.Name, map[string]any{
				"category_id": item.CategoryID,
			})
		}

		resolved = append(resolved, resolvedItem{input: item, category: category, price: price.Price})
	}

	// One batch id and one shift label per call, shared by every ticket even
	// when minting a large batch spans a minute boundary.
	batchID := uuid.NewString()
	now := time.Now().UTC()
	shift := shiftLabel(now)

	var tickets []domain.Ticket
	for _, item := range resolved {
		var nim *string
		if item.category.RequiresNIM {
			nim = item.input.NIM
		}
		for i := 0; i < item.input.Quantity; i++ {
			ticketID := uuid.NewString()
			tickets = append(tickets, domain.Ticket{
				ID:            ticketID,
				BatchID:       batchID,
				CategoryID:    item.category.ID,
				CategoryName:  item.category.Name,
				Status:        domain.TicketStatusUnused,
				Price:         item.price,
				NIM:           nim,
				QRCode:        redemptionPayload(ticketID),
				CreatedBy:     issuer.ID,
				CreatedByName: issuer.Name,
				Shift:         shift,
				CreatedAt:     now,
			})
		}
	}

	if err := s.tickets.InsertMany(ctx, tickets); err != nil {
		if errors.Is(err, repository.ErrDuplicateTicketID) {
			return nil, apperrors.NewConflict("ticket id collision", nil)
		}
		return nil, err
	}

	if s.dispatcher != nil {
		var total float64
		for i := range tickets {
			total += tickets[i].Price
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventBatchIssued,
			ActorID:   issuer.ID,
			ActorName: issuer.Name,
			Timestamp: now,
			Payload: events.BatchIssuedPayload{
				BatchID:      batchID,
				TotalTickets: len(tickets),
				TotalValue:   total,
				Shift:        shift,
			},
		})
	}

	return &BatchResult{BatchID: batchID, Tickets: tickets}, nil
}

// TicketListInput narrows a ticket listing.
type TicketListInput struct {
	BatchID string
	Status  string
	Limit   int
}

// ListTickets returns issued tickets, newest first. Receptionists only see
// tickets they issued themselves; admins see everything.
func (s *IssuanceService) ListTickets(ctx context.Context, caller *domain.User, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{Limit: input.Limit}
	if input.BatchID != "" {
		batchID := input.BatchID
		filter.BatchID = &batchID
	}
	if input.Status != "" {
		status := domain.TicketStatus(input.Status)
		if status != domain.TicketStatusUnused && status != domain.TicketStatusUsed {
			return nil, apperrors.NewValidationError("status must be UNUSED or USED", nil)
		}
		filter.Status = &status
	}
	if caller.Role == domain.RoleReceptionist {
		callerID := caller.ID
		filter.CreatedBy = &callerID
	}
	return s.tickets.ListWithFilter(ctx, filter)
}

// GetTicket returns one ticket by id.
func (s *IssuanceService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return ticket, nil
}
