package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aquaflow/ticketing/internal/domain"
	"github.com/aquaflow/ticketing/internal/repository"
)

// fakeTicketRepo is an in-memory ledger. MarkUsed holds the mutex across the
// check-and-set so it gives the same single-winner guarantee as the database's
// conditional update.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	order   []string
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]domain.Ticket)}
}

func (r *fakeTicketRepo) InsertMany(_ context.Context, tickets []domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tickets {
		if _, exists := r.tickets[t.ID]; exists {
			return repository.ErrDuplicateTicketID
		}
	}
	for _, t := range tickets {
		r.tickets[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := t
	return &copied, nil
}

func (r *fakeTicketRepo) MarkUsed(_ context.Context, id, scannedBy string, scannedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.Status != domain.TicketStatusUnused {
		return false, nil
	}
	t.Status = domain.TicketStatusUsed
	t.ScannedAt = &scannedAt
	t.ScannedBy = &scannedBy
	r.tickets[id] = t
	return true, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, id := range r.order {
		t := r.tickets[id]
		if !matchesFilter(&t, filter) {
			continue
		}
		result = append(result, t)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func matchesFilter(t *domain.Ticket, filter repository.TicketFilter) bool {
	if filter.BatchID != nil && t.BatchID != *filter.BatchID {
		return false
	}
	if filter.Status != nil && t.Status != *filter.Status {
		return false
	}
	if filter.CreatedBy != nil && t.CreatedBy != *filter.CreatedBy {
		return false
	}
	if filter.Shift != nil && t.Shift != *filter.Shift {
		return false
	}
	if filter.ShiftPrefix != nil && !strings.HasPrefix(t.Shift, *filter.ShiftPrefix) {
		return false
	}
	if filter.CreatedFrom != nil && t.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && t.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	if filter.CreatedBefore != nil && !t.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	if filter.ScannedFrom != nil && (t.ScannedAt == nil || t.ScannedAt.Before(*filter.ScannedFrom)) {
		return false
	}
	if filter.ScannedTo != nil && (t.ScannedAt == nil || t.ScannedAt.After(*filter.ScannedTo)) {
		return false
	}
	return true
}

func allTicketsFilter() repository.TicketFilter {
	return repository.TicketFilter{}
}

func ticketFilterForBatch(batchID string) repository.TicketFilter {
	return repository.TicketFilter{BatchID: &batchID}
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]domain.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := c
	return &copied, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type fakePriceRepo struct {
	mu     sync.Mutex
	prices map[string]domain.Price
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{prices: make(map[string]domain.Price)}
}

func (r *fakePriceRepo) Upsert(_ context.Context, price *domain.Price) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prices[price.CategoryID] = *price
	return nil
}

func (r *fakePriceRepo) GetByCategory(_ context.Context, categoryID string) (*domain.Price, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prices[categoryID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := p
	return &copied, nil
}

func (r *fakePriceRepo) List(_ context.Context) ([]domain.Price, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Price, 0, len(r.prices))
	for _, p := range r.prices {
		result = append(result, p)
	}
	return result, nil
}

type fakeScanLogRepo struct {
	mu      sync.Mutex
	entries []domain.ScanLog
}

func newFakeScanLogRepo() *fakeScanLogRepo {
	return &fakeScanLogRepo{}
}

func (r *fakeScanLogRepo) Create(_ context.Context, entry *domain.ScanLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeScanLogRepo) List(_ context.Context, limit int) ([]domain.ScanLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := append([]domain.ScanLog(nil), r.entries...)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeScanLogRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.ScanLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ScanLog
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}
