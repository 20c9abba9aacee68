package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/aquaflow/ticketing/internal/domain"
)

func testScanner() *domain.User {
	return &domain.User{
		ID:       uuid.NewString(),
		Email:    "gate@example.com",
		Name:     "Gate Scanner",
		Role:     domain.RoleScanner,
		IsActive: true,
	}
}

func newScanFixture(t *testing.T) (*ScanService, *fakeTicketRepo, *fakeScanLogRepo, *domain.Ticket) {
	t.Helper()
	tickets := newFakeTicketRepo()
	scanLogs := newFakeScanLogRepo()
	svc := NewScanService(ScanDependencies{
		TicketRepo:  tickets,
		ScanLogRepo: scanLogs,
	})

	ticket := domain.Ticket{
		ID:            uuid.NewString(),
		BatchID:       uuid.NewString(),
		CategoryID:    uuid.NewString(),
		CategoryName:  "Umum",
		Status:        domain.TicketStatusUnused,
		Price:         50000,
		CreatedBy:     uuid.NewString(),
		CreatedByName: "Front Desk",
		Shift:         "2026-08-28 09:00",
	}
	if err := tickets.InsertMany(context.Background(), []domain.Ticket{ticket}); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return svc, tickets, scanLogs, &ticket
}

func TestScanValidThenAlreadyUsed(t *testing.T) {
	svc, _, scanLogs, ticket := newScanFixture(t)
	scanner := testScanner()

	first, err := svc.Scan(context.Background(), ticket.ID, scanner)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if !first.Success || first.Status != domain.ScanStatusValid {
		t.Fatalf("first scan = %+v, want VALID success", first)
	}
	if first.Ticket == nil || first.Ticket.ScannedAt == nil || first.Ticket.ScannedBy == nil {
		t.Fatal("first scan must return redemption data on the ticket")
	}
	if *first.Ticket.ScannedBy != scanner.ID {
		t.Fatalf("scanned_by %q, want %q", *first.Ticket.ScannedBy, scanner.ID)
	}
	firstScannedAt := *first.Ticket.ScannedAt

	second, err := svc.Scan(context.Background(), ticket.ID, testScanner())
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.Success || second.Status != domain.ScanStatusAlreadyUsed {
		t.Fatalf("second scan = %+v, want ALREADY_USED failure", second)
	}
	if second.Ticket == nil || second.Ticket.ScannedAt == nil || second.Ticket.ScannedBy == nil {
		t.Fatal("repeat scan must still return the original redemption data")
	}
	if !second.Ticket.ScannedAt.Equal(firstScannedAt) {
		t.Fatalf("repeat scan changed scanned_at from %v to %v", firstScannedAt, *second.Ticket.ScannedAt)
	}
	if *second.Ticket.ScannedBy != scanner.ID {
		t.Fatalf("repeat scan changed scanned_by to %q", *second.Ticket.ScannedBy)
	}

	logs, err := scanLogs.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List scan logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(logs))
	}
	if logs[0].TicketID != ticket.ID || logs[0].ScannedBy != scanner.ID {
		t.Fatalf("audit entry %+v does not match winning scan", logs[0])
	}
}

func TestScanConcurrentScannersSingleWinner(t *testing.T) {
	svc, _, scanLogs, ticket := newScanFixture(t)

	const attempts = 16
	results := make([]*domain.ScanResult, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Scan(context.Background(), ticket.ID, testScanner())
		}(i)
	}
	wg.Wait()

	var wins, repeats int
	for i := 0; i < attempts; i++ {
		if errs[i] != nil {
			t.Fatalf("scan %d errored: %v", i, errs[i])
		}
		switch results[i].Status {
		case domain.ScanStatusValid:
			wins++
		case domain.ScanStatusAlreadyUsed:
			repeats++
		default:
			t.Fatalf("scan %d unexpected status %q", i, results[i].Status)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one VALID outcome, got %d", wins)
	}
	if repeats != attempts-1 {
		t.Fatalf("expected %d ALREADY_USED outcomes, got %d", attempts-1, repeats)
	}

	logs, _ := scanLogs.List(context.Background(), 0)
	if len(logs) != 1 {
		t.Fatalf("expected one audit entry after concurrent scans, got %d", len(logs))
	}
}

func TestScanUnknownTicketIsInvalid(t *testing.T) {
	svc, _, scanLogs, _ := newScanFixture(t)

	result, err := svc.Scan(context.Background(), uuid.NewString(), testScanner())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result.Success || result.Status != domain.ScanStatusInvalid {
		t.Fatalf("result = %+v, want INVALID failure", result)
	}
	if result.Ticket != nil {
		t.Fatal("unknown ticket must not return ticket data")
	}

	logs, _ := scanLogs.List(context.Background(), 0)
	if len(logs) != 0 {
		t.Fatalf("invalid scans must not be logged, got %d entries", len(logs))
	}
}
