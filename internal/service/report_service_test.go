package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aquaflow/ticketing/internal/domain"
)

func seedLedgerTicket(t *testing.T, repo *fakeTicketRepo, ticket domain.Ticket) {
	t.Helper()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.BatchID == "" {
		ticket.BatchID = uuid.NewString()
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusUnused
	}
	if err := repo.InsertMany(context.Background(), []domain.Ticket{ticket}); err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
}

func newReportFixture() (*ReportService, *fakeTicketRepo) {
	tickets := newFakeTicketRepo()
	svc := NewReportService(ReportDependencies{TicketRepo: tickets})
	return svc, tickets
}

func TestDailyReportAggregatesSoldScannedAndRevenue(t *testing.T) {
	svc, tickets := newReportFixture()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	scannedAt := day.Add(14 * time.Hour)

	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000,
		CreatedAt: day.Add(9 * time.Hour), CreatedByName: "Front Desk",
	})
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000,
		CreatedAt: day.Add(10 * time.Hour), CreatedByName: "Front Desk",
	})
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Mahasiswa", Price: 20000,
		CreatedAt: day.Add(11 * time.Hour), CreatedByName: "Front Desk",
		Status: domain.TicketStatusUsed, ScannedAt: &scannedAt,
	})
	// Sold the day before; must not count toward this day's sales.
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000,
		CreatedAt: day.Add(-2 * time.Hour), CreatedByName: "Front Desk",
	})

	report, err := svc.Daily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if report.TicketsSold != 3 {
		t.Errorf("tickets_sold = %d, want 3", report.TicketsSold)
	}
	if report.TicketsScanned != 1 {
		t.Errorf("tickets_scanned = %d, want 1", report.TicketsScanned)
	}
	if report.TotalRevenue != 120000 {
		t.Errorf("total_revenue = %v, want 120000", report.TotalRevenue)
	}

	if len(report.ByCategory) != 2 {
		t.Fatalf("by_category has %d entries, want 2", len(report.ByCategory))
	}
	var sumCount int
	var sumRevenue float64
	for _, entry := range report.ByCategory {
		sumCount += entry.Count
		sumRevenue += entry.Revenue
	}
	if sumCount != report.TicketsSold {
		t.Errorf("category counts sum to %d, want %d", sumCount, report.TicketsSold)
	}
	if sumRevenue != report.TotalRevenue {
		t.Errorf("category revenue sums to %v, want %v", sumRevenue, report.TotalRevenue)
	}
}

func TestDailyReportCountsCrossDayScans(t *testing.T) {
	svc, tickets := newReportFixture()
	soldDay := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	scannedAt := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, CreatedAt: soldDay,
		CreatedByName: "Front Desk",
		Status:        domain.TicketStatusUsed, ScannedAt: &scannedAt,
	})

	report, err := svc.Daily(context.Background(), "2026-03-10")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if report.TicketsSold != 0 {
		t.Errorf("tickets_sold = %d, want 0", report.TicketsSold)
	}
	if report.TicketsScanned != 1 {
		t.Errorf("tickets_scanned = %d, want 1", report.TicketsScanned)
	}
}

func TestDailyReportRejectsBadDate(t *testing.T) {
	svc, _ := newReportFixture()
	if _, err := svc.Daily(context.Background(), "10-03-2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestShiftReportScopesReceptionist(t *testing.T) {
	svc, tickets := newReportFixture()
	shift := "2026-08-28 09:00"
	mine := uuid.NewString()
	other := uuid.NewString()

	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, Shift: shift,
		CreatedBy: mine, CreatedByName: "Me", CreatedAt: time.Now().UTC(),
	})
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, Shift: shift,
		CreatedBy: other, CreatedByName: "Them", CreatedAt: time.Now().UTC(),
	})

	receptionist := &domain.User{ID: mine, Name: "Me", Role: domain.RoleReceptionist, IsActive: true}
	report, err := svc.Shift(context.Background(), receptionist, shift)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if report.TotalTickets != 1 {
		t.Fatalf("receptionist shift total = %d, want 1", report.TotalTickets)
	}
	if report.TotalRevenue != 50000 {
		t.Errorf("receptionist shift revenue = %v, want 50000", report.TotalRevenue)
	}

	admin := &domain.User{ID: uuid.NewString(), Name: "Admin", Role: domain.RoleAdmin, IsActive: true}
	adminReport, err := svc.Shift(context.Background(), admin, shift)
	if err != nil {
		t.Fatalf("Shift admin: %v", err)
	}
	if adminReport.TotalTickets != 2 {
		t.Fatalf("admin shift total = %d, want 2", adminReport.TotalTickets)
	}
}

func TestMonthlyReportDecemberRollsIntoNextYear(t *testing.T) {
	svc, tickets := newReportFixture()

	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, CreatedByName: "Front Desk",
		CreatedAt: time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC),
	})
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, CreatedByName: "Front Desk",
		CreatedAt: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	})
	// First instant of January belongs to the next month.
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, CreatedByName: "Front Desk",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	report, err := svc.Monthly(context.Background(), 2025, 12)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if report.TicketsSold != 2 {
		t.Fatalf("tickets_sold = %d, want 2", report.TicketsSold)
	}
	if report.TotalRevenue != 100000 {
		t.Errorf("total_revenue = %v, want 100000", report.TotalRevenue)
	}
	if len(report.DailyBreakdown) != 2 {
		t.Fatalf("daily_breakdown has %d days, want 2", len(report.DailyBreakdown))
	}
	if report.DailyBreakdown[0].Date != "2025-12-01" || report.DailyBreakdown[1].Date != "2025-12-31" {
		t.Fatalf("daily_breakdown not in ascending date order: %+v", report.DailyBreakdown)
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc, _ := newReportFixture()
	if _, err := svc.Monthly(context.Background(), 2026, 13); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, err := svc.Monthly(context.Background(), 2026, 0); err == nil {
		t.Fatal("expected error for month 0")
	}
}

func TestStaffActivityOrdersByVolume(t *testing.T) {
	svc, tickets := newReportFixture()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		seedLedgerTicket(t, tickets, domain.Ticket{
			CategoryName: "Umum", Price: 50000, CreatedByName: "Busy Desk", CreatedAt: now,
		})
	}
	seedLedgerTicket(t, tickets, domain.Ticket{
		CategoryName: "Umum", Price: 50000, CreatedByName: "Quiet Desk", CreatedAt: now,
	})

	entries, err := svc.StaffActivity(context.Background())
	if err != nil {
		t.Fatalf("StaffActivity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].CreatedByName != "Busy Desk" || entries[0].TicketsSold != 3 {
		t.Fatalf("top entry = %+v, want Busy Desk with 3", entries[0])
	}
	if entries[0].Revenue != 150000 {
		t.Errorf("top revenue = %v, want 150000", entries[0].Revenue)
	}
	if entries[1].CreatedByName != "Quiet Desk" || entries[1].TicketsSold != 1 {
		t.Fatalf("second entry = %+v, want Quiet Desk with 1", entries[1])
	}
}
