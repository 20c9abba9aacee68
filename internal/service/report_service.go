package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aquaflow/ticketing/internal/domain"
	"github.com/aquaflow/ticketing/internal/persistence"
	"github.com/aquaflow/ticketing/internal/repository"
	apperrors "github.com/aquaflow/ticketing/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// ReportService derives read-only summaries from the ticket ledger. It never
// mutates anything; results are "as of" reads and the admin reports may be
// served from a short-TTL cache.
type ReportService struct {
	tickets  repository.TicketRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
}

// ReportDependencies bundles requirements for the report service. Cache is
// optional.
type ReportDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      *persistence.Redis
	CacheTTL   time.Duration
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		tickets:  deps.TicketRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
	}
}

// CategoryBreakdown is the per-category slice of a daily report.
type CategoryBreakdown struct {
	CategoryName string  `json:"category_name"`
	Count        int     `json:"count"`
	Revenue      float64 `json:"revenue"`
}

// DailyReport summarizes one calendar day.
type DailyReport struct {
	Date           string              `json:"date"`
	TicketsSold    int                 `json:"tickets_sold"`
	TicketsScanned int                 `json:"tickets_scanned"`
	TotalRevenue   float64             `json:"total_revenue"`
	ByCategory     []CategoryBreakdown `json:"by_category"`
}

// ShiftReport summarizes one shift bucket, including the raw tickets.
type ShiftReport struct {
	Shift          string
	TotalTickets   int
	TicketsScanned int
	TotalRevenue   float64
	Tickets        []domain.Ticket
}

// DailyBreakdownEntry is one day of a monthly report.
type DailyBreakdownEntry struct {
	Date    string  `json:"date"`
	Tickets int     `json:"tickets"`
	Revenue float64 `json:"revenue"`
}

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Year           int                   `json:"year"`
	Month          int                   `json:"month"`
	TicketsSold    int                   `json:"tickets_sold"`
	TotalRevenue   float64               `json:"total_revenue"`
	DailyBreakdown []DailyBreakdownEntry `json:"daily_breakdown"`
}

// StaffActivityEntry is one staff member's lifetime issuance totals. Grouping
// is by display name, matching the existing report consumers.
type StaffActivityEntry struct {
	CreatedByName string  `json:"created_by_name"`
	TicketsSold   int     `json:"tickets_sold"`
	Revenue       float64 `json:"revenue"`
}

// Daily builds the report for one calendar day (UTC). Tickets created
// yesterday and scanned today count toward today's scanned figure only.
func (s *ReportService) Daily(ctx context.Context, date string) (*DailyReport, error) {
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", nil)
	}

	cacheKey := "reports:daily:" + date
	var cached DailyReport
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	from := day
	to := day.Add(24*time.Hour - time.Second)

	created, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return nil, err
	}
	scanned, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		ScannedFrom: &from,
		ScannedTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:           date,
		TicketsSold:    len(created),
		TicketsScanned: len(scanned),
		ByCategory:     []CategoryBreakdown{},
	}
	byCategory := make(map[string]*CategoryBreakdown)
	for i := range created {
		t := &created[i]
		report.TotalRevenue += t.Price
		entry, ok := byCategory[t.CategoryName]
		if !ok {
			entry = &CategoryBreakdown{CategoryName: t.CategoryName}
			byCategory[t.CategoryName] = entry
		}
		entry.Count++
		entry.Revenue += t.Price
	}
	for _, entry := range byCategory {
		report.ByCategory = append(report.ByCategory, *entry)
	}
	sort.Slice(report.ByCategory, func(i, j int) bool {
		return report.ByCategory[i].CategoryName < report.ByCategory[j].CategoryName
	})

	s.cacheSet(ctx, cacheKey, report)
	return report, nil
}

// Shift builds the report for a shift label, or for the current hour bucket
// when no label is given. Receptionists only see tickets they issued.
func (s *ReportService) Shift(ctx context.Context, caller *domain.User, shift string) (*ShiftReport, error) {
	filter := repository.TicketFilter{}
	if caller.Role == domain.RoleReceptionist {
		callerID := caller.ID
		filter.CreatedBy = &callerID
	}

	label := shift
	if shift != "" {
		filter.Shift = &shift
	} else {
		prefix := shiftHourPrefix(time.Now())
		filter.ShiftPrefix = &prefix
		label = "current"
	}

	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &ShiftReport{
		Shift:        label,
		TotalTickets: len(tickets),
		Tickets:      tickets,
	}
	for i := range tickets {
		report.TotalRevenue += tickets[i].Price
		if tickets[i].IsUsed() {
			report.TicketsScanned++
		}
	}
	return report, nil
}

// Monthly builds the report for one calendar month; the window is
// [first-of-month, first-of-next-month), rolling over into the next year
// after December.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationError("month must be between 1 and 12", nil)
	}
	if year < 1 {
		return nil, apperrors.NewValidationError("year required", nil)
	}

	cacheKey := fmt.Sprintf("reports:monthly:%04d-%02d", year, month)
	var cached MonthlyReport
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatedFrom:   &start,
		CreatedBefore: &end,
	})
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:           year,
		Month:          month,
		TicketsSold:    len(tickets),
		DailyBreakdown: []DailyBreakdownEntry{},
	}
	byDay := make(map[string]*DailyBreakdownEntry)
	for i := range tickets {
		t := &tickets[i]
		report.TotalRevenue += t.Price
		day := t.CreatedAt.UTC().Format(dateLayout)
		entry, ok := byDay[day]
		if !ok {
			entry = &DailyBreakdownEntry{Date: day}
			byDay[day] = entry
		}
		entry.Tickets++
		entry.Revenue += t.Price
	}
	for _, entry := range byDay {
		report.DailyBreakdown = append(report.DailyBreakdown, *entry)
	}
	sort.Slice(report.DailyBreakdown, func(i, j int) bool {
		return report.DailyBreakdown[i].Date < report.DailyBreakdown[j].Date
	})

	s.cacheSet(ctx, cacheKey, report)
	return report, nil
}

// StaffActivity groups all tickets ever issued by issuer display name,
// descending by count.
func (s *ReportService) StaffActivity(ctx context.Context) ([]StaffActivityEntry, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{})
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*StaffActivityEntry)
	for i := range tickets {
		t := &tickets[i]
		entry, ok := byName[t.CreatedByName]
		if !ok {
			entry = &StaffActivityEntry{CreatedByName: t.CreatedByName}
			byName[t.CreatedByName] = entry
		}
		entry.TicketsSold++
		entry.Revenue += t.Price
	}

	result := make([]StaffActivityEntry, 0, len(byName))
	for _, entry := range byName {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TicketsSold != result[j].TicketsSold {
			return result[i].TicketsSold > result[j].TicketsSold
		}
		return result[i].CreatedByName < result[j].CreatedByName
	})
	return result, nil
}

func (s *ReportService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	payload, ok := s.cache.GetCached(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.SetCached(ctx, key, payload, s.cacheTTL)
}
