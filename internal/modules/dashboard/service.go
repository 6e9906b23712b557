package dashboard

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/domain"
)

var ErrInvalidPeriod = errors.New("invalid period")

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

type Stats struct {
	Period             Period           `json:"period"`
	Clients            int64            `json:"clients"`
	Vehicles           int64            `json:"vehicles"`
	OpenWorkOrders     int64            `json:"open_work_orders"`
	WorkOrdersByStatus map[string]int64 `json:"work_orders_by_status"`
	Revenue            float64          `json:"revenue"`
	PreviousRevenue    float64          `json:"previous_revenue"`
	RevenueGrowth      float64          `json:"revenue_growth"`
	OutstandingTotal   float64          `json:"outstanding_total"`
	LowStockCount      int64            `json:"low_stock_count"`
	TopClients         []TopClient      `json:"top_clients"`
}

type TopClient struct {
	ClientID int64   `json:"client_id"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
}

type TrendPoint struct {
	Bucket  string  `json:"bucket"`
	Revenue float64 `json:"revenue"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// periodRange returns the current window [start, now) and the previous
// window of equal length ending at start.
func periodRange(now time.Time, p Period) (start, prevStart time.Time, err error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		start = midnight
		prevStart = start.AddDate(0, 0, -1)
	case PeriodWeek:
		// ISO week starting Monday.
		offset := (int(midnight.Weekday()) + 6) % 7
		start = midnight.AddDate(0, 0, -offset)
		prevStart = start.AddDate(0, 0, -7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		prevStart = start.AddDate(0, -1, 0)
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		prevStart = start.AddDate(-1, 0, 0)
	default:
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, prevStart, nil
}

func (s *Service) Stats(ctx context.Context, p Period) (*Stats, error) {
	now := time.Now()
	start, prevStart, err := periodRange(now, p)
	if err != nil {
		return nil, err
	}

	st := &Stats{Period: p, WorkOrdersByStatus: map[string]int64{}}
	db := s.db.WithContext(ctx)

	if err := db.Model(&domain.Client{}).Count(&st.Clients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Vehicle{}).Count(&st.Vehicles).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Cnt    int64
	}
	var rows []statusCount
	err = db.Model(&domain.WorkOrder{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		st.WorkOrdersByStatus[r.Status] = r.Cnt
		switch domain.WorkOrderStatus(r.Status) {
		case domain.OrderCompleted, domain.OrderCancelled:
		default:
			st.OpenWorkOrders += r.Cnt
		}
	}

	st.Revenue, err = s.paidRevenue(ctx, start, now)
	if err != nil {
		return nil, err
	}
	st.PreviousRevenue, err = s.paidRevenue(ctx, prevStart, start)
	if err != nil {
		return nil, err
	}
	st.RevenueGrowth = growth(st.Revenue, st.PreviousRevenue)

	err = db.Raw(`
SELECT COALESCE(SUM(total - amount_paid), 0)
FROM invoices
WHERE status IN ('sent', 'partially_paid', 'overdue')
`).Scan(&st.OutstandingTotal).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&domain.InventoryItem{}).
		Where("active = ? AND quantity <= min_stock", true).
		Count(&st.LowStockCount).Error
	if err != nil {
		return nil, err
	}

	st.TopClients, err = s.topClients(ctx, 5)
	if err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) paidRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Raw(`
SELECT COALESCE(SUM(total), 0)
FROM invoices
WHERE status = 'paid' AND issue_date >= ? AND issue_date < ?
`, from, to).Scan(&total).Error
	return total, err
}

// growth is 0 when the previous period had no revenue, never NaN or Inf.
func growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// topClients ranks by paid invoice totals. Rows arrive in client-id
// order and the sort is stable, so ties keep their fetch order.
func (s *Service) topClients(ctx context.Context, limit int) ([]TopClient, error) {
	var rows []TopClient
	err := s.db.WithContext(ctx).Raw(`
SELECT c.id AS client_id, c.name AS name, COALESCE(SUM(i.total), 0) AS total
FROM clients c
JOIN invoices i ON i.client_id = c.id AND i.status = 'paid'
GROUP BY c.id, c.name
ORDER BY c.id
`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// RevenueTrend buckets paid invoices by day for week/month windows and
// by month for the year window. Buckets with no revenue are zero-filled.
func (s *Service) RevenueTrend(ctx context.Context, p Period) ([]TrendPoint, error) {
	now := time.Now()
	start, _, err := periodRange(now, p)
	if err != nil {
		return nil, err
	}
	if p == PeriodToday {
		return nil, ErrInvalidPeriod
	}

	type invoiceRow struct {
		IssueDate time.Time
		Total     float64
	}
	var rows []invoiceRow
	err = s.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("issue_date, total").
		Where("status = ? AND issue_date >= ? AND issue_date < ?", domain.InvoicePaid, start, now).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Bucketing happens here rather than in SQL so sqlite and postgres
	// share one query.
	layout := "2006-01-02"
	if p == PeriodYear {
		layout = "2006-01"
	}

	sums := make(map[string]float64, len(rows))
	for _, r := range rows {
		sums[r.IssueDate.Format(layout)] += r.Total
	}

	var points []TrendPoint
	if p == PeriodYear {
		for t := start; t.Before(now); t = t.AddDate(0, 1, 0) {
			key := t.Format(layout)
			points = append(points, TrendPoint{Bucket: key, Revenue: sums[key]})
		}
	} else {
		for t := start; t.Before(now); t = t.AddDate(0, 0, 1) {
			key := t.Format(layout)
			points = append(points, TrendPoint{Bucket: key, Revenue: sums[key]})
		}
	}
	return points, nil
}
