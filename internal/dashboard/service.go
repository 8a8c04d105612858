package dashboard

import (
	"context"

	"github.com/Abba-Jere11/properties-sub001/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard
type Repository interface {
	ApplicationRows(ctx context.Context) ([]ApplicationRow, error)
	PaymentRows(ctx context.Context) ([]PaymentRow, error)
	CountReceipts(ctx context.Context) (int, error)
	EstateRows(ctx context.Context) ([]EstateRow, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats assembles the admin dashboard in four fetches, one per source table.
// The first fetch error aborts the whole aggregation.
func (s *Service) Stats(ctx context.Context, caller auth.Caller) (*Stats, error) {
	if !caller.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	apps, err := s.repo.ApplicationRows(ctx)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.PaymentRows(ctx)
	if err != nil {
		return nil, err
	}

	receipts, err := s.repo.CountReceipts(ctx)
	if err != nil {
		return nil, err
	}

	estates, err := s.repo.EstateRows(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalApplications: len(apps),
		ReceiptsIssued:    receipts,
	}

	bucketIndex := make(map[string]int)

	for _, a := range apps {
		switch a.Status {
		case "pending":
			stats.PendingApplications++
		case "approved":
			stats.ApprovedApplications++
		case "rejected":
			stats.RejectedApplications++
		}

		month := a.CreatedAt.Month().String()

		i, ok := bucketIndex[month]
		if !ok {
			i = len(stats.MonthlyApplications)
			stats.MonthlyApplications = append(stats.MonthlyApplications, MonthBucket{Month: month})
			bucketIndex[month] = i
		}

		stats.MonthlyApplications[i].Total++
		if a.Status == "approved" {
			stats.MonthlyApplications[i].Approved++
		}
	}

	for _, p := range payments {
		if p.Status == "completed" {
			stats.TotalSales += p.Amount
		}
	}

	for _, e := range estates {
		stats.EstateAllocations = append(stats.EstateAllocations, EstateAllocation{
			Name:      e.Name,
			Total:     e.Total,
			Available: e.Available,
			Sold:      e.Sold,
			Booked:    e.Total - e.Available - e.Sold,
		})
	}

	stats.EstimatedPaymentProgress = estimateProgress(stats.ApprovedApplications)

	return stats, nil
}

// estimateProgress splits the approved count 30/40/30 across payment stages.
// The split is a display approximation carried over from the original portal,
// not a sum over payment records.
func estimateProgress(approved int) PaymentProgress {
	pending := approved * 30 / 100
	full := approved * 30 / 100

	return PaymentProgress{
		Pending: pending,
		Full:    full,
		Partial: approved - pending - full,
	}
}
