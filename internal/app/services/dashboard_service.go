package services

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
)

type DashboardStats struct {
	TotalMembers    int64   `json:"totalMembers"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingPayments int64   `json:"pendingPayments"`
	OverduePayments int64   `json:"overduePayments"`
}

type DashboardService struct {
	repo repositories.MemberRepository
}

func NewDashboardService(repo repositories.MemberRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats summarizes the ledger. Revenue is the sum of amounts over paid
// members.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.SumPaidAmount(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountByPayment(ctx, member.PaymentPending)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.CountByPayment(ctx, member.PaymentOverdue)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalMembers:    total,
		TotalRevenue:    revenue,
		PendingPayments: pending,
		OverduePayments: overdue,
	}, nil
}
