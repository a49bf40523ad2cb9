package services

import (
	"context"
	"testing"

	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
)

func TestDashboardStats(t *testing.T) {
	repo := repositories.NewInMemoryMemberRepo()
	ctx := context.Background()

	seed := func(id string, pay member.PaymentStatus, amount float64) {
		if err := repo.Create(ctx, &member.Member{
			ID: member.ID(id), Name: id, Phone: "1", Payment: pay, Amount: amount,
		}); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	seed("a", member.PaymentPaid, 1200)
	seed("b", member.PaymentPaid, 800)
	seed("c", member.PaymentPending, 1000)
	seed("d", member.PaymentOverdue, 1000)

	stats, err := NewDashboardService(repo).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalMembers != 4 {
		t.Fatalf("expected 4 members got %d", stats.TotalMembers)
	}
	if stats.TotalRevenue != 2000 {
		t.Fatalf("expected revenue 2000 got %v", stats.TotalRevenue)
	}
	if stats.PendingPayments != 1 || stats.OverduePayments != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}
