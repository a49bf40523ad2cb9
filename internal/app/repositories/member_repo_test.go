package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/domain/member"
)

func seedMember(t *testing.T, repo MemberRepository, id string, due *time.Time, pay member.PaymentStatus, amount float64) {
	t.Helper()
	err := repo.Create(context.Background(), &member.Member{
		ID:      member.ID(id),
		Name:    "Member " + id,
		Phone:   "9876543210",
		Status:  member.StatusActive,
		Payment: pay,
		DueDate: due,
		Amount:  amount,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestInMemoryMemberRepoCRUD(t *testing.T) {
	repo := NewInMemoryMemberRepo()
	ctx := context.Background()

	seedMember(t, repo, "m1", nil, member.PaymentPending, 1000)

	got, err := repo.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Member m1" {
		t.Fatalf("unexpected name %q", got.Name)
	}

	// Mutating the returned copy must not leak into the store.
	got.Name = "mutated"
	again, _ := repo.Get(ctx, "m1")
	if again.Name != "Member m1" {
		t.Fatalf("repo returned a shared pointer")
	}

	got.Name = "Renamed"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ = repo.Get(ctx, "m1")
	if again.Name != "Renamed" {
		t.Fatalf("update not persisted")
	}

	deleted, err := repo.Delete(ctx, "m1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != "m1" {
		t.Fatalf("delete should echo the removed member")
	}
	if _, err := repo.Get(ctx, "m1"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound got %v", err)
	}
	if _, err := repo.Delete(ctx, "m1"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound on double delete got %v", err)
	}
}

func TestMarkOverdue(t *testing.T) {
	repo := NewInMemoryMemberRepo()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	seedMember(t, repo, "late-pending", &past, member.PaymentPending, 1000)
	seedMember(t, repo, "late-paid", &past, member.PaymentPaid, 1000)
	seedMember(t, repo, "on-time", &future, member.PaymentPending, 1000)
	seedMember(t, repo, "no-due", nil, member.PaymentPending, 1000)

	changed, err := repo.MarkOverdue(ctx, now)
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 member flagged, got %d", changed)
	}

	m, _ := repo.Get(ctx, "late-pending")
	if m.Payment != member.PaymentOverdue {
		t.Fatalf("expected Overdue got %q", m.Payment)
	}
	paid, _ := repo.Get(ctx, "late-paid")
	if paid.Payment != member.PaymentPaid {
		t.Fatalf("paid member must not be touched, got %q", paid.Payment)
	}

	// Second pass is a no-op.
	changed, err = repo.MarkOverdue(ctx, now)
	if err != nil {
		t.Fatalf("second mark overdue: %v", err)
	}
	if changed != 0 {
		t.Fatalf("expected idempotent re-run, got %d changes", changed)
	}
}

func TestListOverdue(t *testing.T) {
	repo := NewInMemoryMemberRepo()
	ctx := context.Background()
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -1)

	seedMember(t, repo, "a", &past, member.PaymentPending, 1000)
	seedMember(t, repo, "b", &past, member.PaymentPaid, 1000)

	if _, err := repo.MarkOverdue(ctx, now); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	overdue, err := repo.ListOverdue(ctx)
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != "a" {
		t.Fatalf("expected only member a overdue, got %v", overdue)
	}
}

func TestAggregates(t *testing.T) {
	repo := NewInMemoryMemberRepo()
	ctx := context.Background()

	seedMember(t, repo, "p1", nil, member.PaymentPaid, 1200)
	seedMember(t, repo, "p2", nil, member.PaymentPaid, 800)
	seedMember(t, repo, "p3", nil, member.PaymentPending, 1000)
	seedMember(t, repo, "p4", nil, member.PaymentOverdue, 1000)

	total, err := repo.Count(ctx)
	if err != nil || total != 4 {
		t.Fatalf("expected count 4 got %d err=%v", total, err)
	}
	revenue, err := repo.SumPaidAmount(ctx)
	if err != nil || revenue != 2000 {
		t.Fatalf("expected revenue 2000 got %v err=%v", revenue, err)
	}
	pending, _ := repo.CountByPayment(ctx, member.PaymentPending)
	if pending != 1 {
		t.Fatalf("expected 1 pending got %d", pending)
	}
	overdue, _ := repo.CountByPayment(ctx, member.PaymentOverdue)
	if overdue != 1 {
		t.Fatalf("expected 1 overdue got %d", overdue)
	}
}
