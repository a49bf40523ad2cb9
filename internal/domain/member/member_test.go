package member

import (
	"testing"
	"time"
)

func TestDueDateFor(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		plan string
		want time.Time
		ok   bool
	}{
		{PlanMonthly, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), true},
		{PlanQuarterly, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), true},
		{PlanYearly, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"Weekly", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := DueDateFor(c.plan, start)
		if ok != c.ok {
			t.Fatalf("plan %q: expected ok=%v got %v", c.plan, c.ok, ok)
		}
		if ok && !got.Equal(c.want) {
			t.Fatalf("plan %q: expected %s got %s", c.plan, c.want, got)
		}
	}
}

func TestParsePaymentStatusCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"paid", "PAID", " Paid "} {
		got, err := ParsePaymentStatus(raw)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if got != PaymentPaid {
			t.Fatalf("expected Paid got %q", got)
		}
	}

	if _, err := ParsePaymentStatus("cancelled"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if _, err := ParsePaymentStatus(""); err == nil {
		t.Fatalf("expected error for empty status")
	}
}

func TestApplyPaymentPairing(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := &Member{Payment: PaymentPending}

	m.ApplyPayment(PaymentPaid, now)
	if m.PaymentDate == nil || !m.PaymentDate.Equal(now) {
		t.Fatalf("expected paymentDate stamped with now, got %v", m.PaymentDate)
	}

	m.ApplyPayment(PaymentOverdue, now.Add(time.Hour))
	if m.PaymentDate != nil {
		t.Fatalf("expected paymentDate cleared on non-Paid transition, got %v", m.PaymentDate)
	}
	if m.Payment != PaymentOverdue {
		t.Fatalf("expected Overdue got %q", m.Payment)
	}
}

func TestOverduePredicate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	if (&Member{DueDate: &past, Payment: PaymentPending}).Overdue(now) != true {
		t.Fatalf("past due pending member should be overdue")
	}
	if (&Member{DueDate: &past, Payment: PaymentPaid}).Overdue(now) {
		t.Fatalf("paid member must never be overdue")
	}
	if (&Member{DueDate: &future, Payment: PaymentPending}).Overdue(now) {
		t.Fatalf("future due date should not be overdue")
	}
	if (&Member{Payment: PaymentPending}).Overdue(now) {
		t.Fatalf("member without due date should not be overdue")
	}
}
