package member

import (
	"fmt"
	"strings"
	"time"
)

// ParsePaymentStatus accepts any casing of the canonical names ("PAID",
// "overdue", ...) and returns the canonical value.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return PaymentPending, nil
	case "paid":
		return PaymentPaid, nil
	case "overdue":
		return PaymentOverdue, nil
	default:
		return "", fmt.Errorf("invalid payment status: %q", raw)
	}
}

func ParseMemberStatus(raw string) (MemberStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("invalid member status: %q", raw)
	}
}

// ApplyPayment performs the administrative payment transition on m, keeping
// the payment/paymentDate pairing intact: Paid stamps the payment date,
// everything else clears it.
func (m *Member) ApplyPayment(status PaymentStatus, now time.Time) {
	m.Payment = status
	if status == PaymentPaid {
		paidAt := now
		m.PaymentDate = &paidAt
	} else {
		m.PaymentDate = nil
	}
	m.UpdatedAt = now
}

// Overdue reports whether the member should be flagged Overdue at the given
// time. Paid members are never overdue regardless of their due date.
func (m *Member) Overdue(now time.Time) bool {
	return m.DueDate != nil && m.DueDate.Before(now) && m.Payment != PaymentPaid
}
