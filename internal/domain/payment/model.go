package payment

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Accepted payment channels for standalone payment records.
const (
	MethodCash = "cash"
	MethodCard = "card"
	MethodUPI  = "upi"
)

// Payment is a standalone payment record tied to a member, kept in its own
// collection next to the member ledger.
type Payment struct {
	ID          string     `json:"id" bson:"_id" gorm:"primaryKey"`
	MemberID    string     `json:"memberId" bson:"memberId" gorm:"index;not null"`
	Amount      float64    `json:"amount" bson:"amount"`
	DueDate     *time.Time `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	Status      Status     `json:"status" bson:"status"`
	Method      string     `json:"method" bson:"method"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type CreateInput struct {
	MemberID    string     `json:"memberId"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"dueDate"`
	PaymentDate *time.Time `json:"paymentDate"`
	Status      string     `json:"status"`
	Method      string     `json:"method"`
}

type UpdateInput struct {
	Amount      *float64   `json:"amount"`
	DueDate     *time.Time `json:"dueDate"`
	PaymentDate *time.Time `json:"paymentDate"`
	Status      *string    `json:"status"`
	Method      *string    `json:"method"`
}

func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "paid":
		return StatusPaid, nil
	case "overdue":
		return StatusOverdue, nil
	default:
		return "", fmt.Errorf("invalid payment record status: %q", raw)
	}
}

func ParseMethod(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", MethodCash:
		return MethodCash, nil
	case MethodCard:
		return MethodCard, nil
	case MethodUPI:
		return MethodUPI, nil
	default:
		return "", fmt.Errorf("invalid payment method: %q", raw)
	}
}
