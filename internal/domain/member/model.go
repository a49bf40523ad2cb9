package member

import "time"

type ID string

// PaymentStatus is the billing axis of a member. It is independent of the
// Active/Inactive membership status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
)

// MemberStatus tracks whether a member is currently enrolled.
type MemberStatus string

const (
	StatusActive   MemberStatus = "Active"
	StatusInactive MemberStatus = "Inactive"
)

// Billing plan tags. Anything else keeps the caller-supplied due date.
const (
	PlanMonthly   = "Monthly"
	PlanQuarterly = "Quarterly"
	PlanYearly    = "Yearly"
)

const (
	DefaultAmount = 1000
	DefaultMethod = "Cash"
)

type Member struct {
	ID          ID            `json:"id" bson:"_id" gorm:"primaryKey"`
	Name        string        `json:"name" bson:"name" gorm:"not null"`
	Phone       string        `json:"phone" bson:"phone" gorm:"not null"`
	Email       string        `json:"email,omitempty" bson:"email,omitempty"`
	Plan        string        `json:"plan,omitempty" bson:"plan,omitempty"`
	Status      MemberStatus  `json:"status" bson:"status" gorm:"default:Active"`
	StartDate   *time.Time    `json:"startDate,omitempty" bson:"startDate,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty" bson:"dueDate,omitempty" gorm:"index"`
	Amount      float64       `json:"amount" bson:"amount"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	Payment     PaymentStatus `json:"payment" bson:"payment" gorm:"index"`
	Method      string        `json:"method" bson:"method"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type CreateMemberInput struct {
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate"`
	DueDate   *time.Time `json:"dueDate"`
	Amount    *float64   `json:"amount"`
	Payment   string     `json:"payment"`
	Method    string     `json:"method"`
}

// UpdateMemberInput carries a partial update; nil pointers leave the stored
// value untouched.
type UpdateMemberInput struct {
	Name      *string    `json:"name"`
	Phone     *string    `json:"phone"`
	Email     *string    `json:"email"`
	Plan      *string    `json:"plan"`
	Status    *string    `json:"status"`
	StartDate *time.Time `json:"startDate"`
	DueDate   *time.Time `json:"dueDate"`
	Amount    *float64   `json:"amount"`
	Payment   *string    `json:"payment"`
	Method    *string    `json:"method"`
}

type UpdatePaymentInput struct {
	Payment string `json:"payment"`
}

// DueDateFor derives the next due date from the start date and the plan tag.
// Unrecognized plans return ok=false so the caller keeps whatever due date it
// already has.
func DueDateFor(plan string, start time.Time) (time.Time, bool) {
	switch plan {
	case PlanMonthly:
		return start.AddDate(0, 0, 30), true
	case PlanQuarterly:
		return start.AddDate(0, 0, 90), true
	case PlanYearly:
		return start.AddDate(0, 0, 365), true
	default:
		return time.Time{}, false
	}
}
