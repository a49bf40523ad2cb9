package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/domain/payment"
)

type PaymentService struct {
	repo     repositories.PaymentRepository
	activity *ActivityService
	now      func() time.Time
}

func NewPaymentService(repo repositories.PaymentRepository, activity *ActivityService) *PaymentService {
	return &PaymentService{repo: repo, activity: activity, now: time.Now}
}

func (s *PaymentService) List(ctx context.Context) ([]*payment.Payment, error) {
	return s.repo.List(ctx)
}

func (s *PaymentService) Create(ctx context.Context, in payment.CreateInput) (*payment.Payment, error) {
	if in.MemberID == "" {
		return nil, fmt.Errorf("%w: memberId is required", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	status := payment.StatusPending
	if in.Status != "" {
		parsed, err := payment.ParseStatus(in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		status = parsed
	}
	method, err := payment.ParseMethod(in.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now().UTC()
	p := &payment.Payment{
		ID:          uuid.NewString(),
		MemberID:    in.MemberID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		PaymentDate: in.PaymentDate,
		Status:      status,
		Method:      method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, fmt.Sprintf("Payment Added for Member %s", p.MemberID), "admin")
	return p, nil
}

func (s *PaymentService) Update(ctx context.Context, id string, in payment.UpdateInput) (*payment.Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
		}
		p.Amount = *in.Amount
	}
	if in.DueDate != nil {
		p.DueDate = in.DueDate
	}
	if in.PaymentDate != nil {
		p.PaymentDate = in.PaymentDate
	}
	if in.Status != nil {
		parsed, err := payment.ParseStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		p.Status = parsed
	}
	if in.Method != nil {
		method, err := payment.ParseMethod(*in.Method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		p.Method = method
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, fmt.Sprintf("Payment Updated for Member %s", p.MemberID), "admin")
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.activity.Record(ctx, fmt.Sprintf("Payment Deleted for Member %s", p.MemberID), "admin")
	return nil
}
