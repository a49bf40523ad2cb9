package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/config"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
)

// ErrValidation marks caller mistakes (bad field, unknown status); handlers
// translate it to a 400.
var ErrValidation = errors.New("validation error")

type MemberService struct {
	repo     repositories.MemberRepository
	activity *ActivityService
	recon    *Reconciler
	cfg      config.GymConfig
	now      func() time.Time
}

func NewMemberService(repo repositories.MemberRepository, activity *ActivityService, recon *Reconciler, cfg config.GymConfig) *MemberService {
	if cfg.DefaultAmount <= 0 {
		cfg.DefaultAmount = member.DefaultAmount
	}
	return &MemberService{repo: repo, activity: activity, recon: recon, cfg: cfg, now: time.Now}
}

// List reconciles overdue statuses first so reads are always fresh. A
// reconciliation failure is advisory and never fails the read.
func (s *MemberService) List(ctx context.Context) ([]*member.Member, error) {
	s.recon.RunQuiet(ctx)
	return s.repo.List(ctx)
}

func (s *MemberService) Get(ctx context.Context, id member.ID) (*member.Member, error) {
	return s.repo.Get(ctx, id)
}

func (s *MemberService) Create(ctx context.Context, in member.CreateMemberInput) (*member.Member, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}

	now := s.now().UTC()

	status := member.StatusActive
	if in.Status != "" {
		parsed, err := member.ParseMemberStatus(in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		status = parsed
	}

	paymentStatus := member.PaymentPending
	if in.Payment != "" {
		parsed, err := member.ParsePaymentStatus(in.Payment)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		paymentStatus = parsed
	}

	startDate := now
	if in.StartDate != nil {
		startDate = in.StartDate.UTC()
	}

	dueDate := in.DueDate
	if dueDate == nil {
		if derived, ok := member.DueDateFor(in.Plan, startDate); ok {
			dueDate = &derived
		}
	}

	amount := s.cfg.DefaultAmount
	if in.Amount != nil {
		amount = *in.Amount
	}

	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = member.DefaultMethod
	}

	m := &member.Member{
		ID:        member.ID(uuid.NewString()),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Plan:      strings.TrimSpace(in.Plan),
		Status:    status,
		StartDate: &startDate,
		DueDate:   dueDate,
		Amount:    amount,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.ApplyPayment(paymentStatus, now)
	m.CreatedAt = now

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, fmt.Sprintf("Member Added: %s", m.Name), "admin")
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, id member.ID, in member.UpdateMemberInput) (*member.Member, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	planChanged := false

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		if strings.TrimSpace(*in.Phone) == "" {
			return nil, fmt.Errorf("%w: phone cannot be empty", ErrValidation)
		}
		m.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		m.Email = strings.TrimSpace(*in.Email)
	}
	if in.Plan != nil {
		m.Plan = strings.TrimSpace(*in.Plan)
		planChanged = true
	}
	if in.Status != nil {
		parsed, err := member.ParseMemberStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		m.Status = parsed
	}
	if in.StartDate != nil {
		start := in.StartDate.UTC()
		m.StartDate = &start
		planChanged = true
	}
	if in.Amount != nil {
		m.Amount = *in.Amount
	}
	if in.Method != nil {
		m.Method = strings.TrimSpace(*in.Method)
	}

	switch {
	case in.DueDate != nil:
		due := in.DueDate.UTC()
		m.DueDate = &due
	case planChanged && m.StartDate != nil:
		if derived, ok := member.DueDateFor(m.Plan, *m.StartDate); ok {
			m.DueDate = &derived
		}
	}

	if in.Payment != nil {
		parsed, err := member.ParsePaymentStatus(*in.Payment)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		m.ApplyPayment(parsed, now)
	}
	m.UpdatedAt = now

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, fmt.Sprintf("Member Updated: %s", m.Name), "admin")
	return m, nil
}

// UpdatePayment performs the administrative payment transition. Input status
// is normalized case-insensitively; Paid stamps the payment date and every
// other status clears it.
func (s *MemberService) UpdatePayment(ctx context.Context, id member.ID, rawStatus string) (*member.Member, error) {
	status, err := member.ParsePaymentStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	m.ApplyPayment(status, s.now().UTC())
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberService) Delete(ctx context.Context, id member.ID) (*member.Member, error) {
	m, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, fmt.Sprintf("Member Deleted: %s", m.Name), "admin")
	return m, nil
}
