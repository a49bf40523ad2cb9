package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/config"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	"github.com/gymtrack/gymtrack-api/internal/platform/whatsapp"
	"github.com/gymtrack/gymtrack-api/pkg/journal"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// ErrAlreadyPaid is returned by the manual trigger when the member has
// nothing outstanding; no gateway call is made.
var ErrAlreadyPaid = errors.New("member has already paid")

type DispatchOutcome string

const (
	OutcomeSent    DispatchOutcome = "sent"
	OutcomeSkipped DispatchOutcome = "skipped"
	OutcomeFailed  DispatchOutcome = "failed"
)

type DispatchResult struct {
	MemberID member.ID       `json:"memberId"`
	Name     string          `json:"name"`
	Outcome  DispatchOutcome `json:"outcome"`
	Reason   string          `json:"reason,omitempty"`
}

// BatchReport aggregates a batch run. The batch itself always succeeds; each
// member's failure is recorded rather than propagated.
type BatchReport struct {
	Sent    int              `json:"sent"`
	Skipped int              `json:"skipped"`
	Failed  int              `json:"failed"`
	Results []DispatchResult `json:"results"`
}

// ReminderService formats payment reminders and relays them to the WhatsApp
// gateway. Delivery is at-most-once: no retry, no backoff, no confirmation.
type ReminderService struct {
	repo    repositories.MemberRepository
	gateway whatsapp.Gateway
	journal *journal.Writer
	cfg     config.GymConfig
	log     waLog.Logger
}

func NewReminderService(repo repositories.MemberRepository, gateway whatsapp.Gateway, jw *journal.Writer, cfg config.GymConfig, log waLog.Logger) *ReminderService {
	if gateway == nil {
		gateway = whatsapp.NewDisabledGateway()
	}
	return &ReminderService{repo: repo, gateway: gateway, journal: jw, cfg: cfg, log: log}
}

// Remind is the manual single-member trigger. It refuses Paid members and
// surfaces gateway errors so the handler can report the outcome.
func (s *ReminderService) Remind(ctx context.Context, id member.ID, override string) error {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.Payment == member.PaymentPaid {
		return ErrAlreadyPaid
	}

	body := override
	if body == "" {
		body = s.buildMessage(m, false)
	}
	return s.send(ctx, m, body)
}

// RemindOverdue dispatches to every Overdue member, isolating failures per
// member. It never returns an error: background collaborator failures are
// logged, recorded in the journal and swallowed.
func (s *ReminderService) RemindOverdue(ctx context.Context, trigger string) BatchReport {
	var report BatchReport

	members, err := s.repo.ListOverdue(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Warnf("overdue listing failed, skipping reminder batch: %v", err)
		}
		return report
	}

	records := make([]journal.Record, 0, len(members))
	for _, m := range members {
		result := DispatchResult{MemberID: m.ID, Name: m.Name, Outcome: OutcomeSent}
		if err := s.send(ctx, m, s.buildMessage(m, true)); err != nil {
			result.Outcome = OutcomeFailed
			result.Reason = err.Error()
			if s.log != nil {
				s.log.Warnf("reminder to %s failed: %v", m.Name, err)
			}
		}
		report.Results = append(report.Results, result)
		switch result.Outcome {
		case OutcomeSent:
			report.Sent++
		case OutcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
		records = append(records, journal.Record{
			MemberID: string(m.ID),
			Name:     m.Name,
			Phone:    m.Phone,
			Outcome:  string(result.Outcome),
			Reason:   result.Reason,
		})
	}

	if err := s.journal.Write(trigger, records); err != nil && s.log != nil {
		s.log.Warnf("reminder journal write failed: %v", err)
	}
	if s.log != nil && len(members) > 0 {
		s.log.Infof("reminder batch trigger=%s sent=%d failed=%d", trigger, report.Sent, report.Failed)
	}
	return report
}

func (s *ReminderService) send(ctx context.Context, m *member.Member, body string) error {
	phone := whatsapp.NormalizePhone(s.cfg.CountryCode, m.Phone)
	return s.gateway.SendText(ctx, phone, body)
}

func (s *ReminderService) buildMessage(m *member.Member, auto bool) string {
	due := "N/A"
	if m.DueDate != nil {
		due = m.DueDate.Format("Mon Jan 2 2006")
	}
	contact := s.cfg.ContactInfo
	if contact == "" {
		contact = "the front desk"
	}
	gym := s.cfg.Name
	if gym == "" {
		gym = "GymTrack"
	}

	if auto {
		return fmt.Sprintf(
			"Hello %s, 👋\n\nThis is an automatic reminder from *%s* 🏋️‍♂️\n\nYour gym membership payment of %s%.0f is *%s*.\n\nPlease clear your dues soon to continue enjoying gym facilities.\n\nFor help, contact us at %s.",
			m.Name, gym, s.cfg.Currency, m.Amount, m.Payment, contact,
		)
	}
	return fmt.Sprintf(
		"Hello %s, 👋\n\nThis is a reminder from *%s* 🏋️‍♂️\n\nYour membership payment of %s%.0f is currently *%s*.\nYour due date was: %s.\n\n👉 Please clear your dues to continue enjoying gym facilities.\n\nFor any help, contact us at %s.",
		m.Name, gym, s.cfg.Currency, m.Amount, m.Payment, due, contact,
	)
}
