package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/domain/member"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// MemberRepository is the storage collaborator for the member ledger. The
// reconciler depends only on MarkOverdue and ListOverdue; it never embeds a
// query language.
type MemberRepository interface {
	Create(ctx context.Context, m *member.Member) error
	List(ctx context.Context) ([]*member.Member, error)
	Get(ctx context.Context, id member.ID) (*member.Member, error)
	Update(ctx context.Context, m *member.Member) error
	Delete(ctx context.Context, id member.ID) (*member.Member, error)

	// MarkOverdue flips payment to Overdue for every member whose due date
	// is set and earlier than now and whose payment is not Paid. Returns the
	// number of members changed. Idempotent.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	ListOverdue(ctx context.Context) ([]*member.Member, error)

	CountByPayment(ctx context.Context, status member.PaymentStatus) (int64, error)
	SumPaidAmount(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int64, error)
}

type inMemoryMemberRepo struct {
	mu      sync.RWMutex
	members map[member.ID]*member.Member
}

func NewInMemoryMemberRepo() MemberRepository {
	return &inMemoryMemberRepo{members: make(map[member.ID]*member.Member)}
}

func (r *inMemoryMemberRepo) Create(ctx context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.members[m.ID] = &cp
	return nil
}

func (r *inMemoryMemberRepo) List(ctx context.Context) ([]*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*member.Member, 0, len(r.members))
	for _, m := range r.members {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryMemberRepo) Get(ctx context.Context, id member.ID) (*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *inMemoryMemberRepo) Update(ctx context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return ErrMemberNotFound
	}
	cp := *m
	r.members[m.ID] = &cp
	return nil
}

func (r *inMemoryMemberRepo) Delete(ctx context.Context, id member.ID) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	delete(r.members, id)
	cp := *m
	return &cp, nil
}

func (r *inMemoryMemberRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, m := range r.members {
		if m.Overdue(now) && m.Payment != member.PaymentOverdue {
			m.Payment = member.PaymentOverdue
			m.UpdatedAt = now
			changed++
		}
	}
	return changed, nil
}

func (r *inMemoryMemberRepo) ListOverdue(ctx context.Context) ([]*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*member.Member
	for _, m := range r.members {
		if m.Payment == member.PaymentOverdue {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryMemberRepo) CountByPayment(ctx context.Context, status member.PaymentStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, m := range r.members {
		if m.Payment == status {
			n++
		}
	}
	return n, nil
}

func (r *inMemoryMemberRepo) SumPaidAmount(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, m := range r.members {
		if m.Payment == member.PaymentPaid {
			total += m.Amount
		}
	}
	return total, nil
}

func (r *inMemoryMemberRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.members)), nil
}
