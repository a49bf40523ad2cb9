package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/gymtrack/gymtrack-api/internal/domain/payment"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	List(ctx context.Context) ([]*payment.Payment, error)
	Get(ctx context.Context, id string) (*payment.Payment, error)
	Update(ctx context.Context, p *payment.Payment) error
	Delete(ctx context.Context, id string) (*payment.Payment, error)
}

type inMemoryPaymentRepo struct {
	mu       sync.RWMutex
	payments map[string]*payment.Payment
}

func NewInMemoryPaymentRepo() PaymentRepository {
	return &inMemoryPaymentRepo{payments: make(map[string]*payment.Payment)}
}

func (r *inMemoryPaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) List(ctx context.Context) ([]*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*payment.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryPaymentRepo) Get(ctx context.Context, id string) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPaymentRepo) Update(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return ErrPaymentNotFound
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *inMemoryPaymentRepo) Delete(ctx context.Context, id string) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	delete(r.payments, id)
	cp := *p
	return &cp, nil
}
