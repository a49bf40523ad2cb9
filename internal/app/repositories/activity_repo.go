package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/gymtrack/gymtrack-api/internal/domain/activity"
)

// ActivityRepository is append-only: entries are written once and only read
// back for display, newest first.
type ActivityRepository interface {
	Append(ctx context.Context, e *activity.Entry) error
	List(ctx context.Context) ([]*activity.Entry, error)
}

type inMemoryActivityRepo struct {
	mu      sync.RWMutex
	entries []*activity.Entry
}

func NewInMemoryActivityRepo() ActivityRepository {
	return &inMemoryActivityRepo{}
}

func (r *inMemoryActivityRepo) Append(ctx context.Context, e *activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *inMemoryActivityRepo) List(ctx context.Context) ([]*activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*activity.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
