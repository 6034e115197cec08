// Package memory provides a thread-safe in-memory run repository used by
// tests and by invocations that opt out of persistence.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/growthaccelerator/domainctl/domain"
	"github.com/growthaccelerator/domainctl/domain/model"
)

// BindingRunRepository is a thread-safe in-memory implementation.
type BindingRunRepository struct {
	mu    sync.RWMutex
	items map[string]*model.BindingRun
}

func NewBindingRunRepository() *BindingRunRepository {
	return &BindingRunRepository{items: make(map[string]*model.BindingRun)}
}

func (r *BindingRunRepository) Create(_ context.Context, run *model.BindingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.ID == "" {
		run.ID = "run-" + uuid.NewString()
	}
	cp := *run
	r.items[run.ID] = &cp
	return nil
}

func (r *BindingRunRepository) Get(_ context.Context, id string) (*model.BindingRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.items[id]
	if !ok {
		return nil, model.ErrRunNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *BindingRunRepository) List(_ context.Context, limit int) ([]*model.BindingRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.BindingRun, 0, len(r.items))
	for _, run := range r.items {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ domain.BindingRunRepository = (*BindingRunRepository)(nil)
