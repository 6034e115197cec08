package domain

import (
	"context"

	"github.com/growthaccelerator/domainctl/domain/model"
)

// BindingRunRepository stores and retrieves binding workflow runs.
type BindingRunRepository interface {
	Create(ctx context.Context, r *model.BindingRun) error
	Get(ctx context.Context, id string) (*model.BindingRun, error)
	// List returns runs ordered most recent first. A non-positive limit
	// returns all runs.
	List(ctx context.Context, limit int) ([]*model.BindingRun, error)
}
