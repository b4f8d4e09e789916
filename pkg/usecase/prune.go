package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/utils/logging"
)

type PruneUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

func NewPruneUseCase(repo interfaces.Repository, clock func() time.Time) *PruneUseCase {
	return &PruneUseCase{
		repo:  repo,
		clock: clock,
	}
}

// PruneForms deletes form state untouched for longer than age
func (uc *PruneUseCase) PruneForms(ctx context.Context, age time.Duration, withErrorsOnly bool) (int, error) {
	if age <= 0 {
		return 0, goerr.Wrap(ErrInvalidPruneAge, "invalid prune age", goerr.V("age", age))
	}

	before := uc.clock().Add(-age)
	n, err := uc.repo.Form().DeleteStale(ctx, before, withErrorsOnly)
	if err != nil {
		return n, goerr.Wrap(err, "failed to prune forms", goerr.V("before", before))
	}

	logging.From(ctx).Info("pruned stale forms",
		"deleted", n,
		"before", before,
		"with_errors_only", withErrorsOnly)
	return n, nil
}
