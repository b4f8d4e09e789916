package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/repository/memory"
	"github.com/secmon-lab/regform/pkg/usecase"
)

func TestPruneUseCase_PruneForms(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*memory.Memory, *time.Time) {
		t.Helper()
		repo := memory.New()
		current := base
		uc := usecase.New(repo, usecase.WithClock(func() time.Time { return current }))

		// an old form with an error
		_, err := uc.Focus.HandleFocusLoss(ctx, types.NewFormID(), types.FieldEmail, "", usecase.DiscardSurface{})
		gt.NoError(t, err).Required()
		// an old clean form
		_, err = uc.Focus.HandleFocusLoss(ctx, types.NewFormID(), types.FieldEmail, "a@b.co", usecase.DiscardSurface{})
		gt.NoError(t, err).Required()

		current = base.Add(48 * time.Hour)
		// a recent form with an error
		_, err = uc.Focus.HandleFocusLoss(ctx, types.NewFormID(), types.FieldPhone, "1", usecase.DiscardSurface{})
		gt.NoError(t, err).Required()

		return repo, &current
	}

	t.Run("deletes only stale forms", func(t *testing.T) {
		repo, current := setup(t)
		uc := usecase.New(repo, usecase.WithClock(func() time.Time { return *current }))

		n, err := uc.Prune.PruneForms(ctx, 24*time.Hour, false)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(2)
	})

	t.Run("with errors only keeps clean stale forms", func(t *testing.T) {
		repo, current := setup(t)
		uc := usecase.New(repo, usecase.WithClock(func() time.Time { return *current }))

		n, err := uc.Prune.PruneForms(ctx, 24*time.Hour, true)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)

		n, err = uc.Prune.PruneForms(ctx, 24*time.Hour, false)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)
	})

	t.Run("non-positive age is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Prune.PruneForms(ctx, 0, false)
		gt.Error(t, err).Is(usecase.ErrInvalidPruneAge)
	})
}
