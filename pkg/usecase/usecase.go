package usecase

import (
	"time"

	"github.com/secmon-lab/regform/pkg/domain/interfaces"
)

type UseCases struct {
	repo  interfaces.Repository
	clock func() time.Time
	Focus *FocusUseCase
	Check *CheckUseCase
	Prune *PruneUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source used for form timestamps
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Focus = NewFocusUseCase(repo, uc.clock)
	uc.Check = NewCheckUseCase(uc.clock)
	uc.Prune = NewPruneUseCase(repo, uc.clock)

	return uc
}
