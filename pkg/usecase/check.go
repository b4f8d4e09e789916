package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

// FieldInput is one field value fed to a batch check, in focus order
type FieldInput struct {
	Field types.FieldID
	Value string
}

// CheckResult is the state of a form after every input lost focus once
type CheckResult struct {
	Errors []model.ErrorEntry
	Values map[types.FieldID]string
}

// Valid reports whether submission would be enabled
func (r *CheckResult) Valid() bool {
	return len(r.Errors) == 0
}

type CheckUseCase struct {
	clock func() time.Time
}

func NewCheckUseCase(clock func() time.Time) *CheckUseCase {
	return &CheckUseCase{clock: clock}
}

// CheckRegistration replays a focus-loss for each input in order on a fresh
// form that is not persisted.
func (uc *CheckUseCase) CheckRegistration(ctx context.Context, inputs []FieldInput) *CheckResult {
	form := model.NewForm(types.NewFormID(), uc.clock())
	surface := discardSurface{}

	for _, in := range inputs {
		applyFocusLoss(ctx, form, surface, in.Field, in.Value)
	}

	return &CheckResult{
		Errors: form.Errors.Entries(),
		Values: form.Values,
	}
}

// discardSurface is used where nothing is rendered
type discardSurface struct{}

func (discardSurface) MarkField(types.FieldID, bool)         {}
func (discardSurface) SetFieldValue(types.FieldID, string)   {}
func (discardSurface) CreateErrorList(string)                {}
func (discardSurface) AppendErrorItem(types.FieldID, string) {}
func (discardSurface) UpdateErrorItem(types.FieldID, string) {}
func (discardSurface) RemoveErrorItem(types.FieldID)         {}
func (discardSurface) DestroyErrorList()                     {}
func (discardSurface) SetSubmitDisabled(bool)                {}
