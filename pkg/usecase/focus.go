package usecase

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/utils/logging"
)

const formLockStripes = 64

// formLocks serialises focus handling per form instance
type formLocks struct {
	stripes [formLockStripes]sync.Mutex
}

func (l *formLocks) lock(id types.FormID) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &l.stripes[h.Sum32()%formLockStripes]
	mu.Lock()
	return mu.Unlock
}

// FocusResult is the outcome of one focus-loss event
type FocusResult struct {
	Field   types.FieldID
	Verdict model.Verdict
	Form    *model.Form
}

type FocusUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
	locks *formLocks
}

func NewFocusUseCase(repo interfaces.Repository, clock func() time.Time) *FocusUseCase {
	return &FocusUseCase{
		repo:  repo,
		clock: clock,
		locks: &formLocks{},
	}
}

// LoadForm returns the stored state of id, or a fresh form if none exists
func (uc *FocusUseCase) LoadForm(ctx context.Context, id types.FormID) (*model.Form, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	form, err := uc.repo.Form().Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrFormNotFound) {
			return model.NewForm(id, uc.clock()), nil
		}
		return nil, goerr.Wrap(err, "failed to load form", goerr.V(FormIDKey, id))
	}
	return form, nil
}

// HandleFocusLoss judges value of field, routes the verdict to the form's
// error panel and persists the new state. Surface receives the mutations.
func (uc *FocusUseCase) HandleFocusLoss(ctx context.Context, id types.FormID, field types.FieldID, value string, surface interfaces.Surface) (*FocusResult, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	unlock := uc.locks.lock(id)
	defer unlock()

	form, err := uc.LoadForm(ctx, id)
	if err != nil {
		return nil, err
	}

	verdict := applyFocusLoss(ctx, form, surface, field, value)
	form.UpdatedAt = uc.clock()

	if err := uc.repo.Form().Put(ctx, form); err != nil {
		return nil, goerr.Wrap(err, "failed to save form",
			goerr.V(FormIDKey, id),
			goerr.V(FieldIDKey, field))
	}

	return &FocusResult{
		Field:   field,
		Verdict: verdict,
		Form:    form,
	}, nil
}

// applyFocusLoss runs one validation pass against an already loaded form
func applyFocusLoss(ctx context.Context, form *model.Form, surface interfaces.Surface, field types.FieldID, value string) model.Verdict {
	logger := logging.From(ctx)

	verdict := model.Evaluate(field, value)
	panel := NewErrorPanel(form, surface)
	form.SetValue(field, value)

	if !verdict.Valid {
		if verdict.Message == "" {
			logger.Warn("invalid verdict without message",
				"form_id", form.ID,
				"field", field,
				"rule", model.Classify(field))
		}
		logger.Debug("field rejected",
			"form_id", form.ID,
			"field", field,
			"value", types.FieldValue(value),
			"message", verdict.Message)
		panel.SetError(field, verdict.Message)
		return verdict
	}

	panel.ClearError(field)
	if verdict.Rewrite {
		surface.SetFieldValue(field, verdict.Normalized)
		form.SetValue(field, verdict.Normalized)
	}
	logger.Debug("field accepted",
		"form_id", form.ID,
		"field", field,
		"value", types.FieldValue(form.Value(field)))

	return verdict
}

// SubmitResult is the outcome of a submission attempt
type SubmitResult struct {
	Accepted bool
	Form     *model.Form
}

// SubmitForm re-runs focus-loss handling over every known field using values
// and accepts the registration only if no error remains. Accepted forms are
// removed from storage.
func (uc *FocusUseCase) SubmitForm(ctx context.Context, id types.FormID, values map[types.FieldID]string, surface interfaces.Surface) (*SubmitResult, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	unlock := uc.locks.lock(id)
	defer unlock()

	form, err := uc.LoadForm(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, field := range types.AllFieldIDs() {
		applyFocusLoss(ctx, form, surface, field, values[field])
	}
	form.UpdatedAt = uc.clock()

	if !form.Errors.IsEmpty() {
		if err := uc.repo.Form().Put(ctx, form); err != nil {
			return nil, goerr.Wrap(err, "failed to save form", goerr.V(FormIDKey, id))
		}
		return &SubmitResult{Form: form}, nil
	}

	if err := uc.repo.Form().Delete(ctx, id); err != nil {
		return nil, goerr.Wrap(err, "failed to delete submitted form", goerr.V(FormIDKey, id))
	}
	logging.From(ctx).Info("registration accepted", "form_id", id)

	return &SubmitResult{Accepted: true, Form: form}, nil
}
