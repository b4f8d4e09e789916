package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

type formRepository struct {
	mu    sync.RWMutex
	forms map[types.FormID]*model.Form
}

func newFormRepository() *formRepository {
	return &formRepository{
		forms: make(map[types.FormID]*model.Form),
	}
}

func (r *formRepository) Get(ctx context.Context, id types.FormID) (*model.Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrFormNotFound, "form not found in memory", goerr.V(model.FormIDKey, id))
	}
	return form.Clone(), nil
}

func (r *formRepository) Put(ctx context.Context, form *model.Form) error {
	if form == nil {
		return goerr.New("form is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.forms[form.ID] = form.Clone()
	return nil
}

func (r *formRepository) Delete(ctx context.Context, id types.FormID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.forms, id)
	return nil
}

func (r *formRepository) DeleteStale(ctx context.Context, before time.Time, withErrorsOnly bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, form := range r.forms {
		if !form.UpdatedAt.Before(before) {
			continue
		}
		if withErrorsOnly && form.Errors.IsEmpty() {
			continue
		}
		delete(r.forms, id)
		deleted++
	}
	return deleted, nil
}
