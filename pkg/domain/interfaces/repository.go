package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Form() FormRepository
	Close() error
}

// FormRepository stores per-form error panel state
type FormRepository interface {
	// Get retrieves a form by ID. Returns model.ErrFormNotFound if absent.
	Get(ctx context.Context, id types.FormID) (*model.Form, error)

	// Put creates or replaces a form
	Put(ctx context.Context, form *model.Form) error

	// Delete removes a form. Deleting a missing form is not an error.
	Delete(ctx context.Context, id types.FormID) error

	// DeleteStale removes forms not updated since before. When withErrorsOnly
	// is set, only forms with outstanding errors are removed.
	DeleteStale(ctx context.Context, before time.Time, withErrorsOnly bool) (int, error)
}
