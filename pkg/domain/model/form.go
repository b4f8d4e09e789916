package model

import (
	"maps"
	"time"

	"github.com/secmon-lab/regform/pkg/domain/types"
)

// Form is the state of one rendered registration form. The error list is
// owned here rather than discovered from the page.
type Form struct {
	ID        types.FormID
	Errors    ErrorList
	Values    map[types.FieldID]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewForm returns an empty form state
func NewForm(id types.FormID, now time.Time) *Form {
	return &Form{
		ID:        id,
		Values:    make(map[types.FieldID]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SubmitDisabled is true iff the error list is non-empty
func (f *Form) SubmitDisabled() bool {
	return !f.Errors.IsEmpty()
}

// HasErrorList reports whether the error list is currently shown
func (f *Form) HasErrorList() bool {
	return !f.Errors.IsEmpty()
}

// Value returns the last displayed value of field
func (f *Form) Value(field types.FieldID) string {
	return f.Values[field]
}

// SetValue records the displayed value of field
func (f *Form) SetValue(field types.FieldID, value string) {
	if f.Values == nil {
		f.Values = make(map[types.FieldID]string)
	}
	f.Values[field] = value
}

// Invalid reports whether field currently has an error entry
func (f *Form) Invalid(field types.FieldID) bool {
	return f.Errors.Has(field)
}

// Clone returns a deep copy
func (f *Form) Clone() *Form {
	return &Form{
		ID:        f.ID,
		Errors:    NewErrorList(f.Errors.Entries()...),
		Values:    maps.Clone(f.Values),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
