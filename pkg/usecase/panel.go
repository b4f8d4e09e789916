package usecase

import (
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

// ErrorPanel keeps a form's error list and its rendered surface in step.
// The submit control is disabled iff the list is non-empty.
type ErrorPanel struct {
	form    *model.Form
	surface interfaces.Surface
}

// NewErrorPanel binds the panel of form to surface
func NewErrorPanel(form *model.Form, surface interfaces.Surface) *ErrorPanel {
	return &ErrorPanel{
		form:    form,
		surface: surface,
	}
}

// SetError creates the list if needed and inserts or updates field's entry
func (p *ErrorPanel) SetError(field types.FieldID, message string) {
	p.surface.MarkField(field, true)

	if p.form.Errors.IsEmpty() {
		p.surface.CreateErrorList(model.ErrorListHeader)
	}

	if p.form.Errors.Put(field, message) {
		p.surface.AppendErrorItem(field, message)
	} else {
		p.surface.UpdateErrorItem(field, message)
	}

	p.surface.SetSubmitDisabled(true)
}

// ClearError removes field's entry. The list is destroyed and submission
// re-enabled once no entry remains.
func (p *ErrorPanel) ClearError(field types.FieldID) {
	p.surface.MarkField(field, false)

	if !p.form.Errors.Remove(field) {
		return
	}
	p.surface.RemoveErrorItem(field)

	if p.form.Errors.IsEmpty() {
		p.surface.DestroyErrorList()
		p.surface.SetSubmitDisabled(false)
	}
}
