package interfaces

import "github.com/secmon-lab/regform/pkg/domain/types"

// Surface is the rendered page of one form. Implementations translate the
// calls into element mutations; they never decide validity.
type Surface interface {
	// MarkField adds or removes the error highlight on the field's input
	MarkField(field types.FieldID, invalid bool)
	// SetFieldValue overwrites the value displayed in the field's input
	SetFieldValue(field types.FieldID, value string)

	// CreateErrorList inserts an empty error list with its header
	CreateErrorList(header string)
	// AppendErrorItem adds an item for field at the end of the list
	AppendErrorItem(field types.FieldID, message string)
	// UpdateErrorItem replaces the text of field's item
	UpdateErrorItem(field types.FieldID, message string)
	// RemoveErrorItem removes field's item
	RemoveErrorItem(field types.FieldID)
	// DestroyErrorList removes the whole list, header included
	DestroyErrorList()

	// SetSubmitDisabled toggles the submit control
	SetSubmitDisabled(disabled bool)
}
