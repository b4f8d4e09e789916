package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidFormID is returned when a form identifier is not a UUID
var ErrInvalidFormID = goerr.New("invalid form ID")

// FormID identifies one rendered registration form instance
type FormID string

// NewFormID generates a new UUID v4 FormID
func NewFormID() FormID {
	return FormID(uuid.New().String())
}

// Validate checks that the FormID is a well formed UUID
func (id FormID) Validate() error {
	if id == "" {
		return goerr.Wrap(ErrInvalidFormID, "form ID is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(ErrInvalidFormID, "form ID is not a UUID", goerr.V("form_id", string(id)))
	}
	return nil
}

func (id FormID) String() string {
	return string(id)
}
