package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrFormNotFound = goerr.New("form not found")
)

// Context keys for error values
const (
	FormIDKey  = "form_id"
	FieldIDKey = "field_id"
)
