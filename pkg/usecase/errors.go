package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrInvalidPruneAge = goerr.New("prune age must be positive")
)

// Context keys for error values
const (
	FormIDKey  = "form_id"
	FieldIDKey = "field_id"
)
