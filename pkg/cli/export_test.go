package cli

import "github.com/secmon-lab/regform/pkg/usecase"

// ToInputs is exported for testing
func ToInputs(values map[string]string) []usecase.FieldInput {
	return toInputs(values)
}

// GetIndexConfig is exported for testing
var GetIndexConfig = getIndexConfig
