package memory

import (
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
)

// Repository is an alias of Memory
type Repository = Memory

type Memory struct {
	form *formRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		form: newFormRepository(),
	}
}

func (m *Memory) Form() interfaces.FormRepository {
	return m.form
}

func (m *Memory) Close() error {
	return nil
}
