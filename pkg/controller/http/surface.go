package http

import (
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

type fragment struct {
	name string
	data any
}

// oobSurface records panel mutations and renders them as htmx out-of-band
// swaps. Error list fragments keep call order; touched inputs and the submit
// control are rendered once with their final state.
type oobSurface struct {
	tmpl       *template.Template
	formID     types.FormID
	values     map[types.FieldID]string
	inputs     map[types.FieldID]*inputView
	inputOrder []types.FieldID
	fragments  []fragment
	submit     *submitView
}

var _ interfaces.Surface = &oobSurface{}

// newOOBSurface seeds re-rendered inputs with values as typed by the user
func newOOBSurface(tmpl *template.Template, formID types.FormID, values map[types.FieldID]string) *oobSurface {
	return &oobSurface{
		tmpl:   tmpl,
		formID: formID,
		values: values,
		inputs: make(map[types.FieldID]*inputView),
	}
}

func (s *oobSurface) input(field types.FieldID) *inputView {
	if v, ok := s.inputs[field]; ok {
		return v
	}
	v := newInputView(s.formID, field, s.values[field])
	v.OOB = true
	s.inputs[field] = v
	s.inputOrder = append(s.inputOrder, field)
	return v
}

func (s *oobSurface) MarkField(field types.FieldID, invalid bool) {
	s.input(field).Invalid = invalid
}

func (s *oobSurface) SetFieldValue(field types.FieldID, value string) {
	s.input(field).Value = value
}

func (s *oobSurface) CreateErrorList(header string) {
	s.fragments = append(s.fragments, fragment{name: "create_list", data: listView{Header: header}})
}

func (s *oobSurface) AppendErrorItem(field types.FieldID, message string) {
	s.fragments = append(s.fragments, fragment{name: "append_item", data: itemView{Field: field, Message: message}})
}

func (s *oobSurface) UpdateErrorItem(field types.FieldID, message string) {
	s.fragments = append(s.fragments, fragment{name: "error_item", data: itemView{Field: field, Message: message, OOB: true}})
}

func (s *oobSurface) RemoveErrorItem(field types.FieldID) {
	s.fragments = append(s.fragments, fragment{name: "remove_item", data: itemView{Field: field}})
}

func (s *oobSurface) DestroyErrorList() {
	s.fragments = append(s.fragments, fragment{name: "destroy_list"})
}

func (s *oobSurface) SetSubmitDisabled(disabled bool) {
	s.submit = &submitView{Disabled: disabled, OOB: true}
}

// addFragment queues a fragment that is not a panel mutation
func (s *oobSurface) addFragment(name string, data any) {
	s.fragments = append(s.fragments, fragment{name: name, data: data})
}

// Render writes every recorded fragment to w
func (s *oobSurface) Render(w io.Writer) error {
	for _, f := range s.fragments {
		if err := s.tmpl.ExecuteTemplate(w, f.name, f.data); err != nil {
			return goerr.Wrap(err, "failed to render fragment", goerr.V("fragment", f.name))
		}
	}

	for _, field := range s.inputOrder {
		if err := s.tmpl.ExecuteTemplate(w, "input", s.inputs[field]); err != nil {
			return goerr.Wrap(err, "failed to render input", goerr.V("field", field))
		}
	}

	if s.submit != nil {
		if err := s.tmpl.ExecuteTemplate(w, "submit", s.submit); err != nil {
			return goerr.Wrap(err, "failed to render submit control")
		}
	}

	return nil
}
