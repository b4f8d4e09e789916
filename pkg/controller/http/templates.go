package http

import (
	"embed"
	"html/template"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse templates")
	}
	return tmpl, nil
}

type inputView struct {
	FormID  types.FormID
	ID      types.FieldID
	Label   string
	Type    string
	Value   string
	Invalid bool
	OOB     bool
}

type itemView struct {
	Field   types.FieldID
	Message string
	OOB     bool
}

type listView struct {
	Header string
	Errors []itemView
}

type submitView struct {
	Disabled bool
	OOB      bool
}

type pageView struct {
	FormID types.FormID
	Fields []inputView
	Header string
	Errors []itemView
	Submit submitView
}

type acceptedView struct {
	Name string
}

func newInputView(formID types.FormID, field types.FieldID, value string) *inputView {
	return &inputView{
		FormID: formID,
		ID:     field,
		Label:  fieldLabel(field),
		Type:   inputType(field),
		Value:  value,
	}
}

func fieldLabel(field types.FieldID) string {
	label := field.Humanize()
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func inputType(field types.FieldID) string {
	switch field {
	case types.FieldEmail:
		return "email"
	case types.FieldPhone:
		return "tel"
	default:
		return "text"
	}
}
