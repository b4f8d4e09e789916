package usecase_test

import (
	"slices"
	"testing"

	"github.com/secmon-lab/regform/pkg/domain/interfaces"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

type pageItem struct {
	field   types.FieldID
	message string
}

// fakePage mimics the page elements touched by the error panel
type fakePage struct {
	t              *testing.T
	listExists     bool
	header         string
	items          []pageItem
	submitDisabled bool
	invalid        map[types.FieldID]bool
	values         map[types.FieldID]string
	calls          []string
}

var _ interfaces.Surface = &fakePage{}

func newFakePage(t *testing.T) *fakePage {
	return &fakePage{
		t:       t,
		invalid: make(map[types.FieldID]bool),
		values:  make(map[types.FieldID]string),
	}
}

func (p *fakePage) itemIndex(field types.FieldID) int {
	return slices.IndexFunc(p.items, func(i pageItem) bool { return i.field == field })
}

func (p *fakePage) MarkField(field types.FieldID, invalid bool) {
	p.calls = append(p.calls, "mark")
	p.invalid[field] = invalid
}

func (p *fakePage) SetFieldValue(field types.FieldID, value string) {
	p.calls = append(p.calls, "value")
	p.values[field] = value
}

func (p *fakePage) CreateErrorList(header string) {
	p.calls = append(p.calls, "create")
	if p.listExists {
		p.t.Errorf("error list created twice")
	}
	p.listExists = true
	p.header = header
}

func (p *fakePage) AppendErrorItem(field types.FieldID, message string) {
	p.calls = append(p.calls, "append")
	if !p.listExists {
		p.t.Errorf("append to missing error list")
	}
	if p.itemIndex(field) >= 0 {
		p.t.Errorf("duplicate item for %s", field)
	}
	p.items = append(p.items, pageItem{field: field, message: message})
}

func (p *fakePage) UpdateErrorItem(field types.FieldID, message string) {
	p.calls = append(p.calls, "update")
	i := p.itemIndex(field)
	if i < 0 {
		p.t.Errorf("update of missing item %s", field)
		return
	}
	p.items[i].message = message
}

func (p *fakePage) RemoveErrorItem(field types.FieldID) {
	p.calls = append(p.calls, "remove")
	i := p.itemIndex(field)
	if i < 0 {
		p.t.Errorf("remove of missing item %s", field)
		return
	}
	p.items = slices.Delete(p.items, i, i+1)
}

func (p *fakePage) DestroyErrorList() {
	p.calls = append(p.calls, "destroy")
	p.listExists = false
	p.header = ""
	p.items = nil
}

func (p *fakePage) SetSubmitDisabled(disabled bool) {
	p.calls = append(p.calls, "submit")
	p.submitDisabled = disabled
}

// checkInvariants asserts list presence and submit state follow the items
func (p *fakePage) checkInvariants() {
	p.t.Helper()
	nonEmpty := len(p.items) > 0
	if p.listExists != nonEmpty {
		p.t.Errorf("list exists=%v but items=%d", p.listExists, len(p.items))
	}
	if p.submitDisabled != nonEmpty {
		p.t.Errorf("submit disabled=%v but items=%d", p.submitDisabled, len(p.items))
	}
}
