package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
	"github.com/secmon-lab/regform/pkg/usecase"
)

func TestErrorPanel_SetError(t *testing.T) {
	t.Run("first error creates list with header", func(t *testing.T) {
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.SetError(types.FieldEmail, "Invalid email address.")
		page.checkInvariants()

		gt.B(t, page.listExists).True()
		gt.Value(t, page.header).Equal("Errors:")
		gt.Array(t, page.items).Length(1)
		gt.B(t, page.invalid[types.FieldEmail]).True()
		gt.B(t, form.SubmitDisabled()).True()
	})

	t.Run("same field twice updates in place", func(t *testing.T) {
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.SetError(types.FieldEmail, "Your email address cannot be left blank.")
		panel.SetError(types.FieldEmail, "Invalid email address.")
		page.checkInvariants()

		gt.Array(t, page.items).Length(1)
		gt.Value(t, page.items[0].message).Equal("Invalid email address.")
		gt.Value(t, form.Errors.Len()).Equal(1)
		gt.Value(t, page.calls).Equal([]string{
			"mark", "create", "append", "submit",
			"mark", "update", "submit",
		})
	})

	t.Run("insertion order is display order", func(t *testing.T) {
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.SetError(types.FieldPhone, "Invalid phone number.")
		panel.SetError(types.FieldFirstName, "Invalid first name.")
		panel.SetError(types.FieldPhone, "Your phone number cannot be left blank.")

		gt.Array(t, page.items).Length(2)
		gt.Value(t, page.items[0].field).Equal(types.FieldPhone)
		gt.Value(t, page.items[1].field).Equal(types.FieldFirstName)
	})
}

func TestErrorPanel_ClearError(t *testing.T) {
	t.Run("clearing the only error destroys list and enables submit", func(t *testing.T) {
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.SetError(types.FieldEmail, "Invalid email address.")
		panel.ClearError(types.FieldEmail)
		page.checkInvariants()

		gt.B(t, page.listExists).False()
		gt.B(t, page.submitDisabled).False()
		gt.B(t, page.invalid[types.FieldEmail]).False()
		gt.B(t, form.SubmitDisabled()).False()
	})

	t.Run("list survives while one item remains", func(t *testing.T) {
		// The list is destroyed only when zero items remain; the header
		// does not count as an item.
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.SetError(types.FieldEmail, "Invalid email address.")
		panel.SetError(types.FieldPhone, "Invalid phone number.")
		panel.ClearError(types.FieldEmail)
		page.checkInvariants()

		gt.B(t, page.listExists).True()
		gt.Array(t, page.items).Length(1)
		gt.Value(t, page.items[0].field).Equal(types.FieldPhone)
		gt.B(t, page.submitDisabled).True()
	})

	t.Run("clearing a field without entry only unmarks it", func(t *testing.T) {
		form := model.NewForm(types.NewFormID(), time.Now())
		page := newFakePage(t)
		panel := usecase.NewErrorPanel(form, page)

		panel.ClearError(types.FieldJobTitle)
		page.checkInvariants()

		gt.Value(t, page.calls).Equal([]string{"mark"})
	})
}

func TestErrorPanel_InvariantAfterEveryStep(t *testing.T) {
	form := model.NewForm(types.NewFormID(), time.Now())
	page := newFakePage(t)
	panel := usecase.NewErrorPanel(form, page)

	steps := []func(){
		func() { panel.SetError(types.FieldFirstName, "Invalid first name.") },
		func() { panel.SetError(types.FieldEmail, "Invalid email address.") },
		func() { panel.ClearError(types.FieldPhone) },
		func() { panel.SetError(types.FieldEmail, "Your email address cannot be left blank.") },
		func() { panel.ClearError(types.FieldFirstName) },
		func() { panel.ClearError(types.FieldEmail) },
		func() { panel.ClearError(types.FieldEmail) },
		func() { panel.SetError(types.FieldPhone, "Invalid phone number.") },
	}

	for _, step := range steps {
		step()
		page.checkInvariants()
		gt.Value(t, form.SubmitDisabled()).Equal(page.submitDisabled)
		gt.Value(t, form.Errors.Len()).Equal(len(page.items))
	}
}
