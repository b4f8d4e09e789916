package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/regform/pkg/domain/model"
	"github.com/secmon-lab/regform/pkg/domain/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		field types.FieldID
		want  types.RuleKind
	}{
		{field: types.FieldFirstName, want: types.RuleName},
		{field: types.FieldLastName, want: types.RuleName},
		{field: types.FieldJobTitle, want: types.RuleName},
		{field: types.FieldCompanyName, want: types.RuleName},
		{field: types.FieldEmail, want: types.RuleEmail},
		{field: types.FieldPhone, want: types.RulePhone},
		{field: "nickname", want: types.RuleBlank},
		{field: "", want: types.RuleBlank},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			gt.Value(t, model.Classify(tt.field)).Equal(tt.want)
		})
	}
}

func TestRuleFor_UnknownKindFallsBackToBlank(t *testing.T) {
	v := model.RuleFor(types.RuleKind(99))("", types.FieldEmail)
	gt.B(t, v.Valid).False()
	gt.Value(t, v.Message).Equal("Your email address cannot be left blank.")
}

func TestEvaluate(t *testing.T) {
	t.Run("company name uses name rule", func(t *testing.T) {
		v := model.Evaluate(types.FieldCompanyName, "Acme 2000")
		gt.B(t, v.Valid).False()
		gt.Value(t, v.Message).Equal("Invalid company name.")
	})

	t.Run("phone is normalized", func(t *testing.T) {
		v := model.Evaluate(types.FieldPhone, "5551234567")
		gt.B(t, v.Valid).True()
		gt.B(t, v.Rewrite).True()
		gt.Value(t, v.Normalized).Equal("(555) 123-4567")
	})

	t.Run("unknown blank field is invalid with empty message", func(t *testing.T) {
		v := model.Evaluate("favorite-color", "  ")
		gt.B(t, v.Valid).False()
		gt.Value(t, v.Message).Equal("")
	})

	t.Run("unknown field accepts any non blank value", func(t *testing.T) {
		v := model.Evaluate("favorite-color", "12345!")
		gt.B(t, v.Valid).True()
		gt.B(t, v.Rewrite).False()
	})
}
