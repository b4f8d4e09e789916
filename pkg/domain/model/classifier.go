package model

import "github.com/secmon-lab/regform/pkg/domain/types"

var ruleTable = map[types.RuleKind]Rule{
	types.RuleBlank: CheckBlank,
	types.RuleName:  CheckName,
	types.RuleEmail: CheckEmail,
	types.RulePhone: CheckPhone,
}

// Classify returns the rule kind for field. Unknown identifiers degrade to
// the blank-only rule.
func Classify(field types.FieldID) types.RuleKind {
	switch field {
	case types.FieldFirstName, types.FieldLastName, types.FieldJobTitle, types.FieldCompanyName:
		return types.RuleName
	case types.FieldEmail:
		return types.RuleEmail
	case types.FieldPhone:
		return types.RulePhone
	default:
		return types.RuleBlank
	}
}

// RuleFor returns the rule implementing kind
func RuleFor(kind types.RuleKind) Rule {
	if rule, ok := ruleTable[kind]; ok {
		return rule
	}
	return CheckBlank
}

// Evaluate classifies field and runs the matching rule against value
func Evaluate(field types.FieldID, value string) Verdict {
	return RuleFor(Classify(field))(value, field)
}
