package types

// RuleKind selects which rule judges a field
type RuleKind int

const (
	RuleBlank RuleKind = iota
	RuleName
	RuleEmail
	RulePhone
)

func (k RuleKind) String() string {
	switch k {
	case RuleBlank:
		return "blank"
	case RuleName:
		return "name"
	case RuleEmail:
		return "email"
	case RulePhone:
		return "phone"
	default:
		return "unknown"
	}
}
