package types

import "strings"

// FieldID is the identifier attribute carried by every registration input
type FieldID string

const (
	FieldFirstName   FieldID = "first-name"
	FieldLastName    FieldID = "last-name"
	FieldJobTitle    FieldID = "job-title"
	FieldCompanyName FieldID = "company-name"
	FieldEmail       FieldID = "email"
	FieldPhone       FieldID = "phone"
)

// AllFieldIDs returns the known fields in form display order
func AllFieldIDs() []FieldID {
	return []FieldID{
		FieldFirstName,
		FieldLastName,
		FieldJobTitle,
		FieldCompanyName,
		FieldEmail,
		FieldPhone,
	}
}

// IsKnown reports whether the identifier belongs to the fixed vocabulary.
// Anything else is treated as an "other" field.
func (f FieldID) IsKnown() bool {
	switch f {
	case FieldFirstName,
		FieldLastName,
		FieldJobTitle,
		FieldCompanyName,
		FieldEmail,
		FieldPhone:
		return true
	default:
		return false
	}
}

// IsNameLike reports whether the field shares the name message group
func (f FieldID) IsNameLike() bool {
	switch f {
	case FieldFirstName, FieldLastName, FieldJobTitle, FieldCompanyName:
		return true
	default:
		return false
	}
}

// Humanize replaces hyphens with spaces ("first-name" -> "first name")
func (f FieldID) Humanize() string {
	return strings.ReplaceAll(string(f), "-", " ")
}

func (f FieldID) String() string {
	return string(f)
}

// FieldValue is a raw value typed by the user. It is masked in logs.
type FieldValue string

func (v FieldValue) String() string {
	return string(v)
}
