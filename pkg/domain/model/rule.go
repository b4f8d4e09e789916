package model

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/secmon-lab/regform/pkg/domain/types"
)

// emailLocalChars is the character set allowed in each local-part segment
const emailLocalChars = `a-z0-9_!#$%&'*+\-/=?^` + "`" + `{|}~`

var (
	blankPattern     = regexp.MustCompile(`^ *$`)
	nameForbidden    = regexp.MustCompile(`[!@#$%^&*()_+=\[\]{}\\|<>/?,.;:"` + "`" + `~0-9]`)
	emailPattern     = regexp.MustCompile(`(?i)^[` + emailLocalChars + `]+(\.[` + emailLocalChars + `]+)?@[a-z0-9\-]+(\.[a-z]+)+$`)
	phoneSeparators  = regexp.MustCompile(`[()\-. ]`)
	phoneDigitsExact = regexp.MustCompile(`^\d{10}$`)
)

const (
	msgInvalidEmail = "Invalid email address."
	msgInvalidPhone = "Invalid phone number."
)

// Verdict is the outcome of a rule. Invalid verdicts carry a message;
// valid ones may carry a normalized value the caller must write back.
type Verdict struct {
	Valid      bool
	Message    string
	Normalized string
	Rewrite    bool
}

// Accept returns a valid verdict without a rewrite
func Accept() Verdict {
	return Verdict{Valid: true}
}

// AcceptAs returns a valid verdict that asks the caller to display value
func AcceptAs(value string) Verdict {
	return Verdict{Valid: true, Normalized: value, Rewrite: true}
}

// Reject returns an invalid verdict
func Reject(message string) Verdict {
	return Verdict{Message: message}
}

// Rule judges a raw value typed into field
type Rule func(value string, field types.FieldID) Verdict

// IsBlank reports whether value is empty or only spaces
func IsBlank(value string) bool {
	return blankPattern.MatchString(value)
}

// BlankMessage returns the message shown for a blank field. Fields outside
// the known vocabulary get an empty message.
func BlankMessage(field types.FieldID) string {
	switch {
	case field.IsNameLike():
		return "Your " + field.Humanize() + " cannot be left blank."
	case field == types.FieldEmail:
		return "Your email address cannot be left blank."
	case field == types.FieldPhone:
		return "Your phone number cannot be left blank."
	default:
		return ""
	}
}

// CheckBlank rejects empty and space-only values
func CheckBlank(value string, field types.FieldID) Verdict {
	if IsBlank(value) {
		return Reject(BlankMessage(field))
	}
	return Accept()
}

// CheckName accepts letters, hyphens and apostrophes
func CheckName(value string, field types.FieldID) Verdict {
	if v := CheckBlank(value, field); !v.Valid {
		return v
	}
	if nameForbidden.MatchString(strings.TrimSpace(value)) {
		return Reject("Invalid " + field.Humanize() + ".")
	}
	return Accept()
}

// CheckEmail accepts local@domain addresses with at most two local segments
func CheckEmail(value string, field types.FieldID) Verdict {
	if v := CheckBlank(value, field); !v.Valid {
		return v
	}
	if !emailPattern.MatchString(strings.TrimSpace(value)) {
		return Reject(msgInvalidEmail)
	}
	return Accept()
}

// CheckPhone accepts any 10 digit number once separators are stripped and
// rewrites it as (DDD) DDD-DDDD.
func CheckPhone(value string, field types.FieldID) Verdict {
	digits := phoneSeparators.ReplaceAllString(value, "")
	if v := CheckBlank(digits, field); !v.Valid {
		return v
	}
	if !phoneDigitsExact.MatchString(digits) {
		return Reject(msgInvalidPhone)
	}
	return AcceptAs(FormatPhone(digits))
}

// FormatPhone formats exactly 10 digits as (DDD) DDD-DDDD
func FormatPhone(digits string) string {
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}
