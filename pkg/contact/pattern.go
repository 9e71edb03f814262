package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// fieldPattern is a named regex applied to one record field.
type fieldPattern struct {
	name  string
	field MatchField
	re    *regexp.Regexp
}

// Checker validates mobile and email shapes. It only ever produces
// warnings: the webhook command path accepts whatever the user typed,
// so a failed pattern must not block an insert.
type Checker struct {
	patterns []fieldPattern
}

var (
	// 7-15 digits, optional leading +, after spaces/dashes are removed.
	mobileRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// NewChecker builds the default field checker.
func NewChecker() *Checker {
	return &Checker{patterns: []fieldPattern{
		{name: "mobile", field: MatchMobile, re: mobileRe},
		{name: "email", field: MatchEmail, re: emailRe},
	}}
}

// Warning flags one field that does not look like its declared shape.
type Warning struct {
	Field   MatchField `json:"field"`
	Value   string     `json:"value"`
	Pattern string     `json:"pattern"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %q does not match pattern %s", w.Field, w.Value, w.Pattern)
}

// Check returns a warning per non-empty field that fails its pattern.
// Empty fields are fine: "no mobile on file" is a valid contact.
func (c *Checker) Check(r Record) []Warning {
	var warnings []Warning
	for _, p := range c.patterns {
		value := c.fieldValue(r, p.field)
		if value == "" {
			continue
		}
		cleaned := value
		if p.field == MatchMobile {
			cleaned = strings.NewReplacer(" ", "", "-", "").Replace(value)
		}
		if !p.re.MatchString(cleaned) {
			warnings = append(warnings, Warning{Field: p.field, Value: value, Pattern: p.name})
		}
	}
	return warnings
}

func (c *Checker) fieldValue(r Record, f MatchField) string {
	switch f {
	case MatchMobile:
		return r.Mobile
	case MatchEmail:
		return r.Email
	case MatchName:
		return r.Name
	default:
		return ""
	}
}
