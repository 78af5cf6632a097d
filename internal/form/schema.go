package form

import (
	"fmt"
	"strings"
	"time"
)

// Rule validates a coerced field value. Returning "" means the value passes.
type Rule struct {
	// nonEmpty marks the rule as a presence constraint; IsRequired derives
	// from it.
	nonEmpty bool
	check    func(value any) string
}

// Field describes a single form field: its kind plus validation rules.
type Field struct {
	Kind    Kind
	Label   string
	Options []SelectOption
	Rules   []Rule
}

// Schema maps field names to their declarations for one record type.
type Schema map[string]Field

// -------------------------
// Field constructors
// -------------------------

func Text(rules ...Rule) Field   { return Field{Kind: KindText, Rules: rules} }
func Number(rules ...Rule) Field { return Field{Kind: KindNumber, Rules: rules} }
func Price(rules ...Rule) Field  { return Field{Kind: KindPrice, Rules: rules} }
func Date(rules ...Rule) Field   { return Field{Kind: KindDate, Rules: rules} }

func Select(options []SelectOption, rules ...Rule) Field {
	return Field{Kind: KindSelect, Options: options, Rules: rules}
}

// -------------------------
// Rules
// -------------------------

func NonEmpty() Rule {
	return Rule{
		nonEmpty: true,
		check: func(value any) string {
			switch v := value.(type) {
			case string:
				if strings.TrimSpace(v) == "" {
					return "This field is required"
				}
			case time.Time:
				if v.IsZero() {
					return "This field is required"
				}
			case []string:
				if len(v) == 0 {
					return "Select at least one option"
				}
			case nil:
				return "This field is required"
			}
			return ""
		},
	}
}

func Min(min float64) Rule {
	return Rule{
		check: func(value any) string {
			n, ok := value.(float64)
			if !ok {
				return ""
			}
			if n < min {
				return fmt.Sprintf("Must be at least %v", min)
			}
			return ""
		},
	}
}

func MinLen(n int) Rule {
	return Rule{
		nonEmpty: n > 0,
		check: func(value any) string {
			s, ok := value.(string)
			if !ok {
				return ""
			}
			if len(strings.TrimSpace(s)) < n {
				return fmt.Sprintf("Must be at least %d characters", n)
			}
			return ""
		},
	}
}

func OneOf(allowed ...string) Rule {
	return Rule{
		nonEmpty: true,
		check: func(value any) string {
			s, ok := value.(string)
			if !ok {
				return ""
			}
			for _, a := range allowed {
				if s == a {
					return ""
				}
			}
			return "Select one of the allowed options"
		},
	}
}

func Email() Rule {
	return Rule{
		check: func(value any) string {
			s, ok := value.(string)
			if !ok || s == "" {
				return ""
			}
			at := strings.Index(s, "@")
			if at < 1 || at == len(s)-1 || !strings.Contains(s[at:], ".") {
				return "Invalid email address"
			}
			return ""
		},
	}
}

// -------------------------
// Schema operations
// -------------------------

// Validate coerces and checks every declared field, returning per-field error
// messages. An empty map means the record is valid.
func (s Schema) Validate(values map[string]any) map[string]string {
	errs := make(map[string]string)
	for name, field := range s {
		value := definition(field.Kind).coerce(values[name])
		for _, rule := range field.Rules {
			if msg := rule.check(value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// IsRequired reports whether a field carries a non-empty constraint.
func (s Schema) IsRequired(name string) bool {
	field, ok := s[name]
	if !ok {
		return false
	}
	for _, rule := range field.Rules {
		if rule.nonEmpty {
			return true
		}
	}
	return false
}
