package form

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags select which coercion rule and zero value apply to a field.
type Kind string

const (
	KindText          Kind = "text"
	KindNumber        Kind = "number"
	KindPrice         Kind = "price"
	KindSelect        Kind = "select"
	KindCheckbox      Kind = "checkbox"
	KindCheckboxGroup Kind = "checkbox-group"
	KindDate          Kind = "date"
	KindDateRange     Kind = "date-range"
)

type SelectOption struct {
	Value string
	Label string
}

// DateRange is the committed value of a date-range field.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type fieldDef struct {
	zero   func() any
	coerce func(raw any) any
}

// registry maps each kind to its value handling. Unknown kinds fall back to
// text behavior.
var registry = map[Kind]fieldDef{
	KindText:          {zero: func() any { return "" }, coerce: coerceText},
	KindSelect:        {zero: func() any { return "" }, coerce: coerceText},
	KindNumber:        {zero: func() any { return float64(0) }, coerce: coerceNumber},
	KindPrice:         {zero: func() any { return float64(0) }, coerce: coerceNumber},
	KindCheckbox:      {zero: func() any { return false }, coerce: coerceBool},
	KindCheckboxGroup: {zero: func() any { return []string{} }, coerce: coerceStringSlice},
	KindDate:          {zero: func() any { return time.Time{} }, coerce: coerceDate},
	KindDateRange:     {zero: func() any { return DateRange{} }, coerce: coerceDateRange},
}

func definition(kind Kind) fieldDef {
	if def, ok := registry[kind]; ok {
		return def
	}
	return registry[KindText]
}

func coerceText(raw any) any {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return strings.TrimSpace(toString(raw))
	}
}

// coerceNumber turns text input into a float64. Malformed input coerces to 0
// instead of being rejected.
func coerceNumber(raw any) any {
	switch v := raw.(type) {
	case nil:
		return float64(0)
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return float64(0)
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return float64(0)
		}
		return n
	default:
		return float64(0)
	}
}

func coerceBool(raw any) any {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on" || v == "1"
	default:
		return false
	}
}

func coerceStringSlice(raw any) any {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, toString(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return strings.Split(v, ",")
	default:
		return []string{}
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func coerceDate(raw any) any {
	switch v := raw.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

func coerceDateRange(raw any) any {
	switch v := raw.(type) {
	case DateRange:
		return v
	case map[string]any:
		start, _ := coerceDate(v["start"]).(time.Time)
		end, _ := coerceDate(v["end"]).(time.Time)
		return DateRange{Start: start, End: end}
	default:
		return DateRange{}
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
