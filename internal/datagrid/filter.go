package datagrid

// FilterKind selects how a column filter value is matched against cells.
type FilterKind string

const (
	// FilterEquals matches a single committed value (radio-style).
	FilterEquals FilterKind = "equals"
	// FilterIncludes matches any of a set of committed values (checkbox-style).
	FilterIncludes FilterKind = "includes"
	// FilterBool matches a boolean cell (toggle-style).
	FilterBool FilterKind = "boolean"
)

type FilterOption struct {
	Value string
	Label string
}

// Filter is the per-column filter definition attached to a Column.
type Filter struct {
	Kind    FilterKind
	Name    string
	Options []FilterOption
}

// Matches reports whether a cell survives the committed filter value. The
// value shape follows the kind: string, []string or bool. A value of the
// wrong shape matches everything rather than filtering the grid empty.
func (f *Filter) Matches(cell any, value any) bool {
	switch f.Kind {
	case FilterEquals:
		want, ok := value.(string)
		if !ok || want == "" {
			return true
		}
		return cellString(cell) == want

	case FilterIncludes:
		wants, ok := value.([]string)
		if !ok || len(wants) == 0 {
			return true
		}
		cellVal := cellString(cell)
		for _, want := range wants {
			if cellVal == want {
				return true
			}
		}
		return false

	case FilterBool:
		want, ok := value.(bool)
		if !ok {
			return true
		}
		got, ok := cell.(bool)
		if !ok {
			return true
		}
		return got == want
	}
	return true
}
