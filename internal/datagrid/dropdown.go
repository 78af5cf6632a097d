package datagrid

import "strings"

// Dropdown holds the open/closed and selection state of one column filter
// trigger. The selected option labels are only a display cache for the
// trigger's summary text; the grid's filter map stays authoritative.
type Dropdown struct {
	Placeholder string
	filter      *Filter
	apply       func(value any)

	open           bool
	selectedLabels []string
}

// FilterDropdown builds the dropdown state holder for a column that declares
// a filter. Committed selections are written into the grid's filter map.
func FilterDropdown[T any](g *Grid[T], columnID string) *Dropdown {
	col, ok := g.column(columnID)
	if !ok || col.Filter == nil {
		return nil
	}
	return &Dropdown{
		Placeholder: col.Filter.Name,
		filter:      col.Filter,
		apply: func(value any) {
			g.SetColumnFilter(columnID, value)
		},
	}
}

func (d *Dropdown) Open()  { d.open = true }
func (d *Dropdown) Close() { d.open = false }

func (d *Dropdown) IsOpen() bool { return d.open }

// Select commits option values. For equality and boolean filters only the
// first value is used.
func (d *Dropdown) Select(values ...string) {
	switch d.filter.Kind {
	case FilterIncludes:
		d.apply(values)
	case FilterEquals:
		if len(values) == 0 {
			d.apply(nil)
		} else {
			d.apply(values[0])
		}
	case FilterBool:
		if len(values) == 0 {
			d.apply(nil)
		} else {
			d.apply(values[0] == "true")
		}
	}
	d.selectedLabels = d.labelsFor(values)
}

// Clear removes the committed filter and the summary cache.
func (d *Dropdown) Clear() {
	d.apply(nil)
	d.selectedLabels = nil
}

// Summary is the trigger's text: the placeholder, with the selected labels
// appended when anything is committed.
func (d *Dropdown) Summary() string {
	if len(d.selectedLabels) == 0 {
		return d.Placeholder
	}
	return d.Placeholder + ": " + strings.Join(d.selectedLabels, ", ")
}

func (d *Dropdown) labelsFor(values []string) []string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		label := v
		for _, opt := range d.filter.Options {
			if opt.Value == v {
				label = opt.Label
				break
			}
		}
		labels = append(labels, label)
	}
	return labels
}
