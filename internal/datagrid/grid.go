package datagrid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SortState holds the single active sort. A nil *SortState means unsorted.
type SortState struct {
	Column string
	Desc   bool
}

type Pagination struct {
	Index int // zero-based page index
	Size  int
}

// HideRule hides a set of columns whenever the container is narrower than
// Below. Width zero (unknown) never hides anything.
type HideRule struct {
	Below   int
	Columns []string
}

// Column describes one grid column over row type T. Value extracts the cell
// value used for filtering, sorting and display.
type Column[T any] struct {
	ID     string
	Header string
	Value  func(row T) any
	Filter *Filter
}

// Grid recomputes the client-visible window of a dataset from its view state:
// global filter, per-column filters, sort, pagination, column visibility and
// row selection. Filtering and sorting always run over the full dataset before
// the page window is sliced.
type Grid[T any] struct {
	columns []Column[T]
	rows    []T

	sorting       *SortState
	page          Pagination
	globalFilter  string
	columnFilters map[string]any
	hidden        map[string]bool
	hideRules     []HideRule
	width         int
	selection     map[int]bool

	// Loading renders a fixed-count skeleton window instead of rows.
	Loading bool
}

const defaultPageSize = 5

func New[T any](columns []Column[T], opts ...Option[T]) *Grid[T] {
	g := &Grid[T]{
		columns:       columns,
		page:          Pagination{Index: 0, Size: defaultPageSize},
		columnFilters: make(map[string]any),
		hidden:        make(map[string]bool),
		selection:     make(map[int]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type Option[T any] func(*Grid[T])

func WithPageSize[T any](size int) Option[T] {
	return func(g *Grid[T]) {
		if size > 0 {
			g.page.Size = size
		}
	}
}

func WithHideRules[T any](rules []HideRule) Option[T] {
	return func(g *Grid[T]) { g.hideRules = rules }
}

func (g *Grid[T]) SetRows(rows []T) {
	g.rows = rows
	g.selection = make(map[int]bool)
}

// -------------------------
// Sorting
// -------------------------

// ToggleSort cycles a column through ascending, descending and unsorted.
func (g *Grid[T]) ToggleSort(columnID string) {
	if g.sorting == nil || g.sorting.Column != columnID {
		g.sorting = &SortState{Column: columnID}
		return
	}
	if !g.sorting.Desc {
		g.sorting.Desc = true
		return
	}
	g.sorting = nil
}

func (g *Grid[T]) Sorting() *SortState {
	return g.sorting
}

func (g *Grid[T]) SetSort(columnID string, desc bool) {
	g.sorting = &SortState{Column: columnID, Desc: desc}
}

// -------------------------
// Filtering
// -------------------------

// SetGlobalFilter sets the free-text filter: a case-insensitive substring
// match against every stringified cell of a row.
func (g *Grid[T]) SetGlobalFilter(text string) {
	g.globalFilter = text
}

func (g *Grid[T]) GlobalFilter() string {
	return g.globalFilter
}

// SetColumnFilter writes a filter value for a column. The accepted value shape
// depends on the column's filter kind: string for equality and radio filters,
// []string for multi-value filters, bool for boolean filters.
func (g *Grid[T]) SetColumnFilter(columnID string, value any) {
	if value == nil {
		delete(g.columnFilters, columnID)
		return
	}
	g.columnFilters[columnID] = value
}

func (g *Grid[T]) ClearColumnFilter(columnID string) {
	delete(g.columnFilters, columnID)
}

func (g *Grid[T]) ColumnFilter(columnID string) any {
	return g.columnFilters[columnID]
}

// -------------------------
// Pagination
// -------------------------

func (g *Grid[T]) SetPage(index int) {
	if index < 0 {
		index = 0
	}
	g.page.Index = index
}

// SetPageSize changes the window size. It deliberately does not reset the page
// index; callers that need to land on the first page call SetPage(0) as well.
func (g *Grid[T]) SetPageSize(size int) {
	if size > 0 {
		g.page.Size = size
	}
}

func (g *Grid[T]) Page() Pagination {
	return g.page
}

func (g *Grid[T]) PageCount() int {
	n := len(g.matchedRows())
	if n == 0 {
		return 0
	}
	return (n + g.page.Size - 1) / g.page.Size
}

// -------------------------
// Column visibility
// -------------------------

func (g *Grid[T]) SetColumnVisibility(columnID string, visible bool) {
	g.hidden[columnID] = !visible
}

// SetContainerWidth feeds the external width signal that drives the
// responsive hide rules.
func (g *Grid[T]) SetContainerWidth(width int) {
	g.width = width
}

func (g *Grid[T]) IsColumnVisible(columnID string) bool {
	if g.hidden[columnID] {
		return false
	}
	if g.width > 0 {
		for _, rule := range g.hideRules {
			if g.width >= rule.Below {
				continue
			}
			for _, id := range rule.Columns {
				if id == columnID {
					return false
				}
			}
		}
	}
	return true
}

func (g *Grid[T]) VisibleColumns() []Column[T] {
	cols := make([]Column[T], 0, len(g.columns))
	for _, col := range g.columns {
		if g.IsColumnVisible(col.ID) {
			cols = append(cols, col)
		}
	}
	return cols
}

// -------------------------
// Row selection
// -------------------------

// ToggleRowSelection flips selection for a row, addressed by its index in the
// full dataset.
func (g *Grid[T]) ToggleRowSelection(index int) {
	if index < 0 || index >= len(g.rows) {
		return
	}
	if g.selection[index] {
		delete(g.selection, index)
		return
	}
	g.selection[index] = true
}

func (g *Grid[T]) ClearSelection() {
	g.selection = make(map[int]bool)
}

func (g *Grid[T]) SelectedRows() []T {
	indexes := make([]int, 0, len(g.selection))
	for i := range g.selection {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	selected := make([]T, 0, len(indexes))
	for _, i := range indexes {
		selected = append(selected, g.rows[i])
	}
	return selected
}

// -------------------------
// Window computation
// -------------------------

// SkeletonRowCount is how many placeholder rows a loading grid shows.
const SkeletonRowCount = 3

// VisibleRows returns the current page window: global filter, then column
// filters, then sort, then slice [page*size, (page+1)*size). While Loading it
// returns nil; callers render SkeletonRowCount placeholders instead.
func (g *Grid[T]) VisibleRows() []T {
	if g.Loading {
		return nil
	}

	matched := g.matchedRows()
	g.sortRows(matched)

	start := g.page.Index * g.page.Size
	if start >= len(matched) {
		return []T{}
	}
	end := start + g.page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

// MatchedCount is the number of rows surviving the filters, before slicing.
func (g *Grid[T]) MatchedCount() int {
	return len(g.matchedRows())
}

func (g *Grid[T]) matchedRows() []T {
	matched := make([]T, 0, len(g.rows))
	for _, row := range g.rows {
		if g.matchesGlobal(row) && g.matchesColumnFilters(row) {
			matched = append(matched, row)
		}
	}
	return matched
}

func (g *Grid[T]) matchesGlobal(row T) bool {
	if g.globalFilter == "" {
		return true
	}
	needle := strings.ToLower(g.globalFilter)
	for _, col := range g.columns {
		cell := strings.ToLower(cellString(col.Value(row)))
		if strings.Contains(cell, needle) {
			return true
		}
	}
	return false
}

func (g *Grid[T]) matchesColumnFilters(row T) bool {
	for columnID, filterValue := range g.columnFilters {
		col, ok := g.column(columnID)
		if !ok || col.Filter == nil {
			continue
		}
		if !col.Filter.Matches(col.Value(row), filterValue) {
			return false
		}
	}
	return true
}

func (g *Grid[T]) sortRows(rows []T) {
	if g.sorting == nil {
		return
	}
	col, ok := g.column(g.sorting.Column)
	if !ok {
		return
	}
	desc := g.sorting.Desc
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareCells(col.Value(rows[i]), col.Value(rows[j]))
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func (g *Grid[T]) column(id string) (Column[T], bool) {
	for _, col := range g.columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column[T]{}, false
}

// cellString renders a cell value for text matching.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// compareCells orders two cell values: numerically when both parse as
// numbers, chronologically for times, lexicographically otherwise.
func compareCells(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	sa, sb := cellString(a), cellString(b)
	na, errA := strconv.ParseFloat(sa, 64)
	nb, errB := strconv.ParseFloat(sb, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
}
