package datagrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name     string
	Unit     string
	Quantity int
	Added    time.Time
}

func itemColumns() []Column[item] {
	return []Column[item]{
		{ID: "name", Header: "Name", Value: func(r item) any { return r.Name }},
		{
			ID: "unit", Header: "Unit", Value: func(r item) any { return r.Unit },
			Filter: &Filter{Kind: FilterIncludes, Name: "Unit", Options: []FilterOption{
				{Value: "Kilogram", Label: "Kilogram"},
				{Value: "Liter", Label: "Liter"},
			}},
		},
		{ID: "quantity", Header: "Quantity", Value: func(r item) any { return r.Quantity }},
		{ID: "added", Header: "Added", Value: func(r item) any { return r.Added }},
	}
}

func testItems() []item {
	return []item{
		{Name: "Milk", Unit: "Liter", Quantity: 12, Added: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "Flour", Unit: "Kilogram", Quantity: 3, Added: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Name: "Rice", Unit: "Kilogram", Quantity: 40, Added: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Name: "Olive oil", Unit: "Liter", Quantity: 7, Added: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
		{Name: "milkshake mix", Unit: "Kilogram", Quantity: 2, Added: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{Name: "Butter", Unit: "Kilogram", Quantity: 9, Added: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
	}
}

func names(rows []item) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestVisibleRowsIsFilterSortSliceOverFullDataset(t *testing.T) {
	g := New(itemColumns(), WithPageSize[item](2))
	g.SetRows(testItems())

	g.SetColumnFilter("unit", []string{"Kilogram"})
	g.SetSort("quantity", false)

	// 4 Kilogram rows sorted by quantity: 2, 3, 9, 40
	assert.Equal(t, 4, g.MatchedCount())
	assert.Equal(t, []string{"milkshake mix", "Flour"}, names(g.VisibleRows()))

	g.SetPage(1)
	assert.Equal(t, []string{"Butter", "Rice"}, names(g.VisibleRows()))
	assert.Equal(t, 2, g.PageCount())
}

func TestGlobalFilterIsCaseInsensitiveSubstring(t *testing.T) {
	g := New(itemColumns())
	g.SetRows(testItems())

	g.SetGlobalFilter("MILK")
	assert.Equal(t, []string{"Milk", "milkshake mix"}, names(g.VisibleRows()))

	g.SetGlobalFilter("ILK")
	assert.Equal(t, 2, g.MatchedCount())

	// matches stringified non-text cells too
	g.SetGlobalFilter("40")
	assert.Equal(t, []string{"Rice"}, names(g.VisibleRows()))

	g.SetGlobalFilter("")
	assert.Equal(t, len(testItems()), g.MatchedCount())
}

func TestToggleSortCyclesAscDescNone(t *testing.T) {
	g := New(itemColumns())
	g.SetRows(testItems())

	g.ToggleSort("name")
	require.NotNil(t, g.Sorting())
	assert.Equal(t, "name", g.Sorting().Column)
	assert.False(t, g.Sorting().Desc)

	g.ToggleSort("name")
	assert.True(t, g.Sorting().Desc)

	g.ToggleSort("name")
	assert.Nil(t, g.Sorting())

	// toggling a different column restarts the cycle ascending
	g.ToggleSort("name")
	g.ToggleSort("quantity")
	require.NotNil(t, g.Sorting())
	assert.Equal(t, "quantity", g.Sorting().Column)
	assert.False(t, g.Sorting().Desc)
}

func TestSortOrdersNumbersNumericallyAndTimesChronologically(t *testing.T) {
	g := New(itemColumns(), WithPageSize[item](10))
	g.SetRows(testItems())

	g.SetSort("quantity", true)
	assert.Equal(t, []string{"Rice", "Milk", "Butter", "Olive oil", "Flour", "milkshake mix"}, names(g.VisibleRows()))

	g.SetSort("added", false)
	assert.Equal(t, "Flour", g.VisibleRows()[0].Name)
	assert.Equal(t, "Olive oil", g.VisibleRows()[5].Name)

	// string sort ignores case
	g.SetSort("name", false)
	assert.Equal(t, []string{"Butter", "Flour", "Milk", "milkshake mix", "Olive oil", "Rice"}, names(g.VisibleRows()))
}

func TestSetPageSizeKeepsPageIndex(t *testing.T) {
	g := New(itemColumns(), WithPageSize[item](2))
	g.SetRows(testItems())

	g.SetPage(2)
	g.SetPageSize(3)
	assert.Equal(t, 2, g.Page().Index)
	assert.Equal(t, 3, g.Page().Size)

	// page 2 of size 3 over 6 rows is past the end
	assert.Empty(t, g.VisibleRows())
	assert.Equal(t, 2, g.PageCount())
}

func TestHideRulesFollowContainerWidth(t *testing.T) {
	rules := []HideRule{
		{Below: 640, Columns: []string{"added"}},
		{Below: 480, Columns: []string{"unit", "quantity"}},
	}
	g := New(itemColumns(), WithHideRules[item](rules))
	g.SetRows(testItems())

	// unknown width hides nothing
	assert.Len(t, g.VisibleColumns(), 4)

	g.SetContainerWidth(800)
	assert.Len(t, g.VisibleColumns(), 4)

	g.SetContainerWidth(600)
	assert.False(t, g.IsColumnVisible("added"))
	assert.True(t, g.IsColumnVisible("unit"))

	g.SetContainerWidth(400)
	assert.Len(t, g.VisibleColumns(), 1)
	assert.True(t, g.IsColumnVisible("name"))

	// manual visibility still applies on top
	g.SetContainerWidth(800)
	g.SetColumnVisibility("name", false)
	assert.False(t, g.IsColumnVisible("name"))
	g.SetColumnVisibility("name", true)
	assert.True(t, g.IsColumnVisible("name"))
}

func TestRowSelection(t *testing.T) {
	g := New(itemColumns())
	g.SetRows(testItems())

	g.ToggleRowSelection(4)
	g.ToggleRowSelection(1)
	assert.Equal(t, []string{"Flour", "milkshake mix"}, names(g.SelectedRows()))

	g.ToggleRowSelection(1)
	assert.Equal(t, []string{"milkshake mix"}, names(g.SelectedRows()))

	// out-of-range indexes are ignored
	g.ToggleRowSelection(-1)
	g.ToggleRowSelection(99)
	assert.Len(t, g.SelectedRows(), 1)

	// replacing the dataset drops the selection
	g.SetRows(testItems()[:2])
	assert.Empty(t, g.SelectedRows())
}

func TestLoadingGridShowsSkeletonInsteadOfRows(t *testing.T) {
	g := New(itemColumns())
	g.SetRows(testItems())

	g.Loading = true
	assert.Nil(t, g.VisibleRows())
	assert.Equal(t, 3, SkeletonRowCount)

	g.Loading = false
	assert.NotEmpty(t, g.VisibleRows())
}

func TestColumnFilterKinds(t *testing.T) {
	f := &Filter{Kind: FilterEquals}
	assert.True(t, f.Matches("Liter", "Liter"))
	assert.False(t, f.Matches("Kilogram", "Liter"))
	assert.True(t, f.Matches("Kilogram", ""))     // empty commit matches all
	assert.True(t, f.Matches("Kilogram", 42))     // wrong shape matches all

	f = &Filter{Kind: FilterIncludes}
	assert.True(t, f.Matches("Liter", []string{"Liter", "Gallon"}))
	assert.False(t, f.Matches("Pound", []string{"Liter", "Gallon"}))
	assert.True(t, f.Matches("Pound", []string{}))

	f = &Filter{Kind: FilterBool}
	assert.True(t, f.Matches(true, true))
	assert.False(t, f.Matches(false, true))
	assert.True(t, f.Matches("not a bool", true))
}

func TestClearingColumnFilterRestoresAllRows(t *testing.T) {
	g := New(itemColumns(), WithPageSize[item](10))
	g.SetRows(testItems())

	g.SetColumnFilter("unit", []string{"Liter"})
	assert.Equal(t, 2, g.MatchedCount())

	g.SetColumnFilter("unit", nil)
	assert.Equal(t, len(testItems()), g.MatchedCount())
}
