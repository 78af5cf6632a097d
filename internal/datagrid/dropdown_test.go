package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDropdownCommitsIntoGrid(t *testing.T) {
	g := New(itemColumns(), WithPageSize[item](10))
	g.SetRows(testItems())

	d := FilterDropdown(g, "unit")
	require.NotNil(t, d)
	assert.Equal(t, "Unit", d.Placeholder)

	d.Open()
	assert.True(t, d.IsOpen())

	d.Select("Kilogram")
	assert.Equal(t, 4, g.MatchedCount())
	assert.Equal(t, "Unit: Kilogram", d.Summary())

	d.Select("Kilogram", "Liter")
	assert.Equal(t, 6, g.MatchedCount())
	assert.Equal(t, "Unit: Kilogram, Liter", d.Summary())

	d.Clear()
	assert.Equal(t, 6, g.MatchedCount())
	assert.Equal(t, "Unit", d.Summary())

	d.Close()
	assert.False(t, d.IsOpen())
}

func TestFilterDropdownNilForColumnsWithoutFilter(t *testing.T) {
	g := New(itemColumns())
	assert.Nil(t, FilterDropdown(g, "name"))
	assert.Nil(t, FilterDropdown(g, "missing"))
}

func TestDropdownSummaryUsesOptionLabels(t *testing.T) {
	cols := []Column[item]{
		{
			ID: "unit", Value: func(r item) any { return r.Unit },
			Filter: &Filter{Kind: FilterEquals, Name: "Unit", Options: []FilterOption{
				{Value: "kg", Label: "Kilogram"},
			}},
		},
	}
	g := New(cols)
	d := FilterDropdown(g, "unit")
	require.NotNil(t, d)

	d.Select("kg")
	assert.Equal(t, "Unit: Kilogram", d.Summary())
}
