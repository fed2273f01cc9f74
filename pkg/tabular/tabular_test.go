package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID    string
	Name  string
	Stock int
}

func testColumns() []Column[testRow] {
	return []Column[testRow]{
		{ID: "name", Header: "Name", Accessor: func(r testRow) any { return r.Name }},
		{ID: "stock", Header: "Stock", Accessor: func(r testRow) any { return r.Stock }},
		{ID: "actions", Header: "Actions", Cell: func(r testRow) string { return "edit" }},
	}
}

func testData() []testRow {
	return []testRow{
		{ID: "r1", Name: "Visiting Cards", Stock: 40},
		{ID: "r2", Name: "flyers", Stock: 5},
		{ID: "r3", Name: "Banners", Stock: 12},
		{ID: "r4", Name: "Stickers", Stock: 5},
	}
}

func newTestTable() *Table[testRow] {
	return New(testColumns(), func(r testRow) string { return r.ID })
}

func TestToggleSortCycle(t *testing.T) {
	tbl := newTestTable()
	data := testData()

	insertion := []string{"r1", "r2", "r3", "r4"}
	assert.Equal(t, insertion, rowIDs(tbl.VisibleRows(data)))

	tbl.ToggleSort("stock")
	asc := tbl.VisibleRows(data)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Stock, asc[i].Stock)
	}
	// stable: r2 before r4 (both stock 5, insertion order)
	assert.Equal(t, []string{"r2", "r4", "r3", "r1"}, rowIDs(asc))

	tbl.ToggleSort("stock")
	desc := tbl.VisibleRows(data)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Stock, desc[i].Stock)
	}

	// third click clears the sort and restores insertion order
	tbl.ToggleSort("stock")
	assert.Equal(t, insertion, rowIDs(tbl.VisibleRows(data)))
	_, sorted := tbl.Sort()
	assert.False(t, sorted)
}

func TestToggleSortReplacesOtherColumn(t *testing.T) {
	tbl := newTestTable()

	tbl.ToggleSort("name")
	tbl.ToggleSort("stock")

	s, ok := tbl.Sort()
	require.True(t, ok)
	assert.Equal(t, "stock", s.ColumnID)
	assert.Equal(t, DirectionAsc, s.Direction)
}

func TestToggleSortIgnoresRenderOnlyColumn(t *testing.T) {
	tbl := newTestTable()
	tbl.ToggleSort("actions")
	_, ok := tbl.Sort()
	assert.False(t, ok)
}

func TestStringSortCaseInsensitive(t *testing.T) {
	tbl := newTestTable()
	tbl.ToggleSort("name")
	got := rowIDs(tbl.VisibleRows(testData()))
	// Banners, flyers, Stickers, Visiting Cards
	assert.Equal(t, []string{"r3", "r2", "r4", "r1"}, got)
}

func TestGlobalFilter(t *testing.T) {
	tbl := newTestTable()
	data := testData()

	tbl.SetGlobalFilter("ERS")
	visible := tbl.VisibleRows(data)

	require.Len(t, visible, 3)
	for _, r := range visible {
		matched := false
		for _, col := range tbl.Columns() {
			if containsFold(tbl.CellText(col, r), "ers") {
				matched = true
			}
		}
		assert.True(t, matched, "visible row %s must contain the query", r.ID)
	}
	assert.NotContains(t, rowIDs(visible), "r1")

	// filter matches stringified numeric cells too
	tbl.SetGlobalFilter("40")
	assert.Equal(t, []string{"r1"}, rowIDs(tbl.VisibleRows(data)))

	// fully filtered out degrades to empty, not an error
	tbl.SetGlobalFilter("no such row")
	assert.Empty(t, tbl.VisibleRows(data))
}

func TestExpansionIndependent(t *testing.T) {
	tbl := newTestTable()

	assert.True(t, tbl.ToggleExpanded("r1"))
	assert.True(t, tbl.ToggleExpanded("r2"))

	// multi-expansion: expanding r2 leaves r1 expanded
	assert.True(t, tbl.Expanded("r1"))
	assert.True(t, tbl.Expanded("r2"))
	assert.Equal(t, []string{"r1", "r2"}, tbl.ExpandedIDs())

	assert.False(t, tbl.ToggleExpanded("r1"))
	assert.False(t, tbl.Expanded("r1"))
	assert.True(t, tbl.Expanded("r2"))

	// expansion survives sort and filter changes
	tbl.ToggleSort("name")
	tbl.SetGlobalFilter("zzz")
	assert.True(t, tbl.Expanded("r2"))
}

func TestVisibleRowsPure(t *testing.T) {
	tbl := newTestTable()
	data := testData()
	tbl.ToggleSort("stock")
	tbl.ToggleSort("stock") // desc

	first := rowIDs(tbl.VisibleRows(data))
	second := rowIDs(tbl.VisibleRows(data))
	assert.Equal(t, first, second)

	// input slice is never reordered
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, rowIDs(data))
}

func TestDegradesToEmpty(t *testing.T) {
	tbl := New[testRow](nil, nil)
	assert.Empty(t, tbl.VisibleRows(testData()))

	tbl2 := newTestTable()
	assert.Empty(t, tbl2.VisibleRows(nil))
	assert.Equal(t, "", tbl2.RowID(testRow{}))
}

func TestCellText(t *testing.T) {
	tbl := newTestTable()
	row := testRow{ID: "r9", Name: "Posters", Stock: 7}

	cols := tbl.Columns()
	assert.Equal(t, "Posters", tbl.CellText(cols[0], row))
	assert.Equal(t, "7", tbl.CellText(cols[1], row))
	assert.Equal(t, "edit", tbl.CellText(cols[2], row))

	blank := Column[testRow]{ID: "blank"}
	assert.Equal(t, "", tbl.CellText(blank, row))
}

func rowIDs(rows []testRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
