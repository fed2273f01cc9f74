// Package tabular renders arbitrary row data as a sortable, filterable,
// expandable table without per-entity table code. It owns only view state
// (sort, global filter, expansion); row data is passed in on every call and
// never mutated.
package tabular

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Direction string

const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Column describes one column of a table over rows of type T.
// A column with an Accessor is sortable; a column defined only by a
// custom Cell renderer is not.
type Column[T any] struct {
	ID       string
	Header   string
	Accessor func(T) any
	Cell     func(T) string
}

func (c Column[T]) Sortable() bool { return c.Accessor != nil }

type Sort struct {
	ColumnID  string
	Direction Direction
}

// Table holds the session-local view state for one table instance.
// Sort state is a list (multi-key capable) but ToggleSort replaces any
// prior sort on other columns: single-column cycling is what the UI wires.
type Table[T any] struct {
	columns []Column[T]
	rowID   func(T) string

	sorts        []Sort
	globalFilter string
	expanded     map[string]struct{}
}

func New[T any](columns []Column[T], rowID func(T) string) *Table[T] {
	return &Table[T]{
		columns:  columns,
		rowID:    rowID,
		expanded: map[string]struct{}{},
	}
}

func (t *Table[T]) Columns() []Column[T] { return t.columns }

func (t *Table[T]) column(id string) (Column[T], bool) {
	for _, c := range t.columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// ToggleSort cycles the named column through unsorted -> asc -> desc ->
// unsorted. Sorting a different column drops the prior sort. Columns
// without an accessor are ignored.
func (t *Table[T]) ToggleSort(columnID string) {
	col, ok := t.column(columnID)
	if !ok || !col.Sortable() {
		return
	}
	if len(t.sorts) == 1 && t.sorts[0].ColumnID == columnID {
		switch t.sorts[0].Direction {
		case DirectionAsc:
			t.sorts[0].Direction = DirectionDesc
		default:
			t.sorts = nil
		}
		return
	}
	t.sorts = []Sort{{ColumnID: columnID, Direction: DirectionAsc}}
}

// SetSort replaces the sort state outright, e.g. when restoring state from
// request query params. DirectionNone clears it.
func (t *Table[T]) SetSort(columnID string, dir Direction) {
	col, ok := t.column(columnID)
	if !ok || !col.Sortable() || dir == DirectionNone {
		t.sorts = nil
		return
	}
	t.sorts = []Sort{{ColumnID: columnID, Direction: dir}}
}

func (t *Table[T]) Sort() (Sort, bool) {
	if len(t.sorts) == 0 {
		return Sort{}, false
	}
	return t.sorts[0], true
}

func (t *Table[T]) SetGlobalFilter(q string) { t.globalFilter = q }
func (t *Table[T]) GlobalFilter() string     { return t.globalFilter }

// ToggleExpanded flips the expansion state of a row and reports the new
// state. Expansion is per row id: expanding one row never collapses another.
func (t *Table[T]) ToggleExpanded(rowID string) bool {
	if _, ok := t.expanded[rowID]; ok {
		delete(t.expanded, rowID)
		return false
	}
	t.expanded[rowID] = struct{}{}
	return true
}

func (t *Table[T]) Expand(rowID string) { t.expanded[rowID] = struct{}{} }

func (t *Table[T]) Expanded(rowID string) bool {
	_, ok := t.expanded[rowID]
	return ok
}

func (t *Table[T]) ExpandedIDs() []string {
	ids := lo.Keys(t.expanded)
	sort.Strings(ids)
	return ids
}

func (t *Table[T]) CollapseAll() { t.expanded = map[string]struct{}{} }

// RowID resolves the identifier used for expansion state.
func (t *Table[T]) RowID(row T) string {
	if t.rowID == nil {
		return ""
	}
	return t.rowID(row)
}

// VisibleRows applies the current filter and sort to data and returns the
// resulting order. Pure with respect to data: the input slice is never
// reordered, and identical inputs yield identical output. With no sort set
// the insertion order is preserved.
func (t *Table[T]) VisibleRows(data []T) []T {
	if len(data) == 0 || len(t.columns) == 0 {
		return nil
	}

	rows := make([]T, len(data))
	copy(rows, data)

	if q := strings.ToLower(strings.TrimSpace(t.globalFilter)); q != "" {
		rows = lo.Filter(rows, func(row T, _ int) bool {
			return t.rowMatches(row, q)
		})
	}

	// Least-significant key first; stable sort keeps ties in insertion order.
	for i := len(t.sorts) - 1; i >= 0; i-- {
		s := t.sorts[i]
		col, ok := t.column(s.ColumnID)
		if !ok || !col.Sortable() {
			continue
		}
		desc := s.Direction == DirectionDesc
		sort.SliceStable(rows, func(a, b int) bool {
			cmp := compareValues(col.Accessor(rows[a]), col.Accessor(rows[b]))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return rows
}

func (t *Table[T]) rowMatches(row T, loweredQuery string) bool {
	for _, col := range t.columns {
		if strings.Contains(strings.ToLower(t.CellText(col, row)), loweredQuery) {
			return true
		}
	}
	return false
}

// CellText renders one cell to its display string: the custom Cell renderer
// when present, otherwise the formatted accessor value. A column with
// neither renders blank rather than failing.
func (t *Table[T]) CellText(col Column[T], row T) string {
	if col.Cell != nil {
		return col.Cell(row)
	}
	if col.Accessor != nil {
		return formatValue(col.Accessor(row))
	}
	return ""
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04")
	default:
		return fmt.Sprint(v)
	}
}

func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case bb:
				return -1
			default:
				return 1
			}
		}
	}

	return strings.Compare(
		strings.ToLower(formatValue(a)),
		strings.ToLower(formatValue(b)),
	)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
