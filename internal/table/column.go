// Package table is a client-side data table engine: it filters, sorts and
// paginates a row collection described by column specs and reports user
// interaction through event callbacks.
package table

// ColumnType hints how a column is rendered.
type ColumnType string

// Column types.
const (
	TypeText   ColumnType = "text"
	TypeDate   ColumnType = "date"
	TypeURL    ColumnType = "url"
	TypeNumber ColumnType = "number"
	TypeAction ColumnType = "action"
)

// Column describes one table column. Key is a dotted path into the row.
type Column struct {
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Sortable bool       `json:"sortable,omitempty"`
	Type     ColumnType `json:"type,omitempty"`
	Width    string     `json:"width,omitempty"`
}

// Direction is a sort direction. None restores the unsorted order.
type Direction string

// Sort directions.
const (
	None Direction = ""
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// next cycles none → asc → desc → none.
func (d Direction) next() Direction {
	switch d {
	case Asc:
		return Desc
	case Desc:
		return None
	default:
		return Asc
	}
}

// SortEvent is emitted after every sort click on a sortable column.
type SortEvent struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// FilterEvent is emitted when a debounced search runs.
type FilterEvent struct {
	Term string `json:"term"`
}

// PaginationEvent is emitted when the page or the page size changes.
type PaginationEvent struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// RowActionEvent is emitted for host-defined per-row operations.
type RowActionEvent[T any] struct {
	Action string
	Row    T
}

// Events are the callbacks an Engine reports to. Nil callbacks are skipped.
// Callbacks run outside the engine lock and may call back into the engine.
type Events[T any] struct {
	Sort       func(SortEvent)
	Filter     func(FilterEvent)
	RowClick   func(T)
	RowAction  func(RowActionEvent[T])
	Pagination func(PaginationEvent)
}
