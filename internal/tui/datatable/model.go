// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package datatable is a generic sortable, paginated, optionally searchable
// and multi-selectable table component. It owns only view state (page, sort,
// search text, cursor); rows, filtering, selection and all mutations belong
// to the embedding view. The displayed window is recomputed from the current
// data on every render: stable sort, then page slice.
package datatable

import (
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// DefaultPageSize is the rows-per-page default when no option overrides it.
const DefaultPageSize = 20

// Model is the table component, generic over the row type T and the
// comparable row-identity type K.
type Model[T any, K comparable] struct {
	columns  []Column[T]
	data     []T
	identity func(T) K

	pageSize int
	page     int // 1-based
	sortKey  string
	sortDir  Direction

	cursor   int // row offset within the current page
	focusCol int // column focus for sort toggling

	searchable bool
	searching  bool
	search     textinput.Model
	onSearch   func(string)

	selectable  bool
	selected    map[K]bool
	onSelection func(map[K]bool)

	onActivate func(T)

	loading      bool
	spinner      spinner.Model
	emptyMessage string
	status       string

	width int
	keys  KeyMap
}

// Option configures a Model at construction time.
type Option[T any, K comparable] func(*Model[T, K])

// WithColumns sets the rendered columns, left to right.
func WithColumns[T any, K comparable](cols []Column[T]) Option[T, K] {
	return func(m *Model[T, K]) { m.columns = cols }
}

// WithData sets the initial row set.
func WithData[T any, K comparable](rows []T) Option[T, K] {
	return func(m *Model[T, K]) { m.data = rows }
}

// WithPageSize overrides the default page size. Non-positive values are
// ignored.
func WithPageSize[T any, K comparable](n int) Option[T, K] {
	return func(m *Model[T, K]) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// WithEmptyMessage sets the text shown instead of an empty body.
func WithEmptyMessage[T any, K comparable](msg string) Option[T, K] {
	return func(m *Model[T, K]) { m.emptyMessage = msg }
}

// WithSearch enables the search input. Every keystroke forwards the full
// current query through onSearch; the table itself never filters. A nil
// onSearch leaves the input inert.
func WithSearch[T any, K comparable](onSearch func(string)) Option[T, K] {
	return func(m *Model[T, K]) {
		m.searchable = true
		m.onSearch = onSearch
	}
}

// WithSelection enables row selection. selected is the caller-owned set;
// the table renders it and emits whole replacement sets through onChange,
// never mutating the caller's map in place.
func WithSelection[T any, K comparable](selected map[K]bool, onChange func(map[K]bool)) Option[T, K] {
	return func(m *Model[T, K]) {
		m.selectable = true
		m.selected = selected
		m.onSelection = onChange
	}
}

// WithOnActivate sets the callback for enter on a body row. It has no
// effect on table state.
func WithOnActivate[T any, K comparable](fn func(T)) Option[T, K] {
	return func(m *Model[T, K]) { m.onActivate = fn }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap[T any, K comparable](km KeyMap) Option[T, K] {
	return func(m *Model[T, K]) { m.keys = km }
}

// New builds a table. identity maps a row to its stable ID; selection and
// clipboard copy operate on these IDs so re-fetched row values keep their
// identity.
func New[T any, K comparable](identity func(T) K, opts ...Option[T, K]) Model[T, K] {
	in := textinput.New()
	in.Prompt = "/"
	in.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model[T, K]{
		identity: identity,
		pageSize: DefaultPageSize,
		page:     1,
		search:   in,
		spinner:  sp,
		keys:     DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.selected == nil {
		m.selected = map[K]bool{}
	}
	return m
}

// SetData replaces the row set and clamps the page and cursor to the new
// bounds. Sort and search state survive, matching prop updates on a mounted
// component.
func (m *Model[T, K]) SetData(rows []T) {
	m.data = rows
	m.clamp()
}

// SetSelected replaces the rendered selection set after the owner changed
// it out of band.
func (m *Model[T, K]) SetSelected(selected map[K]bool) {
	if selected == nil {
		selected = map[K]bool{}
	}
	m.selected = selected
}

// ClearSearch leaves search mode and clears the query. A non-empty query is
// a change, so it is forwarded through onSearch like any keystroke.
func (m *Model[T, K]) ClearSearch() {
	m.searching = false
	m.search.Blur()
	if m.search.Value() != "" {
		m.search.SetValue("")
		m.fireSearch()
	}
}

// SetLoading toggles the loading mode. Page, sort and search state are
// preserved underneath.
func (m *Model[T, K]) SetLoading(v bool) {
	m.loading = v
}

// Loading reports whether the table is in loading mode.
func (m Model[T, K]) Loading() bool { return m.loading }

// Page returns the current 1-based page number.
func (m Model[T, K]) Page() int { return m.page }

// PageSize returns the rows-per-page limit.
func (m Model[T, K]) PageSize() int { return m.pageSize }

// TotalPages returns ceil(len(data)/pageSize), minimum 1.
func (m Model[T, K]) TotalPages() int {
	if len(m.data) == 0 {
		return 1
	}
	return (len(m.data) + m.pageSize - 1) / m.pageSize
}

// SearchQuery returns the current search input value.
func (m Model[T, K]) SearchQuery() string { return m.search.Value() }

// Searching reports whether the search input has focus.
func (m Model[T, K]) Searching() bool { return m.searching }

// SortState returns the active sort column key and direction; ok is false
// when no sort is active.
func (m Model[T, K]) SortState() (key string, dir Direction, ok bool) {
	return m.sortKey, m.sortDir, m.sortKey != ""
}

// Selected returns the selection set the table currently renders.
func (m Model[T, K]) Selected() map[K]bool { return m.selected }

// sortedRows returns a freshly sorted copy of the data. Without an active
// sort, or when the sort column has no accessor, the caller's order is
// preserved as-is.
func (m Model[T, K]) sortedRows() []T {
	rows := make([]T, len(m.data))
	copy(rows, m.data)
	if m.sortKey == "" {
		return rows
	}
	col, ok := m.columnByKey(m.sortKey)
	if !ok || col.Accessor == nil {
		return rows
	}
	desc := m.sortDir == Descending
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := col.Accessor(rows[i]), col.Accessor(rows[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return rows
}

// VisibleRows returns the sorted window for the current page.
func (m Model[T, K]) VisibleRows() []T {
	rows := m.sortedRows()
	start := (m.page - 1) * m.pageSize
	if start >= len(rows) {
		return nil
	}
	end := start + m.pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// CursorRow returns the row under the cursor, if any.
func (m Model[T, K]) CursorRow() (T, bool) {
	var zero T
	visible := m.VisibleRows()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return zero, false
	}
	return visible[m.cursor], true
}

func (m Model[T, K]) columnByKey(key string) (Column[T], bool) {
	for _, c := range m.columns {
		if c.Key == key {
			return c, true
		}
	}
	var zero Column[T]
	return zero, false
}

// clamp forces page and cursor back into their invariant ranges.
func (m *Model[T, K]) clamp() {
	if total := m.TotalPages(); m.page > total {
		m.page = total
	}
	if m.page < 1 {
		m.page = 1
	}
	if visible := len(m.VisibleRows()); m.cursor >= visible {
		m.cursor = visible - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// toggleSort applies the header-click rules to the focused column: same
// column flips direction, a different sortable column becomes active
// ascending, a non-sortable column (or one without an accessor) is a strict
// no-op.
func (m *Model[T, K]) toggleSort() {
	if m.focusCol < 0 || m.focusCol >= len(m.columns) {
		return
	}
	col := m.columns[m.focusCol]
	if !col.Sortable || col.Accessor == nil {
		return
	}
	if m.sortKey == col.Key {
		if m.sortDir == Ascending {
			m.sortDir = Descending
		} else {
			m.sortDir = Ascending
		}
		return
	}
	m.sortKey = col.Key
	m.sortDir = Ascending
}

// gotoPage clamps the target into [1, TotalPages] and resets the cursor
// when the page actually changes.
func (m *Model[T, K]) gotoPage(page int) {
	total := m.TotalPages()
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	if page == m.page {
		return
	}
	m.page = page
	m.cursor = 0
}

// emit hands a replacement selection set to the owner and mirrors it
// locally so the render keeps up before the next prop update.
func (m *Model[T, K]) emit(next map[K]bool) {
	m.selected = next
	if m.onSelection != nil {
		m.onSelection(next)
	}
}

// toggleRow flips the cursor row in a copy of the selection set.
func (m *Model[T, K]) toggleRow() {
	row, ok := m.CursorRow()
	if !ok {
		return
	}
	id := m.identity(row)
	next := make(map[K]bool, len(m.selected)+1)
	for k, v := range m.selected {
		if v {
			next[k] = true
		}
	}
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	m.emit(next)
}

// togglePage implements the select-all control: selecting replaces the set
// with exactly the current page's rows; deselecting clears the whole set,
// current page or not.
func (m *Model[T, K]) togglePage() {
	visible := m.VisibleRows()
	if len(visible) == 0 {
		return
	}
	all := true
	for _, row := range visible {
		if !m.selected[m.identity(row)] {
			all = false
			break
		}
	}
	if all {
		m.emit(map[K]bool{})
		return
	}
	next := make(map[K]bool, len(visible))
	for _, row := range visible {
		next[m.identity(row)] = true
	}
	m.emit(next)
}
