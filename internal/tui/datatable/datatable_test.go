// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package datatable

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type dish struct {
	ID    string
	Name  string
	Price int
}

func dishID(d dish) string { return d.ID }

func testColumns() []Column[dish] {
	return []Column[dish]{
		{Key: "id", Title: "ID", Width: 6, Sortable: true, Accessor: func(d dish) string { return d.ID }},
		{Key: "name", Title: "Name", Width: 16, Sortable: true, Accessor: func(d dish) string { return d.Name }},
		{Key: "price", Title: "Price", Width: 8}, // display falls back to the Price field, never sortable
	}
}

func makeDishes(n int) []dish {
	dishes := make([]dish, 0, n)
	for i := 0; i < n; i++ {
		dishes = append(dishes, dish{
			ID:    fmt.Sprintf("d%03d", i+1),
			Name:  fmt.Sprintf("dish %03d", n-i), // reverse order by name
			Price: 500 + i,
		})
	}
	return dishes
}

func press(t *testing.T, m Model[dish, string], keys ...string) Model[dish, string] {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func ids(rows []dish) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestPagesPartitionData(t *testing.T) {
	data := makeDishes(45)
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](20),
	)

	if got := m.TotalPages(); got != 3 {
		t.Fatalf("expected 3 pages for 45 rows at size 20, got %d", got)
	}

	var all []string
	for page := 1; page <= m.TotalPages(); page++ {
		m.gotoPage(page)
		all = append(all, ids(m.VisibleRows())...)
	}
	if len(all) != len(data) {
		t.Fatalf("concatenated pages have %d rows, want %d", len(all), len(data))
	}
	seen := map[string]bool{}
	for _, id := range all {
		if seen[id] {
			t.Fatalf("row %s appeared on more than one page", id)
		}
		seen[id] = true
	}
}

func TestSortToggleRestoresOrder(t *testing.T) {
	data := makeDishes(10)
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](20),
	)

	// Focus the "name" column and sort ascending.
	m = press(t, m, "l", "o")
	if key, dir, ok := m.SortState(); !ok || key != "name" || dir != Ascending {
		t.Fatalf("expected ascending sort on name, got key=%q dir=%v ok=%v", key, dir, ok)
	}
	asc := ids(m.VisibleRows())
	if asc[0] != "d010" { // names were generated in reverse
		t.Fatalf("ascending name sort should put d010 first, got %v", asc[0])
	}

	// Toggle to descending.
	m = press(t, m, "o")
	if _, dir, _ := m.SortState(); dir != Descending {
		t.Fatalf("second toggle should sort descending, got %v", dir)
	}
	desc := ids(m.VisibleRows())
	if desc[0] != "d001" {
		t.Fatalf("descending name sort should put d001 first, got %v", desc[0])
	}

	// Toggle back to ascending: identical order to the first ascending pass.
	m = press(t, m, "o")
	again := ids(m.VisibleRows())
	for i := range asc {
		if asc[i] != again[i] {
			t.Fatalf("re-ascending order diverged at %d: %s vs %s", i, asc[i], again[i])
		}
	}
}

func TestNonSortableColumnIsNoOp(t *testing.T) {
	data := makeDishes(30)
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](10),
	)
	m.gotoPage(2)

	before := ids(m.VisibleRows())
	// Focus the accessor-less "price" column and try to sort.
	m = press(t, m, "l", "l", "o")

	if key, _, ok := m.SortState(); ok {
		t.Fatalf("sorting a column without an accessor must not activate sort, got %q", key)
	}
	if m.Page() != 2 {
		t.Fatalf("page must not reset on a no-op header toggle, got %d", m.Page())
	}
	after := ids(m.VisibleRows())
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("row order changed on a non-sortable toggle at %d", i)
		}
	}
}

func TestSelectAllScopedToCurrentPage(t *testing.T) {
	data := makeDishes(45)
	var got map[string]bool
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](20),
		WithSelection[dish, string](map[string]bool{}, func(s map[string]bool) { got = s }),
	)
	m.gotoPage(2)

	m = press(t, m, "a")
	if got == nil {
		t.Fatal("select all did not emit a selection")
	}
	if len(got) != 20 {
		t.Fatalf("select all on page 2 of 45 rows should select exactly 20, got %d", len(got))
	}
	for _, row := range m.VisibleRows() {
		if !got[row.ID] {
			t.Fatalf("page 2 row %s missing from selection", row.ID)
		}
	}
}

func TestDeselectAllClearsEverything(t *testing.T) {
	data := makeDishes(45)
	// Rows from page 1 are already selected out of band.
	initial := map[string]bool{"d001": true, "d002": true}
	var got map[string]bool
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](20),
		WithSelection[dish, string](initial, func(s map[string]bool) { got = s }),
	)
	m.gotoPage(2)

	// Select page 2, then uncheck: the whole set empties, page 1 leftovers
	// included.
	m = press(t, m, "a")
	if len(got) != 20 {
		t.Fatalf("expected 20 selected after select-all, got %d", len(got))
	}
	m = press(t, m, "a")
	if len(got) != 0 {
		t.Fatalf("deselect all must clear the entire selection, got %d left", len(got))
	}
	if len(initial) != 2 {
		t.Fatalf("component must not mutate the caller's map, got %d entries", len(initial))
	}
}

func TestRowToggleBuildsReplacementSets(t *testing.T) {
	data := makeDishes(5)
	initial := map[string]bool{"d005": true}
	var got map[string]bool
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithSelection[dish, string](initial, func(s map[string]bool) { got = s }),
	)

	m = press(t, m, "space") // toggles d001 on
	if !got["d001"] || !got["d005"] || len(got) != 2 {
		t.Fatalf("expected {d001,d005}, got %v", got)
	}
	m = press(t, m, "space") // toggles d001 back off
	if got["d001"] || len(got) != 1 {
		t.Fatalf("expected {d005}, got %v", got)
	}
	if !initial["d005"] || len(initial) != 1 {
		t.Fatalf("caller's map was mutated: %v", initial)
	}
	_ = m
}

func TestEmptyDataRendersEmptyMessageWithoutPager(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](nil),
		WithPageSize[dish, string](7),
		WithEmptyMessage[dish, string]("nothing to show"),
	)

	if m.Page() != 1 {
		t.Fatalf("empty table must sit on page 1, got %d", m.Page())
	}
	if m.TotalPages() != 1 {
		t.Fatalf("empty table still has one page container, got %d", m.TotalPages())
	}
	out := m.View()
	if !strings.Contains(out, "nothing to show") {
		t.Fatalf("empty message missing from view:\n%s", out)
	}
	if strings.Contains(out, "page ") {
		t.Fatalf("pager must be omitted entirely on a single page:\n%s", out)
	}
}

func TestSearchForwardsEveryKeystrokeWithoutFiltering(t *testing.T) {
	data := makeDishes(12)
	var calls []string
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithSearch[dish, string](func(q string) { calls = append(calls, q) }),
	)

	m = press(t, m, "/", "p", "h", "o")
	want := []string{"p", "ph", "pho"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d search callbacks, got %d: %v", len(want), len(calls), calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("callback %d: got %q want %q", i, calls[i], want[i])
		}
	}
	if len(m.VisibleRows()) != 12 {
		t.Fatalf("search must never filter internally; %d rows left", len(m.VisibleRows()))
	}

	m = press(t, m, "backspace")
	if calls[len(calls)-1] != "ph" {
		t.Fatalf("backspace should forward the shortened query, got %q", calls[len(calls)-1])
	}

	// Esc clears the query and forwards the empty value once.
	m = press(t, m, "esc")
	if calls[len(calls)-1] != "" {
		t.Fatalf("esc should forward an empty query, got %q", calls[len(calls)-1])
	}
	if m.SearchQuery() != "" {
		t.Fatalf("esc should clear the input, got %q", m.SearchQuery())
	}
}

func TestInertSearchWithoutCallback(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(3)),
		WithSearch[dish, string](nil),
	)
	m = press(t, m, "/", "x", "y")
	if m.SearchQuery() != "xy" {
		t.Fatalf("input should still capture text, got %q", m.SearchQuery())
	}
	if len(m.VisibleRows()) != 3 {
		t.Fatalf("inert search must not change the row set")
	}
}

func TestFirstPageOnFirstPageIsNoOp(t *testing.T) {
	data := makeDishes(45)
	emitted := 0
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](data),
		WithPageSize[dish, string](20),
		WithSelection[dish, string](map[string]bool{}, func(map[string]bool) { emitted++ }),
	)
	m = press(t, m, "j", "j") // move the cursor somewhere non-default

	cursorBefore := m.cursor
	m = press(t, m, "g")
	if m.Page() != 1 {
		t.Fatalf("expected to stay on page 1, got %d", m.Page())
	}
	if m.cursor != cursorBefore {
		t.Fatalf("no-op navigation must not move the cursor: %d -> %d", cursorBefore, m.cursor)
	}
	if emitted != 0 {
		t.Fatalf("no-op navigation fired %d selection callbacks", emitted)
	}
}

func TestPageClampsWhenDataShrinks(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(45)),
		WithPageSize[dish, string](20),
	)
	m.gotoPage(3)
	m.SetData(makeDishes(5))
	if m.Page() != 1 {
		t.Fatalf("page should clamp to 1 after shrink, got %d", m.Page())
	}
	m.SetData(nil)
	if m.Page() != 1 || m.TotalPages() != 1 {
		t.Fatalf("empty data should clamp to page 1 of 1, got %d of %d", m.Page(), m.TotalPages())
	}
}

func TestNavigationClampsAtBoundaries(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(45)),
		WithPageSize[dish, string](20),
	)
	m = press(t, m, "n", "n", "n", "n")
	if m.Page() != 3 {
		t.Fatalf("next past the end should clamp to 3, got %d", m.Page())
	}
	m = press(t, m, "G")
	if m.Page() != 3 {
		t.Fatalf("last page should be 3, got %d", m.Page())
	}
	m = press(t, m, "p", "p", "p", "p")
	if m.Page() != 1 {
		t.Fatalf("prev past the start should clamp to 1, got %d", m.Page())
	}
}

func TestRawFieldDisplayFallback(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string]([]dish{{ID: "d001", Name: "pho", Price: 1250}}),
	)
	out := m.View()
	if !strings.Contains(out, "1250") {
		t.Fatalf("accessor-less column should display the raw field:\n%s", out)
	}
}

func TestActivateInvokesCallbackOnly(t *testing.T) {
	var activated []string
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(3)),
		WithOnActivate[dish, string](func(d dish) { activated = append(activated, d.ID) }),
	)
	m = press(t, m, "j", "enter")
	if len(activated) != 1 || activated[0] != "d002" {
		t.Fatalf("expected activation of d002, got %v", activated)
	}
	if m.Page() != 1 || m.cursor != 1 {
		t.Fatalf("activation must not change view state")
	}
}

func TestLoadingPreservesViewState(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(45)),
	)
	m = press(t, m, "n")

	cmd := m.StartLoading()
	if cmd == nil {
		t.Fatal("StartLoading should return the spinner tick")
	}
	if !m.Loading() {
		t.Fatal("table should report loading")
	}
	if m.Page() != 2 || m.PageSize() != DefaultPageSize {
		t.Fatalf("loading must not disturb paging: page %d size %d", m.Page(), m.PageSize())
	}

	out := m.View()
	if strings.Contains(out, "d021") {
		t.Fatalf("body rows must be suppressed while loading:\n%s", out)
	}

	m.SetLoading(false)
	if !strings.Contains(m.View(), "d021") {
		t.Fatal("page 2 rows should be back after loading ends")
	}
}

func TestSetSelectedReplacesRenderedSet(t *testing.T) {
	m := New(dishID,
		WithColumns[dish, string](testColumns()),
		WithData[dish, string](makeDishes(3)),
		WithSelection[dish, string](map[string]bool{}, func(map[string]bool) {}),
	)
	m = press(t, m, "space")
	if !m.Selected()["d001"] {
		t.Fatalf("selected = %v", m.Selected())
	}

	m.SetSelected(map[string]bool{"d003": true})
	if m.Selected()["d001"] || !m.Selected()["d003"] {
		t.Fatalf("SetSelected should replace the rendered set, got %v", m.Selected())
	}

	m.SetSelected(nil)
	if len(m.Selected()) != 0 {
		t.Fatalf("nil resets to an empty set, got %v", m.Selected())
	}
}
