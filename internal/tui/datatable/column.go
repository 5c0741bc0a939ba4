// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

// Column describes how one table column renders and sorts. Key must be
// unique within a table. Accessor is an optional pure formatter; when nil,
// display falls back to the row field matching Key, but the column cannot
// be sorted (sorting never falls back to raw field access).
type Column[T any] struct {
	Key      string
	Title    string
	Width    int
	Sortable bool
	Accessor func(T) string
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// cellValue resolves the display string for a row under this column.
func (c Column[T]) cellValue(row T) string {
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return rawField(row, c.Key)
}

// rawField looks up an exported struct field by case-insensitive name and
// formats it with %v. Unknown fields and non-struct rows render empty, the
// same way a missing property renders in the column's absence.
func rawField(row any, key string) string {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if strings.EqualFold(f.Name, key) {
			return fmt.Sprintf("%v", v.Field(i).Interface())
		}
	}
	return ""
}

// displayWidth is the effective column width: the hint when given,
// otherwise enough for the title with a small floor.
func (c Column[T]) displayWidth() int {
	if c.Width > 0 {
		return c.Width
	}
	w := len([]rune(c.Title))
	if w < 8 {
		w = 8
	}
	return w
}
