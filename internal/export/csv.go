// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export writes table rows out as CSV, optionally zstd-compressed
// when the target filename carries a .zst suffix.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Table is a fully materialized export payload: header labels plus one
// string slice per row, already formatted by the caller's column accessors.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Write emits the table as CSV, header first.
func Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table to path. A path ending in .zst is compressed
// with zstd; anything else is plain CSV.
func WriteFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("init zstd writer: %w", err)
		}
		if err := Write(zw, t); err != nil {
			_ = zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish zstd stream: %w", err)
		}
		return f.Close()
	}

	if err := Write(f, t); err != nil {
		return err
	}
	return f.Close()
}
