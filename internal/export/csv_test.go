// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func sampleTable() Table {
	return Table{
		Headers: []string{"id", "restaurant", "total"},
		Rows: [][]string{
			{"ord-1", "Luigi", "EUR 12.50"},
			{"ord-2", "Momo, Noodles & More", "EUR 8.90"},
		},
	}
}

func TestWriteQuotesAwkwardFields(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleTable()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "id,restaurant,total\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, `"Momo, Noodles & More"`) {
		t.Fatalf("comma field not quoted: %q", out)
	}
}

func TestWriteFilePlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "ord-2") {
		t.Fatalf("missing row in file: %q", data)
	}
}

func TestWriteFileCompressesZst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv.zst")
	if err := WriteFile(path, sampleTable()); err != nil {
		t.Fatalf("write file: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("not a zstd stream: %v", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,restaurant,total\n") {
		t.Fatalf("decompressed payload wrong: %q", data)
	}
}
