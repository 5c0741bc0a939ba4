// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

// Package query is the data-fetching layer behind the consoles: a
// read-through cache over the backend API with a persisted snapshot store,
// so a console can still render the last good payload when the backend is
// unreachable.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSnapshot is returned when no persisted payload exists for a key.
var ErrNoSnapshot = errors.New("no snapshot for key")

// snapshotRow is the bun mapping for one cached payload.
type snapshotRow struct {
	bun.BaseModel `bun:"table:snapshots"`
	Key           string    `bun:"key,pk"`
	Payload       []byte    `bun:"payload"`
	FetchedAt     time.Time `bun:"fetched_at"`
}

// SnapshotStore persists the last good payload per query key in SQLite.
type SnapshotStore struct {
	sql *sql.DB
	bun *bun.DB
}

// OpenSnapshotStore opens (and if needed creates) the snapshot database at
// the given path. The parent directory is created on demand.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create cache directory %s: %w", dir, err)
		}
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store %s: %w", path, err)
	}
	s := &SnapshotStore{
		sql: sqlDB,
		bun: bun.NewDB(sqlDB, sqlitedialect.New()),
	}
	if _, err := s.bun.NewCreateTable().
		Model((*snapshotRow)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return s, nil
}

// Put stores or replaces the payload for a key.
func (s *SnapshotStore) Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	row := &snapshotRow{Key: key, Payload: payload, FetchedAt: fetchedAt.UTC()}
	_, err := s.bun.NewInsert().
		Model(row).
		On("CONFLICT (key) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("fetched_at = EXCLUDED.fetched_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("persist snapshot %q: %w", key, err)
	}
	return nil
}

// Get returns the payload and fetch time for a key, or ErrNoSnapshot.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, time.Time, error) {
	row := new(snapshotRow)
	err := s.bun.NewSelect().Model(row).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrNoSnapshot
		}
		return nil, time.Time{}, fmt.Errorf("read snapshot %q: %w", key, err)
	}
	return row.Payload, row.FetchedAt, nil
}

// DeletePrefix removes all snapshots whose key starts with prefix. An empty
// prefix clears the store.
func (s *SnapshotStore) DeletePrefix(ctx context.Context, prefix string) error {
	_, err := s.bun.NewDelete().
		Model((*snapshotRow)(nil)).
		Where("key LIKE ?", prefix+"%").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete snapshots %q*: %w", prefix, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SnapshotStore) Close() error {
	return s.sql.Close()
}
