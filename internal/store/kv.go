package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	kvTable           = "kv"
	kvColumnName      = "name"
	kvColumnValue     = "value"
	kvColumnUpdatedAt = "updated_at"
)

// KV is a string key-value table stored in SQLite.
type KV struct {
	drv *entsql.Driver
}

// Get returns the value stored under key. ok is false when the key is absent.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(kvColumnValue).
		From(entsql.Table(kvTable)).
		Where(entsql.EQ(kvColumnName, key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := k.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("query %q: %w", key, err)
		}
		return "", false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (k *KV) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns(kvColumnName, kvColumnValue, kvColumnUpdatedAt).
		Values(key, value, now).
		OnConflict(
			entsql.ConflictColumns(kvColumnName),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := k.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written. ok is false when the key is absent.
func (k *KV) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(kvColumnUpdatedAt).
		From(entsql.Table(kvTable)).
		Where(entsql.EQ(kvColumnName, key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := k.drv.Query(ctx, query, args, &rows); err != nil {
		return time.Time{}, false, fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return time.Time{}, false, rows.Err()
	}
	var raw string
	if err := rows.Scan(&raw); err != nil {
		return time.Time{}, false, fmt.Errorf("scan %q: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse timestamp for %q: %w", key, err)
	}
	return t, true, nil
}
