// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/campus/internal/platform/database/schema"
	"github.com/taibuivan/campus/internal/platform/postgres"
)

// PostgresStore keeps the session in the client.state table. Keys are
// namespaced with a prefix so one table can hold several consoles.
type PostgresStore struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewPostgresStore creates a PostgreSQL-backed [Storage].
func NewPostgresStore(pool *pgxpool.Pool, prefix string) *PostgresStore {
	return &PostgresStore{pool: pool, prefix: prefix}
}

var (
	queryGetState = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.ClientState.Value, schema.ClientState.Table, schema.ClientState.Key)

	queryUpsertState = fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES ($1, $2, now())
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = EXCLUDED.%[3]s, %[4]s = EXCLUDED.%[4]s`,
		schema.ClientState.Table, schema.ClientState.Key, schema.ClientState.Value, schema.ClientState.UpdatedAt)

	queryDeleteState = fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.ClientState.Table, schema.ClientState.Key)
)

/*
Get retrieves the value stored under key.

Parameters:
  - ctx: context.Context
  - key: string

Returns:
  - string: Stored value
  - error: ErrNotFound or database errors
*/
func (store *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := store.pool.QueryRow(ctx, queryGetState, store.prefix+key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("postgres_session_get_failed: %w", err)
	}
	return value, nil
}

// Set upserts the row for key.
func (store *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := store.pool.Exec(ctx, queryUpsertState, store.prefix+key, value); err != nil {
		return fmt.Errorf("postgres_session_set_failed: %w", err)
	}
	return nil
}

// Delete removes every key in one statement, hence one transaction.
func (store *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = store.prefix + key
	}

	if _, err := store.pool.Exec(ctx, queryDeleteState, prefixed); err != nil {
		return fmt.Errorf("postgres_session_delete_failed: %w", err)
	}
	return nil
}

// Ping implements [Pinger].
func (store *PostgresStore) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, store.pool)
}
