// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Cache is a SQLite-backed, TTL-expiring key/value store. Each row is
// `(key PRIMARY KEY, value TEXT NOT NULL, created_at REAL NOT NULL)`,
// The file lives at
// `{cacheDir}/registry_cache.db` and is opened with WAL journal mode so
// concurrent readers never block a writer.
type Cache struct {
	db  *sqlx.DB
	ttl time.Duration
}

// Open creates cacheDir if needed and opens (or creates) the cache
// database inside it.
func Open(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "registry_cache.db")
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at REAL NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache table: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the decoded value for key, or (nil, false) when absent,
// expired, or stored with corrupted JSON. Expired and corrupted rows are
// deleted before returning.
func (c *Cache) Get(key string) (any, bool) {
	var row struct {
		Value     string  `db:"value"`
		CreatedAt float64 `db:"created_at"`
	}

	err := c.db.Get(&row, "SELECT value, created_at FROM cache WHERE key = ?", key)
	if err != nil {
		return nil, false
	}

	if time.Since(time.Unix(0, 0).Add(time.Duration(row.CreatedAt*float64(time.Second)))) > c.ttl {
		c.Delete(key)
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(row.Value), &value); err != nil {
		slog.Warn("corrupted cache entry, removing", slog.String("key", key))
		c.Delete(key)
		return nil, false
	}
	return value, true
}

// Set upserts key with value, JSON-encoded, stamped with the current time.
func (c *Cache) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}

	_, err = c.db.Exec(
		"INSERT INTO cache (key, value, created_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, created_at = excluded.created_at",
		key, string(data), nowSeconds(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Delete removes key from the cache. Deleting a missing key is a no-op.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec("DELETE FROM cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// ClearExpired removes every row older than the configured TTL and
// returns the number of rows removed.
func (c *Cache) ClearExpired() (int, error) {
	cutoff := nowSeconds() - c.ttl.Seconds()
	result, err := c.db.Exec("DELETE FROM cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("clearing expired cache entries: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared cache entries: %w", err)
	}
	return int(affected), nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
