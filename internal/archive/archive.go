/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package archive mirrors screenplay documents into a shared Postgres
// database and offers full-text search over the mirrored copies. The
// archive is strictly optional; the workspace on disk stays canonical.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	applog "screenwright/internal/log"
	"screenwright/internal/screenplay"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// SearchResult is one full-text hit in the archive.
type SearchResult struct {
	Slug      string
	Snippet   string
	UpdatedAt time.Time
}

// Open connects to the archive database and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("archive DSN is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping archive db: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	applog.WithComponent("archive").Info("archive ready")
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS screenplays (
			id            BIGSERIAL PRIMARY KEY,
			slug          TEXT NOT NULL UNIQUE,
			content       TEXT NOT NULL,
			plain_text    TEXT NOT NULL,
			search_vector tsvector GENERATED ALWAYS AS (to_tsvector('simple', plain_text)) STORED,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_screenplays_search ON screenplays USING GIN (search_vector);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure archive schema: %w", err)
		}
	}
	return nil
}

// Push upserts the document under slug, replacing any previous mirror.
func Push(ctx context.Context, db *sql.DB, slug string, doc *screenplay.Document) error {
	if strings.TrimSpace(slug) == "" {
		return errors.New("slug is required")
	}
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `INSERT INTO screenplays (slug, content, plain_text, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (slug) DO UPDATE
		SET content = EXCLUDED.content, plain_text = EXCLUDED.plain_text, updated_at = now()`
	_, err := db.ExecContext(ctx, q, slug, doc.ToStorageString(), doc.ToPlainText())
	if err != nil {
		return fmt.Errorf("push to archive: %w", err)
	}
	applog.WithComponent("archive").Info("document mirrored", slog.String("slug", slug))
	return nil
}

// Pull returns the mirrored document stored under slug.
func Pull(ctx context.Context, db *sql.DB, slug string) (*screenplay.Document, error) {
	var content string
	err := db.QueryRowContext(ctx, `SELECT content FROM screenplays WHERE slug = $1`, slug).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no archived document for slug %q", slug)
	}
	if err != nil {
		return nil, fmt.Errorf("pull from archive: %w", err)
	}
	return screenplay.FromStorage(content), nil
}

// Search runs a full-text query over the mirrored plain texts and returns
// highlighted snippets, newest first.
func Search(ctx context.Context, db *sql.DB, text string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("search text is required")
	}
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT slug,
		COALESCE(ts_headline('simple', plain_text, plainto_tsquery('simple', $1),
			'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '') AS snippet,
		updated_at
		FROM screenplays
		WHERE search_vector @@ plainto_tsquery('simple', $1)
		ORDER BY updated_at DESC, id
		LIMIT $2`
	rows, err := db.QueryContext(ctx, q, text, limit)
	if err != nil {
		return nil, fmt.Errorf("archive search query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Slug, &r.Snippet, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
