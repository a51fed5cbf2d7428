/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"screenwright/internal/screenplay"
)

func openPGForTest(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("SWR_PG_DSN")
	if dsn == "" {
		t.Skip("SWR_PG_DSN not set; skipping archive integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func archiveDoc() *screenplay.Document {
	d := screenplay.New()
	d.InsertLineAt(0, screenplay.Snapshot{Format: screenplay.FormatHeader, Content: "INT. LIGHTHOUSE - NIGHT"})
	d.InsertLineAt(1, screenplay.Snapshot{Format: screenplay.FormatAction, Content: "The beacon sweeps the waves."})
	d.InsertLineAt(2, screenplay.Snapshot{Format: screenplay.FormatDialog, Content: "Nobody sails tonight."})
	return d
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("empty DSN must error")
	}
}

func TestPushPullSearch(t *testing.T) {
	db := openPGForTest(t)
	ctx := context.Background()
	slug := fmt.Sprintf("it-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM screenplays WHERE slug = $1`, slug)
	})

	doc := archiveDoc()
	if err := Push(ctx, db, slug, doc); err != nil {
		t.Fatalf("Push error: %v", err)
	}

	got, err := Pull(ctx, db, slug)
	if err != nil {
		t.Fatalf("Pull error: %v", err)
	}
	if got.ToStorageString() != doc.ToStorageString() {
		t.Fatalf("mirror round trip mismatch")
	}

	hits, err := Search(ctx, db, "beacon", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	found := false
	for _, h := range hits {
		if h.Slug == slug {
			found = true
			if h.Snippet == "" {
				t.Fatalf("expected highlighted snippet, got empty")
			}
		}
	}
	if !found {
		t.Fatalf("pushed document not found by search")
	}
}

func TestPushUpsertsExistingSlug(t *testing.T) {
	db := openPGForTest(t)
	ctx := context.Background()
	slug := fmt.Sprintf("it-upsert-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM screenplays WHERE slug = $1`, slug)
	})

	doc := archiveDoc()
	if err := Push(ctx, db, slug, doc); err != nil {
		t.Fatalf("first Push error: %v", err)
	}
	doc.InsertLineAt(3, screenplay.Snapshot{Format: screenplay.FormatAction, Content: "A storm rolls in."})
	if err := Push(ctx, db, slug, doc); err != nil {
		t.Fatalf("second Push error: %v", err)
	}
	got, err := Pull(ctx, db, slug)
	if err != nil {
		t.Fatalf("Pull error: %v", err)
	}
	if got.Len() != 4 {
		t.Fatalf("upsert did not replace content, len=%d", got.Len())
	}
}
