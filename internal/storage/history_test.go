/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestInitOrOpenHistoryCreatesDatabase(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenHistory(root)
	if err != nil {
		t.Fatalf("InitOrOpenHistory error: %v", err)
	}
	defer func() { _ = db.Close() }()
	if _, err := os.Stat(HistoryPath(root)); err != nil {
		t.Fatalf("history db missing: %v", err)
	}
	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestSaveAndLatestRevision(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, sampleDoc())
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx := context.Background()
	if err := SaveRevision(ctx, ws, `{"version":2,"lines":[]}`, "first", time.Now()); err != nil {
		t.Fatalf("SaveRevision error: %v", err)
	}
	if err := SaveRevision(ctx, ws, `{"version":2,"lines":[{"id":"a","format":"header","content":"X"}]}`, "second", time.Now()); err != nil {
		t.Fatalf("SaveRevision error: %v", err)
	}
	rev, err := LatestRevision(ctx, ws)
	if err != nil {
		t.Fatalf("LatestRevision error: %v", err)
	}
	if rev.Label != "second" || rev.TS.IsZero() {
		t.Fatalf("unexpected latest revision: %+v", rev)
	}
}

func TestLatestRevisionEmptyHistory(t *testing.T) {
	ws, err := Init(t.TempDir(), sampleDoc())
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	rev, err := LatestRevision(context.Background(), ws)
	if err != nil {
		t.Fatalf("LatestRevision error: %v", err)
	}
	if rev.Content != "" || !rev.TS.IsZero() {
		t.Fatalf("expected zero revision, got %+v", rev)
	}
}

func TestListAndPruneRevisions(t *testing.T) {
	ws, err := Init(t.TempDir(), sampleDoc())
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		content := fmt.Sprintf(`{"version":2,"lines":[],"n":%d}`, i)
		if err := SaveRevision(ctx, ws, content, "", time.Now()); err != nil {
			t.Fatalf("SaveRevision %d: %v", i, err)
		}
	}
	revs, err := ListRevisions(ctx, ws, 3)
	if err != nil {
		t.Fatalf("ListRevisions error: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("expected 3 revisions, got %d", len(revs))
	}
	deleted, err := PruneRevisions(ctx, ws, 2)
	if err != nil {
		t.Fatalf("PruneRevisions error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 pruned, got %d", deleted)
	}
	revs, err = ListRevisions(ctx, ws, 10)
	if err != nil {
		t.Fatalf("ListRevisions after prune: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(revs))
	}
}

func TestPruneNoopForNonPositiveKeep(t *testing.T) {
	ws, err := Init(t.TempDir(), sampleDoc())
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	n, err := PruneRevisions(context.Background(), ws, 0)
	if err != nil || n != 0 {
		t.Fatalf("expected noop, got n=%d err=%v", n, err)
	}
}
