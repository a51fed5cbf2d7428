/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"strings"
	"testing"
)

func threeLineDoc() *Document {
	d := New()
	d.InsertLineAt(0, Snapshot{ID: "a", Format: FormatHeader, Content: "INT. ROOM"})
	d.InsertLineAt(1, Snapshot{ID: "b", Format: FormatAction, Content: "She walks in."})
	d.InsertLineAt(2, Snapshot{ID: "c", Format: FormatDialog, Content: "Hello."})
	return d
}

func TestInsertLineAtClampsAndIndexes(t *testing.T) {
	d := New()
	l1 := d.InsertLineAt(99, Snapshot{Format: FormatAction, Content: "one"})
	if d.Len() != 1 || d.IndexOf(l1.ID) != 0 {
		t.Fatalf("clamped insert failed: len=%d idx=%d", d.Len(), d.IndexOf(l1.ID))
	}
	l2 := d.InsertLineAt(-5, Snapshot{Format: FormatAction, Content: "zero"})
	if d.IndexOf(l2.ID) != 0 || d.IndexOf(l1.ID) != 1 {
		t.Fatalf("negative insert not clamped to front")
	}
	if l1.ID == "" || l2.ID == "" || l1.ID == l2.ID {
		t.Fatalf("generated ids must be unique and non-empty: %q %q", l1.ID, l2.ID)
	}
}

func TestInsertLineAfterFallsBackToAppend(t *testing.T) {
	d := threeLineDoc()
	l := d.InsertLineAfter("a", Snapshot{Format: FormatAction, Content: "after a"})
	if d.IndexOf(l.ID) != 1 {
		t.Fatalf("expected insert at 1, got %d", d.IndexOf(l.ID))
	}
	tail := d.InsertLineAfter("no-such-id", Snapshot{Format: FormatAction, Content: "tail"})
	if d.IndexOf(tail.ID) != d.Len()-1 {
		t.Fatalf("unknown id should append, got idx %d", d.IndexOf(tail.ID))
	}
}

func TestRemoveReindexesSuffix(t *testing.T) {
	d := threeLineDoc()
	snap := d.RemoveLineByID("b")
	if snap == nil || snap.Content != "She walks in." {
		t.Fatalf("unexpected removed snapshot: %+v", snap)
	}
	if d.IndexOf("a") != 0 || d.IndexOf("c") != 1 {
		t.Fatalf("index stale after removal: a=%d c=%d", d.IndexOf("a"), d.IndexOf("c"))
	}
	if d.LineByID("b") != nil || d.IndexOf("b") != -1 {
		t.Fatalf("removed line still resolvable")
	}
	if d.RemoveLineByIndex(42) != nil {
		t.Fatalf("out-of-range removal must return nil")
	}
}

func TestUpdateLineCoercesFormatAndSkipsNoops(t *testing.T) {
	d := threeLineDoc()
	d.ToStorageString() // prime the cache

	// no-op write must not invalidate the cache
	content := "She walks in."
	if l := d.UpdateLine("b", LineUpdate{Content: &content}); l == nil {
		t.Fatalf("update of existing line returned nil")
	}
	if d.dirty {
		t.Fatalf("no-op update invalidated the cache")
	}

	bogus := "not-a-format"
	d.UpdateLine("b", LineUpdate{Format: &bogus})
	if got := d.LineByID("b").Format; got != DefaultFormat {
		t.Fatalf("invalid format not coerced: %q", got)
	}
	if d.UpdateLine("missing", LineUpdate{}) != nil {
		t.Fatalf("update of unknown id must return nil")
	}
}

func TestReplaceRangeCollapsesInclusive(t *testing.T) {
	d := threeLineDoc()
	l := d.ReplaceRange(0, 1, Snapshot{Format: FormatAction, Content: "merged"})
	if l == nil {
		t.Fatalf("valid range rejected")
	}
	if d.Len() != 2 || d.IndexOf(l.ID) != 0 || d.IndexOf("c") != 1 {
		t.Fatalf("replace left wrong layout: len=%d", d.Len())
	}
	if d.LineByID("a") != nil || d.LineByID("b") != nil {
		t.Fatalf("replaced lines still indexed")
	}
	if d.ReplaceRange(2, 1, Snapshot{}) != nil {
		t.Fatalf("start after end must be rejected")
	}
}

func TestReplaceRangeClampsEnd(t *testing.T) {
	d := threeLineDoc()
	if l := d.ReplaceRange(1, 99, Snapshot{Format: FormatAction, Content: "rest"}); l == nil {
		t.Fatalf("clamped range rejected")
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", d.Len())
	}
}

func TestEnsureNotEmpty(t *testing.T) {
	d := New()
	l := d.EnsureNotEmpty()
	if l == nil || d.Len() != 1 {
		t.Fatalf("liveness line not inserted")
	}
	if l.Format != DefaultFormat || l.Content != "" {
		t.Fatalf("liveness line must be empty default format, got %q %q", l.Format, l.Content)
	}
	if d.EnsureNotEmpty() != nil {
		t.Fatalf("non-empty document must not gain lines")
	}
}

func TestToStorageStringCachesUntilMutation(t *testing.T) {
	d := threeLineDoc()
	s1 := d.ToStorageString()
	if !strings.HasPrefix(s1, `{"version":2,"lines":[`) {
		t.Fatalf("unexpected storage prefix: %s", s1)
	}
	if s2 := d.ToStorageString(); s2 != s1 {
		t.Fatalf("cached read changed: %s vs %s", s1, s2)
	}
	d.InsertLineAt(0, Snapshot{Format: FormatTransition, Content: "CUT TO:"})
	if s3 := d.ToStorageString(); s3 == s1 {
		t.Fatalf("mutation did not invalidate cache")
	}
}

func TestRoundTripPreservesSequence(t *testing.T) {
	d := threeLineDoc()
	re := FromStorage(d.ToStorageString())
	a, b := d.Snapshots(), re.Snapshots()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, a[i], b[i])
		}
	}
	if d.ToStorageString() != re.ToStorageString() {
		t.Fatalf("storage strings differ after round trip")
	}
}

func TestToPlainTextIsLossy(t *testing.T) {
	d := threeLineDoc()
	want := "INT. ROOM\nShe walks in.\nHello."
	if got := d.ToPlainText(); got != want {
		t.Fatalf("plain text = %q, want %q", got, want)
	}
}

func TestRenderListOrder(t *testing.T) {
	d := threeLineDoc()
	rl := d.RenderList()
	if len(rl) != 3 || rl[0].ID != "a" || rl[1].Format != "action" || rl[2].Content != "Hello." {
		t.Fatalf("render list wrong: %+v", rl)
	}
}

func TestEmptyDocumentSerializesEmptyLines(t *testing.T) {
	d := New()
	if got := d.ToStorageString(); got != `{"version":2,"lines":[]}` {
		t.Fatalf("empty storage string = %s", got)
	}
}

func TestDuplicateIDOnInsertGetsFreshIdentity(t *testing.T) {
	d := threeLineDoc()
	l := d.InsertLineAt(3, Snapshot{ID: "a", Format: FormatAction, Content: "dup"})
	if l.ID == "a" {
		t.Fatalf("duplicate id was not replaced")
	}
	if d.IndexOf("a") != 0 {
		t.Fatalf("original line displaced from index")
	}
}
