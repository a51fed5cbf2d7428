/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package screenplay implements the ordered-line document model: lines with
// stable identity, an id-to-position index kept in sync through every
// structural mutation, and the storage-string (de)serialization contract.
package screenplay

import (
	"encoding/json"
	"strings"

	"screenwright/internal/render"
)

// StorageVersion is the version stamped into serialized documents.
const StorageVersion = 2

// Document owns an ordered sequence of lines plus an id-to-position index.
// The index is resynchronized from the mutation point forward after every
// structural change; both structures are private so they can never be read
// while inconsistent.
type Document struct {
	lines []*Line
	index map[string]int

	// cached storage string; valid only while dirty is false
	cache string
	dirty bool
}

// New returns an empty document.
func New() *Document {
	return &Document{index: make(map[string]int), dirty: true}
}

// LineUpdate describes a partial in-place line mutation. Nil fields are
// left untouched; format values are re-validated on apply.
type LineUpdate struct {
	Format  *string
	Content *string
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// LineAt returns the line at a 0-based index, or nil when out of range.
func (d *Document) LineAt(i int) *Line {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i]
}

// LineByID resolves a line by id in O(1), or nil on miss.
func (d *Document) LineByID(id string) *Line {
	i, ok := d.index[id]
	if !ok {
		return nil
	}
	return d.lines[i]
}

// IndexOf returns the current 0-based position of a line id, or -1 on miss.
func (d *Document) IndexOf(id string) int {
	i, ok := d.index[id]
	if !ok {
		return -1
	}
	return i
}

// InsertLineAt inserts a line at the given index, clamped into [0, Len].
// A fresh id is generated unless the snapshot carries one. Returns the
// inserted line.
func (d *Document) InsertLineAt(at int, data Snapshot) *Line {
	if at < 0 {
		at = 0
	}
	if at > len(d.lines) {
		at = len(d.lines)
	}
	l := newLine(data)
	if _, taken := d.index[l.ID]; taken {
		l.ID = newLineID()
	}
	d.lines = append(d.lines, nil)
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = l
	d.reindexFrom(at)
	d.dirty = true
	return l
}

// InsertLineAfter inserts after the line with the given id, or appends when
// the id is unknown.
func (d *Document) InsertLineAfter(id string, data Snapshot) *Line {
	if i, ok := d.index[id]; ok {
		return d.InsertLineAt(i+1, data)
	}
	return d.InsertLineAt(len(d.lines), data)
}

// RemoveLineByIndex removes the line at a 0-based index and returns its
// snapshot, or nil when out of range.
func (d *Document) RemoveLineByIndex(i int) *Snapshot {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	snap := d.lines[i].Snapshot()
	delete(d.index, snap.ID)
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	d.reindexFrom(i)
	d.dirty = true
	return &snap
}

// RemoveLineByID removes the line with the given id and returns its
// snapshot, or nil on miss.
func (d *Document) RemoveLineByID(id string) *Snapshot {
	i, ok := d.index[id]
	if !ok {
		return nil
	}
	return d.RemoveLineByIndex(i)
}

// UpdateLine mutates a line in place. The cache is only invalidated when a
// value actually changed, so no-op writes stay cheap. Returns the line, or
// nil when the id is unknown.
func (d *Document) UpdateLine(id string, upd LineUpdate) *Line {
	l := d.LineByID(id)
	if l == nil {
		return nil
	}
	changed := false
	if upd.Format != nil {
		if f := ParseFormat(*upd.Format); f != l.Format {
			l.Format = f
			changed = true
		}
	}
	if upd.Content != nil && *upd.Content != l.Content {
		l.Content = *upd.Content
		changed = true
	}
	if changed {
		d.dirty = true
	}
	return l
}

// ReplaceRange collapses the inclusive index range [start, end] into a
// single new line inserted at start. Returns the new line, or nil when the
// range is invalid after clamping.
func (d *Document) ReplaceRange(start, end int, data Snapshot) *Line {
	if len(d.lines) == 0 {
		return nil
	}
	if start < 0 {
		start = 0
	}
	if end >= len(d.lines) {
		end = len(d.lines) - 1
	}
	if start > end {
		return nil
	}
	for _, l := range d.lines[start : end+1] {
		delete(d.index, l.ID)
	}
	repl := newLine(data)
	d.lines = append(d.lines[:start], append([]*Line{repl}, d.lines[end+1:]...)...)
	d.reindexFrom(start)
	d.dirty = true
	return repl
}

// EnsureNotEmpty enforces the at-least-one-line invariant: when the document
// has no lines, exactly one empty line of the default format is inserted.
// Returns the inserted line, or nil when nothing was needed.
func (d *Document) EnsureNotEmpty() *Line {
	if len(d.lines) > 0 {
		return nil
	}
	return d.InsertLineAt(0, Snapshot{Format: DefaultFormat})
}

// Snapshots returns full copies of all lines in document order.
func (d *Document) Snapshots() []Snapshot {
	out := make([]Snapshot, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Snapshot()
	}
	return out
}

// RenderList produces the flat list handed to external renderers after any
// mutation.
func (d *Document) RenderList() []render.Line {
	out := make([]render.Line, len(d.lines))
	for i, l := range d.lines {
		out[i] = render.Line{ID: l.ID, Format: string(l.Format), Content: l.Content}
	}
	return out
}

type storageDoc struct {
	Version int        `json:"version"`
	Lines   []Snapshot `json:"lines"`
}

// ToStorageString serializes the document to its canonical storage string,
// recomputing the cached value only when a mutation invalidated it.
func (d *Document) ToStorageString() string {
	if !d.dirty {
		return d.cache
	}
	doc := storageDoc{Version: StorageVersion, Lines: d.Snapshots()}
	b, err := json.Marshal(doc)
	if err != nil {
		// Snapshot marshaling cannot fail on these field types; keep the
		// old cache rather than corrupt it.
		return d.cache
	}
	d.cache = string(b)
	d.dirty = false
	return d.cache
}

// ToPlainText joins all line contents with newlines, dropping formats.
// This projection is lossy and never used for round-tripping.
func (d *Document) ToPlainText() string {
	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = l.Content
	}
	return strings.Join(parts, "\n")
}

// reindexFrom rewrites id positions from the mutation point forward.
// Positions below the mutation point are untouched by construction.
func (d *Document) reindexFrom(at int) {
	for i := at; i < len(d.lines); i++ {
		d.index[d.lines[i].ID] = i
	}
}

// appendParsed is the parser-side insertion path; it skips the per-call
// reindex since parsing appends strictly in order.
func (d *Document) appendParsed(s Snapshot) {
	l := newLine(s)
	if _, taken := d.index[l.ID]; taken {
		// Ids must stay unique within a document; stored duplicates get a
		// fresh identity rather than clobbering the index.
		l.ID = newLineID()
	}
	d.lines = append(d.lines, l)
	d.index[l.ID] = len(d.lines) - 1
	d.dirty = true
}
