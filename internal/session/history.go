/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session owns what the engine core deliberately does not: the
// undo/redo stacks of inverse batches and the editing session that feeds
// batches through the command processor.
package session

import (
	"sync"

	"screenwright/internal/command"
)

// Config controls memory and depth caps for the history stacks.
type Config struct {
	// MaxBytes is a soft cap on the estimated size of retained batches;
	// oldest undo entries are pruned when exceeded.
	MaxBytes int
	// MaxDepth limits the number of undo batches kept (0 means unlimited).
	MaxDepth int
}

type entry struct {
	batch []command.Command
	size  int
}

// History keeps undo/redo stacks of inverse command batches.
// It is safe for concurrent use.
type History struct {
	cfg        Config
	mu         sync.Mutex
	undo       []entry
	redo       []entry
	totalBytes int
}

// NewHistory builds a history with conservative defaults when caps are
// unset.
func NewHistory(cfg Config) *History {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	return &History{cfg: cfg}
}

// PushApplied records the inverse batch of a freshly applied edit and
// clears the redo stack: any new change invalidates redo.
func (h *History) PushApplied(batch []command.Command) {
	if len(batch) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redo = nil
	h.pushUndoLocked(batch)
}

// PopUndo removes and returns the most recent undo batch.
func (h *History) PopUndo() ([]command.Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		return nil, false
	}
	e := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.totalBytes -= e.size
	return e.batch, true
}

// PushRedo records the counter-inverse produced by an undo.
func (h *History) PushRedo(batch []command.Command) {
	if len(batch) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redo = append(h.redo, entry{batch: batch, size: estimateSize(batch)})
}

// PopRedo removes and returns the most recent redo batch.
func (h *History) PopRedo() ([]command.Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		return nil, false
	}
	e := h.redo[n-1]
	h.redo = h.redo[:n-1]
	return e.batch, true
}

// PushUndone records the inverse produced by a redo without touching the
// redo stack (a redo must not invalidate the remaining redo entries).
func (h *History) PushUndone(batch []command.Command) {
	if len(batch) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pushUndoLocked(batch)
}

// Depth returns the current stack depths for diagnostics.
func (h *History) Depth() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo), len(h.redo)
}

func (h *History) pushUndoLocked(batch []command.Command) {
	e := entry{batch: batch, size: estimateSize(batch)}
	h.undo = append(h.undo, e)
	h.totalBytes += e.size
	h.enforceCapsLocked()
}

func (h *History) enforceCapsLocked() {
	if h.cfg.MaxDepth > 0 && len(h.undo) > h.cfg.MaxDepth {
		toDrop := len(h.undo) - h.cfg.MaxDepth
		for i := 0; i < toDrop; i++ {
			h.totalBytes -= h.undo[i].size
		}
		h.undo = append([]entry{}, h.undo[toDrop:]...)
	}
	for h.cfg.MaxBytes > 0 && h.totalBytes > h.cfg.MaxBytes && len(h.undo) > 1 {
		h.totalBytes -= h.undo[0].size
		h.undo = h.undo[1:]
	}
}

// estimateSize approximates retained memory per batch; exact accounting is
// not needed, only a stable pruning signal.
func estimateSize(batch []command.Command) int {
	size := 0
	for _, c := range batch {
		size += 32 + len(c.Command) + len(c.Value) + len(c.ToLineID) + len(c.FromLineID)
		if c.Data != nil {
			size += len(c.Data.ID)
			if c.Data.Format != nil {
				size += len(*c.Data.Format)
			}
			if c.Data.Content != nil {
				size += len(*c.Data.Content)
			}
		}
	}
	return size
}
