/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package command implements the batch command processor: it applies edit
// commands to a document in a corruption-safe order and produces the exact
// inverse batch for lossless undo.
package command

import "screenwright/internal/screenplay"

// Command type tags.
const (
	TypeAdd        = "ADD"
	TypeEdit       = "EDIT"
	TypeDelete     = "DELETE"
	TypeMergeLines = "MERGE_LINES"
)

// ReasonNoCommands is the batch-level rejection reason for an empty batch.
const ReasonNoCommands = "no_commands"

// LineData is the structured command payload. Nil Format/Content mean
// "leave untouched" for EDIT; ADD treats them as default format and empty
// content. ID is honored on ADD so undo restoration keeps line identity.
type LineData struct {
	ID      string  `json:"id,omitempty"`
	Format  *string `json:"format,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Command is one requested mutation. ADD/EDIT/DELETE reference their target
// by 1-based line number (ADD's number is the 0-based insert index, clamped);
// MERGE_LINES references both lines by id. Value carries the legacy
// serialized payload accepted for already-stored batches.
type Command struct {
	Command    string    `json:"command"`
	LineNumber int       `json:"lineNumber,omitempty"`
	Data       *LineData `json:"data,omitempty"`
	Value      string    `json:"value,omitempty"`
	ToLineID   string    `json:"toLineId,omitempty"`
	FromLineID string    `json:"fromLineId,omitempty"`
}

// Result reports the outcome of a single command within a batch.
type Result struct {
	Command string `json:"command"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	LineID  string `json:"lineId,omitempty"`
}

// BatchResult is the outcome of one batch application.
//
// Success is false only when the batch itself was empty or unrecognizable;
// once commands are processed it stays true even if individual commands
// failed. Callers must inspect Results for partial-failure handling.
// InverseCommands is itself a valid batch that undoes this one when applied
// in the recorded order.
type BatchResult struct {
	Success         bool      `json:"success"`
	Reason          string    `json:"reason,omitempty"`
	Results         []Result  `json:"results"`
	InverseCommands []Command `json:"inverseCommands"`
}

// dataFromSnapshot builds a full ADD payload from a line snapshot,
// preserving the original id.
func dataFromSnapshot(s screenplay.Snapshot) *LineData {
	f := string(s.Format)
	c := s.Content
	return &LineData{ID: s.ID, Format: &f, Content: &c}
}

func strptr(s string) *string { return &s }
