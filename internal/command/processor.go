/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import (
	"fmt"
	"log/slog"
	"sort"

	applog "screenwright/internal/log"
	"screenwright/internal/screenplay"
)

// Apply runs a batch of commands against a document and returns per-command
// results plus the inverse batch.
//
// Application order is the invariant that keeps line-number references valid
// while the batch itself mutates the document:
//
//  1. Non-ADD commands run first, sorted by descending line number. Removing
//     or editing from the highest index down leaves every lower index
//     untouched, so a DELETE at line 8 never invalidates a pending
//     reference to line 5.
//  2. ADD commands run last, sorted by ascending insert index, against the
//     already-stabilized document.
//
// Results are reported in submission order regardless of application order.
// The at-least-one-line invariant is enforced once after the whole batch.
func Apply(doc *screenplay.Document, commands []Command) BatchResult {
	if len(commands) == 0 {
		return BatchResult{Success: false, Reason: ReasonNoCommands}
	}

	type indexed struct {
		pos int
		cmd Command
	}
	var adds, others []indexed
	for i, c := range commands {
		if c.Command == TypeAdd {
			adds = append(adds, indexed{i, c})
		} else {
			others = append(others, indexed{i, c})
		}
	}
	sort.SliceStable(others, func(a, b int) bool { return others[a].cmd.LineNumber > others[b].cmd.LineNumber })
	sort.SliceStable(adds, func(a, b int) bool { return adds[a].cmd.LineNumber < adds[b].cmd.LineNumber })

	results := make([]Result, len(commands))
	inverses := make([]Command, 0, len(commands))
	run := func(ix indexed) {
		res, inv := applyOne(doc, ix.cmd)
		results[ix.pos] = res
		inverses = append(inverses, inv...)
	}
	for _, ix := range others {
		run(ix)
	}
	for _, ix := range adds {
		run(ix)
	}

	doc.EnsureNotEmpty()

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	applog.WithComponent("command").Debug("batch applied",
		slog.Int("commands", len(commands)),
		slog.Int("failed", failed),
		slog.Int("inverses", len(inverses)),
	)
	return BatchResult{Success: true, Results: results, InverseCommands: inverses}
}

func applyOne(doc *screenplay.Document, c Command) (Result, []Command) {
	switch c.Command {
	case TypeDelete:
		return applyDelete(doc, c)
	case TypeEdit:
		return applyEdit(doc, c)
	case TypeAdd:
		return applyAdd(doc, c)
	case TypeMergeLines:
		return applyMerge(doc, c)
	default:
		return failure(c, fmt.Sprintf("unknown command type %q", c.Command)), nil
	}
}

func applyDelete(doc *screenplay.Document, c Command) (Result, []Command) {
	snap := doc.RemoveLineByIndex(c.LineNumber - 1)
	if snap == nil {
		return failure(c, fmt.Sprintf("Line %d not found", c.LineNumber)), nil
	}
	at := c.LineNumber - 1
	if at < 0 {
		at = 0
	}
	inv := Command{Command: TypeAdd, LineNumber: at, Data: dataFromSnapshot(*snap)}
	return success(c, snap.ID), []Command{inv}
}

func applyEdit(doc *screenplay.Document, c Command) (Result, []Command) {
	l := doc.LineAt(c.LineNumber - 1)
	if l == nil {
		return failure(c, fmt.Sprintf("Line %d not found", c.LineNumber)), nil
	}
	payload := decodePayload(c)
	if payload == nil {
		return failure(c, "EDIT requires data"), nil
	}
	before := l.Snapshot()
	doc.UpdateLine(l.ID, screenplay.LineUpdate{Format: payload.Format, Content: payload.Content})
	// The inverse carries the full before-image; the id is included for
	// diagnostic correlation only.
	inv := Command{Command: TypeEdit, LineNumber: c.LineNumber, Data: dataFromSnapshot(before)}
	return success(c, before.ID), []Command{inv}
}

func applyAdd(doc *screenplay.Document, c Command) (Result, []Command) {
	payload := decodePayload(c)
	if payload == nil {
		return failure(c, "ADD requires data"), nil
	}
	at := c.LineNumber
	if at < 0 {
		at = 0
	}
	if at > doc.Len() {
		at = doc.Len()
	}
	snap := screenplay.Snapshot{ID: payload.ID, Format: screenplay.DefaultFormat}
	if payload.Format != nil {
		snap.Format = screenplay.ParseFormat(*payload.Format)
	}
	if payload.Content != nil {
		snap.Content = *payload.Content
	}
	l := doc.InsertLineAt(at, snap)
	inv := Command{Command: TypeDelete, LineNumber: at + 1}
	return success(c, l.ID), []Command{inv}
}

// applyMerge concatenates from's content onto to's content with no
// separator, removes from, and records two order-sensitive inverses: an ADD
// reinserting the removed from line at its original index, then an EDIT
// restoring to's original content at its pre-merge line number. Undo-stack
// consumers apply inverses in list order; the order must be kept as
// produced. The EDIT inverse is positional, so replay is exact only for
// merges that pull a later line into an earlier one (from below to); an
// upward merge leaves the recorded line number pointing at a shifted line.
func applyMerge(doc *screenplay.Document, c Command) (Result, []Command) {
	if c.ToLineID == "" || c.FromLineID == "" {
		return failure(c, "MERGE_LINES requires toLineId and fromLineId"), nil
	}
	if c.ToLineID == c.FromLineID {
		return failure(c, "cannot merge a line into itself"), nil
	}
	to := doc.LineByID(c.ToLineID)
	from := doc.LineByID(c.FromLineID)
	if to == nil {
		return failure(c, fmt.Sprintf("line %q not found", c.ToLineID)), nil
	}
	if from == nil {
		return failure(c, fmt.Sprintf("line %q not found", c.FromLineID)), nil
	}
	toIdx := doc.IndexOf(to.ID)
	fromIdx := doc.IndexOf(from.ID)
	beforeTo := to.Snapshot()
	fromSnap := from.Snapshot()

	merged := beforeTo.Content + fromSnap.Content
	doc.UpdateLine(to.ID, screenplay.LineUpdate{Content: &merged})
	doc.RemoveLineByID(from.ID)

	inv := []Command{
		{Command: TypeAdd, LineNumber: fromIdx, Data: dataFromSnapshot(fromSnap)},
		{Command: TypeEdit, LineNumber: toIdx + 1, Data: &LineData{ID: beforeTo.ID, Content: strptr(beforeTo.Content)}},
	}
	return success(c, to.ID), inv
}

func success(c Command, lineID string) Result {
	return Result{Command: c.Command, Success: true, LineID: lineID}
}

func failure(c Command, msg string) Result {
	return Result{Command: c.Command, Success: false, Error: msg}
}
