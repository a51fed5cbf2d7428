/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"log/slog"

	"screenwright/internal/command"
	applog "screenwright/internal/log"
	"screenwright/internal/render"
	"screenwright/internal/screenplay"
)

// Session is the serializing caller around one document: it submits command
// batches, owns the inverse batches the processor hands back, and replays
// them for undo/redo. The calling layer must not run two batches against
// the same session concurrently.
type Session struct {
	doc  *screenplay.Document
	hist *History
	log  *slog.Logger
}

// New opens a session over a document, enforcing the one-line minimum for
// editing.
func New(doc *screenplay.Document, cfg Config) *Session {
	doc.EnsureNotEmpty()
	return &Session{
		doc:  doc,
		hist: NewHistory(cfg),
		log:  applog.WithComponent("session"),
	}
}

// Open builds a session from stored content.
func Open(content string, cfg Config) *Session {
	return New(screenplay.FromStorage(content), cfg)
}

// Document exposes the underlying document.
func (s *Session) Document() *screenplay.Document { return s.doc }

// History exposes the undo/redo stacks for diagnostics.
func (s *Session) History() *History { return s.hist }

// Apply runs a batch through the processor and records its inverse for
// undo. Per-command failures are the caller's to inspect in the result.
func (s *Session) Apply(cmds []command.Command) command.BatchResult {
	res := command.Apply(s.doc, cmds)
	if res.Success {
		s.hist.PushApplied(res.InverseCommands)
	}
	s.log.Debug("batch processed",
		slog.Bool("accepted", res.Success),
		slog.Int("commands", len(cmds)),
	)
	return res
}

// Undo replays the most recent inverse batch. Returns false when there is
// nothing to undo.
func (s *Session) Undo() (command.BatchResult, bool) {
	batch, ok := s.hist.PopUndo()
	if !ok {
		return command.BatchResult{}, false
	}
	res := command.Apply(s.doc, batch)
	if res.Success {
		s.hist.PushRedo(res.InverseCommands)
	}
	return res, true
}

// Redo replays the most recent undone batch. Returns false when there is
// nothing to redo.
func (s *Session) Redo() (command.BatchResult, bool) {
	batch, ok := s.hist.PopRedo()
	if !ok {
		return command.BatchResult{}, false
	}
	res := command.Apply(s.doc, batch)
	if res.Success {
		s.hist.PushUndone(res.InverseCommands)
	}
	return res, true
}

// RenderList returns the flat line list for external renderers.
func (s *Session) RenderList() []render.Line { return s.doc.RenderList() }
