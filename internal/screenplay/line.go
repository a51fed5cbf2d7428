/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Line is one unit of screenplay content: a stable identity, a format tag
// and text. Identity never changes after creation; format and content are
// mutated in place through the owning Document.
type Line struct {
	ID      string
	Format  Format
	Content string
}

// Snapshot is a full copy of a line's externally visible state, captured
// before or after a mutation. Inverse commands carry snapshots rather than
// re-deriving state.
type Snapshot struct {
	ID      string `json:"id"`
	Format  Format `json:"format"`
	Content string `json:"content"`
}

// Snapshot returns a copy of the line's current state.
func (l *Line) Snapshot() Snapshot {
	return Snapshot{ID: l.ID, Format: l.Format, Content: l.Content}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// newLineID generates a fresh opaque line id.
func newLineID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// newLine builds a Line from a snapshot, generating an id when none is
// supplied. Supplied ids are honored verbatim; undo restoration depends on
// re-inserted lines keeping their original identity.
func newLine(s Snapshot) *Line {
	id := s.ID
	if id == "" {
		id = newLineID()
	}
	return &Line{ID: id, Format: ParseFormat(string(s.Format)), Content: s.Content}
}
