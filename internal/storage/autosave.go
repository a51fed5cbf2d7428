/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"screenwright/internal/screenplay"
)

// AutosaveCrashSnapshot writes the current document state into the backups
// folder without touching the canonical file. Used by the crash handler so
// an inconsistent in-memory state never overwrites screenplay.json.
func AutosaveCrashSnapshot(ws *Workspace, doc *screenplay.Document) (string, error) {
	if ws == nil || ws.Root == "" {
		return "", errors.New("invalid Workspace")
	}
	if doc == nil {
		return "", errors.New("nil document")
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(ws.Root, BackupsDirName, fmt.Sprintf("autosave-crash-%s.json", stamp))
	data := append([]byte(doc.ToStorageString()), '\n')
	if err := writeFileSync(path, data); err != nil {
		return "", fmt.Errorf("write crash autosave: %w", err)
	}
	return path, nil
}
