/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"screenwright/internal/screenplay"
	"screenwright/internal/storage"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(nil, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Screenwright Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
}

// TestRecoverPanicWritesReportAndAutosave ensures Recover handles a panic,
// writes a report, rescues the document, and does not terminate the test
// process due to the injected exitFn.
func TestRecoverPanicWritesReportAndAutosave(t *testing.T) {
	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r) // drain pipe
	}()

	// Override exitFn to avoid os.Exit during test and to assert it was called
	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	root := t.TempDir()
	ws := &storage.Workspace{Root: root, DocumentPath: filepath.Join(root, storage.DocumentFileName)}
	doc := screenplay.New()
	doc.InsertLineAt(0, screenplay.Snapshot{Format: screenplay.FormatAction, Content: "unsaved work"})

	func() {
		defer Recover(ws, doc)
		panic("boom")
	}()

	// Allow time for filesystem writes
	time.Sleep(50 * time.Millisecond)

	bdir := filepath.Join(root, storage.BackupsDirName)
	files, _ := os.ReadDir(bdir)
	var report, autosave string
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(bdir, f.Name())
		case strings.HasPrefix(f.Name(), "autosave-crash-") && strings.HasSuffix(f.Name(), ".json"):
			autosave = filepath.Join(bdir, f.Name())
		}
	}
	if report == "" {
		t.Fatalf("expected crash report file under backups dir")
	}
	if autosave == "" {
		t.Fatalf("expected autosave snapshot under backups dir")
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	saved, err := os.ReadFile(autosave)
	if err != nil {
		t.Fatalf("read autosave: %v", err)
	}
	if !bytes.Contains(saved, []byte("unsaved work")) {
		t.Fatalf("autosave missing document content: %s", string(saved))
	}

	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}
