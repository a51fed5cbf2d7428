/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"screenwright/internal/command"
	"screenwright/internal/crash"
	"screenwright/internal/screenplay"
	"screenwright/internal/storage"
)

func init() {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Apply an inverse command batch",
		Long:  "Reads the inverse batch printed by a previous apply (from stdin or --file) and applies it, restoring the prior document state.",
		Run:   runUndo,
	}
	cmd.Flags().StringP("file", "f", "", "Inverse batch file (default: stdin)")
	cmd.Flags().Bool("last-revision", false, "Restore the most recent stored revision instead of applying a batch")
	RootCmd.AddCommand(cmd)
}

func runUndo(cmd *cobra.Command, args []string) {
	useRevision, _ := cmd.Flags().GetBool("last-revision")
	if useRevision {
		restoreLastRevision(cmd)
		return
	}

	file, _ := cmd.Flags().GetString("file")
	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read inverse batch", err)
	}
	if err := command.ValidateBatch(data); err != nil {
		exitErr("validate inverse batch", err)
	}
	var batch []command.Command
	if err := json.Unmarshal(data, &batch); err != nil {
		exitErr("parse inverse batch", err)
	}

	ws, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	defer crash.Recover(ws, doc)
	res := command.Apply(doc, batch)
	if res.Success {
		if err := storage.Save(ws, doc); err != nil {
			exitErr("save workspace", err)
		}
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
	if !res.Success {
		os.Exit(1)
	}
}

func restoreLastRevision(cmd *cobra.Command) {
	ws, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	defer crash.Recover(ws, doc)
	ctx := cmd.Context()
	rev, err := storage.LatestRevision(ctx, ws)
	if err != nil {
		exitErr("load revision", err)
	}
	if rev.Content == "" {
		exitErr("load revision", fmt.Errorf("no stored revisions"))
	}
	// Record the current state first so the restore itself can be undone.
	if err := storage.SaveRevision(ctx, ws, doc.ToStorageString(), "pre-undo", time.Now()); err != nil {
		exitErr("record revision", err)
	}
	restored := screenplay.FromStorage(rev.Content)
	if err := storage.Save(ws, restored); err != nil {
		exitErr("save workspace", err)
	}
	fmt.Printf("restored revision from %s\n", rev.TS.Format(time.RFC3339))
}
