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
	"screenwright/internal/storage"
)

func init() {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a command batch to the screenplay",
		Long:  "Reads a JSON command batch from stdin (or --file), applies it, saves the workspace and prints the batch result including the inverse commands.",
		Run:   runApply,
	}
	cmd.Flags().StringP("file", "f", "", "Batch file (default: stdin)")
	cmd.Flags().Bool("dry-run", false, "Apply without saving the workspace")
	RootCmd.AddCommand(cmd)
}

func runApply(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read batch", err)
	}
	if err := command.ValidateBatch(data); err != nil {
		exitErr("validate batch", err)
	}
	var batch []command.Command
	if err := json.Unmarshal(data, &batch); err != nil {
		exitErr("parse batch", err)
	}

	ws, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	defer crash.Recover(ws, doc)
	before := doc.ToStorageString()

	res := command.Apply(doc, batch)

	if res.Success && !dryRun {
		ctx := cmd.Context()
		if err := storage.SaveRevision(ctx, ws, before, "pre-apply", time.Now()); err != nil {
			exitErr("record revision", err)
		}
		if keep := appConfig().Editor.RevisionsToKeep; keep > 0 {
			_, _ = storage.PruneRevisions(ctx, ws, keep)
		}
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
