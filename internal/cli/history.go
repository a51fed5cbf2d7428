/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"screenwright/internal/storage"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the local revision history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored revisions, newest first",
		Run:   runHistoryList,
	}
	listCmd.Flags().IntP("limit", "n", 20, "Maximum revisions to list")

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old revisions",
		Run:   runHistoryPrune,
	}
	pruneCmd.Flags().IntP("keep", "k", 50, "Number of revisions to keep")

	historyCmd.AddCommand(listCmd, pruneCmd)
	RootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	root, err := workspaceRoot()
	if err != nil {
		exitErr("resolve workspace", err)
	}
	ws := &storage.Workspace{Root: root}
	limit, _ := cmd.Flags().GetInt("limit")
	revs, err := storage.ListRevisions(cmd.Context(), ws, limit)
	if err != nil {
		exitErr("list revisions", err)
	}
	if len(revs) == 0 {
		fmt.Println("no revisions stored")
		return
	}
	for _, r := range revs {
		label := r.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("%s  %-12s %d bytes\n", r.TS.Format(time.RFC3339), label, len(r.Content))
	}
}

func runHistoryPrune(cmd *cobra.Command, args []string) {
	root, err := workspaceRoot()
	if err != nil {
		exitErr("resolve workspace", err)
	}
	ws := &storage.Workspace{Root: root}
	keep, _ := cmd.Flags().GetInt("keep")
	n, err := storage.PruneRevisions(cmd.Context(), ws, keep)
	if err != nil {
		exitErr("prune revisions", err)
	}
	fmt.Printf("pruned %d revisions\n", n)
}
