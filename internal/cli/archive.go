/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cli

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"screenwright/internal/archive"
)

func init() {
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Mirror screenplays to the shared archive",
	}
	archiveCmd.PersistentFlags().String("dsn", "", "Archive DSN (default: configured archive.dsn or $SWR_PG_DSN)")

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Mirror the screenplay to the archive",
		Run:   runArchivePush,
	}
	pushCmd.Flags().String("slug", "", "Archive slug (default: workspace directory name)")

	searchCmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Full-text search over archived screenplays",
		Args:  cobra.ExactArgs(1),
		Run:   runArchiveSearch,
	}
	searchCmd.Flags().IntP("limit", "n", 20, "Maximum hits")

	archiveCmd.AddCommand(pushCmd, searchCmd)
	RootCmd.AddCommand(archiveCmd)
}

func openArchive(cmd *cobra.Command) *sql.DB {
	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = appConfig().Archive.DSN
	}
	db, err := archive.Open(cmd.Context(), dsn)
	if err != nil {
		exitErr("open archive", err)
	}
	return db
}

func runArchivePush(cmd *cobra.Command, args []string) {
	ws, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	slug, _ := cmd.Flags().GetString("slug")
	if slug == "" {
		slug = filepath.Base(ws.Root)
	}
	db := openArchive(cmd)
	defer func() { _ = db.Close() }()
	if err := archive.Push(cmd.Context(), db, slug, doc); err != nil {
		exitErr("push", err)
	}
	fmt.Printf("pushed %s\n", slug)
}

func runArchiveSearch(cmd *cobra.Command, args []string) {
	db := openArchive(cmd)
	defer func() { _ = db.Close() }()
	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := archive.Search(cmd.Context(), db, args[0], limit)
	if err != nil {
		exitErr("search", err)
	}
	if len(hits) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, h := range hits {
		fmt.Printf("%-24s %s\n", h.Slug, h.Snippet)
	}
}
