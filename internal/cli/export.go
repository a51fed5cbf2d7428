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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"screenwright/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:       "export [pdf|tagged|plain]",
		Short:     "Export the screenplay",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pdf", "tagged", "plain"},
		Run:       runExport,
	}
	cmd.Flags().StringP("out", "o", "", "Output file (default: exports/screenplay.<ext> in the workspace)")
	cmd.Flags().String("title", "", "PDF document title")
	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	ws, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	out, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")

	kind := args[0]
	if out == "" {
		ext := map[string]string{"pdf": "pdf", "tagged": "txt", "plain": "txt"}[kind]
		out = filepath.Join(ws.Root, "exports", "screenplay."+ext)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		exitErr("create output dir", err)
	}

	switch kind {
	case "pdf":
		if err := export.ExportPDF(doc, out, export.PDFOptions{Title: title}); err != nil {
			exitErr("export pdf", err)
		}
	case "tagged":
		text, err := export.ExportText(doc)
		if err != nil {
			exitErr("export tagged text", err)
		}
		if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
			exitErr("write export", err)
		}
	case "plain":
		text, err := export.ExportPlainText(doc)
		if err != nil {
			exitErr("export plain text", err)
		}
		if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
			exitErr("write export", err)
		}
	default:
		exitErr("export", fmt.Errorf("unknown export kind %q", kind))
	}
	fmt.Printf("exported %s\n", out)
}
