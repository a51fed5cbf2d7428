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
	"io"
	"os"

	"github.com/spf13/cobra"

	"screenwright/internal/render"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "List lines with numbers, ids and formats",
		Run:   runLines,
	}
	RootCmd.AddCommand(cmd)
}

// tableRenderer prints the render list as a numbered table.
type tableRenderer struct {
	w io.Writer
}

func (t *tableRenderer) Render(lines []render.Line) error {
	for i, l := range lines {
		if _, err := fmt.Fprintf(t.w, "%4d  %-26s %-14s %s\n", i+1, l.ID, l.Format, l.Content); err != nil {
			return err
		}
	}
	return nil
}

var _ render.Renderer = (*tableRenderer)(nil)

func runLines(cmd *cobra.Command, args []string) {
	_, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	r := &tableRenderer{w: os.Stdout}
	if err := r.Render(doc.RenderList()); err != nil {
		exitErr("render lines", err)
	}
}
