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

	"github.com/spf13/cobra"

	"screenwright/internal/export"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the screenplay",
		Run:   runShow,
	}
	cmd.Flags().StringP("format", "f", "plain", "Output format: plain, tagged or json")
	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	_, doc, err := openWorkspace()
	if err != nil {
		exitErr("open workspace", err)
	}
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "tagged":
		out, err := export.ExportText(doc)
		if err != nil {
			exitErr("export tagged text", err)
		}
		fmt.Println(out)
	case "json":
		fmt.Println(doc.ToStorageString())
	default:
		out, err := export.ExportPlainText(doc)
		if err != nil {
			exitErr("export plain text", err)
		}
		fmt.Println(out)
	}
}
