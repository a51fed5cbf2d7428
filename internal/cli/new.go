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

	"screenwright/internal/screenplay"
	"screenwright/internal/storage"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new screenplay workspace",
		Args:  cobra.ExactArgs(1),
		Run:   runNew,
	}
	RootCmd.AddCommand(cmd)
}

func runNew(cmd *cobra.Command, args []string) {
	doc := screenplay.New()
	doc.EnsureNotEmpty()
	ws, err := storage.Init(args[0], doc)
	if err != nil {
		exitErr("init workspace", err)
	}
	fmt.Printf("created %s\n", ws.DocumentPath)
}
