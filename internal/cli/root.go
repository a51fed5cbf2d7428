/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cli implements the screenwright CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"screenwright/internal/config"
	"screenwright/internal/screenplay"
	"screenwright/internal/storage"
)

var workspaceFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "screenwright",
	Short: "Line-based screenplay editor",
	Long:  "Screenwright edits screenplay documents line by line through command batches, with lossless undo, local revision history, and optional archive mirroring.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace directory (default: $SWR_WORKSPACE or configured default)")
}

// loadedConfig is resolved once per invocation.
var loadedConfig *config.AppConfig

func appConfig() config.AppConfig {
	if loadedConfig == nil {
		cfg, _ := config.Load()
		loadedConfig = &cfg
	}
	return *loadedConfig
}

func workspaceRoot() (string, error) {
	if workspaceFlag != "" {
		return workspaceFlag, nil
	}
	if root := appConfig().General.DefaultWorkspace; root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func openWorkspace() (*storage.Workspace, *screenplay.Document, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, nil, err
	}
	return storage.Open(root)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
