/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package docs embeds the JSON schemas so runtime validation does not
// depend on the repository layout.
package docs

import _ "embed"

// BatchSchema is the JSON schema for command batches.
//
//go:embed batch.schema.json
var BatchSchema []byte

// ScreenplaySchema is the JSON schema for the canonical document file.
//
//go:embed screenplay.schema.json
var ScreenplaySchema []byte
