/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"screenwright/docs"
)

// ValidateBatch checks raw batch JSON against the embedded batch schema.
// Callers run this before decoding so malformed files are rejected with
// schema errors instead of partial unmarshal results.
func ValidateBatch(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(docs.BatchSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate batch: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid batch: %s", strings.Join(msgs, "; "))
	}
	return nil
}
