/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package command

import "screenwright/internal/screenplay"

// decodePayload extracts the line payload of a command, preferring the
// structured data field and falling back to the legacy serialized value
// string. Legacy values use the same tagged-line grammar as document
// parsing and exist only for batches stored before the structured shape.
// Returns nil when the command carries no payload at all.
func decodePayload(c Command) *LineData {
	if c.Data != nil {
		return c.Data
	}
	if c.Value == "" {
		return nil
	}
	s := screenplay.ParseTaggedLine(c.Value)
	return &LineData{Format: strptr(string(s.Format)), Content: strptr(s.Content)}
}
