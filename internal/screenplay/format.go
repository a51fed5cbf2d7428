/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

// Format is the closed set of screenplay line formats.
type Format string

const (
	FormatHeader        Format = "header"
	FormatAction        Format = "action"
	FormatSpeaker       Format = "speaker"
	FormatDialog        Format = "dialog"
	FormatParenthetical Format = "parenthetical"
	FormatTransition    Format = "transition"
	FormatChapterBreak  Format = "chapter-break"

	// DefaultFormat is applied whenever an unknown or missing format is seen.
	DefaultFormat = FormatHeader
)

var validFormats = map[Format]struct{}{
	FormatHeader:        {},
	FormatAction:        {},
	FormatSpeaker:       {},
	FormatDialog:        {},
	FormatParenthetical: {},
	FormatTransition:    {},
	FormatChapterBreak:  {},
}

// Valid reports whether f is a member of the closed format set.
func (f Format) Valid() bool {
	_, ok := validFormats[f]
	return ok
}

// ParseFormat coerces an arbitrary string into a valid Format.
// Unknown or empty input yields DefaultFormat; this is never an error.
func ParseFormat(s string) Format {
	f := Format(s)
	if f.Valid() {
		return f
	}
	return DefaultFormat
}

// Formats returns all valid formats in a stable order.
func Formats() []Format {
	return []Format{
		FormatHeader,
		FormatAction,
		FormatSpeaker,
		FormatDialog,
		FormatParenthetical,
		FormatTransition,
		FormatChapterBreak,
	}
}
