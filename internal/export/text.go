/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders screenplay documents to interchange formats:
// format-tagged text, plain text, and paginated PDF.
package export

import (
	"errors"
	"fmt"
	"strings"

	"screenwright/internal/screenplay"
)

// ExportText writes the document as one tagged line per row, e.g.
// <header>INT. ROOM</header>. Lines without content use the self-closing
// form. The output round-trips through the line parser.
func ExportText(doc *screenplay.Document) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	var b strings.Builder
	for i, s := range doc.Snapshots() {
		if i > 0 {
			b.WriteByte('\n')
		}
		if s.Content == "" {
			fmt.Fprintf(&b, "<%s/>", s.Format)
			continue
		}
		fmt.Fprintf(&b, "<%s>%s</%s>", s.Format, s.Content, s.Format)
	}
	return b.String(), nil
}

// ExportPlainText writes only the line contents, one per row. Formats are
// dropped; this output is for reading, not re-import.
func ExportPlainText(doc *screenplay.Document) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}
	return doc.ToPlainText(), nil
}
