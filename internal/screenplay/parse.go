/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Parsing precedence for stored content:
//  1. Content that trims to '{' or '[' gets a strict JSON probe: an object
//     with a "lines" array, or a bare array, yields one line per entry
//     (accepting "content" or legacy "text" per entry). An object with
//     neither shape but a string "content" field is re-parsed recursively.
//  2. Everything else is split on line breaks and run through the tagged
//     line grammar: <format>body</format>, self-closing <format/>, or plain
//     text in the default format.
//
// Parsing never fails; the worst case is default-format plain text.

var (
	reTagged     = regexp.MustCompile(`^<([A-Za-z][A-Za-z-]*)>(.*)</([A-Za-z][A-Za-z-]*)>$`)
	reSelfClosed = regexp.MustCompile(`^<([A-Za-z][A-Za-z-]*)\s*/>$`)
	reLineBreak  = regexp.MustCompile(`\r\n|\r|\n`)
)

// FromStorage builds a document from stored content. Empty input yields an
// empty document; editing callers bring it to the one-line minimum via
// EnsureNotEmpty.
func FromStorage(content string) *Document {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return New()
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if d, ok := fromJSON(trimmed); ok {
			return d
		}
	}
	d := New()
	for _, raw := range reLineBreak.Split(content, -1) {
		d.appendParsed(ParseTaggedLine(raw))
	}
	return d
}

func fromJSON(s string) (*Document, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	v := gjson.Parse(s)
	var entries []gjson.Result
	switch {
	case v.IsArray():
		entries = v.Array()
	case v.IsObject():
		if lines := v.Get("lines"); lines.IsArray() {
			entries = lines.Array()
		} else if c := v.Get("content"); c.Type == gjson.String {
			// Nested storage strings show up in old exports; unwrap once
			// per level of nesting.
			return FromStorage(c.String()), true
		} else {
			return nil, false
		}
	default:
		return nil, false
	}
	d := New()
	for _, e := range entries {
		d.appendParsed(lineFromJSON(e))
	}
	return d, true
}

func lineFromJSON(e gjson.Result) Snapshot {
	if !e.IsObject() {
		return Snapshot{Format: DefaultFormat, Content: e.String()}
	}
	content := e.Get("content")
	if !content.Exists() {
		content = e.Get("text")
	}
	return Snapshot{
		ID:      e.Get("id").String(),
		Format:  ParseFormat(e.Get("format").String()),
		Content: content.String(),
	}
}

// ParseTaggedLine parses a single line of the legacy tagged grammar.
// <format>body</format> yields the validated format and body, <format/>
// yields the format with empty content, anything else is plain text in the
// default format. Command batches still carry this grammar in legacy
// "value" payloads, so the command layer shares this function.
func ParseTaggedLine(raw string) Snapshot {
	if m := reSelfClosed.FindStringSubmatch(raw); m != nil {
		return Snapshot{Format: ParseFormat(m[1])}
	}
	if m := reTagged.FindStringSubmatch(raw); m != nil && m[1] == m[3] {
		return Snapshot{Format: ParseFormat(m[1]), Content: m[2]}
	}
	return Snapshot{Format: DefaultFormat, Content: raw}
}
