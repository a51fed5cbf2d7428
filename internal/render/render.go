/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render defines the flat line list handed to external renderers.
// Renderers are stateless with respect to the document: they receive the
// whole list in document order after any mutation and own nothing.
package render

// Line is one renderable unit in document order.
type Line struct {
	ID      string `json:"id"`
	Format  string `json:"format"`
	Content string `json:"content"`
}

// Renderer consumes a full render list. Implementations live outside the
// engine (terminal preview, GUI, exporters).
type Renderer interface {
	Render(lines []Line) error
}
