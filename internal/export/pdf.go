/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"errors"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"screenwright/internal/screenplay"
)

// PDFOptions controls PDF export behavior. Units are points (pt).
// Built-in Courier keeps the traditional screenplay look without font
// embedding.
type PDFOptions struct {
	Title    string
	FontSize float64 // defaults to 12
}

// US letter in points, classic screenplay margins.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginTop    = 72.0
	marginBottom = 72.0
	lineHeight   = 14.0
)

// Left offsets per format, following standard screenplay layout.
var formatIndent = map[screenplay.Format]float64{
	screenplay.FormatHeader:        108, // 1.5in
	screenplay.FormatAction:        108,
	screenplay.FormatSpeaker:       266, // ~3.7in
	screenplay.FormatDialog:        180, // 2.5in
	screenplay.FormatParenthetical: 223, // ~3.1in
	screenplay.FormatTransition:    432, // 6in
	screenplay.FormatChapterBreak:  108,
}

// ExportPDF writes the document as a paginated screenplay PDF at outPath.
// Chapter breaks force a new page; headers and speakers are kept with the
// line that follows by the page-break check running before each line.
func ExportPDF(doc *screenplay.Document, outPath string, opt PDFOptions) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if outPath == "" {
		return errors.New("output path is required")
	}
	size := opt.FontSize
	if size <= 0 {
		size = 12
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
		OrientationStr: "",
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, false)
	}
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetFont("Courier", "", size)
	pdf.AddPage()
	y := marginTop

	newPage := func() {
		pdf.AddPage()
		y = marginTop
	}

	for _, s := range doc.Snapshots() {
		if s.Format == screenplay.FormatChapterBreak {
			if y > marginTop {
				newPage()
			}
			if s.Content != "" {
				pdf.SetFont("Courier", "B", size)
				pdf.Text(formatIndent[s.Format], y, strings.ToUpper(s.Content))
				pdf.SetFont("Courier", "", size)
				y += 2 * lineHeight
			}
			continue
		}
		if y > pageHeight-marginBottom {
			newPage()
		}
		x, ok := formatIndent[s.Format]
		if !ok {
			x = formatIndent[screenplay.DefaultFormat]
		}
		text := s.Content
		switch s.Format {
		case screenplay.FormatHeader, screenplay.FormatSpeaker:
			text = strings.ToUpper(text)
		case screenplay.FormatParenthetical:
			if text != "" && !strings.HasPrefix(text, "(") {
				text = "(" + text + ")"
			}
		}
		pdf.Text(x, y, text)
		y += lineHeight
		// Blank line after blocks that end a beat.
		switch s.Format {
		case screenplay.FormatHeader, screenplay.FormatAction, screenplay.FormatTransition:
			y += lineHeight / 2
		}
	}

	return pdf.OutputFileAndClose(outPath)
}
