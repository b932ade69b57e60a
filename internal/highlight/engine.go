// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package highlight stamps keyword highlights into PDF documents. The
// Engine delegates all PDF parsing, text extraction, and annotation
// serialization to unipdf; this package contributes the hyphenation-tolerant
// match logic and the per-file failure isolation around it.
package highlight

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/model/optimize"
)

// hiliteColor is the fixed annotation color: yellow (full red + green, no blue).
var hiliteColor = []float64{1, 1, 0}

// Marker finds and highlights keywords in a single PDF. Implementations
// report the number of highlighted regions or an error; they never write
// partial output on failure.
type Marker interface {
	Mark(src, dest string, keywords []string) (hits int, err error)
}

// Engine is the unipdf-backed Marker.
type Engine struct{}

// NewEngine returns the production highlight engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compile-time interface assertion.
var _ Marker = (*Engine)(nil)

// Mark opens src, highlights every occurrence of every keyword on every
// page, and saves the annotated document to dest with duplicate-object
// cleanup and stream compression. It returns the total number of
// highlighted regions across the document.
func (e *Engine) Mark(src, dest string, keywords []string) (int, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return 0, fmt.Errorf("reading PDF: %w", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return 0, fmt.Errorf("checking encryption: %w", err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			return 0, fmt.Errorf("document is password protected")
		}
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}

	writer := model.NewPdfWriter()
	total := 0
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			return 0, fmt.Errorf("page %d: %w", i, err)
		}

		hits, err := markPage(page, keywords)
		if err != nil {
			return 0, fmt.Errorf("page %d: %w", i, err)
		}
		total += hits

		if err := writer.AddPage(page); err != nil {
			return 0, fmt.Errorf("page %d: %w", i, err)
		}
	}

	// The analogue of full garbage collection plus deflate on save.
	writer.SetOptimizer(optimize.New(optimize.Options{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		CombineDuplicateStreams:         true,
		CompressStreams:                 true,
		UseObjectStreams:                true,
	}))

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}
	if err := writer.Write(out); err != nil {
		out.Close()
		return 0, fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", dest, err)
	}
	return total, nil
}

// markPage highlights all keyword occurrences on one page, in keyword order,
// and returns the number of regions stamped. Highlight annotations live
// outside the content stream, so the extractable page text is unchanged and
// a re-run finds the same matches.
func markPage(page *model.PdfPage, keywords []string) (int, error) {
	ex, err := extractor.New(page)
	if err != nil {
		return 0, fmt.Errorf("building extractor: %w", err)
	}

	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		return 0, fmt.Errorf("extracting text: %w", err)
	}
	text := pageText.Text()
	marks := pageText.Marks()

	count := 0
	for _, kw := range keywords {
		for _, sp := range searchText(text, kw) {
			region, err := marks.RangeOffset(sp.start, sp.end)
			if err != nil {
				// Offsets with no marks (synthesized characters); nothing
				// to highlight for this occurrence.
				continue
			}
			for _, rect := range lineRects(region.Elements()) {
				addHighlight(page, rect)
				count++
			}
		}
	}
	return count, nil
}

// lineRects merges the glyph boxes of a matched mark range into one
// rectangle per text line. A match that wraps across lines yields one
// region per line, the way a human would expect the highlight to render.
func lineRects(marks []extractor.TextMark) []model.PdfRectangle {
	var rects []model.PdfRectangle
	var cur model.PdfRectangle
	have := false

	for _, m := range marks {
		if m.Meta {
			continue
		}
		b := m.BBox
		if b.Urx <= b.Llx || b.Ury <= b.Lly {
			continue
		}
		if !have {
			cur, have = b, true
			continue
		}
		if sameLine(cur, b) {
			cur = union(cur, b)
		} else {
			rects = append(rects, cur)
			cur = b
		}
	}
	if have {
		rects = append(rects, cur)
	}
	return rects
}

// sameLine reports whether two glyph boxes overlap vertically.
func sameLine(a, b model.PdfRectangle) bool {
	top := a.Ury
	if b.Ury < top {
		top = b.Ury
	}
	bottom := a.Lly
	if b.Lly > bottom {
		bottom = b.Lly
	}
	return top > bottom
}

func union(a, b model.PdfRectangle) model.PdfRectangle {
	if b.Llx < a.Llx {
		a.Llx = b.Llx
	}
	if b.Lly < a.Lly {
		a.Lly = b.Lly
	}
	if b.Urx > a.Urx {
		a.Urx = b.Urx
	}
	if b.Ury > a.Ury {
		a.Ury = b.Ury
	}
	return a
}

// addHighlight stamps one yellow highlight annotation over rect.
func addHighlight(page *model.PdfPage, rect model.PdfRectangle) {
	annot := model.NewPdfAnnotationHighlight()
	annot.C = core.MakeArrayFromFloats(hiliteColor)
	annot.Rect = core.MakeArrayFromFloats([]float64{rect.Llx, rect.Lly, rect.Urx, rect.Ury})
	annot.QuadPoints = core.MakeArrayFromFloats([]float64{
		rect.Llx, rect.Ury,
		rect.Urx, rect.Ury,
		rect.Llx, rect.Lly,
		rect.Urx, rect.Lly,
	})
	page.AddAnnotation(annot.PdfAnnotation)
}
