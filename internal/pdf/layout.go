package pdf

import (
	"fmt"
	"image"

	"github.com/quovadis/examdb/internal/question"
)

// Canvas is the drawing surface the layout engine writes to. Coordinates
// are points with y measured from the page bottom, like the cursor. The
// gofpdf adapter converts; tests substitute a recording fake.
type Canvas interface {
	// Text draws one already-wrapped line with its baseline at (x, y).
	Text(x, y float64, line string)
	// Image draws img into the rectangle whose bottom-left corner is
	// (x, y). A non-nil error marks a draw-time failure (e.g. encoding)
	// that the engine degrades to a fallback line.
	Image(img image.Image, x, y, w, h float64) error
	// NewPage finalizes the current page and opens a fresh one.
	NewPage()
}

// Engine walks records in order, deciding page breaks from estimated
// heights and advancing a vertical cursor as it draws. A record's
// question block only starts on a page with room for the whole
// estimated record; the image may still trigger a mid-record break when
// its own placement does not fit.
type Engine struct {
	m      Metrics
	meas   Measurer
	canvas Canvas
	fetch  func(url string) ImageResult

	y     float64
	pages int
}

func NewEngine(m Metrics, meas Measurer, canvas Canvas, fetch func(url string) ImageResult) *Engine {
	return &Engine{m: m, meas: meas, canvas: canvas, fetch: fetch, y: m.TopY(), pages: 1}
}

// Y exposes the cursor for tests that assert estimate/draw agreement.
func (e *Engine) Y() float64 { return e.y }

// Pages is the number of pages opened so far.
func (e *Engine) Pages() int { return e.pages }

func (e *Engine) newPage() {
	e.canvas.NewPage()
	e.pages++
	e.y = e.m.TopY()
}

func (e *Engine) drawLines(lines []string) {
	for _, ln := range lines {
		e.canvas.Text(e.m.LeftMargin, e.y, ln)
		e.y -= e.m.LineHeight
	}
}

// Place lays out one record: break first if the estimate does not fit,
// then question, choices, image (re-fit against the live remaining
// space), answer, category, trailing padding.
func (e *Engine) Place(rec question.Record) {
	p := planRecord(rec, e.m, e.meas, e.fetch)

	if e.y-p.total < e.m.BottomMargin {
		e.newPage()
	}

	e.drawLines(p.questionLines)
	for _, ls := range p.choiceLines {
		e.drawLines(ls)
	}

	switch p.image.Status {
	case ImageOK:
		e.placeImage(p)
	case ImageFetchFailed, ImageDecodeFailed:
		e.drawLines(p.fallbackLines)
	}

	e.drawLines(p.answerLines)
	e.drawLines(p.categoryLines)

	// When the trailing padding overruns, open a fresh page now rather
	// than deferring the break to the next record. This can leave a
	// blank last page.
	if e.y-e.m.TrailingPad < e.m.BottomMargin {
		e.newPage()
	} else {
		e.y -= e.m.TrailingPad
	}
}

// placeImage draws the prefetched image. If the estimated placement no
// longer fits the current page it breaks first; if the remaining space
// is still shorter than the scaled height it shrinks further, never
// upscaling. Draw-time failures degrade to a fallback line naming the
// cause.
func (e *Engine) placeImage(p recordPlan) {
	nw, nh := p.imageW, p.imageH
	if e.y-nh < e.m.BottomMargin {
		e.newPage()
	}
	if remaining := e.y - e.m.BottomMargin; nh > remaining {
		adj := remaining / nh
		nw, nh = nw*adj, nh*adj
	}
	if err := e.canvas.Image(p.image.Img, e.m.LeftMargin, e.y-nh, nw, nh); err != nil {
		e.drawLines(WrapText(fmt.Sprintf("[image load failed: %v]", err), e.m.UsableWidth(), e.meas))
		return
	}
	e.y -= nh + e.m.ImagePadding
}
