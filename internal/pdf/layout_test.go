package pdf

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/quovadis/examdb/internal/question"
)

// testMetrics is a deliberately small page: usable width 120pt
// (20 runes at 6pt each), usable height 200pt.
func testMetrics() Metrics {
	return Metrics{
		PageWidth: 200, PageHeight: 300,
		TopMargin: 40, BottomMargin: 60, LeftMargin: 40, RightMargin: 40,
		LineHeight: 18, FontSize: 12,
		ImagePadding: 20, TrailingPad: 20,
	}
}

type canvasOp struct {
	kind       string // "text" | "image"
	x, y, w, h float64
	line       string
	page       int
}

type fakeCanvas struct {
	ops      []canvasOp
	pages    int
	imageErr error
}

func newFakeCanvas() *fakeCanvas { return &fakeCanvas{pages: 1} }

func (c *fakeCanvas) Text(x, y float64, line string) {
	c.ops = append(c.ops, canvasOp{kind: "text", x: x, y: y, line: line, page: c.pages})
}

func (c *fakeCanvas) Image(img image.Image, x, y, w, h float64) error {
	if c.imageErr != nil {
		return c.imageErr
	}
	c.ops = append(c.ops, canvasOp{kind: "image", x: x, y: y, w: w, h: h, page: c.pages})
	return nil
}

func (c *fakeCanvas) NewPage() { c.pages++ }

func noImages(url string) ImageResult {
	return ImageResult{Status: ImageNone}
}

func okImage(w, h int) func(string) ImageResult {
	return func(string) ImageResult {
		return ImageResult{
			Status: ImageOK,
			Img:    image.NewRGBA(image.Rect(0, 0, w, h)),
			Width:  w, Height: h,
		}
	}
}

func textRecord(id int, q string) question.Record {
	return question.Record{ID: id, Question: q, Answer: "B", Category: "anatomy"}
}

func TestEstimateMatchesDrawnDescent(t *testing.T) {
	m := testMetrics()
	meas := fixedMeasurer{perRune: 6}
	rec := question.Record{
		ID:       1,
		Question: strings.Repeat("q", 30), // "Question: " + 30 runes -> 2 lines
		Choices:  question.MakeChoices("yes", "no"),
		Answer:   "A",
		Category: "path",
	}

	plan := planRecord(rec, m, meas, noImages)
	canvas := newFakeCanvas()
	e := NewEngine(m, meas, canvas, noImages)

	before := e.Y()
	e.Place(rec)
	if canvas.pages != 1 {
		t.Fatalf("record should fit on the first page, got %d pages", canvas.pages)
	}
	if descent := before - e.Y(); descent != plan.total {
		t.Errorf("drawn descent %v != estimated %v", descent, plan.total)
	}
}

func TestQuestionNeverStartsWithoutRoom(t *testing.T) {
	m := testMetrics()
	meas := fixedMeasurer{perRune: 6}
	canvas := newFakeCanvas()
	e := NewEngine(m, meas, canvas, noImages)

	for i := 0; i < 12; i++ {
		e.Place(textRecord(i+1, strings.Repeat("x", 10+i*7)))
	}

	// Text-only records never draw below the bottom margin, and every
	// record's first question line starts high enough for its block.
	for _, op := range canvas.ops {
		if op.y < m.BottomMargin {
			t.Fatalf("line %q drawn at y=%v below bottom margin %v", op.line, op.y, m.BottomMargin)
		}
	}
	if canvas.pages < 2 {
		t.Fatalf("12 records on a 200pt page should paginate, got %d pages", canvas.pages)
	}
}

func TestImageNotUpscaled(t *testing.T) {
	m := testMetrics()
	canvas := newFakeCanvas()
	e := NewEngine(m, fixedMeasurer{perRune: 6}, canvas, okImage(10, 10))

	e.Place(question.Record{ID: 1, Question: "tiny", Link: "http://x/img"})

	var img *canvasOp
	for i := range canvas.ops {
		if canvas.ops[i].kind == "image" {
			img = &canvas.ops[i]
		}
	}
	if img == nil {
		t.Fatal("no image drawn")
	}
	if img.w != 10 || img.h != 10 {
		t.Errorf("10x10 image drawn at %gx%g; must never upscale", img.w, img.h)
	}
}

func TestImageScaledDownToUsableBounds(t *testing.T) {
	m := testMetrics()
	canvas := newFakeCanvas()
	// 400x1000px against 120x200pt usable space: scale = 120/400 = 0.3
	// beats 200/1000 = 0.2, so 0.2 wins -> 80x200.
	e := NewEngine(m, fixedMeasurer{perRune: 6}, canvas, okImage(400, 1000))

	e.Place(question.Record{ID: 1, Question: "big", Link: "http://x/img"})

	for _, op := range canvas.ops {
		if op.kind != "image" {
			continue
		}
		if op.w > 120 || op.h > 200 {
			t.Errorf("image %gx%g exceeds usable bounds 120x200", op.w, op.h)
		}
		if op.h > op.w*1000/400+0.001 || op.w > op.h*400/1000+0.001 {
			t.Errorf("aspect ratio not preserved: %gx%g", op.w, op.h)
		}
		return
	}
	t.Fatal("no image drawn")
}

func TestFetchFailureIsolatedPerRecord(t *testing.T) {
	m := testMetrics()
	fetches := 0
	fetch := func(url string) ImageResult {
		fetches++
		return ImageResult{Status: ImageFetchFailed, Err: errors.New("connection refused")}
	}
	canvas := newFakeCanvas()
	e := NewEngine(m, fixedMeasurer{perRune: 6}, canvas, fetch)

	e.Place(question.Record{ID: 1, Question: "broken", Link: "http://dead/img"})
	e.Place(textRecord(2, "unaffected"))

	if fetches != 1 {
		t.Errorf("fetch called %d times, want exactly 1 (estimate and draw share one fetch)", fetches)
	}
	var sawFallback, sawSecond bool
	for _, op := range canvas.ops {
		if strings.Contains(op.line, "[image load failed]") {
			sawFallback = true
		}
		if strings.Contains(op.line, "unaffected") {
			sawSecond = true
		}
	}
	if !sawFallback {
		t.Error("record with broken link should render a fallback line")
	}
	if !sawSecond {
		t.Error("record after a broken image must still render")
	}
}

func TestDrawTimeImageErrorDegrades(t *testing.T) {
	m := testMetrics()
	canvas := newFakeCanvas()
	canvas.imageErr = errors.New("png: invalid checksum")
	e := NewEngine(m, fixedMeasurer{perRune: 6}, canvas, okImage(10, 10))

	e.Place(question.Record{ID: 1, Question: "q", Answer: "A", Link: "http://x/img"})
	e.Place(textRecord(2, "next"))

	var sawError, sawAnswer, sawNext bool
	for _, op := range canvas.ops {
		if strings.Contains(op.line, "invalid checksum") {
			sawError = true
		}
		if strings.HasPrefix(op.line, "Answer: ") {
			sawAnswer = true
		}
		if strings.Contains(op.line, "next") {
			sawNext = true
		}
	}
	if !sawError {
		t.Error("draw failure should render a fallback line naming the cause")
	}
	if !sawAnswer || !sawNext {
		t.Error("fields after a failed image draw must still render")
	}
}

func TestTrailingPadOverrunOpensFreshPage(t *testing.T) {
	m := testMetrics()
	canvas := newFakeCanvas()
	// 100x190px image: scale stays 1.0, so the block cannot share a page
	// with much else. The record's estimate exceeds a whole page, the
	// image forces a mid-record break, and the trailing padding overruns.
	e := NewEngine(m, fixedMeasurer{perRune: 6}, canvas, okImage(100, 190))

	e.Place(question.Record{ID: 1, Question: "q", Answer: "A", Category: "c", Link: "http://x/img"})

	if canvas.pages != 4 {
		t.Fatalf("expected 4 pages (pre-break, image break, trailing-pad break), got %d", canvas.pages)
	}
	for _, op := range canvas.ops {
		if op.page == canvas.pages {
			t.Errorf("trailing-pad page should be empty, found %q", op.line)
		}
	}
	if e.Y() != m.TopY() {
		t.Errorf("cursor should sit at the top of the fresh page, got %v", e.Y())
	}
}
