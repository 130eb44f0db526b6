package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/quovadis/examdb/internal/question"
)

// ProgressFunc receives the fraction of records laid out so far, in
// [0, 1], once per record. Values are non-decreasing and the final call
// reports 1.0.
type ProgressFunc func(frac float64)

// creationDate is pinned so two builds over identical records and
// identical image bytes produce identical output.
var creationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Builder assembles the export document. The zero value is not usable;
// construct with NewBuilder.
type Builder struct {
	metrics  Metrics
	fontPath string // optional UTF-8 TTF; core Helvetica otherwise
	fetcher  *Fetcher
}

func NewBuilder(m Metrics, fontPath string, timeout time.Duration) *Builder {
	return &Builder{metrics: m, fontPath: fontPath, fetcher: NewFetcher(timeout)}
}

// Build lays out every record in order and serializes the page sequence.
// progress may be nil. An empty record set yields a valid single-page
// blank document. Image failures never surface here; they appear as
// fallback lines in the output.
func (b *Builder) Build(records []question.Record, progress ProgressFunc) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCreationDate(creationDate)
	doc.SetAutoPageBreak(false, 0)

	font := "Helvetica"
	if b.fontPath != "" {
		font = "custom"
		doc.AddUTF8Font(font, "", b.fontPath)
	}
	doc.SetFont(font, "", b.metrics.FontSize)
	doc.AddPage()
	if doc.Err() {
		return nil, doc.Error()
	}

	canvas := &fpdfCanvas{doc: doc, m: b.metrics}
	engine := NewEngine(b.metrics, canvas, canvas, b.fetcher.Fetch)

	total := len(records)
	for i, rec := range records {
		engine.Place(rec)
		if progress != nil {
			frac := float64(i+1) / float64(total)
			if frac > 1 {
				frac = 1
			}
			progress(frac)
		}
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
