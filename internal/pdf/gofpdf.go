package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// fpdfCanvas adapts a gofpdf document to the engine's Canvas and
// Measurer. gofpdf measures y from the page top, the engine from the
// bottom; the adapter flips.
type fpdfCanvas struct {
	doc    *gofpdf.Fpdf
	m      Metrics
	images int
}

func (c *fpdfCanvas) Width(s string) float64 {
	return c.doc.GetStringWidth(s)
}

func (c *fpdfCanvas) Text(x, y float64, line string) {
	c.doc.Text(x, c.m.PageHeight-y, line)
}

func (c *fpdfCanvas) Image(img image.Image, x, y, w, h float64) error {
	if img == nil || w <= 0 || h <= 0 {
		return fmt.Errorf("empty image placement %gx%g", w, h)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	// Names are ordinal, not random: gofpdf emits image objects in name
	// order and the output must be byte-stable across runs.
	c.images++
	name := fmt.Sprintf("record-image-%06d", c.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	c.doc.RegisterImageOptionsReader(name, opts, &buf)
	c.doc.ImageOptions(name, x, c.m.PageHeight-y-h, w, h, false, opts, 0, "")
	if c.doc.Err() {
		err := c.doc.Error()
		c.doc.ClearError()
		return err
	}
	return nil
}

func (c *fpdfCanvas) NewPage() {
	c.doc.AddPage()
}
