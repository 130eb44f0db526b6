// Package pdf renders a filtered set of question records into a
// paginated A4 document with embedded remote images. Text is wrapped by
// measured width, every record's height is estimated before anything is
// drawn, and image failures degrade to a visible fallback line instead
// of aborting the document.
package pdf

// Metrics is the fixed page geometry shared read-only by the wrapper,
// the estimator and the layout engine. Units are PDF points.
type Metrics struct {
	PageWidth  float64
	PageHeight float64

	TopMargin    float64
	BottomMargin float64
	LeftMargin   float64
	RightMargin  float64

	LineHeight float64
	FontSize   float64

	ImagePadding float64 // gap below an embedded image
	TrailingPad  float64 // gap after each record block
}

// DefaultMetrics is A4 with the export tool's fixed layout constants.
func DefaultMetrics() Metrics {
	return Metrics{
		PageWidth:    595.28,
		PageHeight:   841.89,
		TopMargin:    40,
		BottomMargin: 60,
		LeftMargin:   40,
		RightMargin:  40,
		LineHeight:   18,
		FontSize:     12,
		ImagePadding: 20,
		TrailingPad:  20,
	}
}

// UsableWidth is the horizontal span available to text and images.
func (m Metrics) UsableWidth() float64 {
	return m.PageWidth - m.LeftMargin - m.RightMargin
}

// UsablePageHeight is the vertical span of a fresh page.
func (m Metrics) UsablePageHeight() float64 {
	return (m.PageHeight - m.TopMargin) - m.BottomMargin
}

// TopY is the cursor position at the top of a fresh page, measured from
// the page bottom (reportlab-style coordinates: y shrinks as content is
// drawn downward).
func (m Metrics) TopY() float64 {
	return m.PageHeight - m.TopMargin
}

// Measurer reports the rendered width of a string in the document font.
// Implementations must be deterministic and monotonic in prefix length;
// the wrapper's termination depends on that.
type Measurer interface {
	Width(s string) float64
}
