package pdf

import (
	"fmt"

	"github.com/quovadis/examdb/internal/question"
)

const fallbackText = "[image load failed]"

// recordPlan is one record's precomputed layout: every wrapped line set
// plus the image outcome, so the draw pass never wraps or fetches again.
type recordPlan struct {
	questionLines []string
	choiceLines   [][]string
	answerLines   []string
	categoryLines []string

	image         ImageResult
	imageW        float64  // estimated scaled draw width
	imageH        float64  // estimated scaled draw height
	fallbackLines []string // drawn in place of a failed image

	total float64 // estimated vertical extent of the whole block
}

// imageBlockHeight is the vertical space the image slot claims in the
// estimate: scaled image plus padding on success, one wrapped fallback
// block on failure, nothing when there is no link.
func (p recordPlan) imageBlockHeight(m Metrics) float64 {
	switch p.image.Status {
	case ImageOK:
		return p.imageH + m.ImagePadding
	case ImageFetchFailed, ImageDecodeFailed:
		return float64(len(p.fallbackLines)) * m.LineHeight
	default:
		return 0
	}
}

// planRecord estimates the record's total rendered height and captures
// the intermediate state drawing needs. fetch is invoked at most once,
// and only when the record carries a link.
func planRecord(rec question.Record, m Metrics, meas Measurer, fetch func(url string) ImageResult) recordPlan {
	usable := m.UsableWidth()
	wrap := func(prefix, value string) []string {
		return WrapText(prefix+value, usable, meas)
	}

	p := recordPlan{
		questionLines: wrap("Question: ", rec.Question),
		answerLines:   wrap("Answer: ", rec.Answer),
		categoryLines: wrap("Category: ", rec.Category),
		image:         ImageResult{Status: ImageNone},
	}
	for i, text := range rec.ChoiceTexts() {
		if text == "" {
			continue
		}
		p.choiceLines = append(p.choiceLines, wrap(fmt.Sprintf("Choice %d: ", i+1), text))
	}

	if rec.Link != "" {
		p.image = fetch(rec.Link)
		switch p.image.Status {
		case ImageOK:
			scale := fitScale(float64(p.image.Width), float64(p.image.Height), usable, m.UsablePageHeight())
			p.imageW = float64(p.image.Width) * scale
			p.imageH = float64(p.image.Height) * scale
		case ImageFetchFailed, ImageDecodeFailed:
			p.fallbackLines = WrapText(fallbackText, usable, meas)
		}
	}

	h := float64(len(p.questionLines)) * m.LineHeight
	for _, ls := range p.choiceLines {
		h += float64(len(ls)) * m.LineHeight
	}
	h += p.imageBlockHeight(m)
	h += float64(len(p.answerLines)) * m.LineHeight
	h += float64(len(p.categoryLines)) * m.LineHeight
	h += m.TrailingPad
	p.total = h
	return p
}

// fitScale returns the uniform factor that fits iw×ih inside maxW×maxH
// without ever upscaling.
func fitScale(iw, ih, maxW, maxH float64) float64 {
	scale := maxW / iw
	if s := maxH / ih; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	return scale
}
