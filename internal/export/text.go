package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/quovadis/examdb/internal/pdf"
	"github.com/quovadis/examdb/internal/question"
)

const textSeparator = "\n\n" + "----------------------------------------" + "\n\n"

// FormatRecord renders one record as labeled plain-text lines. The link
// is shown in its normalized direct-content form since that is what the
// PDF export embeds.
func FormatRecord(r question.Record) string {
	parts := []string{"Question: " + r.Question}
	for i, text := range r.ChoiceTexts() {
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Choice %d: %s", i+1, text))
	}
	parts = append(parts, "Answer: "+r.Answer)
	parts = append(parts, "Category: "+r.Category)
	if r.Link != "" {
		parts = append(parts, "Image: "+pdf.ResolveLink(r.Link)+" (embedded in the PDF export)")
	}
	return strings.Join(parts, "\n")
}

// WriteText writes every record separated by a 40-dash rule.
func WriteText(w io.Writer, recs []question.Record) error {
	for _, r := range recs {
		if _, err := io.WriteString(w, FormatRecord(r)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, textSeparator); err != nil {
			return err
		}
	}
	return nil
}
