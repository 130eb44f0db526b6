// Package export renders a filtered record set into the download
// formats the search UI offers: a CSV mirror of the rows, a front/back
// flashcard CSV, and a labeled plain-text listing. The PDF export lives
// in internal/pdf.
package export

import (
	"encoding/csv"
	"io"

	"github.com/quovadis/examdb/internal/ingest"
	"github.com/quovadis/examdb/internal/question"
)

// WriteCSV mirrors the filtered rows under the canonical header. Every
// record always emits all nine columns, empty or not.
func WriteCSV(w io.Writer, recs []question.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ingest.Columns); err != nil {
		return err
	}
	for _, r := range recs {
		ch := r.ChoiceTexts()
		row := []string{r.Question, ch[0], ch[1], ch[2], ch[3], ch[4], r.Answer, r.Category, r.Link}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
