package export

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/quovadis/examdb/internal/question"
)

// FlashcardOptions controls the two-field front/back CSV layout used by
// flashcard apps that import question decks.
type FlashcardOptions struct {
	Numbering string // "ABC" (default) or "123" choice labels
	BareBack  bool   // omit the "Answer: " prefix on the back
	Meta      bool   // append category and link to the back
	CRLF      bool   // terminate CSV records with \r\n
}

var newlineRE = regexp.MustCompile(`\r\n|\r`)

// normalizeNewlines folds CR and CRLF inside a cell to LF so decks
// import consistently regardless of the source spreadsheet's platform.
func normalizeNewlines(s string) string {
	return newlineRE.ReplaceAllString(s, "\n")
}

func flashcardLabel(numbering string, i int) string {
	if numbering == "123" {
		return strconv.Itoa(i + 1)
	}
	return question.ChoiceLabels[i]
}

// front is the question followed by a blank line and the labeled,
// non-empty choices.
func front(r question.Record, numbering string) string {
	f := normalizeNewlines(r.Question)
	var lines []string
	for i, text := range r.ChoiceTexts() {
		if text == "" {
			continue
		}
		lines = append(lines, flashcardLabel(numbering, i)+". "+normalizeNewlines(text))
	}
	if len(lines) > 0 {
		f += "\n\n" + strings.Join(lines, "\n")
	}
	return f
}

func back(r question.Record, o FlashcardOptions) string {
	b := r.Answer
	if !o.BareBack {
		b = "Answer: " + r.Answer
	}
	if o.Meta {
		var extra []string
		for _, s := range []string{r.Category, r.Link} {
			if s != "" {
				extra = append(extra, s)
			}
		}
		if len(extra) > 0 {
			b += "\n\n" + strings.Join(extra, "\n")
		}
	}
	return normalizeNewlines(b)
}

// WriteFlashcards emits a UTF-8 CSV with a BOM and a Front,Back header.
// The BOM keeps spreadsheet apps from mangling non-ASCII decks.
func WriteFlashcards(w io.Writer, recs []question.Record, o FlashcardOptions) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = o.CRLF
	if err := cw.Write([]string{"Front", "Back"}); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write([]string{front(r, o.Numbering), back(r, o)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
