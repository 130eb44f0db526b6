// internal/api/http/export.go
package http

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/quovadis/examdb/internal/export"
	"github.com/quovadis/examdb/internal/pdf"
	"github.com/quovadis/examdb/internal/question"
)

// filteredSet loads the full filtered record set for an export run.
// Exports never paginate: the download mirrors the whole hit list.
func filteredSet(r *http.Request, store question.Store) ([]question.Record, string, error) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	recs, err := store.List(r.Context(), question.ListOpts{Q: q})
	return recs, q, err
}

// exportFilename builds "<query-or-all>-<timestamp>.<ext>" with the
// query reduced to a filename-safe slug.
func exportFilename(q, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, q)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "all"
	}
	return fmt.Sprintf("%s-%s.%s", slug, time.Now().Format("20060102150405"), ext)
}

func setAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func ExportCSVHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, q, err := filteredSet(r, store)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		setAttachment(w, "text/csv; charset=utf-8", exportFilename(q, "csv"))
		if err := export.WriteCSV(w, recs); err != nil {
			log.Printf("csv export: %v", err)
		}
	}
}

func ExportFlashcardsHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, q, err := filteredSet(r, store)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		opts := export.FlashcardOptions{
			Numbering: r.URL.Query().Get("numbering"),
			Meta:      r.URL.Query().Get("meta") == "1",
			CRLF:      r.URL.Query().Get("crlf") == "1",
		}
		setAttachment(w, "text/csv; charset=utf-8", exportFilename(q, "flashcards.csv"))
		if err := export.WriteFlashcards(w, recs, opts); err != nil {
			log.Printf("flashcard export: %v", err)
		}
	}
}

func ExportTextHandler(store question.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, q, err := filteredSet(r, store)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		setAttachment(w, "text/plain; charset=utf-8", exportFilename(q, "txt"))
		if err := export.WriteText(w, recs); err != nil {
			log.Printf("text export: %v", err)
		}
	}
}

// ExportPDFHandler builds the paginated PDF inline. Image fetches run
// serially with a short timeout, so worst-case latency is bounded by
// timeout × records-with-links; progress lands in the server log.
func ExportPDFHandler(store question.Store, fontPath string) http.HandlerFunc {
	builder := pdf.NewBuilder(pdf.DefaultMetrics(), fontPath, pdf.DefaultFetchTimeout)
	return func(w http.ResponseWriter, r *http.Request) {
		recs, q, err := filteredSet(r, store)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		logged := 0
		out, err := builder.Build(recs, func(frac float64) {
			if pct := int(frac * 100); pct >= logged+25 {
				logged = pct - pct%25
				log.Printf("pdf export %q: %d%%", q, logged)
			}
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		setAttachment(w, "application/pdf", exportFilename(q, "pdf"))
		_, _ = w.Write(out)
	}
}
