// internal/api/http/questions.go
package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/quovadis/examdb/internal/question"
)

type questionList struct {
	Count     int               `json:"count"`
	Questions []question.Record `json:"questions"`
}

// ListQuestionsHandler serves keyword search over the dataset. Answers
// are blanked unless reveal=1 so the browsing view stays spoiler-free;
// the export endpoints always include them.
func ListQuestionsHandler(store question.Store, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), defaultLimit)
		offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
		reveal := r.URL.Query().Get("reveal") == "1"

		recs, err := store.List(r.Context(), question.ListOpts{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if !reveal {
			for i := range recs {
				recs[i].Answer = ""
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(questionList{Count: len(recs), Questions: recs})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
