// internal/api/http/handlers_test.go
package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quovadis/examdb/internal/question"
)

func seededStore(t *testing.T) question.Store {
	t.Helper()
	store := question.NewInMemoryStore()
	err := store.PutBatch(context.Background(), []question.Record{
		{ID: 1, Question: "resin bonding basics", Answer: "A", Category: "materials"},
		{ID: 2, Question: "root canal anatomy", Answer: "C", Category: "endodontics"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestListQuestionsHidesAnswersByDefault(t *testing.T) {
	h := ListQuestionsHandler(seededStore(t), 50)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/questions?q=resin", nil))

	var got questionList
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 1 || len(got.Questions) != 1 {
		t.Fatalf("want 1 hit, got %#v", got)
	}
	if got.Questions[0].Answer != "" {
		t.Error("answers must be hidden without reveal=1")
	}

	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/questions?q=resin&reveal=1", nil))
	_ = json.NewDecoder(rr.Body).Decode(&got)
	if got.Questions[0].Answer != "A" {
		t.Error("reveal=1 must include the answer")
	}
}

func TestExportCSVAttachment(t *testing.T) {
	h := ExportCSVHandler(seededStore(t))

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/export/csv?q=resin", nil))

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rr.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "resin-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "resin bonding basics") || strings.Contains(body, "root canal") {
		t.Errorf("export should contain only the filtered rows:\n%s", body)
	}
}

func TestExportPDFSmoke(t *testing.T) {
	h := ExportPDFHandler(seededStore(t), "")

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest("GET", "/export/pdf", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF-") {
		t.Error("body is not a PDF document")
	}
}

func TestExportFilename(t *testing.T) {
	got := exportFilename("resin & hardness", "csv")
	if !strings.HasPrefix(got, "resin---hardness-") || !strings.HasSuffix(got, ".csv") {
		t.Errorf("exportFilename = %q", got)
	}
	if got := exportFilename("", "pdf"); !strings.HasPrefix(got, "all-") {
		t.Errorf("empty query filename = %q", got)
	}
}
