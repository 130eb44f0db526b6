// Package ingest loads the question dataset from CSV, normalizing the
// header row through a fixed alias table so exports and the layout core
// only ever see typed records with canonical fields.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/quovadis/examdb/internal/question"
)

// Canonical column names, in export order.
var Columns = []string{
	"question",
	"choice1", "choice2", "choice3", "choice4", "choice5",
	"answer", "category", "link",
}

// aliases maps common header spellings onto canonical columns. Matching
// happens after cleanHeader, so entries are lowercase with no spaces.
var aliases = map[string]string{
	"prompt": "question", "body": "question", "question_text": "question", "text": "question",
	"a": "choice1", "choice_a": "choice1", "choicea": "choice1", "option1": "choice1",
	"b": "choice2", "choice_b": "choice2", "choiceb": "choice2", "option2": "choice2",
	"c": "choice3", "choice_c": "choice3", "choicec": "choice3", "option3": "choice3",
	"d": "choice4", "choice_d": "choice4", "choiced": "choice4", "option4": "choice4",
	"e": "choice5", "choice_e": "choice5", "choicee": "choice5", "option5": "choice5",
	"ans": "answer", "correct": "answer", "correct_answer": "answer", "solution": "answer",
	"subject": "category", "cat": "category", "topic": "category", "classification": "category",
	"url": "link", "image": "link", "image_url": "link", "imageurl": "link", "image_link": "link", "link_url": "link",
}

// cleanHeader strips the UTF-8 BOM and every kind of whitespace the
// source spreadsheets smuggle in, including ideographic space.
func cleanHeader(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', '　':
			return -1
		}
		return r
	}, s)
	return strings.ToLower(s)
}

func canonical(header string) string {
	h := cleanHeader(header)
	for _, c := range Columns {
		if h == c {
			return c
		}
	}
	if c, ok := aliases[h]; ok {
		return c
	}
	return ""
}

// LoadCSV reads the dataset. Unrecognized columns are ignored, missing
// columns become empty strings, and record IDs are 1-based row numbers.
func LoadCSV(r io.Reader) ([]question.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		if c := canonical(h); c != "" {
			if _, dup := idx[c]; !dup {
				idx[c] = i
			}
		}
	}
	if _, ok := idx["question"]; !ok {
		return nil, fmt.Errorf("csv: no question column in header %v", header)
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var recs []question.Record
	for id := 1; ; id++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", id, err)
		}
		recs = append(recs, question.Record{
			ID:       id,
			Question: cell(row, "question"),
			Choices: question.MakeChoices(
				cell(row, "choice1"), cell(row, "choice2"), cell(row, "choice3"),
				cell(row, "choice4"), cell(row, "choice5"),
			),
			Answer:   cell(row, "answer"),
			Category: cell(row, "category"),
			Link:     cell(row, "link"),
		})
	}
	return recs, nil
}
