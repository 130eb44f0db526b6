package question

import "strings"

// ParseQuery splits a search query on "&" into trimmed keywords,
// dropping empties. "resin & hardness" -> ["resin", "hardness"].
func ParseQuery(q string) []string {
	var kws []string
	for _, part := range strings.Split(q, "&") {
		if kw := strings.TrimSpace(part); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}

// searchText concatenates every searchable field of a record, including
// the raw link so URL fragments (e.g. "drive.google") match too.
func searchText(r Record) string {
	parts := make([]string, 0, 9)
	if r.Question != "" {
		parts = append(parts, r.Question)
	}
	for _, c := range r.Choices {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	for _, s := range []string{r.Answer, r.Category, r.Link} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Match reports whether every keyword occurs (case-insensitive) in the
// record's concatenated text. An empty keyword list matches everything.
func Match(r Record, keywords []string) bool {
	text := strings.ToLower(searchText(r))
	for _, kw := range keywords {
		if !strings.Contains(text, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
