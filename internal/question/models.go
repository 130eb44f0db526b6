package question

// ChoiceLabels are the letter labels used by flashcard exports.
// PDF and text exports prefix choices with their 1-based ordinal instead.
var ChoiceLabels = [5]string{"A", "B", "C", "D", "E"}

type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Record is one exam question row: prompt, up to five choices, the
// correct answer, a subject category, and an optional image link.
// Absent cells are empty strings, never nulls. Records are immutable
// once loaded.
type Record struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Choices  []Choice `json:"choices,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Category string   `json:"category,omitempty"`
	Link     string   `json:"link,omitempty"`
}

// ChoiceTexts returns the five raw choice columns in order, padding
// with empty strings so exports always see a fixed-width row.
func (r Record) ChoiceTexts() [5]string {
	var out [5]string
	for _, c := range r.Choices {
		for i, l := range ChoiceLabels {
			if c.Label == l {
				out[i] = c.Text
			}
		}
	}
	return out
}

// MakeChoices builds the choice list from raw column values, keeping
// only non-empty texts and assigning letter labels by position.
func MakeChoices(texts ...string) []Choice {
	var out []Choice
	for i, t := range texts {
		if i >= len(ChoiceLabels) {
			break
		}
		if t == "" {
			continue
		}
		out = append(out, Choice{Label: ChoiceLabels[i], Text: t})
	}
	return out
}
