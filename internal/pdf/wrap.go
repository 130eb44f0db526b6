package pdf

// WrapText greedily packs s into the minimum ordered run of lines whose
// measured width stays within maxWidth. It works at rune granularity
// rather than word boundaries: the dataset is dense CJK prose without
// whitespace-delimited tokens, so character packing is both tighter and
// guaranteed to terminate. Latin words may break mid-token.
//
// An empty input yields exactly one empty line. A single rune wider
// than maxWidth becomes a line of its own.
func WrapText(s string, maxWidth float64, m Measurer) []string {
	if s == "" {
		return []string{""}
	}
	var lines []string
	buf := ""
	for _, r := range s {
		next := buf + string(r)
		if m.Width(next) <= maxWidth {
			buf = next
			continue
		}
		if buf != "" {
			lines = append(lines, buf)
		}
		buf = string(r)
	}
	if buf != "" {
		lines = append(lines, buf)
	}
	return lines
}
