package trivia

import "strings"

// Search filters questions whose text contains term as a case-insensitive
// substring, preserving input order. An empty term matches every question.
// Store implementations of SearchText must agree with this filter.
func Search(items []Question, term string) []Question {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	var matched []Question
	for _, q := range items {
		if strings.Contains(strings.ToLower(q.Text), needle) {
			matched = append(matched, q)
		}
	}
	return matched
}
