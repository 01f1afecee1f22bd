package search

import (
	"strings"

	"github.com/kljensen/snowball"
)

// snippetRadius is the number of words kept on each side of the first
// matching word.
const snippetRadius = 8

// Stem reduces a word to its root form. Words the stemmer cannot handle
// (numbers, identifiers) are returned unchanged.
func Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}

// Snippet returns a short window of text around the first word whose stem
// matches any of the query terms. When nothing matches (the hit may have
// come from a phrase spanning punctuation) the leading words are returned
// instead. The returned snippet is display-only and never fed back into the
// index.
func Snippet(text string, terms []string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	stems := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		stems[Stem(strings.Trim(t, `"'.,;:!?()[]`))] = struct{}{}
	}

	match := -1
	for i, w := range words {
		if _, ok := stems[Stem(strings.Trim(strings.ToLower(w), `"'.,;:!?()[]`))]; ok {
			match = i
			break
		}
	}
	if match < 0 {
		match = 0
	}

	start := match - snippetRadius
	if start < 0 {
		start = 0
	}
	end := match + snippetRadius + 1
	if end > len(words) {
		end = len(words)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("… ")
	}
	b.WriteString(strings.Join(words[start:end], " "))
	if end < len(words) {
		b.WriteString(" …")
	}
	return b.String()
}
