// Package search translates free-text query strings into field-scoped match
// expressions and decorates hits with stem-aware snippets.
package search

import (
	"strings"
)

// Query is a parsed text query scoped to exactly one field of a collection.
// Match holds the FTS expression; Terms holds the raw lowercase words for
// snippet extraction.
type Query struct {
	Field string
	Match string
	Terms []string
}

// Parse splits a free-text query into unquoted tokens and quoted phrases and
// builds the match expression. Unquoted tokens match disjunctively (a
// document matches if it contains any token after the field's analyzer);
// quoted substrings match as exact phrases. The analyzer itself (stemming
// for full-text fields) lives in the index, not here.
func Parse(field, raw string) Query {
	tokens, phrases := scan(raw)

	var parts []string
	var terms []string
	for _, tok := range tokens {
		parts = append(parts, field+":"+ftsString(tok))
		terms = append(terms, strings.ToLower(tok))
	}
	for _, ph := range phrases {
		parts = append(parts, field+":"+ftsString(ph))
		for _, w := range strings.Fields(ph) {
			terms = append(terms, strings.ToLower(w))
		}
	}

	return Query{
		Field: field,
		Match: strings.Join(parts, " OR "),
		Terms: terms,
	}
}

// scan splits the input into unquoted whitespace-separated tokens and quoted
// substrings. Either quote character opens a quoted region; an unterminated
// quote runs to the end of the input.
func scan(raw string) (tokens, phrases []string) {
	var cur strings.Builder
	var quote rune

	flushToken := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	flushPhrase := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			phrases = append(phrases, s)
		}
		cur.Reset()
	}

	for _, c := range raw {
		switch {
		case quote != 0:
			if c == quote {
				flushPhrase()
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case c == '"' || c == '\'':
			flushToken()
			quote = c
		case c == ' ' || c == '\t' || c == '\n':
			flushToken()
		default:
			cur.WriteRune(c)
		}
	}
	if quote != 0 {
		flushPhrase()
	} else {
		flushToken()
	}
	return tokens, phrases
}

// ftsString quotes a token or phrase as an FTS string literal so that
// operator characters inside it stay literal. Embedded double quotes are
// doubled per the FTS escaping rules.
func ftsString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
