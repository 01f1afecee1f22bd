package search

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		raw       string
		wantMatch string
		wantTerms []string
	}{
		{
			name:      "single token",
			field:     "text",
			raw:       "graph",
			wantMatch: `text:"graph"`,
			wantTerms: []string{"graph"},
		},
		{
			name:      "multiple tokens are disjunctive",
			field:     "text",
			raw:       "graph theory",
			wantMatch: `text:"graph" OR text:"theory"`,
			wantTerms: []string{"graph", "theory"},
		},
		{
			name:      "double-quoted phrase",
			field:     "text",
			raw:       `"graph theory"`,
			wantMatch: `text:"graph theory"`,
			wantTerms: []string{"graph", "theory"},
		},
		{
			name:      "single-quoted phrase",
			field:     "text",
			raw:       `'spectral methods'`,
			wantMatch: `text:"spectral methods"`,
			wantTerms: []string{"spectral", "methods"},
		},
		{
			name:      "mixed tokens and phrase",
			field:     "text",
			raw:       `eigenvalue "graph theory" laplacian`,
			wantMatch: `text:"eigenvalue" OR text:"laplacian" OR text:"graph theory"`,
			wantTerms: []string{"eigenvalue", "laplacian", "graph", "theory"},
		},
		{
			name:      "unterminated quote runs to end",
			field:     "text",
			raw:       `"open phrase`,
			wantMatch: `text:"open phrase"`,
			wantTerms: []string{"open", "phrase"},
		},
		{
			name:      "operator characters stay literal",
			field:     "text",
			raw:       "foo-bar",
			wantMatch: `text:"foo-bar"`,
			wantTerms: []string{"foo-bar"},
		},
		{
			name:      "title field",
			field:     "title",
			raw:       "algebra",
			wantMatch: `title:"algebra"`,
			wantTerms: []string{"algebra"},
		},
		{
			name:      "terms are lowercased",
			field:     "text",
			raw:       "Graph THEORY",
			wantMatch: `text:"Graph" OR text:"THEORY"`,
			wantTerms: []string{"graph", "theory"},
		},
		{
			name:      "empty input",
			field:     "text",
			raw:       "",
			wantMatch: "",
			wantTerms: nil,
		},
		{
			name:      "whitespace only",
			field:     "text",
			raw:       "   \t\n ",
			wantMatch: "",
			wantTerms: nil,
		},
		{
			name:      "empty quotes ignored",
			field:     "text",
			raw:       `"" graph`,
			wantMatch: `text:"graph"`,
			wantTerms: []string{"graph"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.field, tt.raw)
			if q.Field != tt.field {
				t.Errorf("Field = %q, want %q", q.Field, tt.field)
			}
			if q.Match != tt.wantMatch {
				t.Errorf("Match = %q, want %q", q.Match, tt.wantMatch)
			}
			if !reflect.DeepEqual(q.Terms, tt.wantTerms) {
				t.Errorf("Terms = %v, want %v", q.Terms, tt.wantTerms)
			}
		})
	}
}

func TestFTSString_EscapesQuotes(t *testing.T) {
	if got := ftsString(`say "hi"`); got != `"say ""hi"""` {
		t.Errorf("ftsString() = %q", got)
	}
}
