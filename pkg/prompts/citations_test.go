package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single tag",
			text: "BP elevated [Source: vitals.csv | visit_date=2026-01-08] today.",
			want: []string{"[Source: vitals.csv | visit_date=2026-01-08]"},
		},
		{
			name: "dedup preserves first-seen order",
			text: "a [Source: notes.csv] b [Source: vitals.csv | visit_date=2026-01-08] c [Source: notes.csv]",
			want: []string{"[Source: notes.csv]", "[Source: vitals.csv | visit_date=2026-01-08]"},
		},
		{
			name: "unclosed tag ignored",
			text: "trailing [Source: wounds.csv",
			want: []string{},
		},
		{
			name: "no tags",
			text: "plain clinical prose",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCitations(tt.text))
		})
	}
}

func TestExtractCitations_RoundTripWithPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt(fullInput())
	tags := ExtractCitations(prompt)

	assert.NotEmpty(t, tags)
	for _, tag := range tags {
		// The preamble documents the tag format with <placeholders>;
		// every real tag must match the grammar.
		if strings.Contains(tag, "<") {
			continue
		}
		assert.Regexp(t, citationGrammar, tag)
	}
}
