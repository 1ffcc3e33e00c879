package render

import (
	"fmt"
	"testing"

	"github.com/set-night/endoally/internal/domain"
	"github.com/stretchr/testify/assert"
)

func markdownLink(label, href string) string {
	return fmt.Sprintf("[%s](%s)", label, href)
}

func TestBold(t *testing.T) {
	got := Bold("**Alicja** and **Allison** co-founded it", func(s string) string { return "*" + s + "*" })
	assert.Equal(t, "*Alicja* and *Allison* co-founded it", got)

	assert.Equal(t, "no emphasis", Bold("no emphasis", func(s string) string { return s }))
}

func TestAnchors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no anchors",
			in:   "plain text with a < b",
			want: "plain text with a < b",
		},
		{
			name: "anchor with attributes",
			in:   `Visit <a href="https://endoviolence.com/meet-us/" target="_blank" class="x">endoviolence.com/meet-us/</a>.`,
			want: "Visit [endoviolence.com/meet-us/](https://endoviolence.com/meet-us/).",
		},
		{
			name: "keeps paragraphs",
			in:   "First line.\n\nSee <a href=\"http://www.hystera.online\">www.hystera.online</a>.",
			want: "First line.\n\nSee [www.hystera.online](http://www.hystera.online).",
		},
		{
			name: "anchor without href",
			in:   `see <a name="x">here</a>`,
			want: "see here",
		},
		{
			name: "nested markup flattened",
			in:   `<a href="https://y">a</a> <em>b</em>`,
			want: "[a](https://y) b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Anchors(tt.in, markdownLink))
		})
	}
}

func TestCitationLabel(t *testing.T) {
	assert.Equal(t, "Title", CitationLabel(domain.Citation{URI: "https://a.com/x", Title: "Title"}))
	assert.Equal(t, "a.com", CitationLabel(domain.Citation{URI: "https://a.com/x"}))
	assert.Equal(t, "not a url", CitationLabel(domain.Citation{URI: "not a url"}))
}
