// Package render turns assistant text into front-end specific markup.
package render

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/set-night/endoally/internal/domain"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Bold rewrites **text** spans with format.
func Bold(text string, format func(inner string) string) string {
	return boldPattern.ReplaceAllStringFunc(text, func(m string) string {
		return format(boldPattern.FindStringSubmatch(m)[1])
	})
}

// Anchors rewrites <a href> elements with format and flattens any other
// markup to its text. Text without an anchor is returned unchanged.
func Anchors(text string, format func(label, href string) string) string {
	if !strings.Contains(strings.ToLower(text), "<a ") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	var sb strings.Builder
	writeNodes(&sb, doc.Find("body"), format)
	return sb.String()
}

func writeNodes(sb *strings.Builder, s *goquery.Selection, format func(label, href string) string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			sb.WriteString(c.Text())
		case "a":
			label := strings.TrimSpace(c.Text())
			href, ok := c.Attr("href")
			if !ok || href == "" {
				sb.WriteString(label)
				return
			}
			if label == "" {
				label = href
			}
			sb.WriteString(format(label, href))
		case "br":
			sb.WriteString("\n")
		default:
			writeNodes(sb, c, format)
		}
	})
}

// CitationLabel is the citation title, or the URI host when the title is empty.
func CitationLabel(c domain.Citation) string {
	if c.Title != "" {
		return c.Title
	}
	u, err := url.Parse(c.URI)
	if err != nil || u.Host == "" {
		return c.URI
	}
	return u.Hostname()
}
