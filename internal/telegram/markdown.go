package telegram

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitMessage splits a message into chunks of maxLen characters. It prefers
// newlines, then spaces, and never cuts through a [label](url) link.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > maxLen {
		splitAt := splitPoint(runes, maxLen)
		parts = append(parts, string(runes[:splitAt]))
		runes = runes[splitAt:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func splitPoint(runes []rune, maxLen int) int {
	chunk := runes[:maxLen]
	if nl := lastIndexRune(chunk, '\n'); nl > maxLen/2 {
		return nl + 1
	}

	splitAt := maxLen
	if sp := lastIndexRune(chunk, ' '); sp > maxLen/2 {
		splitAt = sp + 1
	}
	for i := 0; i < len(runes) && i < splitAt; i++ {
		if runes[i] != '[' || escaped(runes, i) {
			continue
		}
		end := linkEnd(runes, i)
		if end < 0 {
			continue
		}
		if splitAt < end && i > 0 {
			return i
		}
		i = end - 1
	}
	return splitAt
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// FixMarkdown makes text safe for Telegram's legacy Markdown. Balanced
// *bold*, _italic_ and `code` spans, [label](url) links and ``` blocks are
// kept; every other markup character is escaped, so model output such as
// "* item" bullets or snake_case words cannot break parsing.
func FixMarkdown(text string) string {
	return rewrite(text, false)
}

// StripMarkdown removes the markup FixMarkdown keeps, for the plain-text
// fallback. Links become "label (url)".
func StripMarkdown(text string) string {
	return rewrite(text, true)
}

func rewrite(text string, plain bool) string {
	var sb strings.Builder
	inBlock := false

	lines := strings.Split(text, "\n")
	for n, line := range lines {
		if n > 0 {
			sb.WriteByte('\n')
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inBlock = !inBlock
			if !plain {
				sb.WriteString(line)
			}
			continue
		}
		if inBlock {
			sb.WriteString(line)
			continue
		}
		rewriteLine(&sb, []rune(line), plain)
	}

	if inBlock && !plain {
		sb.WriteString("\n```")
	}
	return sb.String()
}

func rewriteLine(sb *strings.Builder, runes []rune, plain bool) {
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) && isMarkup(runes[i+1]) {
			if !plain {
				sb.WriteRune(r)
			}
			sb.WriteRune(runes[i+1])
			i++
			continue
		}

		switch r {
		case '[':
			if end := linkEnd(runes, i); end > 0 {
				if plain {
					label, url := splitLink(runes[i:end])
					sb.WriteString(label + " (" + url + ")")
				} else {
					sb.WriteString(string(runes[i:end]))
				}
				i = end - 1
				continue
			}
		case '*', '_', '`':
			if end := spanEnd(runes, i); end > 0 {
				if plain {
					sb.WriteString(string(runes[i+1 : end]))
				} else {
					sb.WriteString(string(runes[i : end+1]))
				}
				i = end
				continue
			}
		default:
			sb.WriteRune(r)
			continue
		}

		// Unpaired markup character.
		if !plain {
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
}

func isMarkup(r rune) bool {
	return r == '*' || r == '_' || r == '`' || r == '['
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func escaped(runes []rune, i int) bool {
	return i > 0 && runes[i-1] == '\\'
}

// spanEnd returns the index of the delimiter closing the span opened at i,
// or -1. Spans stay on one line and may not contain a link, since legacy
// Markdown has no nesting.
func spanEnd(runes []rune, i int) int {
	d := runes[i]
	if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) || runes[i+1] == d {
		return -1
	}
	if d != '`' && i > 0 && isWord(runes[i-1]) {
		return -1
	}

	for j := i + 2; j < len(runes); j++ {
		if d != '`' && runes[j] == '[' && linkEnd(runes, j) > 0 {
			return -1
		}
		if runes[j] != d {
			continue
		}
		if d == '`' {
			return j
		}
		if !unicode.IsSpace(runes[j-1]) && (j+1 == len(runes) || !isWord(runes[j+1])) {
			return j
		}
	}
	return -1
}

// linkEnd returns the index just past a [label](url) link starting at i, or
// -1 when there is none.
func linkEnd(runes []rune, i int) int {
	if i >= len(runes) || runes[i] != '[' {
		return -1
	}
	j := i + 1
	for j < len(runes) && runes[j] != ']' && runes[j] != '[' && runes[j] != '\n' {
		j++
	}
	if j == i+1 || j+1 >= len(runes) || runes[j] != ']' || runes[j+1] != '(' {
		return -1
	}
	k := j + 2
	for k < len(runes) && runes[k] != ')' && !unicode.IsSpace(runes[k]) {
		k++
	}
	if k == j+2 || k >= len(runes) || runes[k] != ')' {
		return -1
	}
	return k + 1
}

func splitLink(link []rune) (label, url string) {
	s := string(link)
	mid := strings.Index(s, "](")
	return s[1:mid], s[mid+2 : len(s)-1]
}
