package telegram

import (
	"fmt"
	"strings"

	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/render"
)

// FormatMessage renders a transcript message as Telegram Markdown (v1).
// Audio is sent separately.
func FormatMessage(msg domain.ChatMessage) string {
	text := render.Anchors(msg.Text, func(label, href string) string {
		return fmt.Sprintf("[%s](%s)", label, href)
	})
	text = render.Bold(text, func(inner string) string {
		return "*" + inner + "*"
	})

	if len(msg.Citations) == 0 {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	if text != "" {
		sb.WriteString("\n\n")
	}
	sb.WriteString("*Sources*")
	for _, c := range msg.Citations {
		fmt.Fprintf(&sb, "\n• [%s](%s)", render.CitationLabel(c), c.URI)
	}
	return sb.String()
}
