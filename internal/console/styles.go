package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/render"
	"github.com/set-night/endoally/internal/service"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	boldStyle = lipgloss.NewStyle().Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Underline(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	disclaimerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// RenderMessage formats one transcript message for the terminal.
func RenderMessage(msg domain.ChatMessage) string {
	var sb strings.Builder
	if msg.Role == domain.RoleUser {
		sb.WriteString(userStyle.Render("you"))
	} else {
		sb.WriteString(assistantStyle.Render("ally"))
	}
	sb.WriteString("> ")

	text := render.Anchors(msg.Text, func(label, href string) string {
		return linkStyle.Render(label) + metaStyle.Render(" ("+href+")")
	})
	text = render.Bold(text, func(inner string) string {
		return boldStyle.Render(inner)
	})
	sb.WriteString(text)

	if msg.Audio != nil {
		fmt.Fprintf(&sb, "\n  ♪ %s %s", msg.Audio.Caption, linkStyle.Render(msg.Audio.URL))
	}

	if len(msg.Citations) > 0 {
		sb.WriteString("\n  " + metaStyle.Render("Sources:"))
		for i, c := range msg.Citations {
			fmt.Fprintf(&sb, "\n  %d. %s %s", i+1, render.CitationLabel(c), metaStyle.Render(c.URI))
		}
	}
	return sb.String()
}

// RenderSuggestions lists the suggested questions with their shortcut numbers.
func RenderSuggestions(questions []string) string {
	var sb strings.Builder
	sb.WriteString(metaStyle.Render("Suggested questions (type the number):"))
	for i, q := range questions {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, q)
	}
	return sb.String()
}

func RenderUsage(r service.UsageReport) string {
	return fmt.Sprintf("%s\n  prompt tokens: %d\n  completion tokens: %d\n  estimated cost: $%s",
		headerStyle.Render("Usage"), r.PromptTokens, r.CompletionTokens, r.Cost.StringFixed(4))
}

func RenderHeader(thinking bool) string {
	mode := "standard"
	if thinking {
		mode = "thinking"
	}
	return headerStyle.Render("Endo Ally") + metaStyle.Render(" mode: "+mode)
}

func RenderError(text string) string {
	return errorStyle.Render(text)
}

func RenderDisclaimer(text string) string {
	return disclaimerStyle.Render(text)
}
