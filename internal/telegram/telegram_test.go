package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	msg := domain.ChatMessage{
		Role: domain.RoleAssistant,
		Text: `**Allison Rich** made a film. Watch it on <a href="https://youtu.be/x" target="_blank">YouTube</a>.`,
		Citations: []domain.Citation{
			{URI: "https://endoviolence.com/book", Title: "The Book"},
			{URI: "https://example.org/page", Title: ""},
		},
	}

	got := FormatMessage(msg)
	assert.Equal(t, "*Allison Rich* made a film. Watch it on [YouTube](https://youtu.be/x).\n\n"+
		"*Sources*\n• [The Book](https://endoviolence.com/book)\n• [example.org](https://example.org/page)", got)
}

func TestFormatMessage_EmptyCitationsRenderNothing(t *testing.T) {
	msg := domain.ChatMessage{Text: "hello", Citations: []domain.Citation{}}
	assert.Equal(t, "hello", FormatMessage(msg))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 8)+"\n", parts[0])
	assert.Equal(t, strings.Repeat("b", 8), parts[1])
}

func TestFixMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "fine", "fine"},
		{"bold kept", "Hi, I'm *Endo Ally*.", "Hi, I'm *Endo Ally*."},
		{"italic kept", "_Not medical advice._", "_Not medical advice._"},
		{"bullets escaped", "* item one\n* item two", "\\* item one\n\\* item two"},
		{"bullets mixed with bold", "*Sources*\n* one *two*", "*Sources*\n\\* one *two*"},
		{"lone star", "5 * 3", "5 \\* 3"},
		{"snake case", "see snake_case here", "see snake\\_case here"},
		{"link kept", "[Meet us](https://endoviolence.com/meet_us/)", "[Meet us](https://endoviolence.com/meet_us/)"},
		{"bold around link escaped", "*see [x](https://a.b)*", "\\*see [x](https://a.b)\\*"},
		{"bracket without link", "[note] text", "\\[note] text"},
		{"already escaped", "a \\* b", "a \\* b"},
		{"bold does not span lines", "*open\nclose*", "\\*open\nclose\\*"},
		{"inline code kept", "use `x_y` here", "use `x_y` here"},
		{"lone backtick", "use `x", "use \\`x"},
		{"unclosed block", "```go\ncode_here", "```go\ncode_here\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixMarkdown(tt.in))
		})
	}
}

func TestFixMarkdown_FormattedMessage(t *testing.T) {
	msg := domain.ChatMessage{
		Text:      "**Tips**\n* rest_days matter\n* see <a href=\"https://e.com/a_b\">the guide</a>",
		Citations: []domain.Citation{{URI: "https://e.com/x", Title: "Guide"}},
	}

	got := FixMarkdown(FormatMessage(msg))
	assert.Equal(t, "*Tips*\n\\* rest\\_days matter\n\\* see [the guide](https://e.com/a_b)\n\n"+
		"*Sources*\n• [Guide](https://e.com/x)", got)
}

func TestStripMarkdown(t *testing.T) {
	in := FixMarkdown("*Sources* and [Site](https://a.com) with snake_case and * bullet")
	assert.Equal(t, "Sources and Site (https://a.com) with snake_case and * bullet", StripMarkdown(in))
}

func TestSplitMessage_KeepsLinksWhole(t *testing.T) {
	link := "[guide](https://endoviolence.com/resources)"
	text := strings.Repeat("a", 30) + link + strings.Repeat("b", 5)

	parts := SplitMessage(text, 50)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("a", 30), parts[0])
	assert.True(t, strings.HasPrefix(parts[1], link))
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestSplitMessage_PrefersSpaces(t *testing.T) {
	text := strings.Repeat("a", 7) + " " + strings.Repeat("b", 7)
	parts := SplitMessage(text, 10)
	assert.Equal(t, []string{strings.Repeat("a", 7) + " ", strings.Repeat("b", 7)}, parts)
}

func TestSendChatMessage_TextThenAudio(t *testing.T) {
	f := &fakeSender{}
	kb := WidgetKeyboard(config.SuggestedQuestions, false)
	msg := domain.ChatMessage{
		Text:  "Here is the recording.",
		Audio: &domain.AudioRef{URL: "https://audio", Caption: "Summary"},
	}

	require.NoError(t, SendChatMessage(context.Background(), f, 7, msg, kb))

	require.Len(t, f.messages, 1)
	assert.Equal(t, "Here is the recording.", f.messages[0].Text)
	assert.Nil(t, f.messages[0].ReplyMarkup)

	require.Len(t, f.audio, 1)
	assert.Equal(t, "Summary", f.audio[0].Caption)
	assert.Equal(t, &models.InputFileString{Data: "https://audio"}, f.audio[0].Audio)
	assert.Equal(t, kb, f.audio[0].ReplyMarkup)
}

func TestSendChatMessage_AudioOnly(t *testing.T) {
	f := &fakeSender{}
	msg := domain.ChatMessage{Audio: &domain.AudioRef{URL: "https://audio"}}

	require.NoError(t, SendChatMessage(context.Background(), f, 7, msg, nil))
	assert.Empty(t, f.messages)
	assert.Len(t, f.audio, 1)
}

func TestSendLongMessage_FallsBackToPlainText(t *testing.T) {
	f := &fakeSender{failMarkdown: true}
	require.NoError(t, SendLongMessage(context.Background(), f, 1, "*Sources* [Site](https://a.com)", nil))
	require.Len(t, f.messages, 1)
	assert.Equal(t, models.ParseMode(""), f.messages[0].ParseMode)
	assert.Equal(t, "Sources Site (https://a.com)", f.messages[0].Text)
}

func TestSendLongMessage_MarkupOnLastPart(t *testing.T) {
	f := &fakeSender{}
	kb := WidgetKeyboard(nil, true)
	long := strings.Repeat("x", MaxMessageLen+10)

	require.NoError(t, SendLongMessage(context.Background(), f, 1, long, kb))
	require.Len(t, f.messages, 2)
	assert.Nil(t, f.messages[0].ReplyMarkup)
	assert.Equal(t, kb, f.messages[1].ReplyMarkup)
}

func TestWidgetKeyboard(t *testing.T) {
	kb := WidgetKeyboard(config.SuggestedQuestions, true)
	rows := kb.InlineKeyboard
	require.Len(t, rows, len(config.SuggestedQuestions)+2)

	assert.Equal(t, "q_0", rows[0][0].CallbackData)
	toggle := rows[len(rows)-2]
	assert.Equal(t, CallbackToggleThinking, toggle[0].CallbackData)
	assert.Contains(t, toggle[0].Text, "on")
	assert.Equal(t, WebsiteURL, rows[len(rows)-1][0].URL)
}

func TestParseSuggestion(t *testing.T) {
	i, err := ParseSuggestion("q_3", 9)
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	for _, bad := range []string{"q_9", "q_-1", "q_x", "other"} {
		_, err := ParseSuggestion(bad, 9)
		assert.Error(t, err, bad)
	}
}

func TestTelegramLogger_RoutesTopics(t *testing.T) {
	f := &fakeSender{}
	cfg := &config.Config{LogTelegramChatID: -100, LogTopicToolCall: 5}
	l := NewTelegramLogger(f, cfg)

	l.LogToolCalls(1, []string{"getContributors"})
	l.LogRateLimited(1) // no topic configured

	require.Len(t, f.messages, 1)
	assert.Equal(t, 5, f.messages[0].MessageThreadID)
	assert.Contains(t, f.messages[0].Text, "getContributors")
}

func TestTelegramLogger_DisabledWithoutChat(t *testing.T) {
	f := &fakeSender{}
	l := NewTelegramLogger(f, &config.Config{LogTopicError: 1})
	l.LogSessionStarted(1, true)
	assert.Empty(t, f.messages)
}
