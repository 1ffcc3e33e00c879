package console

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
	"github.com/set-night/endoally/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSession struct {
	fail bool
	sent []domain.Content
}

func (s *echoSession) Send(_ context.Context, c domain.Content) (*domain.Reply, error) {
	s.sent = append(s.sent, c)
	if s.fail && c.Text != config.GreetingPrompt {
		return nil, errors.New("unavailable")
	}
	if c.Text == config.GreetingPrompt {
		return &domain.Reply{Text: "I'm **Endo Ally**."}, nil
	}
	return &domain.Reply{Text: "You said: " + c.Text, Usage: domain.Usage{PromptTokens: 10, CompletionTokens: 5}}, nil
}

type echoRemote struct {
	session *echoSession
	modes   []bool
}

func (r *echoRemote) CreateSession(_ context.Context, _ *profile.Profile, thinking bool) (service.RemoteSession, error) {
	r.modes = append(r.modes, thinking)
	return r.session, nil
}

func runREPL(t *testing.T, remote service.Remote, input string) string {
	t.Helper()
	p, err := profile.Default()
	require.NoError(t, err)

	var out bytes.Buffer
	repl := NewREPL(service.NewController(remote, p), strings.NewReader(input), &out, 0)
	require.NoError(t, repl.Run(context.Background(), false))
	return out.String()
}

func TestREPL_Conversation(t *testing.T) {
	remote := &echoRemote{session: &echoSession{}}
	out := runREPL(t, remote, "hello\n/usage\n/quit\nnever read\n")

	assert.Contains(t, out, "Endo Ally")
	assert.Contains(t, out, config.Disclaimer)
	assert.Contains(t, out, "You said: hello")
	assert.Contains(t, out, "prompt tokens: 10")
	assert.NotContains(t, out, "never read")
}

func TestREPL_SuggestionShortcut(t *testing.T) {
	remote := &echoRemote{session: &echoSession{}}
	out := runREPL(t, remote, "2\n")

	assert.Contains(t, out, "You said: "+config.SuggestedQuestions[1])
}

func TestREPL_ThinkingRestartsSession(t *testing.T) {
	remote := &echoRemote{session: &echoSession{}}
	out := runREPL(t, remote, "/thinking\n/end\n")

	assert.Equal(t, []bool{false, true, true}, remote.modes)
	assert.Contains(t, out, "mode: thinking")
}

func TestREPL_TurnFailure(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	remote := &echoRemote{session: &echoSession{fail: true}}
	out := runREPL(t, remote, "hello\n")

	assert.Contains(t, out, domain.ApologyText)
	assert.Contains(t, out, domain.TurnFailureBanner)
	assert.Equal(t, 1, strings.Count(logs.String(), `"level":"ERROR"`))
}

func TestREPL_BlankLineIgnored(t *testing.T) {
	session := &echoSession{}
	runREPL(t, &echoRemote{session: session}, "   \n\n")

	require.Len(t, session.sent, 1)
	assert.Equal(t, config.GreetingPrompt, session.sent[0].Text)
}

func TestRenderMessage(t *testing.T) {
	msg := domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Text:      `See <a href="https://endoviolence.com">the site</a> and **read**.`,
		Audio:     &domain.AudioRef{URL: "https://audio", Caption: "Book summary"},
		Citations: []domain.Citation{{URI: "https://example.org/x", Title: "Example"}},
	}

	got := RenderMessage(msg)
	assert.Contains(t, got, "the site")
	assert.Contains(t, got, "https://endoviolence.com")
	assert.Contains(t, got, "read")
	assert.NotContains(t, got, "**")
	assert.Contains(t, got, "Book summary")
	assert.Contains(t, got, "1. Example")
}

func TestRenderUsage(t *testing.T) {
	got := RenderUsage(service.UsageReport{PromptTokens: 3, CompletionTokens: 4, Cost: decimal.RequireFromString("0.5")})
	assert.Contains(t, got, "$0.5000")
}

func TestChatCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"chat"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestChatCmd_RejectsArgs(t *testing.T) {
	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"chat", "extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}
