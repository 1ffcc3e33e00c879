package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
)

// Controller owns one chat widget: its remote session, its transcript and the
// in-flight guard. A Controller is torn down and rebuilt in place by
// ResetWithMode.
type Controller struct {
	remote  Remote
	profile *profile.Profile
	newID   func() string
	now     func() time.Time
	logger  *slog.Logger

	mu         sync.Mutex
	phase      domain.Phase
	thinking   bool
	session    RemoteSession
	store      *MessageStore
	lastError  string
	usage      UsageMeter
	lastActive time.Time
}

type ControllerOption func(*Controller)

func WithIDGenerator(fn func() string) ControllerOption {
	return func(c *Controller) { c.newID = fn }
}

func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

func NewController(remote Remote, p *profile.Profile, opts ...ControllerOption) *Controller {
	c := &Controller{
		remote:  remote,
		profile: p,
		newID:   uuid.NewString,
		now:     time.Now,
		logger:  slog.Default(),
		store:   NewMessageStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastActive = c.now()
	return c
}

// TurnResult lists what a call appended to the transcript.
type TurnResult struct {
	Messages  []domain.ChatMessage
	ToolCalls []string
	Usage     domain.Usage
}

// Initialize starts a session in the current mode.
func (c *Controller) Initialize(ctx context.Context) (*TurnResult, error) {
	c.mu.Lock()
	thinking := c.thinking
	c.mu.Unlock()
	return c.ResetWithMode(ctx, thinking)
}

// ResetWithMode discards the transcript and the remote session, then starts a
// new one with the greeting prompt. It is rejected while a request is in
// flight.
func (c *Controller) ResetWithMode(ctx context.Context, thinking bool) (*TurnResult, error) {
	c.mu.Lock()
	if c.phase.InFlight() {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	c.phase = domain.PhaseInitializing
	c.thinking = thinking
	c.session = nil
	c.lastError = ""
	c.store.Reset()
	c.lastActive = c.now()
	c.mu.Unlock()

	session, reply, err := c.startSession(ctx, thinking)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	if err != nil {
		c.phase = domain.PhaseFailed
		c.lastError = domain.InitFailureBanner
		c.logger.Error("initialize chat session", "error", err, "thinking", thinking)
		return nil, fmt.Errorf("%w: %w", domain.ErrInitialization, err)
	}

	c.session = session
	c.usage.Add(reply.Usage, c.profile.Model(thinking))

	text, audio := ParseBody(reply.Text)
	msg := c.newMessage(domain.RoleAssistant, text, audio, ParseCitations(reply.Grounding))
	c.store.Append(msg)
	c.phase = domain.PhaseIdle

	return &TurnResult{Messages: []domain.ChatMessage{msg}, Usage: reply.Usage}, nil
}

func (c *Controller) startSession(ctx context.Context, thinking bool) (RemoteSession, *domain.Reply, error) {
	session, err := c.remote.CreateSession(ctx, c.profile, thinking)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	reply, err := session.Send(ctx, domain.TextContent(config.GreetingPrompt))
	if err != nil {
		return nil, nil, fmt.Errorf("send greeting: %w", err)
	}
	if reply == nil {
		reply = &domain.Reply{}
	}
	return session, reply, nil
}

// Submit runs one user turn. Blank input, a turn already in flight and a
// missing session are rejected without touching the transcript. A failed
// turn still appends the user message plus an apology and leaves the widget
// usable; the returned error then wraps domain.ErrTurnFailed.
func (c *Controller) Submit(ctx context.Context, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrBlankInput
	}

	c.mu.Lock()
	if c.phase.InFlight() {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	if c.session == nil {
		c.mu.Unlock()
		return nil, domain.ErrNoSession
	}
	userMsg := c.newMessage(domain.RoleUser, text, nil, nil)
	c.store.Append(userMsg)
	c.phase = domain.PhaseSending
	c.lastError = ""
	c.lastActive = c.now()
	session := c.session
	model := c.profile.Model(c.thinking)
	c.mu.Unlock()

	t, err := runTurn(ctx, session, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = domain.PhaseIdle
	c.lastActive = c.now()
	c.usage.Add(t.usage, model)

	result := &TurnResult{
		Messages:  []domain.ChatMessage{userMsg},
		ToolCalls: t.answered(),
		Usage:     t.usage,
	}

	if err != nil {
		c.lastError = domain.TurnFailureBanner
		apology := c.newMessage(domain.RoleAssistant, domain.ApologyText, nil, nil)
		c.store.Append(apology)
		result.Messages = append(result.Messages, apology)
		c.logger.Error("chat turn failed", "error", err, "step", t.step.String())
		return result, fmt.Errorf("%w: %w", domain.ErrTurnFailed, err)
	}

	text, audio := ParseBody(t.reply.Text)
	msg := c.newMessage(domain.RoleAssistant, text, audio, ParseCitations(t.reply.Grounding))
	if msg.HasContent() {
		c.store.Append(msg)
		result.Messages = append(result.Messages, msg)
	} else {
		c.logger.Debug("dropping empty reply")
	}
	return result, nil
}

// Messages returns the transcript in append order.
func (c *Controller) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.All()
}

func (c *Controller) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.SessionState{
		Phase:        c.phase,
		ThinkingMode: c.thinking,
		HasSession:   c.session != nil,
		LastError:    c.lastError,
	}
}

func (c *Controller) Usage() UsageReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage.Report()
}

// Touch marks the widget as active without changing its state.
func (c *Controller) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()
}

// LastActive is the time of the last use.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Controller) newMessage(role domain.Role, text string, audio *domain.AudioRef, citations []domain.Citation) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        c.newID(),
		Role:      role,
		Text:      text,
		Audio:     audio,
		Citations: citations,
		CreatedAt: c.now(),
	}
}
