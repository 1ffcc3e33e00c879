package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/service"
)

const helpText = `Commands:
  /thinking  toggle thinking mode (restarts the chat)
  /end       restart the chat
  /usage     show token usage and estimated cost
  /help      show this help
  /quit      leave`

// REPL drives one widget from a line-oriented terminal.
type REPL struct {
	widget      *service.Controller
	in          io.Reader
	out         io.Writer
	suggestions []string
	timeout     time.Duration
}

func NewREPL(widget *service.Controller, in io.Reader, out io.Writer, timeout time.Duration) *REPL {
	return &REPL{
		widget:      widget,
		in:          in,
		out:         out,
		suggestions: config.SuggestedQuestions,
		timeout:     timeout,
	}
}

// Run starts the session in the given mode and reads input until EOF or /quit.
func (r *REPL) Run(ctx context.Context, thinking bool) error {
	r.reset(ctx, thinking)
	r.println(RenderSuggestions(r.suggestions))

	scanner := bufio.NewScanner(r.in)
	r.prompt()
	for scanner.Scan() {
		if r.handle(ctx, strings.TrimSpace(scanner.Text())) {
			return nil
		}
		r.prompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// handle processes one input line and reports whether to quit.
func (r *REPL) handle(ctx context.Context, line string) bool {
	switch line {
	case "/quit", "/exit":
		return true
	case "/help":
		r.println(helpText)
		r.println(RenderSuggestions(r.suggestions))
	case "/thinking":
		r.reset(ctx, !r.widget.State().ThinkingMode)
	case "/end":
		r.reset(ctx, r.widget.State().ThinkingMode)
	case "/usage":
		r.println(RenderUsage(r.widget.Usage()))
	default:
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(r.suggestions) {
			line = r.suggestions[n-1]
			r.println(RenderMessage(domain.ChatMessage{Role: domain.RoleUser, Text: line}))
		}
		r.submit(ctx, line)
	}
	return false
}

func (r *REPL) reset(ctx context.Context, thinking bool) {
	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	r.println(RenderHeader(thinking))
	result, err := r.widget.ResetWithMode(reqCtx, thinking)
	if err != nil {
		r.println(RenderError(r.banner(err)))
		return
	}
	r.printAssistant(result.Messages)
	r.println(RenderDisclaimer(config.Disclaimer))
}

func (r *REPL) submit(ctx context.Context, text string) {
	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	result, err := r.widget.Submit(reqCtx, text)
	switch {
	case errors.Is(err, domain.ErrBlankInput):
		return
	case errors.Is(err, domain.ErrNoSession):
		r.println(RenderError("No active session. Type /end to start a new one."))
		return
	case err != nil && result == nil:
		r.println(RenderError(r.banner(err)))
		return
	}

	r.printAssistant(result.Messages)
	if err != nil {
		r.println(RenderError(r.banner(err)))
	}
}

func (r *REPL) banner(err error) string {
	if s := r.widget.State().LastError; s != "" {
		return s
	}
	return err.Error()
}

func (r *REPL) printAssistant(msgs []domain.ChatMessage) {
	for _, m := range msgs {
		if m.Role == domain.RoleAssistant && m.HasContent() {
			r.println(RenderMessage(m))
		}
	}
}

func (r *REPL) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *REPL) prompt() {
	fmt.Fprint(r.out, "> ")
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}
