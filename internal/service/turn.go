package service

import (
	"context"
	"fmt"

	"github.com/set-night/endoally/internal/domain"
)

// turnStep is a position in the user-turn round trip:
//
//	sendText -> final                 (plain reply)
//	sendText -> dispatch -> final     (no recognized tool calls, first reply stands)
//	sendText -> dispatch -> sendResults -> final
type turnStep int

const (
	stepSendText turnStep = iota
	stepDispatch
	stepSendResults
	stepFinal
)

func (s turnStep) String() string {
	switch s {
	case stepSendText:
		return "send_text"
	case stepDispatch:
		return "dispatch"
	case stepSendResults:
		return "send_results"
	case stepFinal:
		return "final"
	default:
		return "unknown"
	}
}

type turn struct {
	text    string
	step    turnStep
	reply   *domain.Reply
	results []domain.FunctionCallResult
	usage   domain.Usage
}

func runTurn(ctx context.Context, session RemoteSession, text string) (*turn, error) {
	t := &turn{text: text, step: stepSendText}
	for t.step != stepFinal {
		if err := t.advance(ctx, session); err != nil {
			return t, err
		}
	}
	return t, nil
}

func (t *turn) advance(ctx context.Context, session RemoteSession) error {
	switch t.step {
	case stepSendText:
		reply, err := session.Send(ctx, domain.TextContent(t.text))
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		t.record(reply)
	case stepDispatch:
		t.results = Dispatch(t.reply.ToolCalls)
	case stepSendResults:
		reply, err := session.Send(ctx, domain.ResultsContent(t.results))
		if err != nil {
			return fmt.Errorf("send tool results: %w", err)
		}
		t.record(reply)
	}
	t.step = nextStep(t.step, t.reply, t.results)
	return nil
}

func (t *turn) record(reply *domain.Reply) {
	if reply == nil {
		reply = &domain.Reply{}
	}
	t.reply = reply
	t.usage.PromptTokens += reply.Usage.PromptTokens
	t.usage.CompletionTokens += reply.Usage.CompletionTokens
}

// answered lists the tool names whose results were sent back.
func (t *turn) answered() []string {
	if t.step != stepFinal || len(t.results) == 0 {
		return nil
	}
	names := make([]string, len(t.results))
	for i, r := range t.results {
		names[i] = r.Name
	}
	return names
}

// nextStep is the transition table of a turn. Tool calls requested by the
// reply to the tool results are not answered again.
func nextStep(step turnStep, reply *domain.Reply, results []domain.FunctionCallResult) turnStep {
	switch step {
	case stepSendText:
		if reply != nil && len(reply.ToolCalls) > 0 {
			return stepDispatch
		}
		return stepFinal
	case stepDispatch:
		if len(results) == 0 {
			return stepFinal
		}
		return stepSendResults
	default:
		return stepFinal
	}
}
