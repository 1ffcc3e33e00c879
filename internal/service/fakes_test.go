package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
)

type fakeReply struct {
	reply *domain.Reply
	err   error
}

// fakeSession answers Send calls from a queue of scripted replies.
type fakeSession struct {
	mu      sync.Mutex
	replies []fakeReply
	sent    []domain.Content
	block   chan struct{}
}

func (s *fakeSession) Send(ctx context.Context, content domain.Content) (*domain.Reply, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, content)
	if len(s.replies) == 0 {
		return nil, errors.New("no scripted reply")
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	return next.reply, next.err
}

func (s *fakeSession) script(replies ...fakeReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

func (s *fakeSession) sentContents() []domain.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Content, len(s.sent))
	copy(out, s.sent)
	return out
}

type fakeRemote struct {
	mu        sync.Mutex
	session   *fakeSession
	createErr error
	modes     []bool
}

func (r *fakeRemote) CreateSession(_ context.Context, _ *profile.Profile, thinking bool) (RemoteSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = append(r.modes, thinking)
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.session, nil
}

func text(s string) fakeReply {
	return fakeReply{reply: &domain.Reply{Text: s}}
}

func toolCalls(names ...string) fakeReply {
	calls := make([]domain.FunctionCallRequest, len(names))
	for i, n := range names {
		calls[i] = domain.FunctionCallRequest{Name: n}
	}
	return fakeReply{reply: &domain.Reply{ToolCalls: calls}}
}

func failure(msg string) fakeReply {
	return fakeReply{err: errors.New(msg)}
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("msg-%d", n)
	}
}

func strPtr(s string) *string { return &s }
