package service

import (
	"context"

	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/profile"
)

// Remote creates conversations on a hosted model.
type Remote interface {
	CreateSession(ctx context.Context, p *profile.Profile, thinking bool) (RemoteSession, error)
}

// RemoteSession is one conversation carrying its own context.
type RemoteSession interface {
	Send(ctx context.Context, content domain.Content) (*domain.Reply, error)
}
