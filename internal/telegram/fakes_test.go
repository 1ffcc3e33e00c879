package telegram

import (
	"context"
	"errors"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type fakeSender struct {
	mu           sync.Mutex
	messages     []*bot.SendMessageParams
	audio        []*bot.SendAudioParams
	actions      int
	failMarkdown bool
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarkdown && params.ParseMode != "" {
		return nil, errors.New("can't parse entities")
	}
	cp := *params
	f.messages = append(f.messages, &cp)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeSender) SendAudio(_ context.Context, params *bot.SendAudioParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audio = append(f.audio, params)
	return &models.Message{ID: 100 + len(f.audio)}, nil
}

func (f *fakeSender) SendChatAction(context.Context, *bot.SendChatActionParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions++
	return true, nil
}
