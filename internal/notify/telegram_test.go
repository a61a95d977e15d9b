package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent    []tgbotapi.MessageConfig
	failFor map[int64]error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable type")
	}
	f.sent = append(f.sent, msg)
	if err, ok := f.failFor[msg.ChatID]; ok {
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{}, nil
}

func TestTelegramFansOutToAllChats(t *testing.T) {
	fake := &fakeSender{}
	n := newTelegram(fake, TelegramConfig{
		ChatIDs:     []int64{100, 200},
		GroupChatID: -500,
	})

	if err := n.Send(context.Background(), "dinger"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.sent) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(fake.sent))
	}
	if fake.sent[2].ChatID != -500 {
		t.Fatalf("group chat should be last, got %d", fake.sent[2].ChatID)
	}
	for _, msg := range fake.sent {
		if msg.Text != "dinger" {
			t.Fatalf("unexpected text %q", msg.Text)
		}
	}
}

func TestTelegramContinuesPastFailures(t *testing.T) {
	fake := &fakeSender{failFor: map[int64]error{100: errors.New("blocked")}}
	n := newTelegram(fake, TelegramConfig{ChatIDs: []int64{100, 200}})

	err := n.Send(context.Background(), "dinger")
	if err == nil {
		t.Fatal("expected the failed chat to surface an error")
	}
	if len(fake.sent) != 2 {
		t.Fatalf("delivery must continue past failures, got %d sends", len(fake.sent))
	}
}

func TestTelegramNoChatsIsNoop(t *testing.T) {
	fake := &fakeSender{}
	n := newTelegram(fake, TelegramConfig{})

	if err := n.Send(context.Background(), "dinger"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.sent) != 0 {
		t.Fatalf("expected no sends, got %d", len(fake.sent))
	}
}

func TestNewTelegramWithoutTokenReturnsNop(t *testing.T) {
	n, err := NewTelegram(TelegramConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(Nop); !ok {
		t.Fatalf("expected Nop notifier, got %T", n)
	}
}
