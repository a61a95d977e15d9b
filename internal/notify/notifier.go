// Package notify delivers formatted messages to the configured chat
// destinations.
package notify

import "context"

// Notifier delivers one text message to every configured destination.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Nop is a Notifier that drops every message. Used when no chat credentials
// are configured so the rest of the bot keeps working.
type Nop struct{}

func (Nop) Send(context.Context, string) error { return nil }
