// Package email provides the order notification sender.
package email

import "context"

type Provider interface {
	SendEmail(ctx context.Context, email *Email) error
}

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Noop is used when no email API key is configured. Order notifications are
// best effort, so a missing provider is not an error.
type Noop struct{}

func (Noop) SendEmail(ctx context.Context, email *Email) error { return nil }
