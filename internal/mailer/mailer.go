// Package mailer dispatches verification-code emails through a transactional
// email HTTP API, with a console implementation for development.
package mailer

import "context"

// Message is one verification email. Fields map one-to-one onto the remote
// template's parameters.
type Message struct {
	ToEmail      string
	ToName       string
	DocumentName string
	Code         string
	ExpiresIn    string
	CompanyName  string
}

// Mailer sends one message. Implementations report delivery-request failures
// via error; none of them confirms actual delivery.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
