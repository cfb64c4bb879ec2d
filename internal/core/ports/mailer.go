package ports

import "context"

// Mailer sends plain-text notification mail through an external transport.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
