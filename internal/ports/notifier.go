package ports

import "context"

// Email is a fire-and-forget outbound message. Body is HTML, matching the
// templates the site already sends.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers customer/business email. Delivery is best-effort: the
// engine commits state first and only logs a failed send, it never rolls a
// decision back because a mail was lost.
type Notifier interface {
	Send(ctx context.Context, msg Email) error
}
