package transport

import "context"

// Transport delivers mail messages over an established submission channel.
// Implementations are safe for concurrent use and are reused across sends
// until the resolver's TTL discards them.
type Transport interface {
	// Send delivers a message and returns the identifier it was
	// submitted under.
	Send(ctx context.Context, msg *Message) (*Result, error)
	// Name returns the transport's identifier (e.g., "smtp", "stdout").
	Name() string
	// Close releases any pooled connections held by the transport.
	Close() error
}

// Address is a display name paired with an email address.
type Address struct {
	Name  string
	Email string
}

// Message represents an outgoing email.
type Message struct {
	From     Address
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	Headers  map[string]string
}

// Result contains the outcome of a successful delivery.
type Result struct {
	MessageID string
}
