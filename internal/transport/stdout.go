package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Stdout implements the Transport interface by writing messages to standard
// output. Intended for development and dry runs; messages are never
// actually delivered.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a Stdout transport that prints messages to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

func (s *Stdout) Name() string { return "stdout" }

// Send prints the message details to stdout and returns a synthetic
// message ID.
func (s *Stdout) Send(_ context.Context, msg *Message) (*Result, error) {
	id := "stdout-" + uuid.New().String()

	var b strings.Builder
	b.WriteString("--- stdout transport: message ---\n")
	fmt.Fprintf(&b, "ID:      %s\n", id)
	fmt.Fprintf(&b, "From:    %s <%s>\n", msg.From.Name, msg.From.Email)
	fmt.Fprintf(&b, "To:      %s\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
	for k, v := range msg.Headers {
		fmt.Fprintf(&b, "Header:  %s: %s\n", k, v)
	}
	fmt.Fprintf(&b, "Text:    (%d bytes)\n", len(msg.TextBody))
	fmt.Fprintf(&b, "HTML:    (%d bytes)\n", len(msg.HTMLBody))
	b.WriteString("--- end ---\n")

	if _, err := io.WriteString(s.writer, b.String()); err != nil {
		return nil, fmt.Errorf("stdout: write: %w", err)
	}

	return &Result{MessageID: id}, nil
}

// Close is a no-op; stdout holds no connections.
func (s *Stdout) Close() error {
	return nil
}
