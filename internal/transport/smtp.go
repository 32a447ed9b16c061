package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

const (
	// Connection pool bounds for the SMTP transport.
	smtpMaxConns    = 5
	smtpMaxMessages = 100

	smtpDialTimeout = 10 * time.Second
	smtpIdleTimeout = 20 * time.Second
)

// SMTPConfig holds the parameters for building an SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secure enables implicit TLS (SMTPS). When false the dialer uses
	// opportunistic STARTTLS on the submission port.
	Secure bool
}

// SMTP submits messages over SMTP using a bounded connection pool.
type SMTP struct {
	host string
	pool *pool
}

// NewSMTP creates an SMTP transport from the given configuration.
func NewSMTP(cfg SMTPConfig) *SMTP {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Secure

	return &SMTP{
		host: cfg.Host,
		pool: newPool(
			func() (gomail.SendCloser, error) { return dialWithTimeout(d, smtpDialTimeout) },
			smtpMaxConns,
			smtpMaxMessages,
			smtpIdleTimeout,
		),
	}
}

func (s *SMTP) Name() string { return "smtp" }

// Send delivers a message over a pooled SMTP connection. The reported
// MessageID is the generated Message-ID header, angle brackets included.
func (s *SMTP) Send(ctx context.Context, msg *Message) (*Result, error) {
	pc, err := s.pool.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("smtp: acquire connection: %w", err)
	}

	m, id := s.build(msg)
	sendErr := gomail.Send(pc.sc, m)
	pc.sent++
	s.pool.Put(pc, sendErr != nil)

	if sendErr != nil {
		return nil, fmt.Errorf("smtp: send to %s: %w", msg.To, sendErr)
	}

	return &Result{MessageID: id}, nil
}

// Close releases the transport's pooled connections.
func (s *SMTP) Close() error {
	return s.pool.Close()
}

// build constructs the wire message and returns it with its Message-ID.
func (s *SMTP) build(msg *Message) (*gomail.Message, string) {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.Name)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	id := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.host)
	m.SetHeader("Message-ID", id)

	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			m.AddAlternative("text/html", msg.HTMLBody)
		}
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	return m, id
}

// dialWithTimeout races the SMTP dial against a timer. A connection that
// completes after the timer fired is closed in the background.
func dialWithTimeout(d *gomail.Dialer, timeout time.Duration) (gomail.SendCloser, error) {
	type dialResult struct {
		sc  gomail.SendCloser
		err error
	}

	ch := make(chan dialResult, 1)
	go func() {
		sc, err := d.Dial()
		ch <- dialResult{sc: sc, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.sc, r.err
	case <-timer.C:
		go func() {
			if r := <-ch; r.sc != nil {
				_ = r.sc.Close()
			}
		}()
		return nil, fmt.Errorf("dial %s: timed out after %s", d.Host, timeout)
	}
}
