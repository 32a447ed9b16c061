package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workshoply/email-gateway/internal/logger"
	"github.com/workshoply/email-gateway/internal/metrics"
	"github.com/workshoply/email-gateway/internal/transport"
)

const (
	// sendTimeout bounds one delivery attempt. A delivery that outlives
	// it may still settle in the background; its outcome is discarded.
	sendTimeout = 30 * time.Second

	// senderName is the fixed display name attached to every message.
	senderName = "Workshop Hub"

	errMissingParams = "Missing required email parameters: to, subject, and html are required"
	errTimeout       = "Email sending timed out"
)

// Result is the normalized outcome of a send. It is the only thing the
// public send methods return; errors never escape them.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
	// Code carries the SMTP status code when the server reported one.
	Code string `json:"code,omitempty"`
}

// Request describes one outgoing message. Text is optional; when empty it
// is derived from HTML by tag stripping.
type Request struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// TransportResolver yields a ready transport handle. *transport.Resolver
// implements it.
type TransportResolver interface {
	Resolve(ctx context.Context) (transport.Transport, error)
}

// Service validates and delivers messages through a resolved transport,
// bounded by a timeout.
type Service struct {
	resolver TransportResolver
	sender   string
	log      zerolog.Logger
	timeout  time.Duration
}

// NewService creates a Service sending from the given address.
func NewService(resolver TransportResolver, sender string, log zerolog.Logger) *Service {
	return &Service{
		resolver: resolver,
		sender:   sender,
		log:      log,
		timeout:  sendTimeout,
	}
}

// Send validates and delivers one message. Every outcome, including
// transport acquisition and provisioning failures, is normalized into the
// returned Result.
func (s *Service) Send(ctx context.Context, req Request) Result {
	start := time.Now()

	// The send ID rides the context so transport and resolver log lines
	// correlate with this call.
	ctx = logger.WithSendID(ctx, logger.NewSendID())
	ctx = logger.WithLogger(ctx, s.log)
	log := logger.FromContext(ctx).With().Str("to", req.To).Logger()

	if req.To == "" || req.Subject == "" || req.HTML == "" {
		metrics.MailSendTotal.WithLabelValues("invalid").Inc()
		log.Error().Msg("missing required email parameters")
		return Result{Success: false, Error: errMissingParams}
	}

	t, err := s.resolver.Resolve(ctx)
	if err != nil {
		metrics.MailSendTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Msg("failed to acquire transport")
		return failure(err)
	}

	text := req.Text
	if text == "" {
		text = stripHTML(req.HTML)
	}

	msg := &transport.Message{
		From:     transport.Address{Name: senderName, Email: s.sender},
		To:       req.To,
		Subject:  req.Subject,
		HTMLBody: req.HTML,
		TextBody: text,
		Headers: map[string]string{
			"X-Priority":        "1",
			"X-MSMail-Priority": "High",
			"Importance":        "high",
		},
	}

	// Race delivery against the timer. The channel is buffered so a
	// delivery that loses the race still settles without leaking a
	// goroutine, and its outcome cannot reach a later call.
	type outcome struct {
		res *transport.Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("transport panic: %v", p)}
			}
		}()
		res, err := t.Send(ctx, msg)
		done <- outcome{res: res, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		metrics.MailSendDuration.Observe(time.Since(start).Seconds())
		if o.err != nil {
			metrics.MailSendTotal.WithLabelValues("failed").Inc()
			log.Error().Err(o.err).Str("transport", t.Name()).Msg("send failed")
			return failure(o.err)
		}
		if o.res == nil {
			metrics.MailSendTotal.WithLabelValues("failed").Inc()
			log.Error().Str("transport", t.Name()).Msg("transport returned no result")
			return Result{Success: false, Error: "transport returned no result"}
		}
		metrics.MailSendTotal.WithLabelValues("sent").Inc()
		log.Info().
			Str("transport", t.Name()).
			Str("message_id", o.res.MessageID).
			Msg("message sent")
		return Result{Success: true, MessageID: o.res.MessageID}

	case <-timer.C:
		metrics.MailSendTotal.WithLabelValues("timeout").Inc()
		log.Error().
			Dur("timeout", s.timeout).
			Msg("send timed out, delivery outcome discarded")
		return Result{Success: false, Error: errTimeout}
	}
}

// failure converts an error into a failed Result, extracting the SMTP
// status code when the server reported one.
func failure(err error) Result {
	res := Result{Success: false, Error: err.Error()}
	if te := transport.Classify(err); te != nil {
		res.Code = te.Code
	}
	return res
}
