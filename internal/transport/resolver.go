package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/workshoply/email-gateway/internal/config"
	"github.com/workshoply/email-gateway/internal/logger"
	"github.com/workshoply/email-gateway/internal/metrics"
	"github.com/workshoply/email-gateway/internal/testaccount"
)

// cacheTTL is how long a constructed transport is reused before it is
// discarded and rebuilt on the next resolve.
const cacheTTL = 30 * time.Minute

// Provisioner creates ephemeral test mailboxes for fallback mode.
// *testaccount.Client implements it.
type Provisioner interface {
	Create(ctx context.Context) (*testaccount.Account, error)
}

// Factory builds a Transport from an SMTP configuration. Tests substitute
// a fake to observe construction without dialing anything.
type Factory func(cfg SMTPConfig) Transport

// Resolver provides a ready-to-use transport handle, caching a single
// instance for the TTL to avoid reconnect overhead. The operating mode is
// chosen at construction time: placeholder or absent credentials select
// fallback mode, which provisions a disposable test account; anything else
// selects production mode against the configured host.
type Resolver struct {
	cfg         *config.Config
	provisioner Provisioner
	factory     Factory
	log         zerolog.Logger

	mu        sync.RWMutex
	cached    Transport
	createdAt time.Time

	ttl time.Duration
	now func() time.Time
}

// NewResolver creates a Resolver with the default SMTP factory and TTL.
func NewResolver(cfg *config.Config, provisioner Provisioner, log zerolog.Logger) *Resolver {
	return &Resolver{
		cfg:         cfg,
		provisioner: provisioner,
		factory:     func(sc SMTPConfig) Transport { return NewSMTP(sc) },
		log:         log,
		ttl:         cacheTTL,
		now:         time.Now,
	}
}

// Resolve returns the cached transport while it is younger than the TTL,
// constructing a replacement otherwise. Concurrent callers that both
// observe a stale cache may each construct a transport; the last write
// wins. There is deliberately no single-flight here.
func (r *Resolver) Resolve(ctx context.Context) (Transport, error) {
	r.mu.RLock()
	if r.cached != nil && r.now().Sub(r.createdAt) < r.ttl {
		t := r.cached
		r.mu.RUnlock()
		metrics.TransportCacheTotal.WithLabelValues("hit").Inc()
		return t, nil
	}
	rebuild := r.cached != nil
	r.mu.RUnlock()

	metrics.TransportCacheTotal.WithLabelValues("miss").Inc()

	t, err := r.build(ctx)
	if err != nil {
		return nil, err
	}

	// The replaced handle is not closed: in-flight sends may still hold
	// it, and its pooled connections age out on their own.
	r.mu.Lock()
	r.cached = t
	r.createdAt = r.now()
	r.mu.Unlock()

	if rebuild {
		metrics.TransportCacheTotal.WithLabelValues("rebuild").Inc()
		log := r.logFor(ctx)
		log.Debug().Str("transport", t.Name()).Msg("stale transport replaced")
	}

	return t, nil
}

// logFor attaches the caller's per-send correlation ID, when the context
// carries one, to the resolver's logger.
func (r *Resolver) logFor(ctx context.Context) zerolog.Logger {
	log := r.log
	if id := logger.SendIDFromContext(ctx); id != "" {
		log = log.With().Str("send_id", id).Logger()
	}
	return log
}

// build constructs a transport for the current mode.
func (r *Resolver) build(ctx context.Context) (Transport, error) {
	log := r.logFor(ctx)

	if r.cfg.Placeholder() {
		log.Warn().Msg("SMTP credentials missing or placeholders, provisioning ephemeral test account")

		acct, err := r.provisioner.Create(ctx)
		if err != nil {
			return nil, fmt.Errorf("provision test account: %w", err)
		}

		log.Warn().
			Str("user", acct.User).
			Str("web", acct.Web).
			Msg("fallback mode engaged, messages go to an ephemeral mailbox")

		return r.factory(SMTPConfig{
			Host:     acct.SMTP.Host,
			Port:     acct.SMTP.Port,
			Username: acct.User,
			Password: acct.Pass,
			Secure:   acct.SMTP.Secure,
		}), nil
	}

	return r.factory(SMTPConfig{
		Host:     r.cfg.Host,
		Port:     r.cfg.Port,
		Username: r.cfg.User,
		Password: r.cfg.Password,
		Secure:   r.cfg.Secure,
	}), nil
}
