package transport

import (
	"context"
	"sync"
	"time"

	"gopkg.in/gomail.v2"
)

// pool is a sized pool of SMTP connections. It caps the number of
// concurrently open connections, rotates a connection after a fixed number
// of messages, and drops idle connections past their idle timeout.
//
// The pool is safe for concurrent use.
type pool struct {
	dial        func() (gomail.SendCloser, error)
	maxMessages int
	idleTimeout time.Duration

	sem chan struct{}

	mu     sync.Mutex
	idle   []*poolConn
	closed bool
}

// poolConn tracks a pooled connection with its usage state.
type poolConn struct {
	sc       gomail.SendCloser
	lastUsed time.Time
	sent     int
}

func newPool(dial func() (gomail.SendCloser, error), maxConns, maxMessages int, idleTimeout time.Duration) *pool {
	return &pool{
		dial:        dial,
		maxMessages: maxMessages,
		idleTimeout: idleTimeout,
		sem:         make(chan struct{}, maxConns),
	}
}

// Get returns a pooled connection, dialing a new one when no healthy idle
// connection exists. It blocks while the concurrent-connection cap is
// reached, or until ctx is done.
func (p *pool) Get(ctx context.Context) (*poolConn, error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.mu.Lock()
	for len(p.idle) > 0 {
		pc := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		if time.Since(pc.lastUsed) <= p.idleTimeout {
			p.mu.Unlock()
			return pc, nil
		}
		// Stale; drop it.
		_ = pc.sc.Close()
	}
	p.mu.Unlock()

	sc, err := p.dial()
	if err != nil {
		<-p.sem
		return nil, err
	}
	return &poolConn{sc: sc}, nil
}

// Put returns a connection after a send. Broken connections and
// connections that reached the per-connection message limit are closed
// instead of being pooled.
func (p *pool) Put(pc *poolConn, broken bool) {
	defer func() { <-p.sem }()

	if broken || pc.sent >= p.maxMessages {
		_ = pc.sc.Close()
		return
	}

	pc.lastUsed = time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = pc.sc.Close()
		return
	}
	p.idle = append(p.idle, pc)
}

// Close closes all idle connections. Connections currently checked out are
// closed by Put when they return.
func (p *pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for _, pc := range p.idle {
		_ = pc.sc.Close()
	}
	p.idle = nil
	return nil
}
