// Package main provides a standalone CLI tool for sending a single email
// through the gateway. Without production credentials in the environment it
// provisions an ephemeral test mailbox and delivers there.
//
// Usage:
//
//	mailctl --to recipient@example.com --subject "Test" --html "<p>Hello</p>"
//	mailctl --to recipient@example.com --subject "Test" --html "<p>Hello</p>" --dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/workshoply/email-gateway/internal/config"
	"github.com/workshoply/email-gateway/internal/delivery"
	"github.com/workshoply/email-gateway/internal/logger"
	"github.com/workshoply/email-gateway/internal/testaccount"
	"github.com/workshoply/email-gateway/internal/transport"
)

// staticResolver hands out a fixed transport, bypassing the cache. Used
// for dry runs.
type staticResolver struct {
	t transport.Transport
}

func (r staticResolver) Resolve(context.Context) (transport.Transport, error) {
	return r.t, nil
}

func main() {
	var (
		to      = flag.String("to", "", "recipient address")
		subject = flag.String("subject", "", "message subject")
		html    = flag.String("html", "", "HTML body")
		text    = flag.String("text", "", "plain-text body (derived from HTML when empty)")
		dryRun  = flag.Bool("dry-run", false, "print the message instead of delivering it")
	)
	flag.Parse()

	if *to == "" || *subject == "" || *html == "" {
		fmt.Fprintln(os.Stderr, "error: --to, --subject, and --html are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	var resolver delivery.TransportResolver
	if *dryRun {
		resolver = staticResolver{t: transport.NewStdout()}
	} else {
		provisioner := testaccount.NewClient(cfg.TestAPIURL)
		resolver = transport.NewResolver(cfg, provisioner, log)
	}

	svc := delivery.NewService(resolver, cfg.User, log)

	res := svc.Send(context.Background(), delivery.Request{
		To:      *to,
		Subject: *subject,
		HTML:    *html,
		Text:    *text,
	})

	if !res.Success {
		if res.Code != "" {
			fmt.Fprintf(os.Stderr, "send failed (%s): %s\n", res.Code, res.Error)
		} else {
			fmt.Fprintf(os.Stderr, "send failed: %s\n", res.Error)
		}
		os.Exit(1)
	}

	fmt.Printf("sent: %s\n", res.MessageID)
}
