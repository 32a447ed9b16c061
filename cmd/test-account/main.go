// Package main provisions one ephemeral test mailbox and prints its
// credentials, SMTP endpoint, and web viewer URL. Handy for inspecting
// what fallback-mode sends will look like.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/workshoply/email-gateway/internal/config"
	"github.com/workshoply/email-gateway/internal/testaccount"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	acct, err := testaccount.NewClient(cfg.TestAPIURL).Create(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to provision test account: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user:   %s\n", acct.User)
	fmt.Printf("pass:   %s\n", acct.Pass)
	fmt.Printf("smtp:   %s:%d (secure=%t)\n", acct.SMTP.Host, acct.SMTP.Port, acct.SMTP.Secure)
	fmt.Printf("web:    %s\n", acct.Web)
}
