// Package testaccount provisions disposable mailboxes from an
// Ethereal-style test-account service. The gateway falls back to these
// accounts when production SMTP credentials are absent, so development
// sends land in a throwaway web-visible inbox instead of a real one.
package testaccount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/workshoply/email-gateway/internal/metrics"
)

const requestTimeout = 10 * time.Second

// Account is an ephemeral test mailbox provisioned by the service.
type Account struct {
	User string       `json:"user"`
	Pass string       `json:"pass"`
	SMTP SMTPEndpoint `json:"smtp"`
	// Web is the URL of the mailbox viewer for the provisioned account.
	Web string `json:"web"`
}

// SMTPEndpoint describes where to submit mail for the account.
type SMTPEndpoint struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
}

// Client calls the test-account provisioning API.
type Client struct {
	url  string
	http *resty.Client
}

// NewClient creates a Client for the given provisioning endpoint.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: resty.New().
			SetTimeout(requestTimeout).
			SetHeader("User-Agent", "email-gateway"),
	}
}

// Create provisions a new disposable account. Failures propagate to the
// caller; there is no further fallback behind this one.
func (c *Client) Create(ctx context.Context) (*Account, error) {
	var acct Account

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"requestor": "email-gateway"}).
		SetResult(&acct).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("create test account: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create test account: service returned %s", resp.Status())
	}
	if acct.User == "" || acct.Pass == "" || acct.SMTP.Host == "" {
		return nil, errors.New("create test account: malformed response")
	}

	metrics.TestAccountsProvisionedTotal.Inc()
	return &acct, nil
}
