// Package whois performs raw WHOIS lookups and guesses registration status
// from the returned text.
package whois

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
)

type Availability string

const (
	Registered Availability = "registered"
	Available  Availability = "available"
	Unknown    Availability = "unknown"
)

// Patterns that indicate the domain IS registered; checked first.
var registeredPatterns = []string{
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"domain status:",
	"registrar iana id:",
}

var availablePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"is available for registration",
	"the queried object does not exist",
	"no such domain",
	"domain name has not been registered",
	"no matching record",
}

// Classify inspects raw WHOIS text.
func Classify(raw string) Availability {
	text := strings.ToLower(raw)
	for _, p := range registeredPatterns {
		if strings.Contains(text, p) {
			return Registered
		}
	}
	if strings.Contains(text, "this name is reserved") {
		return Registered
	}
	for _, p := range availablePatterns {
		if strings.Contains(text, p) {
			return Available
		}
	}
	return Unknown
}

type Result struct {
	Domain       string
	Raw          string
	Availability Availability
	CheckedAt    time.Time
}

// Client wraps the likexian WHOIS client with a timeout.
type Client struct {
	client *whois.Client
}

func NewClient(timeout time.Duration) *Client {
	c := whois.NewClient()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{client: c}
}

// Lookup queries the WHOIS servers for domain. The underlying client has no
// context support, so cancellation only stops waiting for the answer.
func (c *Client) Lookup(ctx context.Context, domain string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type answer struct {
		raw string
		err error
	}
	done := make(chan answer, 1)
	go func() {
		raw, err := c.client.Whois(domain)
		done <- answer{raw, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a := <-done:
		if a.err != nil {
			return nil, fmt.Errorf("whois %s: %w", domain, a.err)
		}
		return &Result{
			Domain:       domain,
			Raw:          a.raw,
			Availability: Classify(a.raw),
			CheckedAt:    time.Now(),
		}, nil
	}
}
