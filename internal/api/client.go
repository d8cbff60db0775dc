package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
)

type Client struct {
	restyClient *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return &Client{restyClient: client}
}

func (c *Client) request(ctx context.Context) (*resty.Request, string) {
	id := uuid.NewString()
	return c.restyClient.R().SetContext(ctx).SetHeader(requestIDHeader, id), id
}

// Search issues a single POST /search. A non-2xx reply becomes an *APIError;
// an HTTP success is returned as is, including application-level error payloads.
func (c *Client) Search(ctx context.Context, keyword string, tryAlternative bool) (*SearchResponse, error) {
	req, id := c.request(ctx)

	var result SearchResponse
	var failure ErrorResponse
	resp, err := req.
		SetBody(SearchRequest{Keyword: keyword, TryAlternative: tryAlternative}).
		SetResult(&result).
		SetError(&failure).
		Post("/search")

	entry := log.WithFields(log.Fields{
		"request_id":      id,
		"keyword":         keyword,
		"try_alternative": tryAlternative,
	})
	if err != nil {
		entry.WithError(err).Debug("search request failed")
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	entry.WithField("status", resp.StatusCode()).Debug("search response")

	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: failure.Message}
	}
	return &result, nil
}

// DomainInfo issues GET /domain-info for one domain. Both non-2xx replies and
// {"status":"error"} payloads are reported as *APIError.
func (c *Client) DomainInfo(ctx context.Context, domain string) (*DomainInfoRaw, error) {
	req, id := c.request(ctx)

	var result DomainInfoResponse
	var failure ErrorResponse
	resp, err := req.
		SetQueryParam("domain", domain).
		SetResult(&result).
		SetError(&failure).
		Get("/domain-info")

	entry := log.WithFields(log.Fields{"request_id": id, "domain": domain})
	if err != nil {
		entry.WithError(err).Debug("domain info request failed")
		return nil, fmt.Errorf("domain info request failed: %w", err)
	}
	entry.WithField("status", resp.StatusCode()).Debug("domain info response")

	if resp.IsError() {
		msg := failure.Message
		if msg == "" {
			msg = "Failed to fetch domain information"
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	if result.Status != StatusSuccess {
		msg := result.Message
		if msg == "" {
			msg = "Failed to fetch domain information"
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	if result.Info == nil {
		return &DomainInfoRaw{}, nil
	}
	return result.Info, nil
}
