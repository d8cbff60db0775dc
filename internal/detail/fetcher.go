// Package detail fetches one domain's registration/DNS record and turns it
// into the tabbed detail view.
package detail

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"revwhoix-cli/internal/api"
)

// ErrStale means a newer detail fetch was started before this one finished.
var ErrStale = errors.New("detail fetch superseded by a newer one")

// InfoClient is the backend detail endpoint.
type InfoClient interface {
	DomainInfo(ctx context.Context, domain string) (*api.DomainInfoRaw, error)
}

// Error is a failed detail fetch.
type Error struct {
	Domain  string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type Fetcher struct {
	client InfoClient
}

func NewFetcher(client InfoClient) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch requests and normalizes the record of domain. Every call goes to the
// backend; nothing is cached.
func (f *Fetcher) Fetch(ctx context.Context, domain string) (*Record, error) {
	raw, err := f.client.DomainInfo(ctx, domain)
	if err != nil {
		return nil, &Error{Domain: domain, Message: err.Error(), Err: err}
	}
	rec := Normalize(domain, raw)
	return &rec, nil
}

// View fetches domain and always returns a renderable view: the full record,
// or the fallback panel when the fetch failed.
func (f *Fetcher) View(ctx context.Context, domain string) *View {
	rec, err := f.Fetch(ctx, domain)
	if err != nil {
		log.WithError(err).WithField("domain", domain).Debug("detail fetch failed, showing fallback")
		return FallbackView(domain, err)
	}
	return BuildView(rec)
}

// Request is one issued detail fetch.
type Request struct {
	Domain string
	Seq    uint64
}

// Viewer owns the open detail view and makes sure only the most recently
// started fetch gets to replace it.
type Viewer struct {
	fetcher *Fetcher

	mu      sync.Mutex
	seq     uint64
	current *View
}

func NewViewer(fetcher *Fetcher) *Viewer {
	return &Viewer{fetcher: fetcher}
}

// Open fetches domain and makes its view current. ErrStale is returned with
// the view when another fetch was started meanwhile.
func (v *Viewer) Open(ctx context.Context, domain string) (*View, error) {
	req := v.Begin(domain)
	view := v.Run(ctx, req)
	if !v.Apply(req, view) {
		return view, ErrStale
	}
	return view, nil
}

// Begin discards the current view and issues a new request.
func (v *Viewer) Begin(domain string) Request {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.current = nil
	return Request{Domain: domain, Seq: v.seq}
}

// Run performs the fetch for req without touching the viewer state.
func (v *Viewer) Run(ctx context.Context, req Request) *View {
	return v.fetcher.View(ctx, req.Domain)
}

// Apply installs view unless req has been superseded.
func (v *Viewer) Apply(req Request, view *View) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if req.Seq != v.seq {
		log.WithFields(log.Fields{"domain": req.Domain, "seq": req.Seq, "latest": v.seq}).Debug("discarding stale detail response")
		return false
	}
	v.current = view
	return true
}

// Current returns the open view, or nil while loading or when closed.
func (v *Viewer) Current() *View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Close drops the open view; a fetch still in flight will be discarded.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.current = nil
}
