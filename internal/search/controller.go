// Package search drives one keyword search against the backend: validation,
// the single fallback retry after a miss, and applying the outcome to the
// result store unless a newer search has been issued in the meantime.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"revwhoix-cli/internal/api"
	"revwhoix-cli/internal/notify"
	"revwhoix-cli/internal/results"
)

var (
	// ErrEmptyKeyword is the local validation failure; no request is made.
	ErrEmptyKeyword = errors.New("please enter a keyword")
	// ErrStale means a newer search was issued before this one finished.
	ErrStale = errors.New("search superseded by a newer one")
)

const defaultFailureMessage = "An error occurred while fetching domains."

// Searcher is the backend search endpoint.
type Searcher interface {
	Search(ctx context.Context, keyword string, tryAlternative bool) (*api.SearchResponse, error)
}

// Query is one issued search. Seq orders queries issued by the same Controller.
type Query struct {
	Keyword           string
	FallbackAttempted bool
	Seq               uint64
}

type Controller struct {
	client   Searcher
	store    *results.Store
	notifier *notify.Notifier
	onState  func(State)

	mu    sync.Mutex
	seq   uint64
	state State
	last  Outcome
}

type Option func(*Controller)

// WithStateHook registers fn to observe every state transition. fn runs with
// the controller locked and must not call back into it.
func WithStateHook(fn func(State)) Option {
	return func(c *Controller) { c.onState = fn }
}

func New(client Searcher, store *results.Store, notifier *notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		client:   client,
		store:    store,
		notifier: notifier,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a whole search: Begin, Run and Apply. A stale outcome is
// returned together with ErrStale and has not been applied.
func (c *Controller) Search(ctx context.Context, keyword string) (Outcome, error) {
	q, err := c.Begin(keyword)
	if err != nil {
		return nil, err
	}
	o := c.Run(ctx, q)
	if !c.Apply(q, o) {
		return o, ErrStale
	}
	return o, nil
}

// Begin validates the keyword, issues a new sequence number, clears the
// result store and enters the loading state.
func (c *Controller) Begin(keyword string) (Query, error) {
	kw := strings.TrimSpace(keyword)
	if kw == "" {
		c.notifier.Error("Please enter a keyword")
		return Query{}, ErrEmptyKeyword
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.store.Reset()
	c.last = nil
	c.setState(StateLoading)
	return Query{Keyword: kw, Seq: c.seq}, nil
}

// Run performs the network part of q. It touches no shared state, so it is
// safe to call from a goroutine. A miss on the first attempt is retried
// exactly once with the alternative strategy; the retry's outcome is final.
func (c *Controller) Run(ctx context.Context, q Query) Outcome {
	o, miss := c.attempt(ctx, q)
	if !miss || q.FallbackAttempted {
		return o
	}
	log.WithFields(log.Fields{"keyword": q.Keyword, "seq": q.Seq}).Debug("search miss, retrying with alternative strategy")
	retry := q
	retry.FallbackAttempted = true
	o, _ = c.attempt(ctx, retry)
	return o
}

func (c *Controller) attempt(ctx context.Context, q Query) (Outcome, bool) {
	resp, err := c.client.Search(ctx, q.Keyword, q.FallbackAttempted)
	if err != nil {
		if api.IsNotFound(err) {
			return Failure{Message: err.Error(), NotFound: true}, true
		}
		return Failure{Message: err.Error()}, false
	}

	if resp.Status != api.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = defaultFailureMessage
		}
		return Failure{Message: msg}, false
	}
	if len(resp.Domains) == 0 {
		return Empty{Keyword: q.Keyword}, false
	}

	keyword := resp.Keyword
	if keyword == "" {
		keyword = q.Keyword
	}
	count := resp.Count
	if count == 0 {
		count = len(resp.Domains)
	}
	return Success{
		Domains: resp.Domains,
		Count:   count,
		Keyword: keyword,
		Note:    resp.Note,
	}, false
}

// Apply moves the controller to the terminal state for o, unless q is no
// longer the latest query, in which case nothing changes and false is returned.
func (c *Controller) Apply(q Query, o Outcome) bool {
	c.mu.Lock()
	if q.Seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		log.WithFields(log.Fields{"keyword": q.Keyword, "seq": q.Seq, "latest": latest}).Debug("discarding stale search response")
		return false
	}

	if o == nil {
		o = Failure{Message: defaultFailureMessage}
	}
	switch v := o.(type) {
	case Success:
		c.store.Load(v.Keyword, v.Count, v.Domains)
		c.setState(StateSuccess)
	case Empty:
		c.setState(StateEmpty)
	default:
		c.setState(StateError)
	}
	c.last = o
	c.mu.Unlock()

	switch o := o.(type) {
	case Success:
		if o.Note != "" {
			c.notifier.Info("%s", o.Note)
		}
	case Failure:
		c.notifier.Error("%s", o.Message)
	}
	return true
}

func (c *Controller) setState(s State) {
	c.state = s
	if c.onState != nil {
		c.onState(s)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns the outcome applied by the latest search, or nil.
func (c *Controller) Last() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
