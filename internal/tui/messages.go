package tui

import (
	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/search"
	"revwhoix-cli/internal/whois"
)

// searchDoneMsg carries the outcome of a search started with Controller.Begin.
type searchDoneMsg struct {
	Query   search.Query
	Outcome search.Outcome
}

// detailDoneMsg carries a fetched (or fallback) view for one detail request.
type detailDoneMsg struct {
	Request detail.Request
	View    *detail.View
}

type whoisDoneMsg struct {
	Domain string
	Result *whois.Result
	Err    error
}

// statusTickMsg refreshes the status bar so expired notifications disappear.
type statusTickMsg struct{}
