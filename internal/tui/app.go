// Package tui is the interactive result browser: keyword entry, the paginated
// and filterable result grid, and the tabbed detail view of one domain.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/render"
	"revwhoix-cli/internal/search"
	"revwhoix-cli/internal/session"
	"revwhoix-cli/internal/ui"
	"revwhoix-cli/internal/whois"
)

type Mode int

const (
	ModeInput Mode = iota
	ModeResults
	ModeFilter
	ModeDetail
)

// WhoisLookup is the live WHOIS query behind the detail view's lookup key.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (*whois.Result, error)
}

type App struct {
	ctx   context.Context
	sess  *session.Session
	whois WhoisLookup

	input    textinput.Model
	filter   textinput.Model
	viewport viewport.Model

	mode          Mode
	cursor        int
	searching     bool
	detailDomain  string
	detailLoading bool
	status        string
	width         int
	height        int
}

// NewApp builds the browser around sess. whoisClient may be nil, which
// disables the lookup key. A non-empty keyword is searched on start.
func NewApp(ctx context.Context, sess *session.Session, whoisClient WhoisLookup, keyword string) App {
	ti := textinput.New()
	ti.Placeholder = "Enter a keyword (e.g. shop)"
	ti.CharLimit = 256
	ti.SetValue(keyword)
	ti.Focus()

	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.CharLimit = 256

	return App{
		ctx:      ctx,
		sess:     sess,
		whois:    whoisClient,
		input:    ti,
		filter:   fi,
		viewport: viewport.New(80, 24-chromeLines),
		mode:     ModeInput,
		width:    80,
		height:   24,
	}
}

// chromeLines is the title, the blank line under it and the status bar.
const chromeLines = 3

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, statusTick()}
	if strings.TrimSpace(a.input.Value()) != "" {
		cmds = append(cmds, a.startSearch())
	}
	return tea.Batch(cmds...)
}

func statusTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusTickMsg{} })
}

// --- Backend commands ---

func (a *App) startSearch() tea.Cmd {
	q, err := a.sess.Controller.Begin(a.input.Value())
	if err != nil {
		return nil
	}
	a.searching = true
	a.cursor = 0
	a.status = fmt.Sprintf("Searching for '%s'...", q.Keyword)
	ctrl := a.sess.Controller
	ctx := a.ctx
	return func() tea.Msg {
		return searchDoneMsg{Query: q, Outcome: ctrl.Run(ctx, q)}
	}
}

func (a *App) openDetail(domain string) tea.Cmd {
	req := a.sess.Details.Begin(domain)
	a.mode = ModeDetail
	a.detailDomain = domain
	a.detailLoading = true
	viewer := a.sess.Details
	ctx := a.ctx
	return func() tea.Msg {
		return detailDoneMsg{Request: req, View: viewer.Run(ctx, req)}
	}
}

func (a *App) lookupWhois(domain string) tea.Cmd {
	if a.whois == nil {
		a.sess.Notifier.Warn("WHOIS lookup is not available")
		return nil
	}
	a.sess.Notifier.Info("Looking up %s...", domain)
	client := a.whois
	ctx := a.ctx
	return func() tea.Msg {
		res, err := client.Lookup(ctx, domain)
		return whoisDoneMsg{Domain: domain, Result: res, Err: err}
	}
}

// --- Update ---

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.update(msg)
	a.syncViewport()
	return m, cmd
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case statusTickMsg:
		return a, statusTick()

	case searchDoneMsg:
		if !a.sess.Controller.Apply(msg.Query, msg.Outcome) {
			return a, nil
		}
		a.searching = false
		a.status = ""
		a.cursor = 0
		if _, ok := msg.Outcome.(search.Success); ok {
			a.mode = ModeResults
			a.input.Blur()
		}
		return a, nil

	case detailDoneMsg:
		if !a.sess.Details.Apply(msg.Request, msg.View) {
			return a, nil
		}
		a.detailLoading = false
		a.viewport.GotoTop()
		return a, nil

	case whoisDoneMsg:
		if msg.Err != nil {
			log.WithError(msg.Err).WithField("domain", msg.Domain).Debug("whois lookup failed")
			a.sess.Notifier.Error("WHOIS lookup for %s failed", msg.Domain)
			return a, nil
		}
		a.sess.Notifier.Info("%s is %s", msg.Domain, msg.Result.Availability)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case ModeInput:
			return a.updateInput(msg)
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeDetail:
			return a.updateDetail(msg)
		default:
			return a.updateResults(msg)
		}
	}
	return a, nil
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Enter):
		if a.searching {
			return a, nil
		}
		return a, a.startSearch()
	case key.Matches(msg, ui.Keys.Back):
		if a.sess.Store.Count() > 0 && !a.searching {
			a.mode = ModeResults
			a.input.Blur()
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Enter):
		a.mode = ModeResults
		a.filter.Blur()
		return a, nil
	case key.Matches(msg, ui.Keys.Back):
		a.filter.SetValue("")
		a.sess.Filter("")
		a.cursor = 0
		a.mode = ModeResults
		a.filter.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if a.filter.Value() != a.sess.Store.FilterText() {
		a.sess.Filter(a.filter.Value())
		a.cursor = 0
	}
	return a, cmd
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.sess.Store.CurrentPageItems()
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, ui.Keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, ui.Keys.Down):
		if a.cursor < len(items)-1 {
			a.cursor++
		}
	case key.Matches(msg, ui.Keys.NextPage):
		if a.sess.Store.Next() {
			a.cursor = 0
		}
	case key.Matches(msg, ui.Keys.PrevPage):
		if a.sess.Store.Prev() {
			a.cursor = 0
		}
	case key.Matches(msg, ui.Keys.Filter):
		a.mode = ModeFilter
		a.filter.SetValue(a.sess.Store.FilterText())
		return a, a.filter.Focus()
	case key.Matches(msg, ui.Keys.NewQuery), key.Matches(msg, ui.Keys.Back):
		a.mode = ModeInput
		return a, a.input.Focus()
	case key.Matches(msg, ui.Keys.Enter):
		if d, ok := a.selected(); ok {
			return a, a.openDetail(d)
		}
	case key.Matches(msg, ui.Keys.Copy):
		if d, ok := a.selected(); ok {
			_ = a.sess.CopyDomain(d)
		}
	case key.Matches(msg, ui.Keys.CopyAll):
		_ = a.sess.CopyAll()
	case key.Matches(msg, ui.Keys.Export):
		if path, err := a.sess.ExportCSV(""); err == nil {
			a.status = "Saved " + path
		}
	}
	return a, nil
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, ui.Keys.Back):
		a.sess.CloseDetail()
		a.detailLoading = false
		a.mode = ModeResults
		return a, nil
	case key.Matches(msg, ui.Keys.Copy):
		_ = a.sess.CopyDomain(a.detailDomain)
		return a, nil
	case key.Matches(msg, ui.Keys.Whois):
		return a, a.lookupWhois(a.detailDomain)
	}

	v := a.sess.Details.Current()
	if v == nil {
		return a, nil
	}
	switch {
	case key.Matches(msg, ui.Keys.Tab):
		v.Cycle(1)
		a.viewport.GotoTop()
	case key.Matches(msg, ui.Keys.ShiftTab):
		v.Cycle(-1)
		a.viewport.GotoTop()
	case key.Matches(msg, ui.Keys.Raw):
		v.ToggleRaw()
	default:
		// up/down/pgup/pgdown scroll the panel
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

// --- Layout ---

func (a *App) bodyHeight() int {
	return max(1, a.height-chromeLines)
}

// syncViewport sizes the scrollable area to the terminal and loads the rows
// or the detail panel of the current mode into it.
func (a *App) syncViewport() {
	a.viewport.Width = a.width
	switch a.mode {
	case ModeResults, ModeFilter:
		// fixed lines: the header block and the page indicator
		a.viewport.Height = max(1, a.bodyHeight()-len(a.resultsHeader())-1)
		a.viewport.SetContent(render.Rows(a.sess.Store, a.cursor))
		a.keepCursorVisible()
	case ModeDetail:
		a.viewport.Height = a.bodyHeight()
		if v := a.sess.Details.Current(); v != nil {
			a.viewport.SetContent(detailContent(v))
		}
	}
}

func (a *App) keepCursorVisible() {
	switch {
	case a.cursor < a.viewport.YOffset:
		a.viewport.SetYOffset(a.cursor)
	case a.cursor >= a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(a.cursor - a.viewport.Height + 1)
	}
}

// --- View ---

func (a *App) View() string {
	var body, hints string
	switch a.mode {
	case ModeInput:
		body = a.viewInput()
		hints = ui.Hints(ui.Keys.Enter, ui.Keys.Back)
	case ModeDetail:
		body = a.viewDetail()
		hints = ui.Hints(ui.Keys.Tab, ui.Keys.Up, ui.Keys.Down, ui.Keys.Raw, ui.Keys.Copy, ui.Keys.Whois, ui.Keys.Back, ui.Keys.Quit)
	default:
		body = a.viewResults()
		hints = ui.Hints(ui.Keys.NextPage, ui.Keys.PrevPage, ui.Keys.Filter, ui.Keys.Enter, ui.Keys.CopyAll, ui.Keys.Export, ui.Keys.Quit)
	}

	var b strings.Builder
	b.WriteString(ui.StyleTitle.Render("revwhoix"))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	b.WriteString(RenderStatusBar(a.sess.Notifier, a.status, hints, a.width))
	return b.String()
}

func (a *App) viewInput() string {
	var b strings.Builder
	b.WriteString(ui.StyleHeading.Render("Reverse WHOIS search"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	if a.searching {
		b.WriteString(ui.StyleMuted.Render("Searching..."))
		b.WriteString("\n")
		return b.String()
	}
	switch o := a.sess.Controller.Last().(type) {
	case search.Empty:
		b.WriteString("\n")
		b.WriteString(ui.StyleWarning.Render(render.NoResults(o.Keyword)))
		b.WriteString("\n")
	case search.Failure:
		b.WriteString("\n")
		b.WriteString(ui.StyleError.Render("✗ " + o.Message))
		b.WriteString("\n")
	}
	return b.String()
}

// resultsHeader is the block above the rows: header, filter line, blank.
func (a *App) resultsHeader() []string {
	lines := []string{render.Header(a.sess.Store)}
	if a.mode == ModeFilter {
		lines = append(lines, a.filter.View())
	} else if f := a.sess.Store.FilterText(); f != "" {
		lines = append(lines, ui.StyleMuted.Render("Filter: "+f))
	}
	return append(lines, "")
}

func (a *App) viewResults() string {
	lines := append(a.resultsHeader(), a.viewport.View(), render.PageIndicator(a.sess.Store.Pagination()))
	return strings.Join(lines, "\n")
}

func (a *App) viewDetail() string {
	if a.sess.Details.Current() == nil || a.detailLoading {
		return ui.StyleMuted.Render(fmt.Sprintf("Loading details for %s...", a.detailDomain))
	}
	return a.viewport.View()
}

func detailContent(v *detail.View) string {
	out := strings.TrimRight(render.Detail(v, render.DetailOptions{}), "\n")
	if !v.Fallback() {
		out += "\n\n" + ui.StyleMuted.Render("Visit: "+v.VisitURL())
	}
	return out
}

// Mode reports which screen is showing.
func (a *App) Mode() Mode { return a.mode }

var _ tea.Model = (*App)(nil)

// Run starts the browser on the terminal and blocks until it exits.
func Run(ctx context.Context, sess *session.Session, whoisClient WhoisLookup, keyword string) error {
	app := NewApp(ctx, sess, whoisClient, keyword)
	_, err := tea.NewProgram(&app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// selected is the domain under the cursor, if any.
func (a *App) selected() (string, bool) {
	items := a.sess.Store.CurrentPageItems()
	if a.cursor < 0 || a.cursor >= len(items) {
		return "", false
	}
	return items[a.cursor], true
}
