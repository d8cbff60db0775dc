package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revwhoix-cli/internal/api"
	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/search"
	"revwhoix-cli/internal/session"
	"revwhoix-cli/internal/whois"
)

type fakeBackend struct {
	domains  []string
	err      error
	rawLines int
}

func (f *fakeBackend) Search(ctx context.Context, keyword string, tryAlternative bool) (*api.SearchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.SearchResponse{Status: api.StatusSuccess, Keyword: keyword, Count: len(f.domains), Domains: f.domains}, nil
}

func (f *fakeBackend) DomainInfo(ctx context.Context, domain string) (*api.DomainInfoRaw, error) {
	raw := "Domain Name: " + domain
	for i := 0; i < f.rawLines; i++ {
		raw += fmt.Sprintf("\nline %03d", i)
	}
	return &api.DomainInfoRaw{
		Registrar:   "Example Registrar",
		Nameservers: api.StringList{"ns1." + domain},
		RawText:     raw,
	}, nil
}

type nopClipboard struct{ text string }

func (c *nopClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type fakeWhois struct{}

func (fakeWhois) Lookup(ctx context.Context, domain string) (*whois.Result, error) {
	if domain == "broken.com" {
		return nil, errors.New("connection refused")
	}
	return &whois.Result{Domain: domain, Availability: whois.Registered}, nil
}

func newApp(t *testing.T, domains []string) (*App, *session.Session) {
	t.Helper()
	return newSizedApp(t, &fakeBackend{domains: domains}, 120, 40)
}

func newSizedApp(t *testing.T, backend *fakeBackend, width, height int) (*App, *session.Session) {
	t.Helper()
	sess := session.New(backend, session.Options{
		Clipboard: &nopClipboard{},
		ResultDir: filepath.Join(t.TempDir(), "result"),
	})
	app := NewApp(context.Background(), sess, fakeWhois{}, "")
	m, _ := app.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m.(*App), sess
}

func lineCount(view string) int {
	return strings.Count(view, "\n") + 1
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(app *App, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		msg = tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := app.Update(msg)
	return cmd
}

// run executes cmd and feeds its message back, like the program loop does.
func run(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func manyDomains(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("shop%02d.com", i)
	}
	return out
}

func TestSearchShowsResults(t *testing.T) {
	app, sess := newApp(t, manyDomains(45))

	typeText(app, "shop")
	run(t, app, press(app, "enter"))

	assert.Equal(t, ModeResults, app.Mode())
	assert.Equal(t, search.StateSuccess, sess.Controller.State())
	view := app.View()
	assert.Contains(t, view, "shop00.com")
	assert.Contains(t, view, "Page 1 of 2")

	press(app, "n")
	assert.Contains(t, app.View(), "Page 2 of 2")
	assert.Contains(t, app.View(), "shop44.com")
}

func TestEmptyKeywordStaysOnInput(t *testing.T) {
	app, sess := newApp(t, nil)

	assert.Nil(t, press(app, "enter"))
	assert.Equal(t, ModeInput, app.Mode())
	n, ok := sess.Notifier.Current()
	require.True(t, ok)
	assert.Equal(t, "Please enter a keyword", n.Message)
}

func TestStaleSearchIsIgnored(t *testing.T) {
	app, sess := newApp(t, []string{"a.com"})

	old, err := sess.Controller.Begin("old")
	require.NoError(t, err)
	typeText(app, "new")
	run(t, app, press(app, "enter"))

	app.Update(searchDoneMsg{Query: old, Outcome: search.Success{Domains: []string{"stale.com"}, Count: 1, Keyword: "old"}})
	assert.Equal(t, []string{"a.com"}, sess.Store.All())
	assert.Equal(t, "new", sess.Store.Keyword())
}

func TestFilterNarrowsResults(t *testing.T) {
	app, sess := newApp(t, []string{"ashop.com", "bworld.com", "shopx.net"})
	typeText(app, "x")
	run(t, app, press(app, "enter"))

	press(app, "/")
	typeText(app, "shop")
	assert.Equal(t, "shop", sess.Store.FilterText())
	assert.Equal(t, []string{"ashop.com", "shopx.net"}, sess.Store.Filtered())

	press(app, "enter")
	assert.Equal(t, ModeResults, app.Mode())

	press(app, "/")
	press(app, "esc")
	assert.Empty(t, sess.Store.FilterText())
	assert.Len(t, sess.Store.Filtered(), 3)
}

func TestFilterWithNoMatches(t *testing.T) {
	app, _ := newApp(t, []string{"a.com"})
	typeText(app, "x")
	run(t, app, press(app, "enter"))

	press(app, "/")
	typeText(app, "zzz")
	assert.Contains(t, app.View(), "No domains match your filter criteria.")
}

func TestDetailTabsAndRaw(t *testing.T) {
	app, sess := newApp(t, []string{"example.com"})
	typeText(app, "ex")
	run(t, app, press(app, "enter"))

	cmd := press(app, "enter")
	assert.Equal(t, ModeDetail, app.Mode())
	assert.Contains(t, app.View(), "Loading details for example.com")
	run(t, app, cmd)

	v := sess.Details.Current()
	require.NotNil(t, v)
	assert.Equal(t, detail.TabRegistrant, v.Active)
	assert.Contains(t, app.View(), "Example Registrar")

	press(app, "tab")
	press(app, "tab")
	press(app, "tab")
	assert.Equal(t, detail.TabNameservers, v.Active)
	assert.Contains(t, app.View(), "ns1.example.com")

	press(app, "r")
	assert.Contains(t, app.View(), "Domain Name: example.com")

	press(app, "esc")
	assert.Equal(t, ModeResults, app.Mode())
	assert.Nil(t, sess.Details.Current())
}

func TestDetailClosedBeforeResponseIsDiscarded(t *testing.T) {
	app, sess := newApp(t, []string{"example.com"})
	typeText(app, "ex")
	run(t, app, press(app, "enter"))

	cmd := press(app, "enter")
	press(app, "esc")
	run(t, app, cmd)

	assert.Nil(t, sess.Details.Current())
	assert.Equal(t, ModeResults, app.Mode())
}

func TestWhoisLookupNotifies(t *testing.T) {
	app, sess := newApp(t, []string{"example.com"})
	typeText(app, "ex")
	run(t, app, press(app, "enter"))
	run(t, app, press(app, "enter"))

	run(t, app, press(app, "w"))
	n, ok := sess.Notifier.Current()
	require.True(t, ok)
	assert.Equal(t, "example.com is registered", n.Message)
}

func TestExportFromResults(t *testing.T) {
	app, sess := newApp(t, []string{"a.com", "b.com"})
	typeText(app, "x")
	run(t, app, press(app, "enter"))

	press(app, "e")
	n, ok := sess.Notifier.Current()
	require.True(t, ok)
	assert.Equal(t, "Exported 2 domains as CSV", n.Message)
}

func TestQuitOnlyOutsideInput(t *testing.T) {
	app, _ := newApp(t, []string{"a.com"})
	press(app, "q")
	assert.Equal(t, ModeInput, app.Mode())
	assert.Equal(t, "q", app.input.Value())

	run(t, app, press(app, "enter"))
	cmd := press(app, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEmptySearchShowsNoResults(t *testing.T) {
	app, sess := newApp(t, nil)
	typeText(app, "zzz")
	run(t, app, press(app, "enter"))

	assert.Equal(t, ModeInput, app.Mode())
	assert.Equal(t, search.StateEmpty, sess.Controller.State())
	assert.Contains(t, app.View(), "No domains found for 'zzz'.")
}

func TestSearchFailureStaysVisible(t *testing.T) {
	app, sess := newSizedApp(t, &fakeBackend{err: errors.New("backend unavailable")}, 120, 40)

	typeText(app, "shop")
	run(t, app, press(app, "enter"))

	assert.Equal(t, ModeInput, app.Mode())
	assert.Equal(t, search.StateError, sess.Controller.State())

	// the panel outlives the toast
	sess.Notifier.Info("something else")
	assert.Contains(t, app.View(), "✗ backend unavailable")
}

func TestResultsFitTerminal(t *testing.T) {
	app, _ := newSizedApp(t, &fakeBackend{domains: manyDomains(45)}, 80, 24)

	typeText(app, "shop")
	run(t, app, press(app, "enter"))

	view := app.View()
	assert.LessOrEqual(t, lineCount(view), 24)
	assert.Contains(t, view, "domains for")
	assert.Contains(t, view, "'shop'")
	assert.Contains(t, view, "shop00.com")
	assert.Contains(t, view, "Page 1 of 2")

	for i := 0; i < 25; i++ {
		press(app, "down")
	}
	view = app.View()
	assert.LessOrEqual(t, lineCount(view), 24)
	assert.Contains(t, view, "› ")
	assert.Contains(t, view, "shop25.com")
	assert.NotContains(t, view, "shop00.com")
	assert.Contains(t, view, "Page 1 of 2")

	for i := 0; i < 25; i++ {
		press(app, "up")
	}
	assert.Contains(t, app.View(), "shop00.com")
}

func TestDetailScrollsWithinTerminal(t *testing.T) {
	app, _ := newSizedApp(t, &fakeBackend{domains: []string{"example.com"}, rawLines: 150}, 80, 24)

	typeText(app, "ex")
	run(t, app, press(app, "enter"))
	run(t, app, press(app, "enter"))
	press(app, "r")

	view := app.View()
	assert.LessOrEqual(t, lineCount(view), 24)
	assert.Contains(t, view, "Domain Details: example.com")
	assert.NotContains(t, view, "line 149")

	for i := 0; i < 20; i++ {
		press(app, "pgdown")
	}
	view = app.View()
	assert.LessOrEqual(t, lineCount(view), 24)
	assert.Contains(t, view, "line 149")
	assert.NotContains(t, view, "Domain Details: example.com")

	for i := 0; i < 20; i++ {
		press(app, "pgup")
	}
	assert.Contains(t, app.View(), "Domain Details: example.com")
}
