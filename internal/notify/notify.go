// Package notify holds the single live, timed, user-visible status message.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"revwhoix-cli/internal/ui"
)

const DefaultTTL = 3 * time.Second

type Severity int

const (
	Success Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Style returns the colour a notification of this severity is drawn with.
func (s Severity) Style() lipgloss.Style {
	switch s {
	case Success:
		return ui.StyleSuccess
	case Info:
		return ui.StyleInfo
	case Warning:
		return ui.StyleWarning
	default:
		return ui.StyleError
	}
}

// Icon is the one-character marker shown before the message.
func (s Severity) Icon() string {
	switch s {
	case Success:
		return "✓"
	case Info:
		return "i"
	case Warning:
		return "!"
	default:
		return "✗"
	}
}

type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

// Sink displays a notification. It is called synchronously from Notify.
type Sink interface {
	Show(n Notification)
}

type Option func(*Notifier)

func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		if ttl > 0 {
			n.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func WithSink(s Sink) Option {
	return func(n *Notifier) { n.sink = s }
}

// Notifier keeps at most one live notification; a new one preempts the old.
type Notifier struct {
	mu      sync.Mutex
	current *Notification
	ttl     time.Duration
	now     func() time.Time
	sink    Sink
}

func New(opts ...Option) *Notifier {
	n := &Notifier{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Notify(sev Severity, message string) Notification {
	n.mu.Lock()
	note := Notification{
		Message:   message,
		Severity:  sev,
		ExpiresAt: n.now().Add(n.ttl),
	}
	n.current = &note
	sink := n.sink
	n.mu.Unlock()

	if sink != nil {
		sink.Show(note)
	}
	return note
}

func (n *Notifier) Success(format string, args ...any) Notification {
	return n.Notify(Success, fmt.Sprintf(format, args...))
}

func (n *Notifier) Info(format string, args ...any) Notification {
	return n.Notify(Info, fmt.Sprintf(format, args...))
}

func (n *Notifier) Warn(format string, args ...any) Notification {
	return n.Notify(Warning, fmt.Sprintf(format, args...))
}

func (n *Notifier) Error(format string, args ...any) Notification {
	return n.Notify(Error, fmt.Sprintf(format, args...))
}

// Current returns the live notification, if it has not expired yet.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	if !n.now().Before(n.current.ExpiresAt) {
		n.current = nil
		return Notification{}, false
	}
	return *n.current, true
}

func (n *Notifier) TTL() time.Duration {
	return n.ttl
}

// WriterSink prints notifications as styled lines, e.g. to stderr.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Show(n Notification) {
	fmt.Fprintln(s.W, Render(n))
}

func Render(n Notification) string {
	return n.Severity.Style().Render(n.Severity.Icon() + " " + n.Message)
}
