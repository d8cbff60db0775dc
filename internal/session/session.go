// Package session holds the state of one interactive session: the last
// search, its filtered and paginated results, the open detail view and the
// current notification. Commands and the terminal browser drive it.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"

	"revwhoix-cli/internal/detail"
	"revwhoix-cli/internal/notify"
	"revwhoix-cli/internal/results"
	"revwhoix-cli/internal/search"
)

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Backend is everything the session needs from the remote service.
type Backend interface {
	search.Searcher
	detail.InfoClient
}

type Options struct {
	Notifier  *notify.Notifier
	Clipboard Clipboard
	ResultDir string
	Now       func() time.Time
}

type Session struct {
	Store      *results.Store
	Notifier   *notify.Notifier
	Controller *search.Controller
	Details    *detail.Viewer

	clipboard Clipboard
	resultDir string
	now       func() time.Time
}

func New(backend Backend, opts Options) *Session {
	if opts.Notifier == nil {
		opts.Notifier = notify.New()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	if opts.ResultDir == "" {
		opts.ResultDir = "result"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	store := results.NewStore()
	return &Session{
		Store:      store,
		Notifier:   opts.Notifier,
		Controller: search.New(backend, store, opts.Notifier),
		Details:    detail.NewViewer(detail.NewFetcher(backend)),
		clipboard:  opts.Clipboard,
		resultDir:  opts.ResultDir,
		now:        opts.Now,
	}
}

// Search runs a full search for keyword and applies its outcome.
func (s *Session) Search(ctx context.Context, keyword string) (search.Outcome, error) {
	return s.Controller.Search(ctx, keyword)
}

// Filter applies text to the results; the first page of the new filtered set
// is current when it returns.
func (s *Session) Filter(text string) {
	s.Store.SetFilter(text)
}

// CopyDomain puts a single domain on the clipboard.
func (s *Session) CopyDomain(domain string) error {
	if err := s.clipboard.WriteAll(domain); err != nil {
		log.WithError(err).Debug("clipboard write failed")
		s.Notifier.Error("Failed to copy to clipboard")
		return fmt.Errorf("copy %s: %w", domain, err)
	}
	s.Notifier.Success("Copied %s to clipboard", domain)
	return nil
}

// CopyAll puts the filtered domains on the clipboard, one per line. An empty
// filtered set only raises a warning and returns results.ErrNothingToExport.
func (s *Session) CopyAll() error {
	text, err := s.Store.ExportAll()
	if err != nil {
		s.Notifier.Warn("No domains to copy")
		return err
	}
	if err := s.clipboard.WriteAll(text); err != nil {
		log.WithError(err).Debug("clipboard write failed")
		s.Notifier.Error("Failed to copy to clipboard")
		return fmt.Errorf("copy domains: %w", err)
	}
	s.Notifier.Success("Copied %d domains to clipboard", len(s.Store.Filtered()))
	return nil
}

// ExportFileName is the dated name of the CSV export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("revwhoix-domains-%s.csv", now.Format("2006-01-02"))
}

// ExportCSV writes the filtered domains to path, or to the dated file in the
// result directory when path is empty, and returns the path written.
func (s *Session) ExportCSV(path string) (string, error) {
	text, err := s.Store.ExportAll()
	if err != nil {
		s.Notifier.Warn("No domains to export")
		return "", err
	}
	if path == "" {
		path = ExportFileName(s.now())
	}
	path = resolvePath(s.resultDir, path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		s.Notifier.Error("Error creating result directory: %v", err)
		return "", err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		s.Notifier.Error("Error writing %s: %v", path, err)
		return "", err
	}
	s.Notifier.Success("Exported %d domains as CSV", len(s.Store.Filtered()))
	return path, nil
}

// OpenDetail fetches and opens the detail view of domain. The returned view is
// never nil; a failed fetch yields the fallback view. detail.ErrStale is
// returned when another detail fetch was started meanwhile.
func (s *Session) OpenDetail(ctx context.Context, domain string) (*detail.View, error) {
	return s.Details.Open(ctx, domain)
}

func (s *Session) CloseDetail() {
	s.Details.Close()
}

// resolvePath puts relative paths under dir unless they already start with it.
func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	clean := filepath.Clean(path)
	if clean == dir || strings.HasPrefix(clean, filepath.Clean(dir)+string(os.PathSeparator)) {
		return clean
	}
	return filepath.Join(dir, clean)
}
