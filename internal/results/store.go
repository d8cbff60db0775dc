// Package results keeps the domains of the last search and derives the
// filtered, paginated view over them.
package results

import (
	"errors"
	"strings"
	"sync"
)

const PageSize = 30

// ErrNothingToExport is returned by ExportAll when the filtered set is empty.
var ErrNothingToExport = errors.New("no domains to export")

// Pagination is what the previous/next controls and the page indicator show.
type Pagination struct {
	Page       int
	TotalPages int // never below 1
	Filtered   int
	HasPrev    bool
	HasNext    bool
}

type Store struct {
	mu         sync.RWMutex
	keyword    string
	count      int
	all        []string
	filterText string
	filtered   []string
	page       int
}

func NewStore() *Store {
	return &Store{page: 1}
}

// Load replaces the result set, clears the filter and goes back to page 1.
// count is the total reported by the backend; it may differ from len(domains).
func (s *Store) Load(keyword string, count int, domains []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyword = keyword
	s.count = count
	s.all = append([]string(nil), domains...)
	s.filterText = ""
	s.page = 1
	s.refilter()
}

// Reset empties the store.
func (s *Store) Reset() {
	s.Load("", 0, nil)
}

// SetFilter keeps the domains containing text, case-insensitively, in their
// original order. An empty text restores the full list.
func (s *Store) SetFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterText = text
	s.page = 1
	s.refilter()
}

func (s *Store) refilter() {
	needle := strings.ToLower(s.filterText)
	if needle == "" {
		s.filtered = append([]string(nil), s.all...)
	} else {
		s.filtered = nil
		for _, d := range s.all {
			if strings.Contains(strings.ToLower(d), needle) {
				s.filtered = append(s.filtered, d)
			}
		}
	}
	s.clamp()
}

func (s *Store) clamp() {
	if total := s.totalPages(); s.page > total {
		s.page = total
	}
	if s.page < 1 {
		s.page = 1
	}
}

func (s *Store) totalPages() int {
	total := (len(s.filtered) + PageSize - 1) / PageSize
	if total < 1 {
		return 1
	}
	return total
}

// CurrentPageItems returns the filtered domains of the current page.
func (s *Store) CurrentPageItems() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := (s.page - 1) * PageSize
	if start >= len(s.filtered) {
		return []string{}
	}
	end := min(start+PageSize, len(s.filtered))
	return append([]string(nil), s.filtered[start:end]...)
}

// GoToPage moves one page forward (delta > 0) or back (delta < 0). It reports
// whether the page changed; at either boundary it is a no-op.
func (s *Store) GoToPage(delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case delta > 0 && s.page < s.totalPages():
		s.page++
	case delta < 0 && s.page > 1:
		s.page--
	default:
		return false
	}
	return true
}

func (s *Store) Next() bool { return s.GoToPage(1) }

func (s *Store) Prev() bool { return s.GoToPage(-1) }

func (s *Store) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := s.totalPages()
	return Pagination{
		Page:       s.page,
		TotalPages: total,
		Filtered:   len(s.filtered),
		HasPrev:    s.page > 1,
		HasNext:    s.page < total,
	}
}

// ExportAll joins the filtered domains with newlines.
func (s *Store) ExportAll() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.filtered) == 0 {
		return "", ErrNothingToExport
	}
	return strings.Join(s.filtered, "\n"), nil
}

func (s *Store) Filtered() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.filtered...)
}

func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.all...)
}

func (s *Store) FilterText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterText
}

func (s *Store) Keyword() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyword
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
