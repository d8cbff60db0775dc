package search

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a search.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateEmpty || s == StateError
}

// Outcome is one of Success, Empty or Failure.
type Outcome interface {
	outcome()
}

type Success struct {
	Domains []string
	Count   int
	Keyword string
	Note    string
}

// Empty is a successful search that matched no domains.
type Empty struct {
	Keyword string
}

type Failure struct {
	Message  string
	NotFound bool
}

func (Success) outcome() {}
func (Empty) outcome()   {}
func (Failure) outcome() {}
