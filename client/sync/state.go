// Package sync drives the data lifecycle behind each role's dashboard:
// resolve the stored identity, fetch the role's data concurrently, then keep
// the local view consistent as the user acts on it.
package sync

import "github.com/pkg/errors"

var (
	// ErrNotAuthenticated means no usable session exists; the caller should
	// route to the login flow rather than retry.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrLoadFailed is the single user-facing load failure. Partial results
	// are never kept; a failed load leaves the view empty.
	ErrLoadFailed = errors.New("failed to fetch data")
)

// Status is a dashboard's load state.
type Status int

const (
	Uninitialized Status = iota
	Loading
	Ready
	LoadError
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case LoadError:
		return "error"
	}
	return "unknown"
}
