package accounts

import "errors"

var (
	// ErrNotFound means the database answered and has no such entry.
	ErrNotFound = errors.New("no such entry")
	// ErrLookup means the database itself could not be queried.
	ErrLookup = errors.New("directory lookup failed")
)

func isLookup(err error) bool {
	return errors.Is(err, ErrLookup)
}
