package bufferpool

import (
	"errors"

	"github.com/tuannm99/novabuf/internal/pagetable"
)

var (
	ErrPoolExhausted = errors.New("bufferpool: no free frame available (all pinned)")
	ErrIOFailure     = errors.New("bufferpool: page file I/O failure")
	ErrNotPinned     = errors.New("bufferpool: page is not pinned")
	ErrPagePinned    = errors.New("bufferpool: page is pinned")
	ErrClosed        = errors.New("bufferpool: manager is closed")

	// Page-identity index failures are passed through unchanged.
	ErrHashNotFound   = pagetable.ErrNotFound
	ErrDuplicateEntry = pagetable.ErrDuplicateEntry
	ErrOutOfMemory    = pagetable.ErrOutOfMemory
)
