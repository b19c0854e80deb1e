package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/tuannm99/novabuf/internal/alias/util"
)

// File is a page file: fixed-size page slots addressed by page number.
type File interface {
	// Key identifies the file; two File values with the same key are the same file.
	Key() string
	AllocatePage() (uint32, error)
	DisposePage(pageNo uint32) error
	ReadPage(pageNo uint32, dst *Page) error
	WritePage(pageNo uint32, src *Page) error
}

var _ File = (*SegmentFile)(nil)

// SegmentFile stores pages in 1 GiB segments of a LocalFileSet.
// Disposed pages are kept on an in-memory free list and handed out again
// by AllocatePage before the file grows.
type SegmentFile struct {
	fs LocalFileSet

	mu       sync.Mutex
	numPages uint32
	free     []uint32
	disposed map[uint32]struct{}
}

// OpenSegmentFile opens (or creates lazily) the page file described by fs.
func OpenSegmentFile(fs LocalFileSet) (*SegmentFile, error) {
	n, err := countPages(fs)
	if err != nil {
		return nil, fmt.Errorf("count pages %s: %w", fs.Key(), err)
	}
	return &SegmentFile{
		fs:       fs,
		numPages: n,
		disposed: make(map[uint32]struct{}),
	}, nil
}

func (f *SegmentFile) Key() string { return f.fs.Key() }

func (f *SegmentFile) FileSet() LocalFileSet { return f.fs }

// NumPages returns the number of page slots in the file, disposed ones included.
func (f *SegmentFile) NumPages() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.numPages
}

// AllocatePage returns a zero-filled page slot.
func (f *SegmentFile) AllocatePage() (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var empty Page
	if n := len(f.free); n > 0 {
		pageNo := f.free[n-1]
		if err := f.writeAt(pageNo, &empty); err != nil {
			return 0, err
		}
		f.free = f.free[:n-1]
		delete(f.disposed, pageNo)
		return pageNo, nil
	}

	pageNo := f.numPages
	if err := f.writeAt(pageNo, &empty); err != nil {
		return 0, err
	}
	f.numPages++
	return pageNo, nil
}

func (f *SegmentFile) DisposePage(pageNo uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked(pageNo); err != nil {
		return err
	}
	f.disposed[pageNo] = struct{}{}
	f.free = append(f.free, pageNo)
	return nil
}

// ReadPage reads exactly one page into dst.
// If the segment is shorter than the page end, the remainder is zero-filled.
func (f *SegmentFile) ReadPage(pageNo uint32, dst *Page) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked(pageNo); err != nil {
		return err
	}
	segNo, off := locate(pageNo)
	seg, err := f.fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(seg)

	n, err := seg.ReadAt(dst[:], off)
	if err != nil && err != io.EOF {
		return err
	}
	clear(dst[n:])
	return nil
}

func (f *SegmentFile) WritePage(pageNo uint32, src *Page) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkLocked(pageNo); err != nil {
		return err
	}
	return f.writeAt(pageNo, src)
}

// Destroy removes every segment of the file from disk.
func (f *SegmentFile) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := RemoveAllSegments(f.fs); err != nil {
		return err
	}
	f.numPages = 0
	f.free = nil
	clear(f.disposed)
	return nil
}

func (f *SegmentFile) checkLocked(pageNo uint32) error {
	if pageNo >= f.numPages {
		return fmt.Errorf("%w: page %d of %s", ErrBadPageNo, pageNo, f.fs.Key())
	}
	if _, ok := f.disposed[pageNo]; ok {
		return fmt.Errorf("%w: page %d of %s is disposed", ErrBadPageNo, pageNo, f.fs.Key())
	}
	return nil
}

func (f *SegmentFile) writeAt(pageNo uint32, src *Page) error {
	segNo, off := locate(pageNo)
	seg, err := f.fs.OpenSegment(segNo)
	if err != nil {
		return err
	}
	defer util.CloseFileFunc(seg)

	n, err := seg.WriteAt(src[:], off)
	if err != nil {
		return err
	}
	if n != PageSize {
		return ErrShortPage
	}
	return nil
}
