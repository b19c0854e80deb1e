package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// LocalFileSet represents a local directory + base file name.
// Segments are stored as: Base, Base.1, Base.2, ...
type LocalFileSet struct {
	Dir  string
	Base string
}

// Key returns a stable identity for the file set.
func (lfs LocalFileSet) Key() string {
	return filepath.Clean(lfs.Dir) + "|" + lfs.Base
}

func (lfs LocalFileSet) OpenSegment(segNo int32) (*os.File, error) {
	if err := os.MkdirAll(lfs.Dir, FileMode0755); err != nil {
		return nil, err
	}
	path := filepath.Join(lfs.Dir, SegFileName(lfs.Base, segNo))
	// RDWR | CREATE (no truncate)
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0644)
}

// SegFileName returns segment file name:
//   - seg 0: base
//   - seg N>0: base.N
func SegFileName(base string, segNo int32) string {
	if segNo <= 0 {
		return base
	}
	return fmt.Sprintf("%s.%d", base, segNo)
}

// locate maps a page number to its segment and byte offset in that segment.
func locate(pageNo uint32) (segNo int32, offset int64) {
	segNo = int32(pageNo / MaxPagePerSegment)
	offset = int64(pageNo%MaxPagePerSegment) * PageSize
	return segNo, offset
}

// listSegmentsLocal scans lfs.Dir and returns all segment numbers for lfs.Base.
// It matches: Base and Base.<int>.
func listSegmentsLocal(lfs LocalFileSet) ([]int32, error) {
	ents, err := os.ReadDir(lfs.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	segs := make([]int32, 0)
	prefix := lfs.Base + "."

	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == lfs.Base {
			segs = append(segs, 0)
			continue
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		suf := strings.TrimPrefix(name, prefix)
		n64, err := strconv.ParseInt(suf, 10, 32)
		if err != nil || n64 <= 0 {
			continue
		}
		segs = append(segs, int32(n64))
	}

	sort.Slice(segs, func(i, j int) bool { return segs[i] < segs[j] })
	return segs, nil
}

// countPages computes total pages for a file set from its segment sizes.
// Only full pages are counted.
func countPages(lfs LocalFileSet) (uint32, error) {
	segs, err := listSegmentsLocal(lfs)
	if err != nil {
		return 0, err
	}
	var total uint32
	for _, segNo := range segs {
		info, err := os.Stat(filepath.Join(lfs.Dir, SegFileName(lfs.Base, segNo)))
		if err != nil {
			return 0, err
		}
		end := uint32(segNo)*MaxPagePerSegment + uint32(info.Size()/PageSize)
		if end > total {
			total = end
		}
	}
	return total, nil
}

// RemoveAllSegments removes Base, Base.1, Base.2, ... (robust: scan dir).
func RemoveAllSegments(lfs LocalFileSet) error {
	segs, err := listSegmentsLocal(lfs)
	if err != nil {
		return err
	}
	for _, segNo := range segs {
		path := filepath.Join(lfs.Dir, SegFileName(lfs.Base, segNo))
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
