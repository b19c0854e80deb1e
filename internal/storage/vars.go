package storage

import "errors"

const (
	SegmentSize       = 1 << 30                // 1,073,741,824 (1 GiB)
	PageSize          = 1 << 13                // 8,192 (8 KiB)
	MaxPagePerSegment = SegmentSize / PageSize // 131,072 pages/segment
)

const (
	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

var (
	ErrBadPageNo = errors.New("storage: page number not allocated")
	ErrShortPage = errors.New("storage: short page write")
)
