package bufferpool

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tuannm99/novabuf/internal/pagetable"
	"github.com/tuannm99/novabuf/internal/storage"
	"github.com/tuannm99/novabuf/pkg/clockx"
)

var DefaultFrames = 128

var _ PageManager = (*Manager)(nil)

// Manager owns a fixed pool of page frames and decides which disk pages
// occupy them. It is not safe for concurrent use: pin counts are the only
// admission control, callers serialize access above this layer.
type Manager struct {
	descs []frameDesc
	pool  []storage.Page
	index *pagetable.Table
	clock *clockx.Clock

	log     *zap.Logger
	metrics *Metrics
	closed  bool
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func WithMetrics(mt *Metrics) Option {
	return func(m *Manager) {
		if mt != nil {
			m.metrics = mt
		}
	}
}

// New creates a manager with frames page frames. The pool size is fixed for
// the manager's lifetime.
func New(frames int, opts ...Option) *Manager {
	if frames <= 0 {
		frames = DefaultFrames
	}
	m := &Manager{
		descs: newDescTable(frames),
		pool:  make([]storage.Page, frames),
		index: pagetable.NewForFrames(frames),
		clock: clockx.New(frames),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = NewMetrics(nil)
	}
	return m
}

func (m *Manager) Frames() int { return len(m.descs) }

func keyOf(f storage.File, pageNo uint32) pagetable.Key {
	return pagetable.Key{File: f.Key(), PageNo: pageNo}
}

// FetchPage pins (f, pageNo) and returns its in-pool image, reading it from
// the file on a miss. Every successful call adds exactly one pin.
func (m *Manager) FetchPage(f storage.File, pageNo uint32) (*storage.Page, error) {
	if m.closed {
		return nil, ErrClosed
	}
	key := keyOf(f, pageNo)

	// 1) HIT
	if idx, err := m.index.Lookup(key); err == nil {
		d := &m.descs[idx]
		d.refBit = true
		d.pinCount++
		m.metrics.Hits.Inc()
		return &m.pool[idx], nil
	}

	// 2) MISS
	idx, err := m.allocFrame()
	if err != nil {
		return nil, err
	}
	if err := f.ReadPage(pageNo, &m.pool[idx]); err != nil {
		return nil, fmt.Errorf("%w: read page %d of %s: %w", ErrIOFailure, pageNo, f.Key(), err)
	}
	if err := m.index.Insert(key, idx); err != nil {
		return nil, err
	}
	m.descs[idx].set(f, pageNo)
	m.metrics.Misses.Inc()

	m.log.Debug("page loaded",
		zap.String("file", f.Key()),
		zap.Uint32("page", pageNo),
		zap.Int("frame", idx),
	)
	return &m.pool[idx], nil
}

// UnpinPage drops one pin on (f, pageNo). dirty is sticky: it is cleared only
// when the page is written back.
func (m *Manager) UnpinPage(f storage.File, pageNo uint32, dirty bool) error {
	if m.closed {
		return ErrClosed
	}
	idx, err := m.index.Lookup(keyOf(f, pageNo))
	if err != nil {
		return err
	}

	d := &m.descs[idx]
	if d.pinCount == 0 {
		return ErrNotPinned
	}
	d.pinCount--
	if dirty {
		d.dirty = true
	}
	return nil
}

// AllocPage allocates a new page in f and returns it pinned, zero-filled,
// exactly as FetchPage would.
func (m *Manager) AllocPage(f storage.File) (uint32, *storage.Page, error) {
	if m.closed {
		return 0, nil, ErrClosed
	}
	pageNo, err := f.AllocatePage()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: allocate page in %s: %w", ErrIOFailure, f.Key(), err)
	}

	idx, err := m.allocFrame()
	if err != nil {
		return 0, nil, err
	}
	if err := m.index.Insert(keyOf(f, pageNo), idx); err != nil {
		return 0, nil, err
	}
	m.pool[idx].Reset()
	m.descs[idx].set(f, pageNo)

	m.log.Debug("page allocated",
		zap.String("file", f.Key()),
		zap.Uint32("page", pageNo),
		zap.Int("frame", idx),
	)
	return pageNo, &m.pool[idx], nil
}

// DisposePage drops (f, pageNo) from the pool, if resident, and releases the
// page in f. Pins are not checked; the caller must not hold the page.
func (m *Manager) DisposePage(f storage.File, pageNo uint32) error {
	if m.closed {
		return ErrClosed
	}
	key := keyOf(f, pageNo)
	if idx, err := m.index.Lookup(key); err == nil {
		m.descs[idx].clear()
		_ = m.index.Remove(key)
	}

	if err := f.DisposePage(pageNo); err != nil {
		return fmt.Errorf("%w: dispose page %d of %s: %w", ErrIOFailure, pageNo, f.Key(), err)
	}
	return nil
}

// FlushFile writes back every dirty page of f and evicts all of f's pages.
//
// It stops at the first pinned page with ErrPagePinned. Frames handled before
// that point stay flushed and evicted.
func (m *Manager) FlushFile(f storage.File) error {
	if m.closed {
		return ErrClosed
	}
	for i := range m.descs {
		d := &m.descs[i]
		if !d.belongsTo(f) {
			continue
		}
		if d.pinCount > 0 {
			return fmt.Errorf("%w: page %d of %s", ErrPagePinned, d.pageNo, f.Key())
		}
		if d.dirty {
			if err := m.writeBack(i); err != nil {
				return err
			}
		}
		_ = m.index.Remove(keyOf(f, d.pageNo))
		d.clear()
	}
	return nil
}

// Close writes back every dirty frame and shuts the manager down. Write
// failures are logged, not returned. Pins are not checked. Calling Close
// more than once is a no-op.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	for i := range m.descs {
		if !m.descs[i].dirty {
			continue
		}
		if err := m.writeBack(i); err != nil {
			m.log.Warn("flush on close failed", zap.Int("frame", i), zap.Error(err))
		}
	}

	m.closed = true
	m.descs = nil
	m.pool = nil
	m.index = nil
	return nil
}

// writeBack writes frame idx to its file and marks it clean.
func (m *Manager) writeBack(idx int) error {
	d := &m.descs[idx]
	if err := d.file.WritePage(d.pageNo, &m.pool[idx]); err != nil {
		return fmt.Errorf("%w: write page %d of %s: %w", ErrIOFailure, d.pageNo, d.file.Key(), err)
	}
	d.dirty = false
	m.metrics.WriteBacks.Inc()
	return nil
}
