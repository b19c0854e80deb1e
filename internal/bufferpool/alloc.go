package bufferpool

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tuannm99/novabuf/pkg/clockx"
)

// allocFrame picks a frame for a new page with the clock sweep and returns it
// empty (valid == false).
//
// A resident victim is written back first if dirty; only after the write
// succeeds is it dropped from the index. A failed write leaves the victim
// resident, dirty and mapped.
func (m *Manager) allocFrame() (int, error) {
	if !m.anyReusable() {
		return -1, ErrPoolExhausted
	}

	idx, err := m.clock.Sweep(func(i int) (clockx.Verdict, error) {
		d := &m.descs[i]
		switch {
		case !d.valid:
			return clockx.Claim, nil
		case d.refBit:
			d.refBit = false
			return clockx.Skip, nil
		case d.pinCount > 0:
			return clockx.Skip, nil
		}

		if d.dirty {
			if err := m.writeBack(i); err != nil {
				m.log.Warn("evict: write back failed",
					zap.Int("frame", i),
					zap.Uint32("page", d.pageNo),
					zap.Error(err),
				)
				return clockx.Skip, err
			}
		}
		_ = m.index.Remove(keyOf(d.file, d.pageNo))
		m.log.Debug("evict",
			zap.Int("frame", i),
			zap.String("file", d.file.Key()),
			zap.Uint32("page", d.pageNo),
		)
		d.clear()
		m.metrics.Evictions.Inc()
		return clockx.Claim, nil
	})
	if errors.Is(err, clockx.ErrNoVictim) {
		return -1, ErrPoolExhausted
	}
	if err != nil {
		return -1, err
	}
	return idx, nil
}

// anyReusable is the O(N) guard that keeps the sweep from spinning when every
// frame is pinned.
func (m *Manager) anyReusable() bool {
	for i := range m.descs {
		if m.descs[i].reusable() {
			return true
		}
	}
	return false
}
