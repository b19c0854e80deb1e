package bufferpool

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/tuannm99/novabuf/internal/storage"
)

// Stats is a snapshot of frame occupancy.
type Stats struct {
	Frames int
	Valid  int
	Pinned int
	Dirty  int
}

func (m *Manager) Stats() Stats {
	s := Stats{Frames: len(m.descs)}
	for i := range m.descs {
		d := &m.descs[i]
		if d.valid {
			s.Valid++
		}
		if d.pinCount > 0 {
			s.Pinned++
		}
		if d.dirty {
			s.Dirty++
		}
	}
	return s
}

const dumpPrefixLen = 16

// Dump writes a human-readable frame table to w. The format is for
// debugging only.
func (m *Manager) Dump(w io.Writer) {
	fmt.Fprintf(w, "buffer pool: %d frames (%s), hand at %d\n",
		len(m.descs), humanize.IBytes(uint64(len(m.pool))*storage.PageSize), m.clock.Hand())

	for i := range m.descs {
		d := &m.descs[i]
		head := m.pool[i][:dumpPrefixLen]
		if n := bytes.IndexByte(head, 0); n >= 0 {
			head = head[:n]
		}
		fmt.Fprintf(w, "%d\t%q\tpinCnt: %d", i, head, d.pinCount)
		if d.valid {
			fmt.Fprintf(w, "\tvalid\t%s#%d", d.file.Key(), d.pageNo)
			if d.dirty {
				fmt.Fprint(w, "\tdirty")
			}
		}
		fmt.Fprintln(w)
	}
}
