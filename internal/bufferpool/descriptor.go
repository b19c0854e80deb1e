package bufferpool

import "github.com/tuannm99/novabuf/internal/storage"

// frameDesc is the bookkeeping for one frame of the pool.
// A frame with valid == false has no file, no pins and is clean.
type frameDesc struct {
	frameNo  int
	file     storage.File
	pageNo   uint32
	valid    bool
	refBit   bool
	dirty    bool
	pinCount int32
}

// set installs a freshly loaded page: pinned once for the caller, recently
// used, clean.
func (d *frameDesc) set(f storage.File, pageNo uint32) {
	d.file = f
	d.pageNo = pageNo
	d.valid = true
	d.refBit = true
	d.dirty = false
	d.pinCount = 1
}

func (d *frameDesc) clear() {
	d.file = nil
	d.pageNo = 0
	d.valid = false
	d.refBit = false
	d.dirty = false
	d.pinCount = 0
}

// reusable reports whether the frame could be handed out without dropping a pin.
func (d *frameDesc) reusable() bool {
	return !d.valid || d.pinCount == 0
}

func (d *frameDesc) belongsTo(f storage.File) bool {
	return d.valid && d.file != nil && d.file.Key() == f.Key()
}

func newDescTable(n int) []frameDesc {
	descs := make([]frameDesc, n)
	for i := range descs {
		descs[i].frameNo = i
	}
	return descs
}
