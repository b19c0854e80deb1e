package storage

// Page is one fixed-size disk page image.
//
// A *Page handed out by the buffer pool points into the pool itself. It stays
// valid only while the caller holds a pin on the page; once the pin is
// released the frame may be reused for a different page at any time.
type Page [PageSize]byte

// Reset zero-fills the page.
func (p *Page) Reset() {
	clear(p[:])
}

// Bytes exposes the page as a byte slice aliasing the same memory.
func (p *Page) Bytes() []byte {
	return p[:]
}
