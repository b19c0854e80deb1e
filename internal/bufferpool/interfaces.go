package bufferpool

import "github.com/tuannm99/novabuf/internal/storage"

// PageManager is what access methods need from the buffer pool.
type PageManager interface {
	FetchPage(f storage.File, pageNo uint32) (*storage.Page, error)
	UnpinPage(f storage.File, pageNo uint32, dirty bool) error
	AllocPage(f storage.File) (uint32, *storage.Page, error)
	DisposePage(f storage.File, pageNo uint32) error
	FlushFile(f storage.File) error
}
