package bufferpool

import "github.com/tuannm99/novabuf/internal/storage"

// FileView binds a PageManager to a specific file (relation) so heap and
// index code can work with bare page numbers.
type FileView struct {
	pm PageManager
	f  storage.File
}

// View returns a file-scoped view backed by the shared manager.
func (m *Manager) View(f storage.File) *FileView {
	return &FileView{pm: m, f: f}
}

func (v *FileView) File() storage.File { return v.f }

func (v *FileView) FetchPage(pageNo uint32) (*storage.Page, error) {
	return v.pm.FetchPage(v.f, pageNo)
}

func (v *FileView) UnpinPage(pageNo uint32, dirty bool) error {
	return v.pm.UnpinPage(v.f, pageNo, dirty)
}

func (v *FileView) AllocPage() (uint32, *storage.Page, error) {
	return v.pm.AllocPage(v.f)
}

func (v *FileView) DisposePage(pageNo uint32) error {
	return v.pm.DisposePage(v.f, pageNo)
}

// Flush writes back and evicts every page of THIS file only.
func (v *FileView) Flush() error {
	return v.pm.FlushFile(v.f)
}
