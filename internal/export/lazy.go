package export

import "sync"

// Loader initializes the workbook capability
type Loader func() (WorkbookEncoder, error)

// Lazy runs its Loader at most once. Every caller, including concurrent
// ones, receives the same encoder or the same initialization error.
type Lazy struct {
	get func() (WorkbookEncoder, error)
}

// NewLazy wraps load so that it runs on first use
func NewLazy(load Loader) *Lazy {
	return &Lazy{get: sync.OnceValues(load)}
}

// Get returns the memoized encoder
func (l *Lazy) Get() (WorkbookEncoder, error) {
	return l.get()
}

// sharedWorkbook is the process-wide xlsx capability used by every Exporter
// built without WithWorkbookLoader.
var sharedWorkbook = NewLazy(defaultLoader)

// Shared returns the process-wide workbook handle
func Shared() *Lazy {
	return sharedWorkbook
}

func defaultLoader() (WorkbookEncoder, error) {
	return NewXLSXEncoder(), nil
}
