//go:build windows

package fsutil

// WithFileLock runs fn without an advisory lock; Windows hosts rely on atomic renames only.
func WithFileLock(_ string, fn func() error) error {
	return fn()
}
