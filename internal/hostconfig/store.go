// Package hostconfig owns the Claude desktop config file. The Store keeps an
// in-memory copy that every mutation goes through, so concurrent installs
// serialize on one lock and never observe a half-written document.
package hostconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aymanbagabas/go-udiff"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/fsutil"
	"github.com/fleuristes/fleur/internal/messages"
)

// FileName is the host config file name.
const FileName = "claude_desktop_config.json"

// Store caches the host config and writes mutations through to disk. The cache
// is loaded on first use and only dropped by SetPathOverride; edits made to the
// file by other processes are not observed until then.
type Store struct {
	mu       sync.Mutex
	path     string
	override string
	lockDir  string
	cache    Document
	logger   *zap.Logger
}

// NewStore returns a Store for the config file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the file the Store reads and writes.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pathLocked()
}

func (s *Store) pathLocked() string {
	if s.override != "" {
		return s.override
	}
	return s.path
}

// SetPathOverride redirects the Store to path, or back to its default when
// path is empty, and drops the cache.
func (s *Store) SetPathOverride(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = path
	s.cache = nil
}

// SetLockDir places the cross-process write lock in dir instead of next to the
// config file.
func (s *Store) SetLockDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockDir = dir
}

// lockPathLocked names the flock file guarding writes to path. Locks kept in
// lockDir are keyed by a hash of path so overrides never share a lock.
func (s *Store) lockPathLocked(path string) string {
	if s.lockDir == "" {
		return path + ".lock"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return filepath.Join(s.lockDir, fmt.Sprintf("%s.%08x.lock", FileName, h.Sum32()))
}

// Load returns a copy of the current document.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// Save writes doc and makes it the cached document. A failed write leaves the
// cache unchanged.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc.Clone())
}

// Update applies fn to a copy of the latest document under the Store lock. The
// copy is saved and cached only when fn reports a change.
func (s *Store) Update(fn func(Document) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	next := current.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		return false, err
	}
	if err := s.saveLocked(next); err != nil {
		return false, err
	}
	return true, nil
}

// Diff renders a unified diff from the current document to next.
func (s *Store) Diff(next Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return "", err
	}
	before, err := Encode(current)
	if err != nil {
		return "", err
	}
	after, err := Encode(next)
	if err != nil {
		return "", err
	}
	path := s.pathLocked()
	return udiff.Unified(path, path, string(before), string(after)), nil
}

func (s *Store) loadLocked() (Document, error) {
	if s.cache != nil {
		return s.cache, nil
	}
	path := s.pathLocked()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = s.createDefault(path)
	}
	if err != nil {
		return nil, fmt.Errorf(messages.HostconfigReadFmt, path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf(messages.HostconfigParseFmt, path, err)
	}
	if _, err := doc.servers(); err != nil {
		return nil, err
	}
	s.cache = doc
	return doc, nil
}

func (s *Store) createDefault(path string) ([]byte, error) {
	data, err := Encode(NewDocument())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.HostconfigCreateFmt, path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return nil, fmt.Errorf(messages.HostconfigCreateFmt, path, err)
	}
	s.logger.Info("created host config", zap.String("path", path))
	return data, nil
}

func (s *Store) saveLocked(doc Document) error {
	path := s.pathLocked()
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	lockPath := s.lockPathLocked(path)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf(messages.HostconfigLockDirFmt, filepath.Dir(lockPath), err)
	}
	err = fsutil.WithFileLock(lockPath, func() error {
		return fsutil.WriteFileAtomic(path, data, filePerm(path))
	})
	if err != nil {
		return fmt.Errorf(messages.HostconfigWriteFmt, path, err)
	}
	s.cache = doc
	s.logger.Debug("saved host config", zap.String("path", path))
	return nil
}

// filePerm keeps the existing file mode, defaulting to 0644.
func filePerm(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

// Decode parses host config JSON. Numbers are kept as json.Number so values
// round-trip unchanged; a null document decodes as empty. Anything but
// whitespace after the top-level value is an error.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New(messages.HostconfigTrailingData)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Encode renders doc as indented JSON with a trailing newline.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf(messages.HostconfigSerializeFmt, err)
	}
	return buf.Bytes(), nil
}
