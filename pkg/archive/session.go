package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fxvfs/pkg/logger"
)

// preallocLimit caps how much of a declared entry size is reserved up front,
// so a corrupt header cannot force a huge allocation before any data is read.
const preallocLimit = 64 << 20

type options struct {
	maxEntrySize int64
}

// Option configures a Session.
type Option func(*options)

// WithMaxEntrySize limits the number of bytes Data will materialize for one
// entry. Zero or negative means unlimited.
func WithMaxEntrySize(n int64) Option {
	return func(o *options) {
		o.maxEntrySize = n
	}
}

// Session is an open archive positioned at one entry. It is not safe for
// concurrent use.
type Session struct {
	path string
	typ  *Type
	opts options

	r       backend
	cur     entry
	ordinal int
	done    bool

	data   []byte
	loaded bool
	closed bool
}

// Open identifies the file at path and opens it. Non-archives fail with
// ErrNotArchive.
func Open(path string, opts ...Option) (*Session, error) {
	typ, err := IdentifyFile(path)
	if err != nil {
		return nil, err
	}
	if typ == FileType {
		return nil, fmt.Errorf("%w: %s", ErrNotArchive, path)
	}
	return OpenType(path, typ, opts...)
}

// OpenType opens path as the given type without sniffing it again. The
// session starts at the first entry; Done reports true for an empty archive.
func OpenType(path string, typ *Type, opts ...Option) (*Session, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: no type for %s", ErrNotArchive, path)
	}

	s := &Session{path: path, typ: typ}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if err := s.start(); err != nil {
		return nil, err
	}
	logger.Debug("Opened archive", "path", path, "type", typ.name)
	return s, nil
}

func (s *Session) start() error {
	r, err := s.typ.open(s.path)
	if err != nil {
		s.done = true
		return fmt.Errorf("failed to open %s archive %s: %w", s.typ.name, s.path, err)
	}
	s.r = r
	s.ordinal = -1
	s.done = false
	if err := s.Next(); err != nil {
		r.close()
		s.r = nil
		return err
	}
	return nil
}

// Path returns the archive path the session was opened with.
func (s *Session) Path() string { return s.path }

// Type returns the archive type.
func (s *Session) Type() *Type { return s.typ }

// Done reports whether enumeration is exhausted.
func (s *Session) Done() bool { return s.done || s.closed }

// Name returns the current entry's path inside the archive.
func (s *Session) Name() string { return s.cur.name }

// Ordinal returns the zero-based position of the current entry.
func (s *Session) Ordinal() int { return s.ordinal }

// Size returns the current entry's size. It is the declared size when the
// container records one, otherwise the materialized length, otherwise -1.
func (s *Session) Size() int64 {
	if s.cur.size >= 0 {
		return s.cur.size
	}
	if s.loaded {
		return int64(len(s.data))
	}
	return -1
}

// Next advances to the following entry. Any materialized data is released.
// Calling Next on an exhausted session is a no-op.
func (s *Session) Next() error {
	if s.closed {
		return ErrClosed
	}
	if s.done {
		return nil
	}
	s.data, s.loaded = nil, false

	e, err := s.r.next()
	if errors.Is(err, io.EOF) {
		s.done = true
		s.cur = entry{}
		return nil
	}
	if err != nil {
		s.done = true
		s.cur = entry{}
		return fmt.Errorf("failed to read entry %d of %s: %w", s.ordinal+1, s.path, err)
	}
	s.cur = e
	s.ordinal++
	return nil
}

// Data materializes the current entry and returns its bytes. The slice is
// owned by the session and must not be used after Next, Rewind or Close.
// Repeated calls return the same slice.
func (s *Session) Data() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.done {
		return nil, ErrNoEntry
	}
	if s.loaded {
		return s.data, nil
	}

	limit := s.opts.maxEntrySize
	if limit > 0 && s.cur.size > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrEntryTooLarge, s.cur.name, s.cur.size, limit)
	}

	rd, err := s.r.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open entry %s: %w", s.cur.name, err)
	}
	if c, ok := rd.(io.Closer); ok {
		defer c.Close()
	}

	src := rd
	if limit > 0 {
		src = io.LimitReader(rd, limit+1)
	}

	var buf bytes.Buffer
	if s.cur.size > 0 {
		buf.Grow(int(min(s.cur.size, preallocLimit)))
	}
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", s.cur.name, err)
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrEntryTooLarge, s.cur.name, limit)
	}

	s.data = buf.Bytes()
	s.loaded = true
	logger.Debug("Materialized entry", "archive", s.path, "entry", s.cur.name, "bytes", len(s.data))
	return s.data, nil
}

// Rewind repositions the session at the first entry by reopening the archive.
func (s *Session) Rewind() error {
	if s.closed {
		return ErrClosed
	}
	s.data, s.loaded = nil, false
	if s.r != nil {
		if err := s.r.close(); err != nil {
			logger.Debug("Close before rewind failed", "path", s.path, "err", err)
		}
		s.r = nil
	}
	return s.start()
}

// Close releases the archive and any materialized data. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.data, s.loaded = nil, false
	if s.r == nil {
		return nil
	}
	err := s.r.close()
	s.r = nil
	return err
}
