/*
Package memstream implements a seekable in-memory byte stream.

A Stream is either opened over an existing buffer, which it uses without
copying, or created empty and grown as data is written to it. It implements
io.Reader, io.Writer, io.Seeker and io.Closer so code can be written once
against a stream regardless of where the bytes end up.
*/
package memstream

import (
	"errors"
	"io"
)

var (
	// ErrAllocationFailed is returned when a write cannot grow the stream.
	ErrAllocationFailed = errors.New("memstream: allocation failed")
	// ErrInvalidSeek is returned for an unknown whence or a negative
	// resulting offset.
	ErrInvalidSeek = errors.New("memstream: invalid seek")
	// ErrInvalidSize is returned when the initial size does not fit the
	// buffer.
	ErrInvalidSize = errors.New("memstream: invalid size")
	// ErrClosed is returned by any operation on a closed stream.
	ErrClosed = errors.New("memstream: stream closed")
)

const maxInt = int(^uint(0) >> 1)

// Stream is an in-memory io.ReadWriteSeeker. The zero value is an empty,
// open stream.
type Stream struct {
	buf    []byte
	size   int
	offset int
	limit  int
	closed bool
}

// New returns an empty stream suitable for use as an output sink.
func New() *Stream {
	return &Stream{}
}

// Open returns a stream reading from the first size bytes of buf. The
// stream takes ownership of buf and does not copy it.
func Open(buf []byte, size int) (*Stream, error) {
	if size < 0 || size > len(buf) {
		return nil, ErrInvalidSize
	}
	return &Stream{
		buf:  buf,
		size: size,
	}, nil
}

// SetLimit caps the size the stream may grow to. Writes that would take the
// stream beyond n bytes fail with ErrAllocationFailed. Zero means no limit.
func (s *Stream) SetLimit(n int) {
	s.limit = n
}

// Size returns the number of valid bytes in the stream.
func (s *Stream) Size() int {
	return s.size
}

// Offset returns the current cursor position.
func (s *Stream) Offset() int {
	return s.offset
}

// Bytes returns the valid bytes of the stream. The slice aliases the stream
// buffer; ownership passes to the caller once the stream is closed.
func (s *Stream) Bytes() []byte {
	return s.buf[:s.size]
}

// Read copies up to len(p) bytes from the current offset. A read that
// crosses the end of the stream is truncated without error; a read at or
// past the end returns io.EOF.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.offset >= s.size {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.offset:s.size])
	s.offset += n
	return n, nil
}

// Reserve ensures at least n bytes can be written past the current offset
// without the stream reallocating.
func (s *Stream) Reserve(n int) error {
	if s.closed {
		return ErrClosed
	}
	if n < 0 || n > maxInt-s.offset {
		return ErrAllocationFailed
	}
	return s.grow(s.offset + n)
}

func (s *Stream) grow(n int) error {
	if s.limit > 0 && n > s.limit {
		return ErrAllocationFailed
	}
	if n <= cap(s.buf) {
		return nil
	}
	c := 2 * cap(s.buf)
	if c < n {
		c = n
	}
	if s.limit > 0 && c > s.limit {
		c = s.limit
	}
	buf := make([]byte, len(s.buf), c)
	copy(buf, s.buf)
	s.buf = buf
	return nil
}

// Write copies p into the stream at the current offset, growing the stream
// as required, and advances the offset past the written bytes. Writing after
// seeking beyond the end fills the gap with zeroes.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > maxInt-s.offset {
		return 0, ErrAllocationFailed
	}
	end := s.offset + len(p)
	if err := s.grow(end); err != nil {
		return 0, err
	}
	if end > len(s.buf) {
		s.buf = s.buf[:end]
	}
	// Anything between the old size and the offset was never written so
	// must read back as zero
	for i := s.size; i < s.offset; i++ {
		s.buf[i] = 0
	}
	copy(s.buf[s.offset:], p)
	s.offset = end
	if end > s.size {
		s.size = end
	}
	return len(p), nil
}

// Seek sets the offset for the next Read or Write. Seeking beyond the end of
// the stream is allowed and does not change its size.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.offset) + offset
	case io.SeekEnd:
		abs = int64(s.size) + offset
	default:
		return 0, ErrInvalidSeek
	}

	if abs < 0 || abs > int64(maxInt) {
		return 0, ErrInvalidSeek
	}
	s.offset = int(abs)

	return abs, nil
}

// Close releases the stream's reference to its buffer. Call Bytes first to
// keep the contents.
func (s *Stream) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.buf = nil
	s.size, s.offset = 0, 0
	s.closed = true
	return nil
}
