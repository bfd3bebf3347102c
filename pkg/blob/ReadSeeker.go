// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"errors"
	"io"
)

var (
	errNegativeOffset = errors.New("negative offset")
	errInvalidWhence  = errors.New("invalid whence")
)

// ReadSeeker reads a blob of known size with ranged reads starting at the current offset.
type ReadSeeker struct {
	read   func(offset int64, p []byte) (n int, err error)
	offset int64
	size   int64
}

func (rs *ReadSeeker) Read(p []byte) (int, error) {
	if rs.offset >= rs.size {
		return 0, io.EOF
	}
	if remaining := rs.size - rs.offset; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := rs.read(rs.offset, p)
	if n > 0 {
		rs.offset += int64(n)
	}
	if errors.Is(err, io.EOF) && n > 0 {
		return n, nil
	}
	return n, err
}

func (rs *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	next := int64(0)
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = rs.offset + offset
	case io.SeekEnd:
		next = rs.size + offset
	default:
		return 0, errInvalidWhence
	}
	if next < 0 {
		return 0, errNegativeOffset
	}
	rs.offset = next
	return rs.offset, nil
}

func (rs *ReadSeeker) Size() int64 {
	return rs.size
}

func NewReadSeeker(offset int64, size int64, read func(offset int64, p []byte) (int, error)) *ReadSeeker {
	return &ReadSeeker{read: read, offset: offset, size: size}
}

// ReadRange fills p from r, which holds the bytes of a ranged read.
// A range shorter than p returns the bytes read and io.EOF.
func ReadRange(r io.Reader, p []byte) (int, error) {
	n, err := io.ReadFull(r, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, io.EOF
	}
	return n, err
}
