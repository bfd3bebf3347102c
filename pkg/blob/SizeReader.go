// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"errors"
	"fmt"
	"io"
)

// SizeReader reads exactly size bytes from the underlying reader.
// If the underlying reader ends early or has more content, then Read returns ErrSizeMismatch
// instead of the last block, so the content is never committed with the wrong length.
type SizeReader struct {
	r         io.Reader
	size      int64
	remaining int64
}

func (s *SizeReader) mismatch(reason string) error {
	return fmt.Errorf("expected %d bytes, %s: %w", s.size, reason, ErrSizeMismatch)
}

// checkEOF returns io.EOF if the underlying reader has no more content.
func (s *SizeReader) checkEOF() error {
	extra := make([]byte, 1)
	n, err := io.ReadFull(s.r, extra)
	if n > 0 {
		return s.mismatch("found more")
	}
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	return err
}

func (s *SizeReader) Read(p []byte) (int, error) {
	if s.remaining <= 0 {
		return 0, s.checkEOF()
	}
	if int64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}
	n, err := s.r.Read(p)
	s.remaining -= int64(n)
	if s.remaining == 0 {
		if errEOF := s.checkEOF(); !errors.Is(errEOF, io.EOF) {
			return 0, errEOF
		}
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		return n, s.mismatch(fmt.Sprintf("found %d", s.size-s.remaining))
	}
	return n, err
}

func NewSizeReader(r io.Reader, size int64) *SizeReader {
	return &SizeReader{
		r:         r,
		size:      size,
		remaining: size,
	}
}
