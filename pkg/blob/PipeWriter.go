// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package blob

import (
	"io"
)

// PipeWriter streams writes into an upload running in its own goroutine.
type PipeWriter struct {
	writer *io.PipeWriter
	done   chan error
	closed bool
	err    error
}

func (w *PipeWriter) Write(p []byte) (int, error) {
	return w.writer.Write(p)
}

// Close finishes the content and waits for the upload to complete.
func (w *PipeWriter) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	_ = w.writer.Close()
	w.err = <-w.done
	return w.err
}

// CloseWithError aborts the upload and waits for it to return.
func (w *PipeWriter) CloseWithError(err error) error {
	if w.closed {
		return w.err
	}
	w.closed = true
	_ = w.writer.CloseWithError(err)
	<-w.done
	w.err = err
	return nil
}

// NewPipeWriter starts upload with a reader for the content written to the returned writer.
// The upload must fail if reading returns an error other than io.EOF.
func NewPipeWriter(upload func(r io.Reader) error) *PipeWriter {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := upload(pr)
		_ = pr.CloseWithError(err)
		done <- err
	}()
	return &PipeWriter{writer: pw, done: done}
}
