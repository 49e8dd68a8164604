// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// ChunkSize is the largest chunk Stream reads from its source at once.
const ChunkSize = 32 * 1024

// Transform maps one chunk of a stream onto its output chunk.  Implementations
// must not retain or modify the input slice, which is reused between chunks.
type Transform func([]byte) []byte

// Identity is the Transform that passes chunks through untouched.
func Identity(chunk []byte) []byte {
	return chunk
}

// Uppercase maps each ASCII lowercase letter onto its uppercase form.  Every other
// byte, including all non-ASCII bytes, is copied as is.  The output always has
// the same length as the input.
func Uppercase(chunk []byte) []byte {
	out := make([]byte, len(chunk))
	for i, b := range chunk {
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}

		out[i] = b
	}

	return out
}

// Flusher is implemented by destinations that buffer output, such as
// http.ResponseController.  Stream flushes after every chunk.
type Flusher interface {
	Flush() error
}

// StreamStats summarizes what a Stream call wrote.
type StreamStats struct {
	// Chunks is the number of chunks written to the destination
	Chunks int

	// Bytes is the total number of bytes written to the destination
	Bytes int64
}

// Stream copies src to dst one chunk at a time, applying t to every chunk.  Each
// read from src produces exactly one write to dst, so chunk boundaries and order
// are preserved.  When dst is a Flusher, each chunk is flushed before the next
// read.  A nil t is the same as Identity.
//
// Stream is the push form of NewReader: both pull chunks through the same
// transformReader.
//
// Stream returns nil once src reports io.EOF.  Any other read or write error,
// or the cancellation of ctx, ends the stream.  Whatever was already written
// stays written, and the returned stats describe it.
func Stream(ctx context.Context, dst io.Writer, src io.Reader, t Transform) (stats StreamStats, err error) {
	var (
		flusher, _ = dst.(Flusher)
		tr         = newTransformReader(src, t)
	)

	for {
		if err = ctx.Err(); err != nil {
			return
		}

		chunk, readErr := tr.next()
		if len(chunk) > 0 {
			if err = writeChunk(dst, flusher, chunk); err != nil {
				return
			}

			stats.Chunks++
			stats.Bytes += int64(len(chunk))
		}

		switch {
		case errors.Is(readErr, io.EOF):
			return

		case readErr != nil:
			err = readErr
			return
		}
	}
}

func writeChunk(dst io.Writer, flusher Flusher, chunk []byte) error {
	if _, err := dst.Write(chunk); err != nil {
		return err
	}

	if flusher != nil {
		if err := flusher.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
	}

	return nil
}

// transformReader reads src one chunk at a time and transforms each chunk
// as a whole.  The underlying buffer is reused between chunks.
type transformReader struct {
	src     io.Reader
	t       Transform
	buffer  []byte
	pending []byte
	err     error
}

func newTransformReader(src io.Reader, t Transform) *transformReader {
	if t == nil {
		t = Identity
	}

	return &transformReader{
		src:    src,
		t:      t,
		buffer: make([]byte, ChunkSize),
	}
}

// NewReader returns a reader that yields src's bytes passed through t.  Each
// read from src is transformed as one chunk, exactly as Stream would do it, and
// src is only read when the previous chunk has been fully consumed.  A nil t is
// the same as Identity.
func NewReader(src io.Reader, t Transform) io.Reader {
	return newTransformReader(src, t)
}

// next returns whatever is left of the current chunk, reading and transforming a
// new one from src when nothing is left.  An error from src is returned only once
// the data read along with it has been handed out.
func (tr *transformReader) next() ([]byte, error) {
	if len(tr.pending) == 0 && tr.err == nil {
		var n int
		n, tr.err = tr.src.Read(tr.buffer)
		if n > 0 {
			tr.pending = tr.t(tr.buffer[:n])
		}
	}

	if len(tr.pending) > 0 {
		chunk := tr.pending
		tr.pending = nil
		return chunk, nil
	}

	return nil, tr.err
}

func (tr *transformReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(tr.pending) == 0 {
		if tr.err != nil {
			return 0, tr.err
		}

		var n int
		n, tr.err = tr.src.Read(tr.buffer)
		if n > 0 {
			tr.pending = tr.t(tr.buffer[:n])
		}
	}

	n := copy(p, tr.pending)
	tr.pending = tr.pending[n:]
	return n, nil
}
