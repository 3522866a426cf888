package mewa

import (
	"io"

	"github.com/pkg/errors"
)

// DefaultPageSize is the size of pages read from streamed sources.
const DefaultPageSize = 4096

// Pos is a position in the source. Rows and columns count from 0.
type Pos struct {
	Row, Col int
}

// reader is a byte source with one byte of lookahead correction. It reads
// either a finite in-memory buffer, which is a single final page, or an
// io.Reader a page at a time.
type reader struct {
	src  io.Reader
	page []byte
	n    int
	ptr  int
	pos  Pos
	mrk  Pos
	cc   byte

	// back indicates that the next advance re-delivers cc.
	back bool
	// final indicates that the current page is the last one.
	final bool
	// eos indicates that there are no more bytes at all.
	eos bool
	// primed indicates that the first page transition has happened, so cc
	// and ptr refer to a real byte.
	primed bool

	err error
}

// newBufferReader creates a reader over an in-memory buffer. The reader
// does not copy b.
func newBufferReader(b []byte) reader {
	return reader{page: b, n: len(b), final: true}
}

// newStreamReader creates a reader that reads src in pages of size bytes.
func newStreamReader(src io.Reader, size int) reader {
	if size <= 0 {
		size = DefaultPageSize
	}
	return reader{src: src, page: make([]byte, size)}
}

// reset retargets the reader at an in-memory buffer and clears all
// counters. The page from a streamed source is not retained.
func (r *reader) reset(b []byte) {
	*r = newBufferReader(b)
}

// advance moves to the next byte. At the end of the stream, cc is 0 and eos
// is set.
func (r *reader) advance() {
	if r.back {
		r.back = false
		return
	}
	if r.eos {
		return
	}
	if r.primed {
		r.pos.Col++
		if r.cc == '\n' {
			r.pos.Col = 0
			r.pos.Row++
		}
		r.ptr++
	}
	for r.ptr >= r.n {
		if r.final {
			r.eos = true
			r.cc = 0
			return
		}
		r.fill()
	}
	r.primed = true
	r.cc = r.page[r.ptr]
}

// fill reads the next page from the source. A short read with no error is
// not the end of the stream; only io.EOF or another error finishes it.
func (r *reader) fill() {
	r.ptr = 0
	n, err := r.src.Read(r.page)
	r.n = n
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		r.final = true
	default:
		r.final = true
		r.n = 0
		r.err = errors.Wrap(err, "mewa: reading source")
	}
}

// unread makes the next call to advance deliver the current byte again.
// Panics if there is already a pending unread.
func (r *reader) unread() {
	if r.back {
		panic("mewa: double unread")
	}
	r.back = true
}

// mark records the current position as the start of a token.
func (r *reader) mark() {
	r.mrk = r.pos
}

// skipSpace advances past whitespace other than bytes in stop.
func (r *reader) skipSpace(stop string) {
	for isSpace(r.cc) && !r.eos && !stopsOn(stop, r.cc) {
		r.advance()
	}
}

// skipLine advances to the end of the current line. The newline itself
// remains the current byte, so the next advance moves past it.
func (r *reader) skipLine() {
	r.back = false
	for !r.eos && r.cc != '\n' {
		r.advance()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\r' || c == '\n'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func stopsOn(stop string, c byte) bool {
	for i := 0; i < len(stop); i++ {
		if stop[i] == c {
			return true
		}
	}
	return false
}
