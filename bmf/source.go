package bmf

import (
	"io"
	"os"
)

// source is the byte-addressable blob a font is read from. Offsets are relative
// to the data origin.
//
// fetch returns len(dst) bytes at offset off. Memory-backed sources return a
// borrowed sub-slice and leave dst untouched; stream-backed sources read into dst
// and return it. A short read results in io.ErrUnexpectedEOF.
type source interface {
	fetch(off int64, dst []byte) ([]byte, error)
	size() int64 // -1 if unknown
	close() error
}

// --- Memory arena ----------------------------------------------------------

// arena is an immutable in-memory font blob.
type arena []byte

func (a arena) fetch(off int64, dst []byte) ([]byte, error) {
	return a.view(off, len(dst))
}

// view returns n bytes at offset off as a sub-slice of the arena.
func (a arena) view(off int64, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > int64(len(a)) || int64(n) > int64(len(a))-off {
		return nil, io.ErrUnexpectedEOF
	}
	return a[off : off+int64(n) : off+int64(n)], nil
}

func (a arena) size() int64 {
	return int64(len(a))
}

func (a arena) close() error {
	return nil
}

// --- Random access stream --------------------------------------------------

// stream is a font read on demand from an io.ReaderAt, starting at base.
type stream struct {
	r    io.ReaderAt
	base int64
}

func (s stream) fetch(off int64, dst []byte) ([]byte, error) {
	if off < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	n, err := s.r.ReadAt(dst, s.base+off)
	if n < len(dst) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return dst, nil
}

func (s stream) size() int64 {
	switch r := s.r.(type) {
	case interface{ Size() int64 }: // bytes.Reader, io.SectionReader, …
		return r.Size() - s.base
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := r.Stat(); err == nil {
			return fi.Size() - s.base
		}
	}
	return -1
}

func (s stream) close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
