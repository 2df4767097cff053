package csr

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Compression identifies the framing of an input stream.
type Compression int

// Constants representing the supported input framings.
const (
	Uncompressed Compression = iota
	Zstd
	LZ4
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading ("-" or "" is stdin) and transparently
// decompresses zstd and lz4 input.
func Open(path string) (io.ReadCloser, Compression, error) {
	if path == "" || path == "-" {
		r, c, err := Decompress(os.Stdin)
		if err != nil {
			return nil, Uncompressed, err
		}
		return &readCloser{Reader: r, closers: []func() error{r.Close}}, c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Uncompressed, err
	}
	r, c, err := Decompress(f)
	if err != nil {
		_ = f.Close()
		return nil, Uncompressed, err
	}
	return &readCloser{Reader: r, closers: []func() error{r.Close, f.Close}}, c, nil
}

// Decompress sniffs the first bytes of r and wraps it in the matching
// decoder. Closing the result releases the decoder, not r.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, Uncompressed, err
	}

	switch {
	case bytes.Equal(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, Zstd, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), Zstd, nil
	case bytes.Equal(magic, lz4Magic):
		return io.NopCloser(lz4.NewReader(br)), LZ4, nil
	default:
		return io.NopCloser(br), Uncompressed, nil
	}
}
