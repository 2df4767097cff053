package csr

import (
	"bufio"
	"io"
	"strconv"
)

// ResultWriter emits one line of space-separated ids per query.
type ResultWriter struct {
	w   *bufio.Writer
	buf []byte
}

// NewResultWriter returns a buffered ResultWriter. Call Flush when done.
func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{w: bufio.NewWriter(w)}
}

// Write emits ids as one line.
func (rw *ResultWriter) Write(ids []uint32) error {
	rw.buf = rw.buf[:0]
	for i, id := range ids {
		if i > 0 {
			rw.buf = append(rw.buf, ' ')
		}
		rw.buf = strconv.AppendUint(rw.buf, uint64(id), 10)
	}
	rw.buf = append(rw.buf, '\n')
	_, err := rw.w.Write(rw.buf)
	return err
}

// Flush writes buffered output to the underlying writer.
func (rw *ResultWriter) Flush() error {
	return rw.w.Flush()
}

// Encode writes d in the input format accepted by Read.
func Encode(w io.Writer, d *Dataset) error {
	bw := bufio.NewWriter(w)
	var buf []byte

	line := func(parts ...[]byte) error {
		buf = buf[:0]
		for i, p := range parts {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = append(buf, p...)
		}
		buf = append(buf, '\n')
		_, err := bw.Write(buf)
		return err
	}
	itoa := func(v int) []byte { return strconv.AppendInt(nil, int64(v), 10) }
	ftoa := func(v float64) []byte { return strconv.AppendFloat(nil, v, 'g', -1, 64) }

	nnz := 0
	for _, v := range d.Corpus {
		nnz += v.Len()
	}
	if err := line(itoa(len(d.Corpus)), itoa(d.Cols), itoa(nnz), itoa(d.TopK)); err != nil {
		return err
	}

	indptr := [][]byte{itoa(0)}
	var indices, values [][]byte
	off := 0
	for _, v := range d.Corpus {
		off += v.Len()
		indptr = append(indptr, itoa(off))
		for idx, x := range v.Entries() {
			indices = append(indices, itoa(idx))
			values = append(values, ftoa(x))
		}
	}
	for _, row := range [][][]byte{indptr, indices, values} {
		if err := line(row...); err != nil {
			return err
		}
	}

	if err := line(itoa(len(d.Queries))); err != nil {
		return err
	}
	for _, q := range d.Queries {
		parts := [][]byte{itoa(q.Len())}
		for _, idx := range q.Indices() {
			parts = append(parts, itoa(idx))
		}
		for _, x := range q.Values() {
			parts = append(parts, ftoa(x))
		}
		if err := line(parts...); err != nil {
			return err
		}
	}

	return bw.Flush()
}
