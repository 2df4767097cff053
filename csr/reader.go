package csr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/hupe1980/srplsh/sparse"
)

// maxTokenSize bounds a single whitespace-separated token.
const maxTokenSize = 1 << 20

// maxPrealloc caps how many elements a header count may reserve up front.
// Slices grow past it only as tokens actually arrive.
const maxPrealloc = 1 << 16

// ErrInvalidLayout is returned when header counts and row pointers disagree.
var ErrInvalidLayout = errors.New("invalid csr layout")

// ParseError reports a token that could not be read.
type ParseError struct {
	Token int    // 1-based token position in the stream
	Field string // what was being read
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csr: token %d (%s): %v", e.Token, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Dataset is a fully materialized corpus and query batch.
type Dataset struct {
	Rows    int // corpus size
	Cols    int // dimension
	NNZ     int // non-zeros in the corpus
	TopK    int // results requested per query
	Corpus  []*sparse.Vector
	Queries []*sparse.Vector
}

type tokenizer struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxTokenSize)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next(field string) (string, error) {
	t.pos++
	if !t.sc.Scan() {
		err := t.sc.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return "", &ParseError{Token: t.pos, Field: field, Err: err}
	}
	return t.sc.Text(), nil
}

func (t *tokenizer) int(field string) (int, error) {
	tok, err := t.next(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ParseError{Token: t.pos, Field: field, Err: err}
	}
	return v, nil
}

func (t *tokenizer) count(field string) (int, error) {
	v, err := t.int(field)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &ParseError{Token: t.pos, Field: field, Err: fmt.Errorf("negative count %d", v)}
	}
	return v, nil
}

func (t *tokenizer) ints(field string, n int) ([]int, error) {
	out := make([]int, 0, min(n, maxPrealloc))
	for range n {
		v, err := t.int(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *tokenizer) floats(field string, n int) ([]float64, error) {
	out := make([]float64, 0, min(n, maxPrealloc))
	for range n {
		tok, err := t.next(field)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Token: t.pos, Field: field, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// Read parses a complete dataset. Vectors are normalized on construction, so
// duplicate, negative or out-of-range indices surface as the sparse package
// errors wrapped with their row or query number.
func Read(r io.Reader) (*Dataset, error) {
	t := newTokenizer(r)
	d := &Dataset{}

	var err error
	if d.Rows, err = t.count("row"); err != nil {
		return nil, err
	}
	if d.Rows == math.MaxInt {
		return nil, &ParseError{Token: t.pos, Field: "row", Err: fmt.Errorf("count %d too large", d.Rows)}
	}
	if d.Cols, err = t.count("col"); err != nil {
		return nil, err
	}
	if d.NNZ, err = t.count("nnz"); err != nil {
		return nil, err
	}
	if d.TopK, err = t.count("topk"); err != nil {
		return nil, err
	}

	indptr, err := t.ints("indptr", d.Rows+1)
	if err != nil {
		return nil, err
	}
	if err := checkIndptr(indptr, d.NNZ); err != nil {
		return nil, err
	}

	indices, err := t.ints("indices", d.NNZ)
	if err != nil {
		return nil, err
	}
	values, err := t.floats("values", d.NNZ)
	if err != nil {
		return nil, err
	}

	d.Corpus = make([]*sparse.Vector, d.Rows)
	for i := range d.Corpus {
		lo, hi := indptr[i], indptr[i+1]
		v, err := sparse.New(d.Cols, indices[lo:hi], values[lo:hi])
		if err != nil {
			return nil, fmt.Errorf("corpus row %d: %w", i, err)
		}
		d.Corpus[i] = v
	}

	nq, err := t.count("nq")
	if err != nil {
		return nil, err
	}

	d.Queries = make([]*sparse.Vector, 0, min(nq, maxPrealloc))
	for q := range nq {
		qnnz, err := t.count("query nnz")
		if err != nil {
			return nil, err
		}
		ids, err := t.ints("query ids", qnnz)
		if err != nil {
			return nil, err
		}
		vals, err := t.floats("query values", qnnz)
		if err != nil {
			return nil, err
		}
		v, err := sparse.New(d.Cols, ids, vals)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", q, err)
		}
		d.Queries = append(d.Queries, v)
	}

	return d, nil
}

func checkIndptr(indptr []int, nnz int) error {
	if indptr[0] != 0 {
		return fmt.Errorf("%w: indptr[0] = %d, want 0", ErrInvalidLayout, indptr[0])
	}
	for i := 1; i < len(indptr); i++ {
		if indptr[i] < indptr[i-1] {
			return fmt.Errorf("%w: indptr decreases at row %d", ErrInvalidLayout, i-1)
		}
	}
	if last := indptr[len(indptr)-1]; last != nnz {
		return fmt.Errorf("%w: indptr[row] = %d, want nnz %d", ErrInvalidLayout, last, nnz)
	}
	return nil
}
