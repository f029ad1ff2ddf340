// Package embeddings reads the precomputed course embedding matrix.
package embeddings

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "coursegraph/pkg/errors"
)

var npyMagic = []byte("\x93NUMPY")

var (
	descrPattern   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranPattern = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapePattern   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// Matrix is a dense row-major float32 matrix
type Matrix struct {
	rows, dim int
	data      []float32
}

// NewMatrix wraps data as a rows x dim matrix
func NewMatrix(rows, dim int, data []float32) (*Matrix, error) {
	if rows < 0 || dim < 0 || len(data) != rows*dim {
		return nil, fmt.Errorf("matrix shape %dx%d does not match %d values", rows, dim, len(data))
	}
	return &Matrix{rows: rows, dim: dim, data: data}, nil
}

// Rows returns the number of embedding rows
func (m *Matrix) Rows() int { return m.rows }

// Dim returns the vector width
func (m *Matrix) Dim() int { return m.dim }

// Row returns row i without copying; callers must not modify it
func (m *Matrix) Row(i int) []float32 {
	if i < 0 || i >= m.rows {
		return nil
	}
	return m.data[i*m.dim : (i+1)*m.dim]
}

// ReadNPYFile reads a 2-D float matrix from a NumPy .npy file
func ReadNPYFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(path, err)
	}
	defer f.Close()

	m, err := ReadNPY(bufio.NewReader(f))
	if err != nil {
		return nil, pkgerrors.NewDataLoadError(path, err)
	}
	return m, nil
}

// ReadNPY decodes format versions 1 to 3 holding little-endian f4 or f8 in C order
func ReadNPY(r io.Reader) (*Matrix, error) {
	prefix := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("read npy preamble: %w", err)
	}
	if !bytes.Equal(prefix[:len(npyMagic)], npyMagic) {
		return nil, errors.New("not an npy file")
	}

	var headerLen int
	switch major := prefix[len(npyMagic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("read header length: %w", err)
		}
		headerLen = int(n)
	default:
		return nil, fmt.Errorf("unsupported npy version %d", major)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	descr, rows, dim, err := parseHeader(string(header))
	if err != nil {
		return nil, err
	}

	data := make([]float32, rows*dim)
	switch descr {
	case "<f4":
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, fmt.Errorf("read f4 data: %w", err)
		}
	case "<f8":
		wide := make([]float64, rows*dim)
		if err := binary.Read(r, binary.LittleEndian, wide); err != nil {
			return nil, fmt.Errorf("read f8 data: %w", err)
		}
		for i, v := range wide {
			data[i] = float32(v)
		}
	}

	return NewMatrix(rows, dim, data)
}

func parseHeader(header string) (descr string, rows, dim int, err error) {
	m := descrPattern.FindStringSubmatch(header)
	if m == nil {
		return "", 0, 0, errors.New("npy header has no descr")
	}
	descr = m[1]
	if descr != "<f4" && descr != "<f8" {
		return "", 0, 0, fmt.Errorf("unsupported dtype %q", descr)
	}

	if m := fortranPattern.FindStringSubmatch(header); m == nil || m[1] != "False" {
		return "", 0, 0, errors.New("only C-order arrays are supported")
	}

	m = shapePattern.FindStringSubmatch(header)
	if m == nil {
		return "", 0, 0, errors.New("npy header has no shape")
	}
	var dims []int
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil || n < 0 {
			return "", 0, 0, fmt.Errorf("bad shape entry %q", part)
		}
		dims = append(dims, n)
	}
	if len(dims) != 2 {
		return "", 0, 0, fmt.Errorf("expected a 2-D array, got %d dimensions", len(dims))
	}
	if dims[1] > 0 && dims[0] > math.MaxInt32/dims[1] {
		return "", 0, 0, fmt.Errorf("array %dx%d is too large", dims[0], dims[1])
	}
	return descr, dims[0], dims[1], nil
}
