package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a problem.
type Document struct {
	N         int         `yaml:"n"`
	Tolerance float64     `yaml:"tolerance"`
	Initial   []float64   `yaml:"initial,omitempty"`
	A         [][]float64 `yaml:"a"`
	B         []float64   `yaml:"b"`
}

// Load reads a problem from path. Files ending in .yaml or .yml are decoded
// as a Document, anything else as the whitespace separated text format.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open problem")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return Decode(f)
	}
}

// Decode parses the text format: the number of unknowns n, the tolerance,
// n initial values, then n rows of n coefficients each followed by that
// row's constant.
func Decode(r io.Reader) (*Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.Wrapf(err, "reading %s", what)
			}
			return "", errors.Wrapf(io.ErrUnexpectedEOF, "reading %s", what)
		}
		return sc.Text(), nil
	}
	float := func(what string) (float64, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing %s", what)
		}
		return v, nil
	}

	tok, err := next("n")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, errors.Wrap(err, "parsing n")
	}
	if n < 1 {
		return nil, errors.Wrapf(ErrBadShape, "n=%d", n)
	}

	tolerance, err := float("tolerance")
	if err != nil {
		return nil, err
	}

	x0 := make([]float64, n)
	for i := range x0 {
		if x0[i], err = float(fmt.Sprintf("x0[%d]", i)); err != nil {
			return nil, err
		}
	}

	a := make([][]float64, n)
	b := make([]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			if a[i][j], err = float(fmt.Sprintf("a[%d][%d]", i, j)); err != nil {
				return nil, err
			}
		}
		if b[i], err = float(fmt.Sprintf("b[%d]", i)); err != nil {
			return nil, err
		}
	}

	return New(a, b, x0, tolerance)
}

// DecodeYAML parses a Document.
func DecodeYAML(r io.Reader) (*Problem, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml problem")
	}
	if doc.N != 0 && doc.N != len(doc.A) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "n=%d but a has %d rows", doc.N, len(doc.A))
	}
	return New(doc.A, doc.B, doc.Initial, doc.Tolerance)
}

// Encode writes p in the text format read by Decode.
func Encode(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)
	n := p.Size()
	fmt.Fprintf(bw, "%d\n%s\n", n, formatFloat(p.Tolerance))
	for i, v := range p.X0 {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(formatFloat(v))
	}
	bw.WriteByte('\n')
	for i := 0; i < n; i++ {
		for _, v := range p.Row(i) {
			bw.WriteString(formatFloat(v))
			bw.WriteByte(' ')
		}
		bw.WriteString(formatFloat(p.B[i]))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "writing problem")
}

// EncodeYAML writes p as a Document.
func EncodeYAML(w io.Writer, p *Problem) error {
	doc := Document{
		N:         p.Size(),
		Tolerance: p.Tolerance,
		Initial:   p.X0,
		A:         p.Rows(),
		B:         p.B,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding yaml problem")
	}
	return errors.Wrap(enc.Close(), "encoding yaml problem")
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
