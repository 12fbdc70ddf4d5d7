package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SplitLines splits OBJ text into lines, dropping carriage returns.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline does not start another record
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// ReadLines reads every line from r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// ParseRange parses lines[start..end] (inclusive, 0-based) into b. Indices
// past the end of lines are skipped. It keeps no state between calls, so a
// load may be split across several disjoint ranges.
//
// Supported records are "v x y z" and "f i1 i2 i3 ..." where each face token
// is "index[/ignored...]" with 1-based indices. Blank lines and records whose
// second character is not a space (vt, vn, ...) are skipped.
func ParseRange(lines []string, b *Builder, start, end int) error {
	start = max(start, 0)
	end = min(end, len(lines)-1)

	for i := start; i <= end; i++ {
		if err := parseLine(lines[i], b); err != nil {
			return &ParseError{Line: i + 1, Text: lines[i], Err: err}
		}
	}
	return nil
}

func parseLine(line string, b *Builder) error {
	if len(line) < 2 || line[1] != ' ' {
		return nil
	}

	switch line[0] {
	case 'v':
		return parseVertex(line, b)
	case 'f':
		return parseFace(line, b)
	default:
		return nil
	}
}

func parseVertex(line string, b *Builder) error {
	fields := strings.Fields(line[2:])
	if len(fields) < 3 {
		return fmt.Errorf("%w: vertex has %d coordinates, need 3", ErrInvalidGeometry, len(fields))
	}

	var xyz [3]float64
	for i := range xyz {
		f, err := parseCoord(fields[i])
		if err != nil {
			return fmt.Errorf("%w: vertex coordinate %q: %w", ErrInvalidGeometry, fields[i], err)
		}
		xyz[i] = f
	}

	b.AddVertex(xyz[0], xyz[1], xyz[2])
	return nil
}

var errNotDecimal = errors.New("not a finite decimal number")

// parseCoord parses a finite decimal coordinate. Hex floats, digit
// separators, NaN and infinities are rejected.
func parseCoord(tok string) (float64, error) {
	if strings.ContainsAny(tok, "xXpP_") {
		return 0, errNotDecimal
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotDecimal
	}
	return f, nil
}

func parseFace(line string, b *Builder) error {
	fields := strings.Fields(line[2:])
	indices := make([]int, len(fields))
	for i, tok := range fields {
		head, _, _ := strings.Cut(tok, "/")
		idx, err := strconv.Atoi(head)
		if err != nil {
			return fmt.Errorf("%w: face index %q: %w", ErrInvalidGeometry, tok, err)
		}
		indices[i] = idx - 1
	}

	if err := b.AddFace(indices...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}
	return nil
}

// ReadOBJ parses a whole OBJ stream into a new builder.
func ReadOBJ(r io.Reader, name string) (*Builder, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(name)
	if err := ParseRange(lines, b, 0, len(lines)-1); err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}
	return b, nil
}

// LoadOBJ loads an OBJ file into a new builder.
func LoadOBJ(path string) (*Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ReadOBJ(f, filepath.Base(path))
}
