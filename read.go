package ilu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadProblem reads a matrix file in the Sparse test format:
//
//	[Starting ...]                  optional banner
//	description
//	size [real]
//	row col value                   1-based, repeated entries are summed
//	0 0 0                           end of matrix
//	[Beginning ...]                 optional banner
//	value                           one right-hand side entry per line
//
// A missing right-hand side reads as zeros.
func ReadProblem(r io.Reader) (*Problem, error) {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	scan := func() bool {
		lineNumber++
		return scanner.Scan()
	}

	if !scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		return nil, fmt.Errorf("empty file: %w", ErrSyntax)
	}
	line := strings.TrimSpace(scanner.Text())
	if strings.HasPrefix(line, "Starting") {
		if strings.HasPrefix(line, "Starting complex") {
			return nil, ErrComplexUnsupported
		}
		if !scan() {
			return nil, fmt.Errorf("missing description: %w", ErrSyntax)
		}
	}
	problem := &Problem{Description: strings.TrimSpace(scanner.Text())}

	if !scan() {
		return nil, fmt.Errorf("missing size information: %w", ErrSyntax)
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 1 {
		return nil, fmt.Errorf("line %d: invalid size line: %w", lineNumber, ErrSyntax)
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid size value %q: %w", lineNumber, fields[0], ErrSyntax)
	}
	if len(fields) > 1 && strings.ToLower(fields[1]) == "complex" {
		return nil, ErrComplexUnsupported
	}

	builder, err := NewBuilder(size)
	if err != nil {
		return nil, err
	}

	matrixEnded := false
	var rhsValues []float64
	for scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		if !matrixEnded {
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: want row, column and value: %w", lineNumber, ErrSyntax)
			}
			row, err1 := strconv.Atoi(fields[0])
			col, err2 := strconv.Atoi(fields[1])
			value, err3 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: %q: %w", lineNumber, line, ErrSyntax)
			}
			if row == 0 && col == 0 {
				matrixEnded = true
				continue
			}
			if err := builder.Add(row-1, col-1, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			continue
		}

		if strings.HasPrefix(line, "Beginning") {
			continue
		}
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rhs value %q: %w", lineNumber, fields[0], ErrSyntax)
		}
		rhsValues = append(rhsValues, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if problem.Matrix, err = builder.Matrix(); err != nil {
		return nil, err
	}
	problem.RHS = make([]float64, size)
	copy(problem.RHS, rhsValues)
	return problem, nil
}
