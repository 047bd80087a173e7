package stats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// SortingPolicy controls whether ingested values are sorted.
type SortingPolicy int

const (
	// Sorted sorts values ascending. Percentile slicing and the median
	// depend on it.
	Sorted SortingPolicy = iota
	// Unsorted keeps input order. Only count, sum, mean, min, max and
	// stddev are meaningful over an unsorted series.
	Unsorted
)

// String returns the policy name.
func (p SortingPolicy) String() string {
	if p == Unsorted {
		return "unsorted"
	}
	return "sorted"
}

// Ingestion is the result of reading a series of values.
type Ingestion struct {
	// Values holds every line that parsed as a finite number.
	Values []float64
	// Lines is the number of lines read, blank lines included.
	Lines int
	// Skipped is the number of lines that did not parse.
	Skipped int
}

// Ingest reads one candidate value per line from r. Lines that are not
// finite decimal numbers are discarded and counted in Skipped. An error is
// returned only when reading from r fails, in which case no values are
// returned.
func Ingest(r io.Reader, policy SortingPolicy) (*Ingestion, error) {
	br := bufio.NewReader(r)
	in := &Ingestion{}

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			in.Lines++
			if v, ok := parseValue(line); ok {
				in.Values = append(in.Values, v)
			} else {
				in.Skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
	}

	if policy == Sorted {
		SortValues(in.Values)
	}
	return in, nil
}

// ReadValues is Ingest without the line accounting.
func ReadValues(r io.Reader, policy SortingPolicy) ([]float64, error) {
	in, err := Ingest(r, policy)
	if err != nil {
		return nil, err
	}
	return in.Values, nil
}

// SortValues sorts values ascending in place. Pairs that do not compare
// (NaN) are ordered as less rather than causing a panic.
func SortValues(values []float64) {
	slices.SortFunc(values, func(a, b float64) int {
		switch {
		case a > b:
			return 1
		case a == b:
			return 0
		default:
			return -1
		}
	})
}

func parseValue(line string) (float64, bool) {
	s := strings.TrimSpace(line)
	if s == "" || isHex(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isHex reports whether s has a 0x prefix after an optional sign.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
