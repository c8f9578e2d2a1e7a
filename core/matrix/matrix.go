package matrix

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrShape is returned when a matrix is empty or ragged.
var ErrShape = errors.New("matrix: invalid shape")

// Copy returns a deep copy of m.
func Copy(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// CopyVec returns a copy of v.
func CopyVec(v []float64) []float64 {
	return append([]float64(nil), v...)
}

// Zeros allocates an m×n zero matrix.
func Zeros(m, n int) [][]float64 {
	out := make([][]float64, m)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}

// Bools allocates an m×n false mask.
func Bools(m, n int) [][]bool {
	out := make([][]bool, m)
	for i := range out {
		out[i] = make([]bool, n)
	}
	return out
}

// Shape returns the dimensions of m, failing when m is empty or ragged.
func Shape(m [][]float64) (int, int, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, 0, ErrShape
	}
	n := len(m[0])
	for _, row := range m {
		if len(row) != n {
			return 0, 0, ErrShape
		}
	}
	return len(m), n, nil
}

// Sum returns the sum of v.
func Sum(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Sum(v)
}

// RowSums returns the sum of each row of m.
func RowSums(m [][]float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		out[i] = Sum(row)
	}
	return out
}

// ColSums returns the sum of each column of m. Short rows contribute zero.
func ColSums(m [][]float64) []float64 {
	n := 0
	for _, row := range m {
		if len(row) > n {
			n = len(row)
		}
	}
	out := make([]float64, n)
	for _, row := range m {
		for j, v := range row {
			out[j] += v
		}
	}
	return out
}

// CountPositive returns the number of cells strictly greater than zero.
func CountPositive(m [][]float64) int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v > 0 {
				n++
			}
		}
	}
	return n
}

// ArgMin scans m in row-major order and returns the cell with the smallest
// value among those accepted by eligible. ok is false when no cell qualifies.
func ArgMin(m [][]float64, eligible func(i, j int) bool) (int, int, bool) {
	best := math.Inf(1)
	bi, bj := -1, -1
	for i, row := range m {
		for j, v := range row {
			if !eligible(i, j) {
				continue
			}
			if bi < 0 || v < best {
				best, bi, bj = v, i, j
			}
		}
	}
	return bi, bj, bi >= 0
}

// ArgMinRow returns the column of the smallest value in row i, skipping
// columns flagged in excluded. It returns -1 when every column is excluded.
func ArgMinRow(m [][]float64, i int, excluded []bool) int {
	best := math.Inf(1)
	idx := -1
	for j, v := range m[i] {
		if excluded[j] {
			continue
		}
		if idx < 0 || v < best {
			best, idx = v, j
		}
	}
	return idx
}

// ArgMinCol returns the row of the smallest value in column j, skipping rows
// flagged in excluded. It returns -1 when every row is excluded.
func ArgMinCol(m [][]float64, j int, excluded []bool) int {
	best := math.Inf(1)
	idx := -1
	for i := range m {
		if excluded[i] {
			continue
		}
		if idx < 0 || m[i][j] < best {
			best, idx = m[i][j], i
		}
	}
	return idx
}

// TwoSmallest returns the smallest and second smallest values of v and how
// many values were inspected, capped at two.
func TwoSmallest(v []float64) (first, second float64, n int) {
	first, second = math.Inf(1), math.Inf(1)
	for _, x := range v {
		switch {
		case n == 0 || x < first:
			second = first
			first = x
		case x < second:
			second = x
		}
		if n < 2 {
			n++
		}
	}
	return first, second, n
}

// AllTrue reports whether every element of mask is set.
func AllTrue(mask []bool) bool {
	for _, b := range mask {
		if !b {
			return false
		}
	}
	return true
}
