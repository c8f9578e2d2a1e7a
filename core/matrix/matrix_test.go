package matrix

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopyIsDeep(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	dst := Copy(src)
	dst[0][0] = 42
	assert.Equal(t, 1.0, src[0][0])
	assert.Nil(t, Copy(nil))
}

func TestShape(t *testing.T) {
	m, n, err := Shape([][]float64{{1, 2, 3}, {4, 5, 6}})
	assert.NoError(t, err)
	assert.Equal(t, 2, m)
	assert.Equal(t, 3, n)

	_, _, err = Shape([][]float64{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrShape))
	_, _, err = Shape(nil)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestSums(t *testing.T) {
	m := [][]float64{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, []float64{6, 15}, RowSums(m))
	assert.Equal(t, []float64{5, 7, 9}, ColSums(m))
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 3, CountPositive([][]float64{{0, 1}, {2, 3}}))
}

func TestArgMinFirstOccurrenceWins(t *testing.T) {
	m := [][]float64{
		{5, 2, 9},
		{2, 7, 2},
	}
	i, j, ok := ArgMin(m, func(int, int) bool { return true })
	assert.True(t, ok)
	assert.Equal(t, [2]int{0, 1}, [2]int{i, j})

	i, j, ok = ArgMin(m, func(i, _ int) bool { return i == 1 })
	assert.True(t, ok)
	assert.Equal(t, [2]int{1, 0}, [2]int{i, j})

	_, _, ok = ArgMin(m, func(int, int) bool { return false })
	assert.False(t, ok)
}

func TestArgMinAcceptsInfinity(t *testing.T) {
	m := [][]float64{{math.Inf(1), math.Inf(1)}}
	i, j, ok := ArgMin(m, func(int, int) bool { return true })
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, j)
}

func TestArgMinRowCol(t *testing.T) {
	m := [][]float64{
		{3, 1, 1},
		{0, 4, 1},
	}
	assert.Equal(t, 1, ArgMinRow(m, 0, []bool{false, false, false}))
	assert.Equal(t, 2, ArgMinRow(m, 0, []bool{false, true, false}))
	assert.Equal(t, -1, ArgMinRow(m, 0, []bool{true, true, true}))
	assert.Equal(t, 1, ArgMinCol(m, 0, []bool{false, false}))
	assert.Equal(t, 0, ArgMinCol(m, 2, []bool{false, false}))
	assert.Equal(t, 0, ArgMinCol(m, 0, []bool{false, true}))
}

func TestTwoSmallest(t *testing.T) {
	a, b, n := TwoSmallest([]float64{8, 6, 10, 9})
	assert.Equal(t, 6.0, a)
	assert.Equal(t, 8.0, b)
	assert.Equal(t, 2, n)

	a, _, n = TwoSmallest([]float64{7})
	assert.Equal(t, 7.0, a)
	assert.Equal(t, 1, n)

	a, b, n = TwoSmallest([]float64{3, 3})
	assert.Equal(t, 3.0, a)
	assert.Equal(t, 3.0, b)
	assert.Equal(t, 2, n)

	_, _, n = TwoSmallest(nil)
	assert.Equal(t, 0, n)
}

func TestAllTrue(t *testing.T) {
	assert.True(t, AllTrue(nil))
	assert.True(t, AllTrue([]bool{true, true}))
	assert.False(t, AllTrue([]bool{true, false}))
}
