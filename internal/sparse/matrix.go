package sparse

import (
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Coordinate addresses a matrix element.
type Coordinate struct {
	Row Index
	Col Index
}

// Matrix is a growable square sparse matrix.
//
// Elements are stored per row; a roaring bitmap per column records the rows
// populated in that column so that whole columns can be cleared without a
// scan over every row. Both directories have one slot per dimension unit and
// are allocated lazily per row/column.
type Matrix[T Scalar] struct {
	rows  []map[Index]T
	cols  []*roaring.Bitmap
	nvals int

	opts    options
	charged int64
}

// NewMatrix creates a dim x dim matrix.
func NewMatrix[T Scalar](dim int, opts ...Option) (*Matrix[T], error) {
	if err := checkDimension(dim); err != nil {
		return nil, err
	}
	m := &Matrix[T]{opts: applyOptions(opts)}
	if err := m.Resize(dim); err != nil {
		return nil, err
	}
	return m, nil
}

// Dimension returns the number of rows (and columns).
func (m *Matrix[T]) Dimension() int { return len(m.rows) }

// Cardinality returns the number of populated elements.
func (m *Matrix[T]) Cardinality() int { return m.nvals }

func directorySlotSize[T Scalar]() uintptr {
	return sizeOf[map[Index]T]() + sizeOf[*roaring.Bitmap]()
}

// Resize grows the matrix to newDim x newDim. Resizing to a dimension at or
// below the current one is a no-op, which makes Resize idempotent.
func (m *Matrix[T]) Resize(newDim int) error {
	if err := checkDimension(newDim); err != nil {
		return err
	}
	if newDim <= len(m.rows) {
		return nil
	}
	bytes, err := m.opts.charge(len(m.rows), newDim, directorySlotSize[T]())
	if err != nil {
		return err
	}
	m.charged += bytes

	m.rows = slices.Grow(m.rows, newDim-len(m.rows))[:newDim]
	m.cols = slices.Grow(m.cols, newDim-len(m.cols))[:newDim]
	return nil
}

func (m *Matrix[T]) inBounds(i, j Index) bool {
	return int(i) < len(m.rows) && int(j) < len(m.rows)
}

// Set stores value at (i, j), overwriting any previous element.
func (m *Matrix[T]) Set(i, j Index, value T) error {
	if !m.inBounds(i, j) {
		return ErrIndexOutOfBounds
	}
	row := m.rows[i]
	if row == nil {
		row = make(map[Index]T)
		m.rows[i] = row
	}
	if _, ok := row[j]; !ok {
		m.nvals++
		col := m.cols[j]
		if col == nil {
			col = roaring.New()
			m.cols[j] = col
		}
		col.Add(i)
	}
	row[j] = value
	return nil
}

// Get returns the element at (i, j) and whether it is populated.
func (m *Matrix[T]) Get(i, j Index) (T, bool) {
	if !m.inBounds(i, j) {
		var zero T
		return zero, false
	}
	v, ok := m.rows[i][j]
	return v, ok
}

// Remove clears the element at (i, j) and reports whether it was populated.
func (m *Matrix[T]) Remove(i, j Index) bool {
	if !m.inBounds(i, j) {
		return false
	}
	row := m.rows[i]
	if _, ok := row[j]; !ok {
		return false
	}
	delete(row, j)
	if len(row) == 0 {
		m.rows[i] = nil
	}
	m.dropFromColumn(j, i)
	m.nvals--
	return true
}

func (m *Matrix[T]) dropFromColumn(j, i Index) {
	col := m.cols[j]
	col.Remove(i)
	if col.IsEmpty() {
		m.cols[j] = nil
	}
}

// ClearRow removes every element of row i and returns how many were removed.
func (m *Matrix[T]) ClearRow(i Index) int {
	if int(i) >= len(m.rows) {
		return 0
	}
	row := m.rows[i]
	for j := range row {
		m.dropFromColumn(j, i)
	}
	m.rows[i] = nil
	m.nvals -= len(row)
	return len(row)
}

// ClearColumn removes every element of column j and returns how many were
// removed.
func (m *Matrix[T]) ClearColumn(j Index) int {
	if int(j) >= len(m.cols) || m.cols[j] == nil {
		return 0
	}
	col := m.cols[j]
	n := 0
	it := col.Iterator()
	for it.HasNext() {
		i := it.Next()
		row := m.rows[i]
		delete(row, j)
		if len(row) == 0 {
			m.rows[i] = nil
		}
		n++
	}
	m.cols[j] = nil
	m.nvals -= n
	return n
}

// OutDegree returns the number of elements in row i.
func (m *Matrix[T]) OutDegree(i Index) int {
	if int(i) >= len(m.rows) {
		return 0
	}
	return len(m.rows[i])
}

// InDegree returns the number of elements in column j.
func (m *Matrix[T]) InDegree(j Index) int {
	if int(j) >= len(m.cols) || m.cols[j] == nil {
		return 0
	}
	return int(m.cols[j].GetCardinality())
}

// Row iterates over row i in ascending column order.
func (m *Matrix[T]) Row(i Index) iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		if int(i) >= len(m.rows) {
			return
		}
		row := m.rows[i]
		for _, j := range slices.Sorted(maps.Keys(row)) {
			if !yield(j, row[j]) {
				return
			}
		}
	}
}

// Column iterates over column j in ascending row order.
func (m *Matrix[T]) Column(j Index) iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		if int(j) >= len(m.cols) || m.cols[j] == nil {
			return
		}
		it := m.cols[j].Iterator()
		for it.HasNext() {
			i := it.Next()
			if !yield(i, m.rows[i][j]) {
				return
			}
		}
	}
}

// All iterates over every element in row-major order.
func (m *Matrix[T]) All() iter.Seq2[Coordinate, T] {
	return func(yield func(Coordinate, T) bool) {
		for i, row := range m.rows {
			if len(row) == 0 {
				continue
			}
			for _, j := range slices.Sorted(maps.Keys(row)) {
				if !yield(Coordinate{Row: Index(i), Col: j}, row[j]) {
					return
				}
			}
		}
	}
}

// Free drops the storage and releases the acquired memory.
// The matrix must not be used afterwards.
func (m *Matrix[T]) Free() {
	m.opts.release(m.charged)
	m.charged = 0
	m.rows = nil
	m.cols = nil
	m.nvals = 0
}
