/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every entry in the table is either a single int32 or a pair (int32,int32).

Entries are stored in a hash map keyed by position, which keeps lookup
constant-time for the access patterns of table-driven parsers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
type IntMatrix struct {
	cells   map[position]intPair
	rowcnt  uint
	colcnt  uint
	nullval int32
}

type position struct {
	row, col uint
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n uint, nullValue int32) *IntMatrix {
	return &IntMatrix{
		cells:   make(map[position]intPair),
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() uint {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() uint {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.cells)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j uint) int32 {
	if pr, ok := m.cells[position{i, j}]; ok {
		return pr.a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or (NullValue, NullValue)
func (m *IntMatrix) Values(i, j uint) (int32, int32) {
	if pr, ok := m.cells[position{i, j}]; ok {
		return pr.a, pr.b
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), overwriting a possibly
// present value.
func (m *IntMatrix) Set(i, j uint, value int32) *IntMatrix {
	m.cells[position{i, j}] = intPair{value, m.nullval}
	return m
}

// Add a value in the matrix at position (i,j). If a value is already present,
// the new value is stored as the secondary entry of the pair. A full pair
// has its secondary entry overwritten.
func (m *IntMatrix) Add(i, j uint, value int32) *IntMatrix {
	at := position{i, j}
	pr, ok := m.cells[at]
	if !ok {
		m.cells[at] = intPair{value, m.nullval}
		return m
	}
	if pr.a == m.nullval {
		pr.a = value
	} else {
		pr.b = value
	}
	m.cells[at] = pr
	return m
}

// we will store 2 int32 in one position
type intPair struct {
	a int32
	b int32
}

func (pr intPair) String() string {
	return fmt.Sprintf("[%d,%d]", pr.a, pr.b)
}
