// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsys implements sparse matrices, operators and linear solvers
package linsys

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
)

// Range defines the half-open interval [Lo, Hi) of (block) rows or columns
type Range struct {
	Lo, Hi int
}

// Len returns the number of items in range
func (o Range) Len() int { return o.Hi - o.Lo }

// Matrix is a CSR matrix whose sparsity pattern is fixed at allocation.
// Column indices of each row are sorted
type Matrix struct {
	*sparse.CSR
}

// Coupling tells whether dofs i and j may interact
type Coupling func(i, j int) bool

// NewMatrix allocates a square matrix with the pattern built from groups of dofs (e.g. cells).
// All pairs of dofs within a group are stored if couple(i, j) returns true; diagonal entries are always stored
func NewMatrix(n int, groups [][]int, couple Coupling) (o *Matrix) {
	rows := make([][]int, n)
	for i := 0; i < n; i++ {
		rows[i] = []int{i}
	}
	for _, g := range groups {
		for _, i := range g {
			for _, j := range g {
				if i != j && (couple == nil || couple(i, j)) {
					rows[i] = append(rows[i], j)
				}
			}
		}
	}
	ia := make([]int, n+1)
	var ja []int
	for i, cols := range rows {
		sort.Ints(cols)
		for k, j := range cols {
			if k == 0 || j != cols[k-1] {
				ja = append(ja, j)
			}
		}
		ia[i+1] = len(ja)
	}
	return &Matrix{sparse.NewCSR(n, n, ia, ja, make([]float64, len(ja)))}
}

// find returns the position of (i,j) in the raw data or -1 if not in pattern
func (o *Matrix) find(i, j int) int {
	raw := o.RawMatrix()
	lo, hi := raw.Indptr[i], raw.Indptr[i+1]
	k := lo + sort.SearchInts(raw.Ind[lo:hi], j)
	if k < hi && raw.Ind[k] == j {
		return k
	}
	return -1
}

// Add adds v to entry (i,j). Panics if (i,j) is not in pattern
func (o *Matrix) Add(i, j int, v float64) {
	k := o.find(i, j)
	if k < 0 {
		chk.Panic("entry (%d,%d) is not in sparsity pattern", i, j)
	}
	o.RawMatrix().Data[k] += v
}

// Set sets entry (i,j). Panics if (i,j) is not in pattern
func (o *Matrix) Set(i, j int, v float64) {
	k := o.find(i, j)
	if k < 0 {
		chk.Panic("entry (%d,%d) is not in sparsity pattern", i, j)
	}
	o.RawMatrix().Data[k] = v
}

// Zero sets all values to zero, keeping the pattern
func (o *Matrix) Zero() {
	data := o.RawMatrix().Data
	for k := range data {
		data[k] = 0
	}
}

// Apply computes y := A x
func (o *Matrix) Apply(y, x []float64) {
	for i := range y {
		y[i] = 0
	}
	o.MulVecTo(y, false, x)
}

// Diag returns a copy of the diagonal
func (o *Matrix) Diag() (d []float64) {
	m, n := o.Dims()
	if n < m {
		m = n
	}
	d = make([]float64, m)
	for i := 0; i < m; i++ {
		if k := o.find(i, i); k >= 0 {
			d[i] = o.RawMatrix().Data[k]
		}
	}
	return
}

// Extract returns a new matrix with the entries in rows × cols
func (o *Matrix) Extract(rows, cols Range) *Matrix {
	ia := make([]int, rows.Len()+1)
	var ja []int
	var data []float64
	for i := rows.Lo; i < rows.Hi; i++ {
		o.DoRowNonZero(i, func(_, j int, v float64) {
			if j >= cols.Lo && j < cols.Hi {
				ja = append(ja, j-cols.Lo)
				data = append(data, v)
			}
		})
		ia[i-rows.Lo+1] = len(ja)
	}
	return &Matrix{sparse.NewCSR(rows.Len(), cols.Len(), ia, ja, data)}
}

// Transpose returns a new matrix holding Aᵀ
func (o *Matrix) Transpose() *Matrix {
	m, n := o.Dims()
	rows := make([]int, 0, o.NNZ())
	cols := make([]int, 0, o.NNZ())
	data := make([]float64, 0, o.NNZ())
	o.DoNonZero(func(i, j int, v float64) {
		rows = append(rows, j)
		cols = append(cols, i)
		data = append(data, v)
	})
	return &Matrix{sparse.NewCOO(n, m, rows, cols, data).ToCSR()}
}

// ApplyDirichlet modifies the system A x = b such that x[i] = vals[i] for fixed[i].
// Entries of fixed columns are moved to the right-hand side of free rows; fixed rows and columns are
// zeroed and a non-zero diagonal entry is kept
func (o *Matrix) ApplyDirichlet(b []float64, fixed []bool, vals []float64) {
	raw := o.RawMatrix()
	m, _ := o.Dims()
	for i := 0; i < m; i++ {
		for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
			j := raw.Ind[k]
			switch {
			case fixed[i] && i == j:
				if raw.Data[k] == 0 {
					raw.Data[k] = 1
				}
				b[i] = raw.Data[k] * vals[i]
			case fixed[i]:
				raw.Data[k] = 0
			case fixed[j]:
				b[i] -= raw.Data[k] * vals[j]
				raw.Data[k] = 0
			}
		}
	}
}
