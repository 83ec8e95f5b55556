// Copyright 2025 taste Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"github.com/tastekit/taste/base"
)

// Matrix is the sparse user-item interaction matrix. Each row holds a user's
// play counts normalized to unit Euclidean norm; the column view exposes the
// same values sliced per item. Built once per dataset, immutable thereafter.
type Matrix struct {
	rows []*base.SparseVector
	cols []*base.SparseVector
}

// Build constructs the interaction matrix from a dataset. Duplicate user-item
// records are accumulated before normalization. Users without feedback leave
// implicitly zero rows; a user with a single interaction normalizes to exactly
// 1.0 for that entry.
func (d *Dataset) Build() *Matrix {
	m := &Matrix{
		rows: base.NewSparseVectors(d.CountUsers()),
		cols: base.NewSparseVectors(d.CountItems()),
	}
	for userIndex := range d.userFeedback {
		feedback := d.userFeedback[userIndex]
		if feedback.Len() == 0 {
			continue
		}
		// accumulate raw counts per item
		feedback.SortIndex()
		row := base.NewSparseVector()
		for i, itemIndex := range feedback.Indices {
			if n := row.Len(); n > 0 && row.Indices[n-1] == itemIndex {
				row.Values[n-1] += feedback.Values[i]
			} else {
				row.Add(itemIndex, feedback.Values[i])
			}
		}
		// normalize the row to unit Euclidean norm
		norm := row.Norm()
		if norm == 0 {
			continue
		}
		for i, itemIndex := range row.Indices {
			value := row.Values[i] / norm
			m.rows[userIndex].Add(itemIndex, value)
			m.cols[itemIndex].Add(userIndex, value)
		}
	}
	// rows and columns are emitted in index order; mark them sorted so that
	// concurrent readers never trigger a lazy sort
	for _, row := range m.rows {
		row.SortIndex()
	}
	for _, col := range m.cols {
		col.SortIndex()
	}
	return m
}

// Users returns the number of rows.
func (m *Matrix) Users() int {
	return len(m.rows)
}

// Items returns the number of columns.
func (m *Matrix) Items() int {
	return len(m.cols)
}

// Row returns a user's normalized interaction vector. The returned vector is
// shared and must not be mutated.
func (m *Matrix) Row(userIndex int) *base.SparseVector {
	return m.rows[userIndex]
}

// Col returns an item's normalized interaction vector across users. The
// returned vector is shared and must not be mutated.
func (m *Matrix) Col(itemIndex int) *base.SparseVector {
	return m.cols[itemIndex]
}
