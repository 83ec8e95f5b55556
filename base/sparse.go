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

package base

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SparseVector stores the non-zero entries of a vector as parallel index and
// value slices. Entries are kept sorted by index lazily: Add clears the sorted
// flag and read methods that need ordering sort on demand.
type SparseVector struct {
	Indices []int
	Values  []float64
	Sorted  bool
}

// NewSparseVector creates an empty SparseVector.
func NewSparseVector() *SparseVector {
	return &SparseVector{
		Indices: make([]int, 0),
		Values:  make([]float64, 0),
	}
}

// NewSparseVectors creates an array of n empty SparseVectors.
func NewSparseVectors(n int) []*SparseVector {
	vectors := make([]*SparseVector, n)
	for i := range vectors {
		vectors[i] = NewSparseVector()
	}
	return vectors
}

// Add appends a non-zero entry.
func (vec *SparseVector) Add(index int, value float64) {
	vec.Indices = append(vec.Indices, index)
	vec.Values = append(vec.Values, value)
	vec.Sorted = false
}

// Len returns the number of stored entries.
func (vec *SparseVector) Len() int {
	return len(vec.Values)
}

// Less returns true if the index of the i-th entry is less than the index of
// the j-th entry. It is a method of sort.Interface.
func (vec *SparseVector) Less(i, j int) bool {
	return vec.Indices[i] < vec.Indices[j]
}

// Swap two entries. It is a method of sort.Interface.
func (vec *SparseVector) Swap(i, j int) {
	vec.Indices[i], vec.Indices[j] = vec.Indices[j], vec.Indices[i]
	vec.Values[i], vec.Values[j] = vec.Values[j], vec.Values[i]
}

// ForEach iterates over stored entries in index order.
func (vec *SparseVector) ForEach(f func(i, index int, value float64)) {
	vec.SortIndex()
	for i := range vec.Indices {
		f(i, vec.Indices[i], vec.Values[i])
	}
}

// SortIndex sorts entries by index.
func (vec *SparseVector) SortIndex() {
	if !vec.Sorted {
		sort.Sort(vec)
		vec.Sorted = true
	}
}

// Norm returns the Euclidean norm of the vector.
func (vec *SparseVector) Norm() float64 {
	return floats.Norm(vec.Values, 2)
}

// ForIntersection iterates over entries sharing an index between two vectors.
// Both vectors are sorted by index first, then common indices are found in
// linear time.
func (vec *SparseVector) ForIntersection(other *SparseVector, f func(index int, a, b float64)) {
	vec.SortIndex()
	other.SortIndex()
	i, j := 0, 0
	for i < vec.Len() && j < other.Len() {
		if vec.Indices[i] == other.Indices[j] {
			f(vec.Indices[i], vec.Values[i], other.Values[j])
			i++
			j++
		} else if vec.Indices[i] < other.Indices[j] {
			i++
		} else {
			j++
		}
	}
}

// Dot returns the inner product of two sparse vectors.
func (vec *SparseVector) Dot(other *SparseVector) float64 {
	sum := 0.0
	vec.ForIntersection(other, func(_ int, a, b float64) {
		sum += a * b
	})
	return sum
}
