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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseVector(t *testing.T) {
	vec := NewSparseVector()
	vec.Add(7, 1)
	vec.Add(2, 3)
	vec.Add(5, 2)
	assert.Equal(t, 3, vec.Len())
	vec.SortIndex()
	assert.Equal(t, []int{2, 5, 7}, vec.Indices)
	assert.Equal(t, []float64{3, 2, 1}, vec.Values)
}

func TestSparseVector_ForIntersection(t *testing.T) {
	a := NewSparseVector()
	a.Add(0, 1)
	a.Add(2, 2)
	a.Add(4, 3)
	b := NewSparseVector()
	b.Add(4, 2)
	b.Add(1, 1)
	b.Add(2, 3)
	var indices []int
	a.ForIntersection(b, func(index int, x, y float64) {
		indices = append(indices, index)
	})
	assert.Equal(t, []int{2, 4}, indices)
	assert.Equal(t, 2*3+3*2.0, a.Dot(b))
}

func TestSparseVector_Norm(t *testing.T) {
	vec := NewSparseVector()
	vec.Add(0, 3)
	vec.Add(9, 4)
	assert.InDelta(t, 5.0, vec.Norm(), 1e-9)
	assert.Zero(t, NewSparseVector().Norm())
}

func TestNewSparseVectors(t *testing.T) {
	vectors := NewSparseVectors(3)
	assert.Len(t, vectors, 3)
	for _, vec := range vectors {
		assert.Zero(t, vec.Len())
	}
}
