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

package heap

import (
	"container/heap"
	"sort"

	"golang.org/x/exp/constraints"
)

// Elem is a weighted element.
type Elem[E constraints.Ordered, W constraints.Ordered] struct {
	Value  E
	Weight W
}

// TopK keeps the k elements with the largest weights seen so far. A bounded
// heap is used to reduce time and memory complexity in top-k searching. Ties
// on weight are broken deterministically: the smaller value wins.
type TopK[E constraints.Ordered, W constraints.Ordered] struct {
	elems []Elem[E, W]
	k     int
}

// NewTopK creates a TopK retaining at most k elements.
func NewTopK[E constraints.Ordered, W constraints.Ordered](k int) *TopK[E, W] {
	return &TopK[E, W]{
		elems: make([]Elem[E, W], 0, k+1),
		k:     k,
	}
}

// Len returns the number of retained elements. It is a method of heap.Interface.
func (t *TopK[E, W]) Len() int {
	return len(t.elems)
}

// Less orders the weakest element first: smallest weight, and on equal
// weights the largest value. It is a method of heap.Interface.
func (t *TopK[E, W]) Less(i, j int) bool {
	if t.elems[i].Weight != t.elems[j].Weight {
		return t.elems[i].Weight < t.elems[j].Weight
	}
	return t.elems[i].Value > t.elems[j].Value
}

// Swap two elements. It is a method of heap.Interface.
func (t *TopK[E, W]) Swap(i, j int) {
	t.elems[i], t.elems[j] = t.elems[j], t.elems[i]
}

// Push appends an element. It is a method of heap.Interface.
func (t *TopK[E, W]) Push(x interface{}) {
	t.elems = append(t.elems, x.(Elem[E, W]))
}

// Pop removes the weakest element. It is a method of heap.Interface.
func (t *TopK[E, W]) Pop() interface{} {
	old := t.elems
	item := old[len(old)-1]
	t.elems = old[:len(old)-1]
	return item
}

// Add offers an element to the heap. The weakest element is evicted once more
// than k elements are retained.
func (t *TopK[E, W]) Add(value E, weight W) {
	heap.Push(t, Elem[E, W]{Value: value, Weight: weight})
	if t.Len() > t.k {
		heap.Pop(t)
	}
}

// ToSorted returns retained elements ordered by descending weight, breaking
// ties by ascending value.
func (t *TopK[E, W]) ToSorted() ([]E, []W) {
	elems := make([]Elem[E, W], len(t.elems))
	copy(elems, t.elems)
	sort.Slice(elems, func(i, j int) bool {
		if elems[i].Weight != elems[j].Weight {
			return elems[i].Weight > elems[j].Weight
		}
		return elems[i].Value < elems[j].Value
	})
	values := make([]E, len(elems))
	weights := make([]W, len(elems))
	for i, elem := range elems {
		values[i] = elem.Value
		weights[i] = elem.Weight
	}
	return values, weights
}
