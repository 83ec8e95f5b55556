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

// NotID represents an identifier that doesn't exist.
const NotID = -1

// Indexer manages the map between raw string identifiers and dense indices.
// The dense index is the internal user or item index optimized for faster
// access and less memory usage. Frequencies of identifiers are counted as a
// side effect of insertion.
type Indexer struct {
	indices map[string]int
	ids     []string
	counts  []int
}

// NewIndexer creates an empty Indexer.
func NewIndexer() *Indexer {
	return &Indexer{
		indices: make(map[string]int),
		ids:     make([]string, 0),
		counts:  make([]int, 0),
	}
}

// Len returns the number of distinct identifiers.
func (idx *Indexer) Len() int {
	return len(idx.ids)
}

// Add returns the dense index of an identifier, inserting it if unseen, and
// increments its frequency.
func (idx *Indexer) Add(id string) int {
	if index, exist := idx.indices[id]; exist {
		idx.counts[index]++
		return index
	}
	index := len(idx.ids)
	idx.indices[id] = index
	idx.ids = append(idx.ids, id)
	idx.counts = append(idx.counts, 1)
	return index
}

// Index returns the dense index of an identifier, or NotID if unseen. The
// frequency is not touched.
func (idx *Indexer) Index(id string) int {
	if index, exist := idx.indices[id]; exist {
		return index
	}
	return NotID
}

// ID returns the raw identifier of a dense index.
func (idx *Indexer) ID(index int) (string, bool) {
	if index < 0 || index >= len(idx.ids) {
		return "", false
	}
	return idx.ids[index], true
}

// Freq returns the number of times an identifier has been added.
func (idx *Indexer) Freq(index int) int {
	if index < 0 || index >= len(idx.counts) {
		return 0
	}
	return idx.counts[index]
}
