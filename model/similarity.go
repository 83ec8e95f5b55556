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

package model

import (
	"context"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/tastekit/taste/base"
	"github.com/tastekit/taste/base/parallel"
	"github.com/tastekit/taste/dataset"
)

// SimilarityMatrix is an item-item similarity matrix stored sparsely by row.
// The diagonal is suppressed at emission time and never stored: an item is not
// similar to itself for recommendation purposes. Zero similarities are not
// materialized.
type SimilarityMatrix struct {
	rows []*base.SparseVector
}

func newSimilarityMatrix(items int) *SimilarityMatrix {
	return &SimilarityMatrix{rows: base.NewSparseVectors(items)}
}

// sortRows marks rows sorted once fitting is done, so that later concurrent
// readers never trigger a lazy sort.
func (s *SimilarityMatrix) sortRows() {
	for _, row := range s.rows {
		row.SortIndex()
	}
}

// Items returns the number of rows (and columns).
func (s *SimilarityMatrix) Items() int {
	return len(s.rows)
}

// Row returns the similarities of an item to all other items. The returned
// vector is shared and must not be mutated.
func (s *SimilarityMatrix) Row(itemIndex int) *base.SparseVector {
	return s.rows[itemIndex]
}

// Get returns the similarity between two items, zero if not stored.
func (s *SimilarityMatrix) Get(i, j int) float64 {
	value := 0.0
	s.rows[i].ForEach(func(_, index int, v float64) {
		if index == j {
			value = v
		}
	})
	return value
}

// COO is the serializable coordinate form of a SimilarityMatrix, used to
// persist expensive similarity computations between runs.
type COO struct {
	Items  int
	Rows   []int
	Cols   []int
	Values []float64
}

// COO converts the matrix to coordinate form.
func (s *SimilarityMatrix) COO() *COO {
	coo := &COO{Items: s.Items()}
	for i, row := range s.rows {
		row.ForEach(func(_, j int, value float64) {
			coo.Rows = append(coo.Rows, i)
			coo.Cols = append(coo.Cols, j)
			coo.Values = append(coo.Values, value)
		})
	}
	return coo
}

// FromCOO rebuilds a SimilarityMatrix from coordinate form. Diagonal entries
// are suppressed, keeping the construction-time invariant of the fitters.
func FromCOO(coo *COO) (*SimilarityMatrix, error) {
	s := newSimilarityMatrix(coo.Items)
	for n := range coo.Rows {
		i, j := coo.Rows[n], coo.Cols[n]
		if i < 0 || i >= coo.Items || j < 0 || j >= coo.Items {
			return nil, errors.Errorf("entry (%d,%d) out of range for %d items", i, j, coo.Items)
		}
		if i == j {
			continue
		}
		s.rows[i].Add(j, coo.Values[n])
	}
	s.sortRows()
	return s, nil
}

// FitCosine computes the cosine similarity between every pair of item columns
// of the interaction matrix. Items without interactions have zero-norm
// columns and yield zero similarity to everything. Pairs are scanned in
// parallel over the outer item index; each worker writes a single row, so no
// locking is needed.
func FitCosine(ctx context.Context, m *dataset.Matrix, jobs int) (*SimilarityMatrix, error) {
	items := m.Items()
	// presort columns so that workers only read them
	norms := make([]float64, items)
	for i := 0; i < items; i++ {
		m.Col(i).SortIndex()
		norms[i] = m.Col(i).Norm()
	}
	s := newSimilarityMatrix(items)
	err := parallel.Parallel(ctx, items, jobs, func(_, i int) error {
		if norms[i] == 0 {
			return nil
		}
		for j := 0; j < items; j++ {
			if j == i || norms[j] == 0 {
				continue
			}
			if dot := m.Col(i).Dot(m.Col(j)); dot != 0 {
				s.rows[i].Add(j, dot/(norms[i]*norms[j]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	s.sortRows()
	return s, nil
}

// FitCooccurrence computes, for every pair of distinct items, the number of
// users who interacted with both. The value is the raw intersection count,
// deliberately not normalized into a conditional probability: dividing by a
// marginal popularity would change evaluation results. Each intersection
// iterates the smaller of the two user sets and tests membership in the
// larger, which minimizes membership tests.
//
// This is the dominant cost center of the pipeline: the scan is quadratic in
// the number of items, so it runs under a worker pool with per-row output
// and honors ctx cancellation.
func FitCooccurrence(ctx context.Context, m *dataset.Matrix, jobs int) (*SimilarityMatrix, error) {
	items := m.Items()
	userSets := make([]mapset.Set[int], items)
	for i := 0; i < items; i++ {
		userSets[i] = mapset.NewThreadUnsafeSet(m.Col(i).Indices...)
	}
	bar := progressbar.NewOptions(items,
		progressbar.OptionSetDescription("co-occurrence"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	s := newSimilarityMatrix(items)
	err := parallel.Parallel(ctx, items, jobs, func(_, i int) error {
		defer func() {
			_ = bar.Add(1)
		}()
		if userSets[i].Cardinality() == 0 {
			return nil
		}
		for j := 0; j < items; j++ {
			if j == i {
				continue
			}
			smaller, larger := userSets[i], userSets[j]
			if larger.Cardinality() < smaller.Cardinality() {
				smaller, larger = larger, smaller
			}
			count := 0
			smaller.Each(func(userIndex int) bool {
				if larger.Contains(userIndex) {
					count++
				}
				return false
			})
			if count > 0 {
				s.rows[i].Add(j, float64(count))
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	_ = bar.Finish()
	s.sortRows()
	return s, nil
}
