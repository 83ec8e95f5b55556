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
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastekit/taste/dataset"
)

func newTestKNN(t *testing.T, fit func(*dataset.Matrix) (*SimilarityMatrix, error)) (*dataset.Dataset, *KNN) {
	t.Helper()
	d, m := newTestMatrix()
	s, err := fit(m)
	require.NoError(t, err)
	return d, NewKNN(m, s, d.UserIndex, d.ItemIndex)
}

func fitCosine(m *dataset.Matrix) (*SimilarityMatrix, error) {
	return FitCosine(context.Background(), m, 1)
}

func fitCooccurrence(m *dataset.Matrix) (*SimilarityMatrix, error) {
	return FitCooccurrence(context.Background(), m, 1)
}

func TestKNN_Recommend(t *testing.T) {
	_, knn := newTestKNN(t, fitCosine)
	recommended, err := knn.Recommend("u1", 2)
	require.NoError(t, err)
	// owned items are never recommended
	assert.NotContains(t, recommended, "i1")
	assert.NotContains(t, recommended, "i2")
	assert.ElementsMatch(t, []string{"i3", "i4"}, recommended)
}

func TestKNN_OwnedExclusion(t *testing.T) {
	for _, fit := range []func(*dataset.Matrix) (*SimilarityMatrix, error){fitCosine, fitCooccurrence} {
		d, knn := newTestKNN(t, fit)
		for u := 0; u < d.CountUsers(); u++ {
			basket := knn.Basket(u)
			for _, itemIndex := range knn.RecommendIndex(u, d.CountItems()) {
				assert.NotContains(t, basket.Indices, itemIndex)
			}
		}
	}
}

func TestKNN_ResultSize(t *testing.T) {
	// the result holds min(k, items with positive post-mask score) entries
	_, knn := newTestKNN(t, fitCosine)
	assert.Len(t, knn.RecommendIndex(0, 1), 1)
	// u1 has only two unseen items with positive scores; never padded
	assert.Len(t, knn.RecommendIndex(0, 3), 2)
}

func TestKNN_UnknownUser(t *testing.T) {
	_, knn := newTestKNN(t, fitCosine)
	_, err := knn.Recommend("nobody", 2)
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.ErrorContains(t, err, "nobody")
}

func TestKNN_EmptyBasket(t *testing.T) {
	d, _ := newTestMatrix()
	d.UserIndex.Add("u4")
	m := d.Build()
	s, err := fitCosine(m)
	require.NoError(t, err)
	knn := NewKNN(m, s, d.UserIndex, d.ItemIndex)
	recommended, err := knn.Recommend("u4", 2)
	require.NoError(t, err)
	assert.Empty(t, recommended)
}

func TestKNN_KExceedsItems(t *testing.T) {
	_, knn := newTestKNN(t, fitCooccurrence)
	recommended, err := knn.Recommend("u2", 100)
	require.NoError(t, err)
	// capped at m-1, further truncated by the positive-score rule
	assert.LessOrEqual(t, len(recommended), 3)
	assert.NotContains(t, recommended, "i1")
	assert.NotContains(t, recommended, "i3")
}

func TestKNN_Deterministic(t *testing.T) {
	// co-occurrence counts tie often; ranking stays stable across calls
	_, knn := newTestKNN(t, fitCooccurrence)
	first := knn.RecommendIndex(0, 2)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, knn.RecommendIndex(0, 2))
	}
}
