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
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"modernc.org/mathutil"

	"github.com/tastekit/taste/base"
	"github.com/tastekit/taste/base/heap"
	"github.com/tastekit/taste/dataset"
)

// KNN recommends the unseen items most similar to a user's own items. It
// scores items as M·u where M is an item-item similarity matrix and u the
// user's normalized interaction row; the suppressed diagonal of M guarantees
// an item never boosts its own score. Both inputs are treated as immutable,
// so a single KNN is safe for concurrent recommendation requests.
type KNN struct {
	matrix    *dataset.Matrix
	sim       *SimilarityMatrix
	userIndex *dataset.Indexer
	itemIndex *dataset.Indexer
}

// NewKNN creates a KNN recommender over an interaction matrix and a fitted
// similarity matrix of either variant.
func NewKNN(matrix *dataset.Matrix, sim *SimilarityMatrix, userIndex, itemIndex *dataset.Indexer) *KNN {
	return &KNN{
		matrix:    matrix,
		sim:       sim,
		userIndex: userIndex,
		itemIndex: itemIndex,
	}
}

// RecommendIndex returns up to k item indices with the highest scores,
// excluding items the user already interacted with. Only items with strictly
// positive scores are returned: the result is min(k, positive scores) long,
// never padded. Ties keep the lower item index. A user with an empty basket
// gets an empty result.
func (knn *KNN) RecommendIndex(userIndex, k int) []int {
	if k > knn.matrix.Items()-1 {
		k = knn.matrix.Items() - 1
	}
	if k < 1 {
		return nil
	}
	basket := knn.matrix.Row(userIndex)
	if basket.Len() == 0 {
		return nil
	}
	owned := mapset.NewThreadUnsafeSet(basket.Indices...)
	// score items by walking similarity rows of basket items
	scores := make(map[int]float64)
	basket.ForEach(func(_, itemIndex int, weight float64) {
		knn.sim.Row(itemIndex).ForEach(func(_, candidate int, similarity float64) {
			if !owned.Contains(candidate) {
				scores[candidate] += similarity * weight
			}
		})
	})
	topK := heap.NewTopK[int, float64](k)
	for candidate, score := range scores {
		if score > 0 {
			topK.Add(candidate, score)
		}
	}
	recommended, _ := topK.ToSorted()
	return recommended
}

// Recommend resolves a raw user identifier and returns the identifiers of the
// top-k recommended items. Unknown users yield a not-found error carrying the
// offending identifier.
func (knn *KNN) Recommend(userID string, k int) ([]string, error) {
	userIndex := knn.userIndex.Index(userID)
	if userIndex == dataset.NotID {
		return nil, errors.NotFoundf("user %q", userID)
	}
	if k < 1 {
		return nil, errors.NotValidf("k = %d", k)
	}
	k = mathutil.Min(k, knn.matrix.Items()-1)
	recommended := knn.RecommendIndex(userIndex, k)
	return lo.Map(recommended, func(itemIndex int, _ int) string {
		itemID, _ := knn.itemIndex.ID(itemIndex)
		return itemID
	}), nil
}

// Basket returns the user's interaction row. Exposed for evaluation.
func (knn *KNN) Basket(userIndex int) *base.SparseVector {
	return knn.matrix.Row(userIndex)
}
