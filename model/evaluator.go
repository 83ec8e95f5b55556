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

	"github.com/tastekit/taste/base"
	"github.com/tastekit/taste/dataset"
)

// Jaccard returns the intersection-over-union similarity of two sets. Two
// empty sets have an empty union; the ratio is defined as zero rather than
// left undefined, so absent recommendations earn no credit.
func Jaccard[T comparable](a, b mapset.Set[T]) float64 {
	union := a.Union(b).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(a.Intersect(b).Cardinality()) / float64(union)
}

// Recommender produces top-k item indices for a user index.
type Recommender interface {
	RecommendIndex(userIndex, k int) []int
}

// EvaluateJaccard returns the mean Jaccard index between each user's top-k
// recommendations and their held-out ground truth. Users without held-out
// feedback are skipped.
func EvaluateJaccard(rec Recommender, heldOut *dataset.Dataset, k int) float64 {
	sum, count := 0.0, 0.0
	for userIndex := 0; userIndex < heldOut.CountUsers(); userIndex++ {
		truth := heldOut.ItemSet(userIndex)
		if truth.Cardinality() == 0 {
			continue
		}
		recommended := mapset.NewSet(rec.RecommendIndex(userIndex, k)...)
		sum += Jaccard(recommended, truth)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// RandomBaseline returns the mean Jaccard index of recommending k items drawn
// uniformly without replacement from the full item universe, independently
// per user. It measures the score attainable by chance.
func RandomBaseline(rng base.RandomGenerator, heldOut *dataset.Dataset, items, k int) float64 {
	sum, count := 0.0, 0.0
	for userIndex := 0; userIndex < heldOut.CountUsers(); userIndex++ {
		truth := heldOut.ItemSet(userIndex)
		if truth.Cardinality() == 0 {
			continue
		}
		sampled := mapset.NewSet(rng.Sample(0, items, k)...)
		sum += Jaccard(sampled, truth)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / count
}

// Report aggregates the evaluation of both similarity variants against the
// random baseline.
type Report struct {
	Cosine           float64
	Cooccurrence     float64
	Random           float64
	CosineLift       float64
	CooccurrenceLift float64
}

// NewReport computes lift ratios over the random baseline. A zero baseline
// yields zero lifts instead of dividing by zero.
func NewReport(cosine, cooccurrence, random float64) Report {
	r := Report{
		Cosine:       cosine,
		Cooccurrence: cooccurrence,
		Random:       random,
	}
	if random > 0 {
		r.CosineLift = cosine / random
		r.CooccurrenceLift = cooccurrence / random
	}
	return r
}
