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
	"fmt"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"

	"github.com/tastekit/taste/base"
	"github.com/tastekit/taste/dataset"
)

func TestJaccard(t *testing.T) {
	a := mapset.NewSet(1, 2, 3)
	b := mapset.NewSet(2, 3, 4)
	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)
	// symmetric
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
	// identical non-empty sets score 1
	assert.Equal(t, 1.0, Jaccard(a, a))
	// both empty is defined as 0, not NaN
	assert.Zero(t, Jaccard(mapset.NewSet[int](), mapset.NewSet[int]()))
	// disjoint sets score 0
	assert.Zero(t, Jaccard(a, mapset.NewSet(7, 8)))
}

// fixedRecommender returns the same recommendation for every user.
type fixedRecommender []int

func (r fixedRecommender) RecommendIndex(_, k int) []int {
	if k > len(r) {
		k = len(r)
	}
	return r[:k]
}

func TestEvaluateJaccard(t *testing.T) {
	heldOut := dataset.NewDataset()
	heldOut.Add("u1", "i0", 1) // truth {0}, hit
	heldOut.Add("u2", "i1", 1) // truth {1}, miss
	// recommending {0} gives Jaccard 1 for u1 and 0 for u2
	mean := EvaluateJaccard(fixedRecommender{0}, heldOut, 1)
	assert.InDelta(t, 0.5, mean, 1e-9)
}

func TestEvaluateJaccard_SkipsUsersWithoutTruth(t *testing.T) {
	heldOut := dataset.NewDataset()
	heldOut.Add("u1", "i0", 1)
	heldOut.UserIndex.Add("u2") // known user, no held-out feedback
	mean := EvaluateJaccard(fixedRecommender{0}, heldOut, 1)
	assert.InDelta(t, 1.0, mean, 1e-9)
}

func TestEvaluateJaccard_Empty(t *testing.T) {
	assert.Zero(t, EvaluateJaccard(fixedRecommender{0}, dataset.NewDataset(), 1))
}

func TestRandomBaseline_Converges(t *testing.T) {
	// sampling k=2 of m=4 items against a single-item truth yields an
	// expected Jaccard of (k/m) * 1/(k+1-1) = 0.25
	heldOut := dataset.NewDataset()
	for u := 0; u < 20000; u++ {
		heldOut.Add(fmt.Sprintf("u%d", u), "i0", 1)
	}
	rng := base.NewRandomGenerator(0)
	mean := RandomBaseline(rng, heldOut, 4, 2)
	assert.InDelta(t, 0.25, mean, 0.01)
}

func TestNewReport(t *testing.T) {
	report := NewReport(0.04, 0.06, 0.02)
	assert.InDelta(t, 2.0, report.CosineLift, 1e-9)
	assert.InDelta(t, 3.0, report.CooccurrenceLift, 1e-9)
	// a zero baseline yields zero lifts instead of dividing by zero
	report = NewReport(0.04, 0.06, 0)
	assert.Zero(t, report.CosineLift)
	assert.Zero(t, report.CooccurrenceLift)
}
