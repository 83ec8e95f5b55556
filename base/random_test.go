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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Sample(t *testing.T) {
	rng := NewRandomGenerator(0)
	excludeSet := mapset.NewSet(0, 1, 2, 3, 4)
	for i := 0; i < 10; i++ {
		sampled := rng.Sample(0, 10, 3, excludeSet)
		assert.Len(t, sampled, 3)
		assert.Len(t, mapset.NewSet(sampled...).ToSlice(), 3)
		for _, v := range sampled {
			assert.GreaterOrEqual(t, v, 5)
			assert.Less(t, v, 10)
		}
	}
}

func TestRandomGenerator_SampleExhausted(t *testing.T) {
	rng := NewRandomGenerator(42)
	sampled := rng.Sample(0, 5, 10, mapset.NewSet(1, 3))
	assert.ElementsMatch(t, []int{0, 2, 4}, sampled)
}

func TestRandomGenerator_Deterministic(t *testing.T) {
	a := NewRandomGenerator(7).Sample(0, 1000, 100)
	b := NewRandomGenerator(7).Sample(0, 1000, 100)
	assert.Equal(t, a, b)
}
