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

package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestParallel(t *testing.T) {
	for _, nWorkers := range []int{1, 4} {
		var count atomic.Int64
		visited := make([]bool, 1000)
		err := Parallel(context.Background(), len(visited), nWorkers, func(_, jobId int) error {
			visited[jobId] = true
			count.Add(1)
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(len(visited)), count.Load())
		for _, v := range visited {
			assert.True(t, v)
		}
	}
}

func TestParallel_Error(t *testing.T) {
	err := Parallel(context.Background(), 100, 4, func(_, jobId int) error {
		if jobId == 50 {
			return errors.New("boom")
		}
		return nil
	})
	assert.Error(t, err)
}

func TestParallel_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, nWorkers := range []int{1, 4} {
		err := Parallel(ctx, 100, nWorkers, func(_, jobId int) error {
			return nil
		})
		assert.ErrorIs(t, errors.Cause(err), context.Canceled)
	}
}

func TestSplit(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6}
	chunks := Split(a, 3)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5, 6}}, chunks)
}
