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
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/tastekit/taste/base/encoding"
	"github.com/tastekit/taste/base/log"
)

// CacheKey identifies the dataset a persisted similarity matrix was computed
// from. A cached artifact is only reused when the key matches exactly.
type CacheKey struct {
	Name  string
	Users int
	Items int
}

// SimilarityCache persists similarity matrices between runs. The
// co-occurrence matrix in particular is expensive enough to recompute that it
// is treated as a batch artifact rather than an on-demand value.
type SimilarityCache struct {
	Dir string
}

// Fetch loads the similarity matrix stored under key if present and valid,
// otherwise runs fit and stores its result.
func (c *SimilarityCache) Fetch(key CacheKey, fit func() (*SimilarityMatrix, error)) (*SimilarityMatrix, error) {
	path := filepath.Join(c.Dir, key.Name+".sim")
	if s, err := c.load(path, key); err == nil {
		log.Logger().Info("similarity matrix loaded from cache",
			zap.String("path", path), zap.String("name", key.Name))
		return s, nil
	} else if !os.IsNotExist(errors.Cause(err)) {
		log.Logger().Warn("ignoring stale similarity cache",
			zap.String("path", path), zap.Error(err))
	}
	s, err := fit()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if err = c.store(path, key, s); err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

func (c *SimilarityCache) load(path string, key CacheKey) (*SimilarityMatrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	var storedKey CacheKey
	if err = encoding.ReadGob(file, &storedKey); err != nil {
		return nil, errors.Trace(err)
	}
	if storedKey != key {
		return nil, errors.Errorf("cache key mismatch: stored %+v, want %+v", storedKey, key)
	}
	var coo COO
	if err = encoding.ReadGob(file, &coo); err != nil {
		return nil, errors.Trace(err)
	}
	return FromCOO(&coo)
}

func (c *SimilarityCache) store(path string, key CacheKey, s *SimilarityMatrix) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return errors.Trace(err)
	}
	// write to a temporary file and rename so readers never see partial data
	temp, err := os.CreateTemp(c.Dir, key.Name+"-*.tmp")
	if err != nil {
		return errors.Trace(err)
	}
	defer os.Remove(temp.Name())
	if err = encoding.WriteGob(temp, key); err != nil {
		temp.Close()
		return errors.Trace(err)
	}
	if err = encoding.WriteGob(temp, s.COO()); err != nil {
		temp.Close()
		return errors.Trace(err)
	}
	if err = temp.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.Rename(temp.Name(), path))
}
