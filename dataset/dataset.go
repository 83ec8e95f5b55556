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

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"

	"github.com/tastekit/taste/base"
)

// Dataset holds raw play-count feedback grouped by user. Records may arrive
// in any order: feedback is bucketed by user index on insertion, so there is
// no contiguity requirement on the input.
//
// A visible/hidden pair loaded by LoadSplit shares one pair of indexers, so
// user and item indices are comparable across the two splits.
type Dataset struct {
	UserIndex    *Indexer
	ItemIndex    *Indexer
	userFeedback []*base.SparseVector
}

// NewDataset creates an empty dataset with fresh indexers.
func NewDataset() *Dataset {
	return &Dataset{
		UserIndex:    NewIndexer(),
		ItemIndex:    NewIndexer(),
		userFeedback: make([]*base.SparseVector, 0),
	}
}

// shareIndex creates an empty dataset sharing indexers with another dataset.
func (d *Dataset) shareIndex() *Dataset {
	return &Dataset{
		UserIndex:    d.UserIndex,
		ItemIndex:    d.ItemIndex,
		userFeedback: make([]*base.SparseVector, 0),
	}
}

// Add appends a play-count record. Repeated user-item pairs accumulate when
// the interaction matrix is built.
func (d *Dataset) Add(userID, itemID string, count float64) {
	userIndex := d.UserIndex.Add(userID)
	itemIndex := d.ItemIndex.Add(itemID)
	for len(d.userFeedback) <= userIndex {
		d.userFeedback = append(d.userFeedback, base.NewSparseVector())
	}
	d.userFeedback[userIndex].Add(itemIndex, count)
}

// CountUsers returns the number of distinct users over the shared index.
func (d *Dataset) CountUsers() int {
	return d.UserIndex.Len()
}

// CountItems returns the number of distinct items over the shared index.
func (d *Dataset) CountItems() int {
	return d.ItemIndex.Len()
}

// UserFeedback returns the raw feedback of a user, or nil if the user has no
// feedback in this split.
func (d *Dataset) UserFeedback(userIndex int) *base.SparseVector {
	if userIndex < 0 || userIndex >= len(d.userFeedback) {
		return nil
	}
	return d.userFeedback[userIndex]
}

// ItemSet returns the set of item indices a user interacted with in this
// split. Used as ground truth by the evaluator.
func (d *Dataset) ItemSet(userIndex int) mapset.Set[int] {
	set := mapset.NewSet[int]()
	if feedback := d.UserFeedback(userIndex); feedback != nil {
		for _, itemIndex := range feedback.Indices {
			set.Add(itemIndex)
		}
	}
	return set
}

// LoadSplit loads the visible and hidden halves of a dataset. Both files
// contain tab-separated "user\tsong\tcount" records. The two datasets share
// indexers: the user and item universe is the union of both files.
func LoadSplit(visiblePath, hiddenPath string) (visible, hidden *Dataset, err error) {
	visible = NewDataset()
	if err = loadFile(visible, visiblePath); err != nil {
		return nil, nil, errors.Trace(err)
	}
	hidden = visible.shareIndex()
	if err = loadFile(hidden, hiddenPath); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return visible, hidden, nil
}

func loadFile(d *Dataset, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return errors.Errorf("%s:%d: expected 3 fields, got %d", path, lineNumber, len(fields))
		}
		count, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return errors.Annotatef(err, "%s:%d: malformed play count %q", path, lineNumber, fields[2])
		} else if count < 0 {
			return errors.Errorf("%s:%d: negative play count %d", path, lineNumber, count)
		} else if count == 0 {
			// Zero plays carry no signal.
			continue
		}
		d.Add(fields[0], fields[1], float64(count))
	}
	return errors.Trace(scanner.Err())
}
