// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sampler 提供一系列高效能的加權抽樣演算法與工具。
//
// 本檔案 (weighttree.go) 實作可就地更新權重的加權索引。
//
// 與 WeightedAliasTable 的取捨：
//   - 別名表：建表 O(N)、抽樣 O(1)，但不可變；權重一改就得整表重建。
//   - 權重樹：抽樣 O(log N)、單點更新 O(log N)；
//     權重頻繁變動（抽後降權、庫存扣減）時整體成本遠低於重建別名表。

package sampler

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

// WeightedTreeIndex 以「對齊二的冪」的線段樹承載權重的前綴和結構。
//
// tree[1] 為根（即權重總和），節點 i 的子節點為 2i 與 2i+1，
// 葉節點從 tree[leafBase] 起依序對應索引 0..n-1。
//
// 與本包其他結構不同，WeightedTreeIndex 是可變的；
// 併發使用時由呼叫端負責同步。
type WeightedTreeIndex struct {
	tree     []float64
	n        int
	leafBase int
}

// NewWeightedTreeIndex 根據權重建立權重樹。
// 驗證規則與 NewWeightedAliasTable 相同：空表 Degenerate、
// NaN NonFinite、負值或 +Inf OutOfDomain、全零 Degenerate、總和溢位 Overflow。
func NewWeightedTreeIndex[T Numbers](weights []T) (*WeightedTreeIndex, error) {
	n := len(weights)
	if n == 0 {
		return nil, errs.Degeneratef("weight tree: empty weight list")
	}

	leafBase := 1
	for leafBase < n {
		leafBase <<= 1
	}

	w := &WeightedTreeIndex{
		tree:     make([]float64, 2*leafBase),
		n:        n,
		leafBase: leafBase,
	}

	total := 0.0
	for i, v := range weights {
		f := float64(v)
		if math.IsNaN(f) {
			return nil, errs.NonFinitef("weight tree: weight[%d] is NaN", i)
		}
		if f < 0 || math.IsInf(f, 1) {
			return nil, errs.OutOfDomainf("weight tree: weight[%d] must be a finite non-negative value, got %v", i, f)
		}
		w.tree[leafBase+i] = f
		total += f
	}
	if total == 0 {
		return nil, errs.Degeneratef("weight tree: all weights are zero")
	}
	if math.IsInf(total, 1) {
		return nil, errs.Overflowf("weight tree: total weight overflows float64")
	}

	// 自底向上填內部節點
	for i := leafBase - 1; i >= 1; i-- {
		w.tree[i] = w.tree[2*i] + w.tree[2*i+1]
	}
	return w, nil
}

// Len 回傳索引數量。
func (w *WeightedTreeIndex) Len() int { return w.n }

// Total 回傳當前權重總和（即樹根）。
func (w *WeightedTreeIndex) Total() float64 { return w.tree[1] }

// Weight 回傳索引 i 當前的權重；越界回傳 0。
func (w *WeightedTreeIndex) Weight(i int) float64 {
	if i < 0 || i >= w.n {
		return 0
	}
	return w.tree[w.leafBase+i]
}

// Pick 依當前權重抽出一個索引，O(log N)。
// 所有權重都被 Update 降到 0 時回傳 -1。
func (w *WeightedTreeIndex) Pick(c *core.Core) int {
	total := w.tree[1]
	if total <= 0 {
		return -1
	}
	x := c.Float64() * total
	node := 1
	for node < w.leafBase {
		left := 2 * node
		if x < w.tree[left] {
			node = left
		} else {
			x -= w.tree[left]
			node = left + 1
		}
	}
	idx := node - w.leafBase
	// 浮點捨入可能把 x 推進右側的補零葉，夾回最後一個有效索引
	if idx >= w.n {
		idx = w.n - 1
	}
	return idx
}

// Update 將索引 i 的權重改為 weight，並沿路徑更新前綴和，O(log N)。
func (w *WeightedTreeIndex) Update(i int, weight float64) error {
	if i < 0 || i >= w.n {
		return errs.OutOfDomainf("weight tree: index %d out of range [0, %d)", i, w.n)
	}
	if math.IsNaN(weight) {
		return errs.NonFinitef("weight tree: weight is NaN")
	}
	if weight < 0 || math.IsInf(weight, 1) {
		return errs.OutOfDomainf("weight tree: weight must be a finite non-negative value, got %v", weight)
	}

	node := w.leafBase + i
	w.tree[node] = weight
	for node > 1 {
		node /= 2
		w.tree[node] = w.tree[2*node] + w.tree[2*node+1]
	}
	if math.IsInf(w.tree[1], 1) {
		return errs.Overflowf("weight tree: total weight overflows float64")
	}
	return nil
}
