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
// 本檔案 (weightitem.go) 實作 Efraimidis-Spirakis 加權不放回抽樣家族。
//
// 核心公式：每個元素 i 的分數 Score_i = ExpFloat64 / w_i，
// 分數由小到大的順序即為加權隨機排列（2006, "Weighted random
// sampling with a reservoir"）。
//
// 注意：weights 中權重為 0 的元素在 WeightedShuffle 會被排到最後，
// 但 K 抽樣 (WeightedSample) 則永不入選。
package sampler

import (
	"cmp"
	"container/heap"
	"math"
	"slices"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

// weightItem 封裝原始索引與計算出的隨機分數。
type weightItem struct {
	idx   int
	score float64
}

// weightHeap 是 weightItem 的 Max-Heap：堆頂是目前入選者中分數最大
// （最該被淘汰）的元素，新元素分數更小時直接替換堆頂。
type weightHeap []weightItem

func (h weightHeap) Len() int           { return len(h) }
func (h weightHeap) Less(i, j int) bool { return h[i].score > h[j].score }
func (h weightHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *weightHeap) Push(x any) {
	*h = append(*h, x.(weightItem))
}

func (h *weightHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// scoreOf 計算單一元素的抽樣分數；負權重與 NaN 為建構錯誤。
func scoreOf[T Numbers](c *core.Core, w T, i int) (float64, error) {
	f := float64(w)
	if math.IsNaN(f) {
		return 0, errs.NonFinitef("weighted sampling: weight[%d] is NaN", i)
	}
	if f < 0 {
		return 0, errs.OutOfDomainf("weighted sampling: weight[%d] must be non-negative, got %v", i, f)
	}
	if f == 0 {
		return math.Inf(1), nil
	}
	return c.ExpFloat64() / f, nil
}

// WeightedShuffle 加權不放回全排列。
//
// 回傳長度 N 的索引排列；權重越大越靠前，權重為 0 者分數為 +Inf，
// 保證排在最後。時間 O(N log N)，空間 O(N)。
func WeightedShuffle[T Numbers](c *core.Core, weights []T) ([]int, error) {
	n := len(weights)
	if n == 0 {
		return []int{}, nil
	}

	items := make([]weightItem, n)
	for i, w := range weights {
		score, err := scoreOf(c, w, i)
		if err != nil {
			return nil, err
		}
		items[i] = weightItem{idx: i, score: score}
	}

	slices.SortFunc(items, func(a, b weightItem) int {
		return cmp.Compare(a.score, b.score)
	})

	result := make([]int, n)
	for i, item := range items {
		result[i] = item.idx
	}
	return result, nil
}

// WeightedShuffleWithFilter 為 WeightedShuffle 的變體：
// 權重為 0 的索引直接剔除，回傳長度 M <= N。
func WeightedShuffleWithFilter[T Numbers](c *core.Core, weights []T) ([]int, error) {
	n := len(weights)
	if n == 0 {
		return []int{}, nil
	}

	items := make([]weightItem, 0, n)
	for i, w := range weights {
		score, err := scoreOf(c, w, i)
		if err != nil {
			return nil, err
		}
		if math.IsInf(score, 1) {
			continue
		}
		items = append(items, weightItem{idx: i, score: score})
	}

	slices.SortFunc(items, func(a, b weightItem) int {
		return cmp.Compare(a.score, b.score)
	})

	result := make([]int, len(items))
	for i, item := range items {
		result[i] = item.idx
	}
	return result, nil
}

// WeightedSample 加權不放回抽樣，只取前 K 個（A-Res 水塘法）。
//
// 以容量 K 的 Max-Heap 維護目前分數最小的 K 個元素，
// 時間 O(N log K)、空間 O(K)，K 遠小於 N 時比全排序划算。
// 有效（權重 > 0）元素不足 K 個時，回傳長度以有效數量為準。
func WeightedSample[T Numbers](c *core.Core, weights []T, k int) ([]int, error) {
	n := len(weights)
	if k <= 0 || n == 0 {
		return []int{}, nil
	}
	if k > n {
		k = n
	}

	h := make(weightHeap, 0, k)
	for i, w := range weights {
		score, err := scoreOf(c, w, i)
		if err != nil {
			return nil, err
		}
		if math.IsInf(score, 1) {
			continue
		}

		if h.Len() < k {
			heap.Push(&h, weightItem{idx: i, score: score})
		} else if score < h[0].score {
			// 直接改 root 後 Fix，比 Pop+Push 少一次 log K
			h[0] = weightItem{idx: i, score: score}
			heap.Fix(&h, 0)
		}
	}

	actual := h.Len()
	if actual == 0 {
		return []int{}, nil
	}
	result := make([]int, actual)
	// Max-Heap 先彈出的是最後一名，倒序填入讓結果依名次排列
	for i := actual - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(weightItem).idx
	}
	return result, nil
}
