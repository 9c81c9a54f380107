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

package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/zintix-labs/distlab/errs"
)

// Histogram 固定邊界的落點統計。
//
// edges 為嚴格遞增的桶邊界，桶 i 涵蓋 [edges[i], edges[i+1])；
// 低於首邊界與高於末邊界的觀測各自累積到獨立的 under/over 計數，
// 不會被丟掉。定位以二分搜尋完成，O(log K)。
type Histogram struct {
	edges  []float64
	counts []int64
	under  int64
	over   int64
	total  int64
}

// NewHistogram 以自訂邊界建立直方圖。邊界至少兩個、嚴格遞增且有限。
func NewHistogram(edges []float64) (*Histogram, error) {
	if len(edges) < 2 {
		return nil, errs.Degeneratef("histogram: need at least 2 edges, got %d", len(edges))
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, errs.NonFinitef("histogram: edge[%d] must be finite, got %v", i, e)
		}
		if i > 0 && !(edges[i-1] < e) {
			return nil, errs.OutOfDomainf("histogram: edges must be strictly increasing at index %d", i)
		}
	}
	h := &Histogram{
		edges:  make([]float64, len(edges)),
		counts: make([]int64, len(edges)-1),
	}
	copy(h.edges, edges)
	return h, nil
}

// NewLinearHistogram 在 [lo, hi] 上等距切 bins 個桶。
func NewLinearHistogram(lo, hi float64, bins int) (*Histogram, error) {
	if bins < 1 {
		return nil, errs.Degeneratef("histogram: bins must be at least 1, got %d", bins)
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return nil, errs.NonFinitef("histogram: bounds must be finite, got [%v, %v]", lo, hi)
	}
	if !(lo < hi) {
		return nil, errs.OutOfDomainf("histogram: lo must be < hi, got [%v, %v]", lo, hi)
	}
	edges := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[bins] = hi
	return NewHistogram(edges)
}

// Add 累積一筆觀測值。
func (h *Histogram) Add(x float64) {
	h.total++
	switch {
	case x < h.edges[0]:
		h.under++
	case x >= h.edges[len(h.edges)-1]:
		h.over++
	default:
		// SearchFloat64s 回傳第一個 >= x 的位置；x == edge 時落在右桶
		i := sort.SearchFloat64s(h.edges, x)
		if i < len(h.edges) && h.edges[i] == x {
			h.counts[i]++
		} else {
			h.counts[i-1]++
		}
	}
}

// Bins 回傳桶數（不含 under/over）。
func (h *Histogram) Bins() int { return len(h.counts) }

// Total 回傳觀測總數（含 under/over）。
func (h *Histogram) Total() int64 { return h.total }

// Counts 回傳各桶計數的複本，首尾額外附上 under/over。
func (h *Histogram) Counts() []int64 {
	out := make([]int64, 0, len(h.counts)+2)
	out = append(out, h.under)
	out = append(out, h.counts...)
	out = append(out, h.over)
	return out
}

// Freqs 回傳各桶相對頻率（與 Counts 同排列）；無觀測時全零。
func (h *Histogram) Freqs() []float64 {
	cs := h.Counts()
	out := make([]float64, len(cs))
	if h.total == 0 {
		return out
	}
	for i, c := range cs {
		out[i] = float64(c) / float64(h.total)
	}
	return out
}

// Labels 回傳各桶的區間標籤（與 Counts 同排列）。
func (h *Histogram) Labels() []string {
	out := make([]string, 0, len(h.counts)+2)
	out = append(out, fmt.Sprintf("(-inf,%g)", h.edges[0]))
	for i := 0; i < len(h.counts); i++ {
		out = append(out, fmt.Sprintf("[%g,%g)", h.edges[i], h.edges[i+1]))
	}
	out = append(out, fmt.Sprintf("[%g,+inf)", h.edges[len(h.edges)-1]))
	return out
}
