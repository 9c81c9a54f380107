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
// 本檔案 (aliastable.go) 實作了 Vose's Alias Method 加權抽樣演算法。
//
// 演算法原理：
//   - 將任意離散分佈轉換為均勻分佈的組合。
//   - 每個槽位 (Bucket) 只存放「自己」和「別名 (Alias)」兩個選項。
//   - 抽樣時先選槽位，再根據機率決定是自己還是別名。
//
// 特性：
//   - 建表時間：O(N)，線性時間。
//   - 抽樣時間：O(1)，穩定且高效。
//   - 空間複雜度：O(N)，與選項數量成正比，**與權重總和無關**。
//
// 適用場景：
//   - 權重總和非常大或權重差異懸殊。
//   - 選項數量較多、抽樣次數遠多於建表次數。

package sampler

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

// WeightedAliasTable 是 Vose Alias Method 的 O(1) 加權抽樣結構。
//
// 權重以 float64 承載，任何 Numbers 約束的權重型別都可直接餵入建表。
// 建表後結構不可變，可被多個 goroutine 同時 Pick。
//
// 欄位說明：
//   - prob: 各槽位「留在自己」的機率（已縮放到 [0,1]）。
//   - alias: 機率不足的槽位要補到哪個索引。
//   - total: 原始權重總和，供 Weights 還原。
type WeightedAliasTable struct {
	prob  []float64
	alias []int
	total float64
}

// NewWeightedAliasTable 根據權重建立別名表。
//
// 驗證規則（全部在建表期完成，Pick 不再失敗）：
//   - 權重列表為空：Degenerate。
//   - 含 NaN 權重：NonFinite。
//   - 含負權重：OutOfDomain。
//   - 總和為 0（全零）：Degenerate。
//   - 總和溢位到 +Inf 或大到 w*n 溢位：Overflow。
//
// 單一權重可以為 0，該索引永遠不會被抽中。
func NewWeightedAliasTable[T Numbers](weights []T) (*WeightedAliasTable, error) {
	n := len(weights)
	if n == 0 {
		return nil, errs.Degeneratef("alias table: empty weight list")
	}

	ws := make([]float64, n)
	total := 0.0
	for i, w := range weights {
		f := float64(w)
		if math.IsNaN(f) {
			return nil, errs.NonFinitef("alias table: weight[%d] is NaN", i)
		}
		if f < 0 || math.IsInf(f, 1) {
			return nil, errs.OutOfDomainf("alias table: weight[%d] must be a finite non-negative value, got %v", i, f)
		}
		ws[i] = f
		total += f
	}
	if total == 0 {
		return nil, errs.Degeneratef("alias table: all weights are zero")
	}
	if math.IsInf(total, 1) || total > math.MaxFloat64/float64(n) {
		return nil, errs.Overflowf("alias table: total weight overflows during scaling")
	}

	// Vose 兩佇列建表：scaled = w*n/total，期望值恰為 1
	scale := float64(n) / total
	prob := make([]float64, n)
	alias := make([]int, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)

	for i, w := range ws {
		prob[i] = w * scale
		if prob[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		alias[s] = l
		// 把 s 的缺額從 l 身上扣掉，維持 sum(prob) = n 的不變性
		prob[l] = prob[l] + prob[s] - 1

		if prob[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// 浮點捨入讓殘留槽位的 prob 偏離 1；理論值即為 1，直接定死
	for _, i := range small {
		prob[i] = 1
	}
	for _, i := range large {
		prob[i] = 1
	}

	return &WeightedAliasTable{prob: prob, alias: alias, total: total}, nil
}

// Len 回傳槽位數量。
func (at *WeightedAliasTable) Len() int { return len(at.prob) }

// Total 回傳原始權重總和。
func (at *WeightedAliasTable) Total() float64 { return at.total }

// Pick 以 O(1) 抽出一個索引：先均勻選槽位，再擲一次硬幣決定自己或別名。
func (at *WeightedAliasTable) Pick(c *core.Core) int {
	idx := c.IntN(len(at.prob))
	if c.Float64() < at.prob[idx] {
		return idx
	}
	return at.alias[idx]
}

// Weights 從別名表還原各索引的權重（與建表輸入同比例，總和等於 Total）。
//
// 還原規則：索引 i 的縮放權重 = 自己的 prob[i]，
// 加上所有把 i 當別名的槽位 j 貢獻的 (1 - prob[j])。
func (at *WeightedAliasTable) Weights() []float64 {
	n := len(at.prob)
	out := make([]float64, n)
	copy(out, at.prob)
	for j, a := range at.alias {
		if at.prob[j] < 1 {
			out[a] += 1 - at.prob[j]
		}
	}
	scale := at.total / float64(n)
	for i := range out {
		out[i] *= scale
	}
	return out
}
