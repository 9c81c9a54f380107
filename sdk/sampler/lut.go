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
// 本檔案 (lut.go) 實作查找表 (Look-Up Table) 加權抽樣。
//
// 演算法原理：
//   - 空間換時間：將權重展開為長陣列，每個索引出現次數等於其權重。
//   - 抽樣：生成一個隨機位置直接取值，單次 IntN 即完成。
//
// 對比 WeightedAliasTable：
//   - 建表 O(sum(weights))、空間與權重總和成正比；
//     總和大（超過 maxLUTCap）時應改用別名表。
//   - 抽樣只需一次亂數，比別名表再省一次。

package sampler

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

const maxLUTCap uint64 = 10_000_000 // 約 80MB (int slice)

// LUT 為展開後的查找表。
//
// 舉例：權重 [3,5,0] 展開為 [0,0,0,1,1,1,1,1]，
// 均勻取一個位置即符合 3/8、5/8、0/8 的抽樣機率。
type LUT []int

// BuildLUT 根據非負整數權重建立查找表。
//
// 驗證規則：
//   - 空列表：Degenerate。
//   - 負權重：OutOfDomain。
//   - 全零：Degenerate。
//   - 總和超過 maxLUTCap 或溢位：Overflow（此時應改用別名表）。
func BuildLUT[T Integers](src []T) (LUT, error) {
	if len(src) == 0 {
		return nil, errs.Degeneratef("lut: empty weight list")
	}

	acc := uint64(0)
	for i, v := range src {
		if v < 0 {
			return nil, errs.OutOfDomainf("lut: weight[%d] must be non-negative, got %v", i, v)
		}
		uv := uint64(v)
		if acc > math.MaxUint64-uv {
			return nil, errs.Overflowf("lut: total weight overflows uint64 range")
		}
		acc += uv
	}
	if acc == 0 {
		return nil, errs.Degeneratef("lut: all weights are zero")
	}
	if acc > maxLUTCap {
		return nil, errs.Overflowf("lut: total weight %d exceeds limit %d, use alias table instead", acc, maxLUTCap)
	}

	lut := make([]int, 0, int(acc))
	for i, v := range src {
		for j := T(0); j < v; j++ {
			lut = append(lut, i)
		}
	}
	return lut, nil
}

// Pick 從查找表中隨機位置取一個索引；表為空時回傳 -1。
func (l LUT) Pick(c *core.Core) int {
	return c.Pick(l)
}
