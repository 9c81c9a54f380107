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

// Package distr 提供機率分布的建構與取樣引擎。
//
// 設計合約（全包共用）：
//
//  1. 參數驗證全部發生在建構期 (eager validation)。
//     建構失敗回傳 errs.E，Kind 標明違反的約束分類
//     （NonFinite / OutOfDomain / Degenerate / Overflow）。
//
//  2. 建構成功後，取樣「不可能失敗」。
//     取樣方法不回傳 error、不 panic；所有只在取樣期才會出現的
//     數值邊界（拒絕迴圈、極小均勻值、中間量逼近 pole）都必須由
//     分支邏輯就地處理，保證終止並回傳有限值。
//
//  3. 分布物件建構後不可變 (immutable)，可被多個 goroutine
//     同時取樣；亂數來源 core.Core 由呼叫端注入，每次取樣傳入。
//
//  4. 期望迭代次數有界。所有拒絕取樣迴圈的參數域都在建構期
//     被限制在「期望試行次數有限」的範圍內，取樣不會無限懸掛。
package distr

import (
	"math"

	"github.com/zintix-labs/distlab/sdk/core"
)

// Sampler 單值連續分布：給定亂數來源，產出一個 float64。
type Sampler interface {
	Sample(c *core.Core) float64
}

// IntSampler 離散分布：給定亂數來源，產出一個非負整數。
// 離散分布同時實作 Sampler（回傳值轉型為 float64），方便統計管線統一處理。
type IntSampler interface {
	Sampler
	SampleInt(c *core.Core) int64
}

// MultiSampler 多維分布：維度在建構期由參數序列長度決定。
//
// SampleTo 將一次抽樣寫入 out（len(out) 必須等於 Dim()，不足時不寫入），
// 讓熱路徑可以重用緩衝區、避免每次抽樣配置切片。
type MultiSampler interface {
	// Dim 回傳單次抽樣的維度。
	Dim() int
	// SampleTo 將一次抽樣寫入 out。
	SampleTo(c *core.Core, out []float64)
}

// isFinite 回報 x 是否為有限值（排除 NaN 與 ±Inf）。
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// lgamma 取 ln|Γ(x)|，丟棄符號位（本包只在 x > 0 時使用）。
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// stdNormal 以 Box-Muller 變換產出標準常態亂數。
//
// 選擇 Box-Muller 而非 ziggurat：無狀態、無查表，
// 分布物件因此不需要任何取樣期可變暫存，天然支援併發取樣。
//
// r = sqrt(-2 ln(1-u))：1-u ∈ (0,1]，ln 有限；u 最小為 2^-53，
// r 上界約 8.57，輸出必為有限值。
func stdNormal(c *core.Core) float64 {
	r := math.Sqrt(-2 * math.Log(1-c.Float64()))
	theta := 2 * math.Pi * c.Float64()
	return r * math.Cos(theta)
}
