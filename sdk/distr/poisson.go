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

package distr

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

// 小 λ 改用直接模擬的門檻；大 λ 走柯西包絡拒絕法。
const poissonDirectThreshold = 12.0

// 建構期 λ 上限：確保取樣結果落在 int64 可表示範圍，
// 內部 float64 運算也不失去整數精度意義。
const poissonMaxLambda = 1 << 62

// Poisson 卜瓦松分布 Poisson(lambda)。
//
// 取樣策略依 λ 分段：
//   - λ < 12：直接模擬卜瓦松過程（累乘均勻值直到小於 e^-λ）。
//   - λ >= 12：Numerical Recipes 的柯西包絡拒絕法，
//     期望試行次數與 λ 無關；lgamma 相關常數建構期算好。
type Poisson struct {
	lambda float64

	// 小 λ 路徑
	expLambda float64 // e^-λ

	// 大 λ 路徑
	large       bool
	sqrt2Lambda float64
	lnLambda    float64
	// λ·ln λ - lnΓ(λ+1)，接受測試的歸一化常數
	magic float64
}

// NewPoisson 建立卜瓦松分布。lambda 必須為正有限值且低於 2^62。
func NewPoisson(lambda float64) (*Poisson, error) {
	if !isFinite(lambda) {
		return nil, errs.NonFinitef("poisson: lambda must be finite, got %v", lambda)
	}
	if !(lambda > 0) {
		return nil, errs.OutOfDomainf("poisson: lambda must be positive, got %v", lambda)
	}
	if lambda >= poissonMaxLambda {
		return nil, errs.Overflowf("poisson: lambda %v exceeds representable result range", lambda)
	}

	d := &Poisson{lambda: lambda}
	if lambda < poissonDirectThreshold {
		d.expLambda = math.Exp(-lambda)
		return d, nil
	}
	d.large = true
	d.sqrt2Lambda = math.Sqrt(2 * lambda)
	d.lnLambda = math.Log(lambda)
	d.magic = lambda*d.lnLambda - lgamma(lambda+1)
	return d, nil
}

// Lambda 回傳率參數。
func (d *Poisson) Lambda() float64 { return d.lambda }

func (d *Poisson) Sample(c *core.Core) float64 {
	return float64(d.SampleInt(c))
}

func (d *Poisson) SampleInt(c *core.Core) int64 {
	if !d.large {
		return d.sampleDirect(c)
	}
	return d.sampleRejection(c)
}

// sampleDirect 直接模擬：均勻值累乘跌破 e^-λ 前的次數即為結果。
// 期望迭代 λ+1 次，λ < 12 時成本可忽略。
func (d *Poisson) sampleDirect(c *core.Core) int64 {
	var k int64
	prod := c.Float64O()
	for prod > d.expLambda {
		k++
		prod *= c.Float64O()
	}
	return k
}

// sampleRejection 大 λ 的拒絕法（NR "poidev"）：
// 以重尾柯西為提案分布罩住卜瓦松 pmf，
// 接受率 0.9·(1+y²)·exp(k·lnλ - lnΓ(k+1) - magic)。
func (d *Poisson) sampleRejection(c *core.Core) int64 {
	for {
		var x, y float64
		for {
			y = math.Tan(math.Pi * c.Float64())
			x = d.sqrt2Lambda*y + d.lambda
			if x >= 0 {
				break
			}
		}
		x = math.Floor(x)
		t := 0.9 * (1 + y*y) * math.Exp(x*d.lnLambda-lgamma(x+1)-d.magic)
		if c.Float64() <= t {
			return int64(x)
		}
	}
}
