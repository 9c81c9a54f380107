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

// Geometric 幾何分布：首次成功前的失敗次數，支撐 {0, 1, 2, ...}。
//
// 反函數法：floor(ln u / ln(1-p))。p == 0 在建構期被拒絕
// （期望值無限，任何取樣演算法都無法保證終止）。
type Geometric struct {
	p   float64
	lnQ float64 // ln(1-p)，以 log1p 計算保住小 p 的精度
}

// NewGeometric 建立幾何分布。p 必須落在 (0, 1]。
func NewGeometric(p float64) (*Geometric, error) {
	if math.IsNaN(p) {
		return nil, errs.NonFinitef("geometric: p must be finite, got NaN")
	}
	if !(p > 0 && p <= 1) {
		return nil, errs.OutOfDomainf("geometric: p must be in (0, 1], got %v", p)
	}
	return &Geometric{p: p, lnQ: math.Log1p(-p)}, nil
}

// P 回傳成功機率。
func (d *Geometric) P() float64 { return d.p }

func (d *Geometric) Sample(c *core.Core) float64 {
	return float64(d.SampleInt(c))
}

func (d *Geometric) SampleInt(c *core.Core) int64 {
	if d.p == 1 {
		return 0
	}
	// u ∈ (0,1)：ln u ∈ [-36.74, 0)，比值必為非負有限值
	k := math.Floor(math.Log(c.Float64O()) / d.lnQ)
	// p 極小時比值可能超出 int64；夾到上限維持有限合約
	if k >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(k)
}
