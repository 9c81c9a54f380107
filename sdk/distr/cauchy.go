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

// Cauchy 柯西分布 Cauchy(median, scale)，反函數法：median + scale·tan(π(u-½))。
//
// u ∈ [0,1) 時 π(u-½) ∈ [-π/2, π/2)；π/2 在浮點下不可精確表示，
// math.Tan 於端點附近回傳大而有限的值，輸出不會是 ±Inf。
type Cauchy struct {
	median float64
	scale  float64
}

// NewCauchy 建立柯西分布。
func NewCauchy(median, scale float64) (*Cauchy, error) {
	if !isFinite(median) {
		return nil, errs.NonFinitef("cauchy: median must be finite, got %v", median)
	}
	if math.IsNaN(scale) {
		return nil, errs.NonFinitef("cauchy: scale must be finite, got NaN")
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("cauchy: scale must be positive finite, got %v", scale)
	}
	return &Cauchy{median: median, scale: scale}, nil
}

func (d *Cauchy) Sample(c *core.Core) float64 {
	return d.median + d.scale*math.Tan(math.Pi*(c.Float64()-0.5))
}
