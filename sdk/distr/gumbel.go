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

// Gumbel 極值分布 Gumbel(location, scale)，反函數法：location - scale·ln(-ln u)。
//
// u 取 (0,1) 全開區間：u == 0 或 u == 1 都會讓雙重對數爆成 ±Inf。
type Gumbel struct {
	location float64
	scale    float64
}

// NewGumbel 建立 Gumbel 分布。
func NewGumbel(location, scale float64) (*Gumbel, error) {
	if !isFinite(location) {
		return nil, errs.NonFinitef("gumbel: location must be finite, got %v", location)
	}
	if math.IsNaN(scale) {
		return nil, errs.NonFinitef("gumbel: scale must be finite, got NaN")
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("gumbel: scale must be positive finite, got %v", scale)
	}
	return &Gumbel{location: location, scale: scale}, nil
}

func (d *Gumbel) Sample(c *core.Core) float64 {
	return d.location - d.scale*math.Log(-math.Log(c.Float64O()))
}
