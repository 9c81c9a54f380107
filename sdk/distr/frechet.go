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

// Frechet 逆韋伯（Fréchet）分布，反函數法：location + scale·(-ln u)^(-1/shape)。
type Frechet struct {
	location    float64
	scale       float64
	negInvShape float64
}

// NewFrechet 建立 Fréchet 分布。
func NewFrechet(location, scale, shape float64) (*Frechet, error) {
	if !isFinite(location) {
		return nil, errs.NonFinitef("frechet: location must be finite, got %v", location)
	}
	if math.IsNaN(scale) || math.IsNaN(shape) {
		return nil, errs.NonFinitef("frechet: scale/shape must be finite, got scale=%v shape=%v", scale, shape)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("frechet: scale must be positive finite, got %v", scale)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("frechet: shape must be positive finite, got %v", shape)
	}
	return &Frechet{location: location, scale: scale, negInvShape: -1 / shape}, nil
}

func (d *Frechet) Sample(c *core.Core) float64 {
	// u ∈ (0,1) ⇒ -ln u ∈ (0, ~36.7]，負冪後仍為有限正值
	return d.location + d.scale*math.Pow(-math.Log(c.Float64O()), d.negInvShape)
}
