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

// SkewNormal 偏態常態分布 SN(location, scale, shape)。
//
// 取樣用 Azzalini 的條件表示：兩個獨立標準常態 Z0, Z1，
// delta = shape/sqrt(1+shape²)，
// Y = delta·|Z0| + sqrt(1-delta²)·Z1 即為標準偏態常態。
// shape == 0 時退化為一般常態。
type SkewNormal struct {
	location float64
	scale    float64
	shape    float64

	delta     float64
	deltaComp float64 // sqrt(1 - delta²)
}

// NewSkewNormal 建立偏態常態分布。shape 可為任意有限實數。
func NewSkewNormal(location, scale, shape float64) (*SkewNormal, error) {
	if !isFinite(location) {
		return nil, errs.NonFinitef("skew-normal: location must be finite, got %v", location)
	}
	if math.IsNaN(scale) {
		return nil, errs.NonFinitef("skew-normal: scale must be finite, got NaN")
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("skew-normal: scale must be positive finite, got %v", scale)
	}
	if !isFinite(shape) {
		return nil, errs.NonFinitef("skew-normal: shape must be finite, got %v", shape)
	}

	delta := shape / math.Sqrt(1+shape*shape)
	return &SkewNormal{
		location:  location,
		scale:     scale,
		shape:     shape,
		delta:     delta,
		deltaComp: math.Sqrt(1 - delta*delta),
	}, nil
}

func (d *SkewNormal) Sample(c *core.Core) float64 {
	z0 := stdNormal(c)
	z1 := stdNormal(c)
	y := d.delta*math.Abs(z0) + d.deltaComp*z1
	return d.location + d.scale*y
}
