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

// Weibull 韋伯分布 Weibull(scale, shape)，反函數法：scale·(-ln(1-u))^(1/shape)。
type Weibull struct {
	scale    float64
	invShape float64
}

// NewWeibull 建立韋伯分布。
func NewWeibull(scale, shape float64) (*Weibull, error) {
	if math.IsNaN(scale) || math.IsNaN(shape) {
		return nil, errs.NonFinitef("weibull: scale/shape must be finite, got scale=%v shape=%v", scale, shape)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("weibull: scale must be positive finite, got %v", scale)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("weibull: shape must be positive finite, got %v", shape)
	}
	return &Weibull{scale: scale, invShape: 1 / shape}, nil
}

func (d *Weibull) Sample(c *core.Core) float64 {
	// ExpFloat64 = -ln(1-u) ∈ [0, ~36.7]，取冪後必為有限
	return d.scale * math.Pow(c.ExpFloat64(), d.invShape)
}
