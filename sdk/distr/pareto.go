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

// Pareto 帕累托分布 Pareto(scale, shape)，反函數法：scale·u^(-1/shape)。
//
// u 取 (0,1] 半開區間：u == 0 會讓負冪直接爆成 +Inf。
// u 下限 2^-53，u^(-1/shape) 上界 2^(53/shape)，shape 再小也有限。
type Pareto struct {
	scale         float64
	negInvShape   float64
}

// NewPareto 建立帕累托分布。scale 為下界（x_m），shape 為尾指數（alpha）。
func NewPareto(scale, shape float64) (*Pareto, error) {
	if math.IsNaN(scale) || math.IsNaN(shape) {
		return nil, errs.NonFinitef("pareto: scale/shape must be finite, got scale=%v shape=%v", scale, shape)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("pareto: scale must be positive finite, got %v", scale)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("pareto: shape must be positive finite, got %v", shape)
	}
	return &Pareto{scale: scale, negInvShape: -1 / shape}, nil
}

func (d *Pareto) Sample(c *core.Core) float64 {
	return d.scale * math.Pow(c.Float64OC(), d.negInvShape)
}
