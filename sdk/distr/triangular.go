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

// Triangular 三角分布 Tri(min, mode, max)，反函數法。
type Triangular struct {
	min  float64
	mode float64
	max  float64
	// (mode-min)/(max-min)，反函數的分段點
	modeFrac float64
}

// NewTriangular 建立三角分布。要求 min < max 且 min <= mode <= max。
func NewTriangular(min, mode, max float64) (*Triangular, error) {
	if !isFinite(min) || !isFinite(mode) || !isFinite(max) {
		return nil, errs.NonFinitef("triangular: parameters must be finite, got [%v, %v, %v]", min, mode, max)
	}
	if !(min < max) {
		return nil, errs.OutOfDomainf("triangular: min must be < max, got [%v, %v]", min, max)
	}
	if !(min <= mode && mode <= max) {
		return nil, errs.OutOfDomainf("triangular: mode must be in [min, max], got mode=%v range=[%v, %v]", mode, min, max)
	}
	return &Triangular{
		min:      min,
		mode:     mode,
		max:      max,
		modeFrac: (mode - min) / (max - min),
	}, nil
}

func (d *Triangular) Sample(c *core.Core) float64 {
	u := c.Float64()
	span := d.max - d.min
	if u < d.modeFrac {
		return d.min + math.Sqrt(u*span*(d.mode-d.min))
	}
	return d.max - math.Sqrt((1-u)*span*(d.max-d.mode))
}
