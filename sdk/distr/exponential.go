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

// Exp 指數分布 Exp(rate)，反函數法取樣。
//
// rate 必須為正有限值。-0.0 會在建構期被拒絕：
// 若放行，1/rate = -Inf，每次取樣都會產出無限值。
type Exp struct {
	rate    float64
	rateInv float64
}

// NewExp 建立指數分布。
func NewExp(rate float64) (*Exp, error) {
	if math.IsNaN(rate) {
		return nil, errs.NonFinitef("exp: rate must be finite, got NaN")
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, errs.OutOfDomainf("exp: rate must be positive finite, got %v", rate)
	}
	return &Exp{rate: rate, rateInv: 1 / rate}, nil
}

// Rate 回傳率參數。
func (d *Exp) Rate() float64 { return d.rate }

func (d *Exp) Sample(c *core.Core) float64 {
	// ExpFloat64 內部以 -ln(1-u) 處理 u==0 邊界，輸出永遠有限
	return c.ExpFloat64() * d.rateInv
}
