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

// Normal 常態分布 N(mean, stdDev²)。
//
// 取樣為 Box-Muller 標準常態再做仿射變換。
// stdDev == 0 合法（退化為常數 mean），負值與非有限值建構失敗。
type Normal struct {
	mean   float64
	stdDev float64
}

// NewNormal 建立常態分布。
func NewNormal(mean, stdDev float64) (*Normal, error) {
	if !isFinite(mean) {
		return nil, errs.NonFinitef("normal: mean must be finite, got %v", mean)
	}
	if !isFinite(stdDev) {
		return nil, errs.NonFinitef("normal: std_dev must be finite, got %v", stdDev)
	}
	if !(stdDev >= 0) {
		return nil, errs.OutOfDomainf("normal: std_dev must be >= 0, got %v", stdDev)
	}
	return &Normal{mean: mean, stdDev: stdDev}, nil
}

// Mean 回傳位置參數。
func (d *Normal) Mean() float64 { return d.mean }

// StdDev 回傳尺度參數。
func (d *Normal) StdDev() float64 { return d.stdDev }

func (d *Normal) Sample(c *core.Core) float64 {
	return d.mean + d.stdDev*stdNormal(c)
}

// LogNormal 對數常態分布：exp(N(mu, sigma²))。
type LogNormal struct {
	norm Normal
}

// NewLogNormal 建立對數常態分布。mu/sigma 為底層常態的參數。
func NewLogNormal(mu, sigma float64) (*LogNormal, error) {
	n, err := NewNormal(mu, sigma)
	if err != nil {
		return nil, errs.Wrap(err, "log-normal: invalid underlying normal")
	}
	return &LogNormal{norm: *n}, nil
}

func (d *LogNormal) Sample(c *core.Core) float64 {
	v := math.Exp(d.norm.Sample(c))
	// mu 極大時 exp 可能進位成 +Inf，夾回最大有限值以維持「永遠有限」合約
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}
