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

// 截斷常態的取樣策略。依截斷區間落在哪個區域，建構期就選定
// 接受率最高的方法（Robert 1995）。
type truncMethod uint8

const (
	truncNaive    truncMethod = iota // 直接拒絕：區間涵蓋夠多機率質量
	truncOneLower                    // 單邊截斷（僅下界），指數包絡
	truncOneUpper                    // 單邊截斷（僅上界），鏡射後套下界法
	truncTwoSided                    // 雙邊窄區間，均勻提案
)

// TruncatedNormal 截斷常態分布：N(mean, stdDev²) 限制在 [lower, upper]。
//
// 邊界可為 ±Inf（單邊截斷）。方法選擇與接受測試依
// Robert, "Simulation of truncated normal variables" (1995)。
type TruncatedNormal struct {
	mean   float64
	stdDev float64
	lower  float64
	upper  float64

	method truncMethod
	// 標準化座標下的邊界
	stdLower float64
	stdUpper float64
	// 單邊法的指數包絡參數
	alphaStar float64
}

// NewTruncatedNormal 建立截斷常態分布。
// stdDev 必須為正有限值；lower < upper（NaN 邊界一律失敗）。
func NewTruncatedNormal(mean, stdDev, lower, upper float64) (*TruncatedNormal, error) {
	if !isFinite(mean) {
		return nil, errs.NonFinitef("truncated-normal: mean must be finite, got %v", mean)
	}
	if math.IsNaN(stdDev) {
		return nil, errs.NonFinitef("truncated-normal: std_dev must be finite, got %v", stdDev)
	}
	if !(stdDev > 0) || math.IsInf(stdDev, 0) {
		return nil, errs.OutOfDomainf("truncated-normal: std_dev must be positive finite, got %v", stdDev)
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return nil, errs.NonFinitef("truncated-normal: bounds must not be NaN")
	}
	if !(lower < upper) {
		return nil, errs.OutOfDomainf("truncated-normal: lower must be < upper, got [%v, %v]", lower, upper)
	}

	d := &TruncatedNormal{
		mean:     mean,
		stdDev:   stdDev,
		lower:    lower,
		upper:    upper,
		stdLower: (lower - mean) / stdDev,
		stdUpper: (upper - mean) / stdDev,
	}

	switch {
	case math.IsInf(upper, 1):
		// 也涵蓋兩側皆無限（退化為一般常態）的情況
		if d.stdLower >= 0.5 {
			d.method = truncOneLower
			d.alphaStar = robertAlpha(d.stdLower)
		} else {
			d.method = truncNaive
		}
	case math.IsInf(lower, -1):
		if d.stdUpper <= -0.5 {
			// 鏡射：對 -X 套用下界演算法，下界為 -stdUpper
			d.method = truncOneUpper
			d.alphaStar = robertAlpha(-d.stdUpper)
		} else {
			d.method = truncNaive
		}
	default:
		diff := d.stdUpper - d.stdLower
		if diff >= 1.0 && d.stdLower <= 1.0 && d.stdUpper >= -1.0 {
			d.method = truncNaive
		} else {
			d.method = truncTwoSided
		}
	}
	return d, nil
}

// robertAlpha 單邊截斷的最適指數包絡率。
func robertAlpha(stdLower float64) float64 {
	return (stdLower + math.Sqrt(stdLower*stdLower+4)) / 2
}

func (d *TruncatedNormal) Sample(c *core.Core) float64 {
	switch d.method {
	case truncOneLower:
		return d.mean + d.stdDev*d.sampleOneSided(c, d.stdLower)
	case truncOneUpper:
		return d.mean - d.stdDev*d.sampleOneSided(c, -d.stdUpper)
	case truncTwoSided:
		return d.mean + d.stdDev*d.sampleTwoSided(c)
	default:
		return d.sampleNaive(c)
	}
}

func (d *TruncatedNormal) sampleNaive(c *core.Core) float64 {
	for {
		v := d.mean + d.stdDev*stdNormal(c)
		if v >= d.lower && v <= d.upper {
			return v
		}
	}
}

// sampleOneSided 在標準化座標下取樣「下界為 stdLower」的截斷標準常態。
// 提案為位移指數分布 Exp(alphaStar)+stdLower，接受率 exp(-(z-α*)²/2)。
func (d *TruncatedNormal) sampleOneSided(c *core.Core, stdLower float64) float64 {
	for {
		z := c.ExpFloat64()/d.alphaStar + stdLower
		u := c.Float64()
		diff := z - d.alphaStar
		if u <= math.Exp(-0.5*diff*diff) {
			return z
		}
	}
}

// sampleTwoSided 均勻提案 + 區間內最大密度歸一的接受測試。
func (d *TruncatedNormal) sampleTwoSided(c *core.Core) float64 {
	lo, hi := d.stdLower, d.stdUpper
	for {
		z := lo + c.Float64()*(hi-lo)
		u := c.Float64()
		var rho float64
		switch {
		case lo <= 0 && hi >= 0:
			rho = math.Exp(-0.5 * z * z)
		case hi < 0:
			rho = math.Exp(0.5 * (hi*hi - z*z))
		default:
			rho = math.Exp(0.5 * (lo*lo - z*z))
		}
		if u <= rho {
			return z
		}
	}
}
