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

// 取樣數低於此值走 HIN 反函數遞推，否則走 HRUA 比值均勻拒絕法。
const hypergeoHINThreshold = 10

// 母體上限：內部以 float64 計算組合數對數，2^53 以上失去整數精度。
const hypergeoMaxTotal = 1 << 53

// Hypergeometric 超幾何分布：母體 total、其中 successes 個成功、
// 不放回抽出 draws 個，回傳抽中的成功數。
//
// 演算法取自 Stadlober 1990 的 HRUA（比值均勻法，期望試行 O(1)），
// draws 很小時改用 HIN 反函數遞推。兩者都先以對稱性把參數縮到
// mingoodbad 與 m = min(draws, total-draws) 的範圍，最後還原。
type Hypergeometric struct {
	total     uint64
	successes uint64
	draws     uint64

	useHIN bool

	// 對稱縮減後的參數
	good, bad  float64 // good = min/max 無關，good 恆為 successes
	mingoodbad float64
	maxgoodbad float64
	m          float64 // min(draws, total-draws)

	// HIN 常數
	hinLo   float64
	hinLnP0 float64

	// HRUA 常數
	d4, d6, d8, d10, d11 float64
}

// 比值均勻法的包絡常數：2·sqrt(2/e) 與 3 - 2·sqrt(3/e)。
const (
	hruaD1 = 1.7155277699214135
	hruaD2 = 0.8989161620588988
)

// NewHypergeometric 建立超幾何分布。
// 需 successes <= total、draws <= total，且 total 小於 2^53。
func NewHypergeometric(total, successes, draws uint64) (*Hypergeometric, error) {
	if successes > total {
		return nil, errs.OutOfDomainf("hypergeometric: successes %d exceeds total %d", successes, total)
	}
	if draws > total {
		return nil, errs.OutOfDomainf("hypergeometric: draws %d exceeds total %d", draws, total)
	}
	if total >= hypergeoMaxTotal {
		return nil, errs.Overflowf("hypergeometric: total %d exceeds 2^53, internal float arithmetic would lose integer precision", total)
	}

	d := &Hypergeometric{total: total, successes: successes, draws: draws}
	d.good = float64(successes)
	d.bad = float64(total - successes)
	d.mingoodbad = math.Min(d.good, d.bad)
	d.maxgoodbad = math.Max(d.good, d.bad)
	popsize := float64(total)
	d.m = math.Min(float64(draws), popsize-float64(draws))

	if d.m < hypergeoHINThreshold {
		d.useHIN = true
		// 支撐下界 lo = max(0, m - maxgoodbad)，pmf 在 lo 的值以 lgamma 求對數
		d.hinLo = math.Max(0, d.m-d.maxgoodbad)
		n, k := d.m, d.mingoodbad
		lo := d.hinLo
		d.hinLnP0 = lgamma(n+1) + lgamma(popsize-n+1) + lgamma(k+1) + lgamma(popsize-k+1) -
			lgamma(popsize+1) - lgamma(lo+1) - lgamma(n-lo+1) - lgamma(k-lo+1) -
			lgamma(popsize-k-n+lo+1)
		return d, nil
	}

	d.d4 = d.mingoodbad / popsize
	d5 := 1 - d.d4
	d.d6 = d.m*d.d4 + 0.5
	d7 := math.Sqrt((popsize-d.m)*d.m*d.d4*d5/(popsize-1) + 0.5)
	d.d8 = hruaD1*d7 + hruaD2
	d9 := math.Floor((d.m + 1) * (d.mingoodbad + 1) / (popsize + 2)) // 眾數
	d.d10 = lgamma(d9+1) + lgamma(d.mingoodbad-d9+1) + lgamma(d.m-d9+1) +
		lgamma(d.maxgoodbad-d.m+d9+1)
	d.d11 = math.Min(math.Min(d.m, d.mingoodbad)+1, math.Floor(d.d6+16*d7))
	return d, nil
}

// Total 回傳母體大小。
func (d *Hypergeometric) Total() uint64 { return d.total }

// Successes 回傳母體中的成功數。
func (d *Hypergeometric) Successes() uint64 { return d.successes }

// Draws 回傳抽取數。
func (d *Hypergeometric) Draws() uint64 { return d.draws }

func (d *Hypergeometric) Sample(c *core.Core) float64 {
	return float64(d.SampleInt(c))
}

func (d *Hypergeometric) SampleInt(c *core.Core) int64 {
	var z float64
	if d.useHIN {
		z = d.sampleHIN(c)
	} else {
		z = d.sampleHRUA(c)
	}
	// 還原對稱縮減
	if d.good > d.bad {
		z = d.m - z
	}
	if d.m < float64(d.draws) {
		z = d.good - z
	}
	return int64(z)
}

// sampleHIN 反函數遞推：從支撐下界起逐項扣 pmf。
// 遞推比 p(x+1)/p(x) = (k-x)(n-x) / ((x+1)(bad-n+x+1))，
// k 為縮減後成功數、n 為縮減後抽取數。
func (d *Hypergeometric) sampleHIN(c *core.Core) float64 {
	n, k := d.m, d.mingoodbad
	hi := math.Min(n, k)
	for {
		u := c.Float64()
		x := d.hinLo
		p := math.Exp(d.hinLnP0)
		ok := true
		for u > p {
			u -= p
			p *= (k - x) * (n - x) / ((x + 1) * (d.maxgoodbad - n + x + 1))
			x++
			if x > hi {
				// 浮點累積誤差越過支撐上界，整筆重抽
				ok = false
				break
			}
		}
		if ok {
			return x
		}
	}
}

// sampleHRUA 比值均勻拒絕法：先做兩段 squeeze，必要時才比對完整
// lgamma 形式的 pmf 對數。
func (d *Hypergeometric) sampleHRUA(c *core.Core) float64 {
	for {
		x := c.Float64O()
		y := c.Float64()
		w := d.d6 + d.d8*(y-0.5)/x
		if w < 0 || w >= d.d11 {
			continue
		}
		z := math.Floor(w)
		t := d.d10 - (lgamma(z+1) + lgamma(d.mingoodbad-z+1) + lgamma(d.m-z+1) +
			lgamma(d.maxgoodbad-d.m+z+1))
		if x*(4-x)-3 <= t {
			return z
		}
		if x*(x-t) >= 1 {
			continue
		}
		if 2*math.Log(x) <= t {
			return z
		}
	}
}
