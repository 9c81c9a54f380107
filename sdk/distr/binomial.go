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

// 二項分布取樣：Kachitvichyanukul & Schmeiser 1988 的 BINV/BTPE 雙演算法。
//   - n·p 小：BINV 反函數遞推，期望 O(n·p) 步。
//   - n·p 大：BTPE（三角形 + 平行四邊形 + 雙指數尾的混合包絡拒絕法），
//     期望試行次數 O(1)。
// p > 1/2 一律以對稱性轉成 p' = 1-p 取樣後回傳 n-X，
// 讓兩套演算法只需處理 p <= 1/2 的數值範圍。

package distr

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

// BINV 門檻：n·p' 低於此值走反函數遞推。
const binvThreshold = 10.0

// BINV 單次嘗試的步數上限；超過代表 u 落在極深尾部，整筆重抽。
const binvMaxX = 110

// n 上限：BTPE 全程以 float64 做整數算術，2^53 以上會失去整數精度。
const binomialMaxN = 1 << 53

type binomMethod uint8

const (
	binomZero binomMethod = iota // p == 0，恆為 0
	binomAll                     // p == 1，恆為 n
	binomBINV
	binomBTPE
)

// Binomial 二項分布 B(n, p)。
type Binomial struct {
	n uint64
	p float64

	method  binomMethod
	flipped bool // 內部以 p' = 1-p 取樣，結果回傳 n-X

	// 共用：p' 與 q = 1-p'
	pp, q float64

	// BINV 常數
	binvS float64 // p'/q
	binvA float64 // (n+1)·p'/q
	binvR float64 // q^n

	// BTPE 常數（Kachitvichyanukul-Schmeiser 記號）
	nF, npq, fm                  float64
	m                            int64
	p1, xm, xl, xr               float64
	cPar, lambdaL, lambdaR       float64
	p2, p3, p4                   float64
}

// NewBinomial 建立二項分布。p ∈ [0,1]，n 必須小於 2^53。
func NewBinomial(n uint64, p float64) (*Binomial, error) {
	if math.IsNaN(p) {
		return nil, errs.NonFinitef("binomial: p must be finite, got NaN")
	}
	if !(p >= 0 && p <= 1) {
		return nil, errs.OutOfDomainf("binomial: p must be in [0, 1], got %v", p)
	}
	if n >= binomialMaxN {
		return nil, errs.Overflowf("binomial: n %d exceeds 2^53, internal float arithmetic would lose integer precision", n)
	}

	d := &Binomial{n: n, p: p}
	switch {
	case p == 0 || n == 0:
		d.method = binomZero
		return d, nil
	case p == 1:
		d.method = binomAll
		return d, nil
	}

	d.flipped = p > 0.5
	d.pp = p
	if d.flipped {
		d.pp = 1 - p
	}
	d.q = 1 - d.pp
	d.nF = float64(n)

	if d.nF*d.pp < binvThreshold {
		d.method = binomBINV
		d.binvS = d.pp / d.q
		d.binvA = (d.nF + 1) * d.binvS
		// q^n 以 exp(n·log1p(-p')) 計算；n·p' < 10 保證不會 underflow 到 0
		d.binvR = math.Exp(d.nF * math.Log1p(-d.pp))
		return d, nil
	}

	d.method = binomBTPE
	d.npq = d.nF * d.pp * d.q
	d.fm = d.nF*d.pp + d.pp
	d.m = int64(math.Floor(d.fm))
	d.p1 = math.Floor(2.195*math.Sqrt(d.npq)-4.6*d.q) + 0.5
	d.xm = float64(d.m) + 0.5
	d.xl = d.xm - d.p1
	d.xr = d.xm + d.p1
	d.cPar = 0.134 + 20.5/(15.3+float64(d.m))

	al := (d.fm - d.xl) / (d.fm - d.xl*d.pp)
	d.lambdaL = al * (1 + al/2)
	ar := (d.xr - d.fm) / (d.xr * d.q)
	d.lambdaR = ar * (1 + ar/2)

	d.p2 = d.p1 * (1 + 2*d.cPar)
	d.p3 = d.p2 + d.cPar/d.lambdaL
	d.p4 = d.p3 + d.cPar/d.lambdaR
	return d, nil
}

// N 回傳試行次數。
func (d *Binomial) N() uint64 { return d.n }

// P 回傳單次成功機率。
func (d *Binomial) P() float64 { return d.p }

func (d *Binomial) Sample(c *core.Core) float64 {
	return float64(d.SampleInt(c))
}

func (d *Binomial) SampleInt(c *core.Core) int64 {
	switch d.method {
	case binomZero:
		return 0
	case binomAll:
		return int64(d.n)
	case binomBINV:
		return d.finish(d.sampleBINV(c))
	default:
		return d.finish(d.sampleBTPE(c))
	}
}

// finish 還原對稱變換。
func (d *Binomial) finish(x int64) int64 {
	if d.flipped {
		return int64(d.n) - x
	}
	return x
}

// sampleBINV 反函數遞推：u 依序扣掉 pmf 直到落入某格。
func (d *Binomial) sampleBINV(c *core.Core) int64 {
	for {
		r := d.binvR
		u := c.Float64()
		var x int64
		ok := true
		for u > r {
			u -= r
			x++
			if x > binvMaxX {
				// u 落在 pmf 極深尾部，遞推的 r 已 underflow；整筆重抽
				ok = false
				break
			}
			r *= d.binvA/float64(x) - d.binvS
		}
		if ok {
			return x
		}
	}
}

// sampleBTPE 混合包絡拒絕法主迴圈。
// 區域劃分：u <= p1 三角形（直接接受）、p2 平行四邊形、
// p3 左指數尾、p4 右指數尾；之後做 squeeze 與最終 Stirling 比較。
func (d *Binomial) sampleBTPE(c *core.Core) int64 {
	for {
		u := c.Float64() * d.p4
		v := c.Float64O()
		var y int64

		switch {
		case u <= d.p1:
			return int64(math.Floor(d.xm - d.p1*v + u))
		case u <= d.p2:
			x := d.xl + (u-d.p1)/d.cPar
			v = v*d.cPar + 1 - math.Abs(x-d.xm)/d.p1
			if v > 1 || v <= 0 {
				continue
			}
			y = int64(math.Floor(x))
		case u <= d.p3:
			y = int64(math.Floor(d.xl + math.Log(v)/d.lambdaL))
			if y < 0 {
				continue
			}
			v *= (u - d.p2) * d.lambdaL
		default:
			y = int64(math.Floor(d.xr - math.Log(v)/d.lambdaR))
			if y > int64(d.n) {
				continue
			}
			v *= (u - d.p3) * d.lambdaR
		}

		k := y - d.m
		if k < 0 {
			k = -k
		}

		if k <= 20 || float64(k) >= d.npq/2-1 {
			// 距離眾數近（或極遠）：逐項遞推 pmf 比值做精確比較
			s := d.pp / d.q
			a := s * (d.nF + 1)
			f := 1.0
			switch {
			case d.m < y:
				for i := d.m + 1; i <= y; i++ {
					f *= a/float64(i) - s
				}
			case d.m > y:
				for i := y + 1; i <= d.m; i++ {
					f /= a/float64(i) - s
				}
			}
			if v <= f {
				return y
			}
			continue
		}

		// squeeze：上下界先擋掉大多數情況
		kf := float64(k)
		rho := (kf / d.npq) * ((kf*(kf/3+0.625)+1.0/6.0)/d.npq + 0.5)
		t := -kf * kf / (2 * d.npq)
		alv := math.Log(v)
		if alv < t-rho {
			return y
		}
		if alv > t+rho {
			continue
		}

		// 最終比較：pmf 比值的 Stirling 展開
		x1 := float64(y + 1)
		f1 := float64(d.m + 1)
		z := d.nF + 1 - float64(d.m)
		w := d.nF - float64(y) + 1
		bound := d.xm*math.Log(f1/x1) +
			(d.nF-float64(d.m)+0.5)*math.Log(z/w) +
			float64(y-d.m)*math.Log(w*d.pp/(x1*d.q)) +
			stirlingTail(f1) + stirlingTail(z) + stirlingTail(x1) + stirlingTail(w)
		if alv <= bound {
			return y
		}
	}
}

// stirlingTail 為 lnΓ 的 Stirling 級數尾項（1/12x - 1/360x³ + ...），
// 係數通分至 1/166320。
func stirlingTail(x float64) float64 {
	sq := x * x
	return (13860 - (462-(132-(99-140/sq)/sq)/sq)/sq) / x / 166320
}
