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

// Zipf 有限支撐的 Zipf 分布：P(k) ∝ 1/k^s，k ∈ {1, ..., n}。
//
// 取樣用 Hörmann & Derflinger 1996 的拒絕反函數法：
// 對 pmf 的連續包絡 h(x) = x^-s 積分後反解，期望試行次數 O(1)，
// 且與 n、s 無關。s = 0 退化為 {1..n} 上的均勻分布。
type Zipf struct {
	n float64
	s float64

	hIntegralX1 float64 // H(1.5) - 1
	hIntegralN  float64 // H(n + 0.5)
	sCut        float64 // 接受測試的 squeeze 邊界
}

// NewZipf 建立 Zipf 分布。n 至少為 1，s 為非負有限值。
func NewZipf(n uint64, s float64) (*Zipf, error) {
	if n < 1 {
		return nil, errs.OutOfDomainf("zipf: n must be at least 1, got %d", n)
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return nil, errs.NonFinitef("zipf: s must be finite, got %v", s)
	}
	if s < 0 {
		return nil, errs.OutOfDomainf("zipf: s must be non-negative, got %v", s)
	}

	d := &Zipf{n: float64(n), s: s}
	d.hIntegralX1 = d.hIntegral(1.5) - 1
	d.hIntegralN = d.hIntegral(d.n + 0.5)
	d.sCut = 2 - d.hIntegralInv(d.hIntegral(2.5)-d.h(2))
	return d, nil
}

// N 回傳支撐上界。
func (d *Zipf) N() uint64 { return uint64(d.n) }

// S 回傳指數參數。
func (d *Zipf) S() float64 { return d.s }

func (d *Zipf) Sample(c *core.Core) float64 {
	return float64(d.SampleInt(c))
}

func (d *Zipf) SampleInt(c *core.Core) int64 {
	for {
		u := d.hIntegralN + c.Float64()*(d.hIntegralX1-d.hIntegralN)
		x := d.hIntegralInv(u)
		k := math.Round(math.Min(math.Max(x, 1), d.n))
		// squeeze：k 足夠靠近 x 時免算完整包絡；否則做精確比較
		if k-x <= d.sCut || u >= d.hIntegral(k+0.5)-d.h(k) {
			return int64(k)
		}
	}
}

// hIntegral 為包絡密度 h(x) = x^-s 的原函數（平移使 H(1) 附近良態）。
func (d *Zipf) hIntegral(x float64) float64 {
	logX := math.Log(x)
	return zipfHelper2((1-d.s)*logX) * logX
}

func (d *Zipf) h(x float64) float64 {
	return math.Exp(-d.s * math.Log(x))
}

// hIntegralInv 為 hIntegral 的反函數。
func (d *Zipf) hIntegralInv(x float64) float64 {
	t := x * (1 - d.s)
	if t < -1 {
		// 浮點捨入可能讓 t 微幅越過定義域邊界
		t = -1
	}
	return math.Exp(zipfHelper1(t) * x)
}

// zipfHelper1 計算 log1p(x)/x，x 趨近 0 時換 Taylor 展開避免 0/0。
func zipfHelper1(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Log1p(x) / x
	}
	return 1 - x*(0.5-x*(1.0/3.0-x*0.25))
}

// zipfHelper2 計算 expm1(x)/x，x 趨近 0 時換 Taylor 展開避免 0/0。
func zipfHelper2(x float64) float64 {
	if math.Abs(x) > 1e-8 {
		return math.Expm1(x) / x
	}
	return 1 + x*0.5*(1+x*(1.0/3.0)*(1+x*0.25))
}

// Zeta 無界 zeta 分布：P(k) ∝ 1/k^a，k ∈ {1, 2, ...}，需 a > 1。
//
// 取樣依 Devroye 1986 第十章的拒絕法（numpy 同款）：
// 提案 X = floor(U^(-1/(a-1)))，以 t/b 形式的比值做接受測試。
type Zeta struct {
	a float64
	b float64 // 2^(a-1)
}

// NewZeta 建立 zeta 分布。a 必須為大於 1 的有限值
// （a <= 1 時級數發散，不構成機率分布）。
func NewZeta(a float64) (*Zeta, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return nil, errs.NonFinitef("zeta: a must be finite, got %v", a)
	}
	if !(a > 1) {
		return nil, errs.OutOfDomainf("zeta: a must be greater than 1, got %v", a)
	}
	return &Zeta{a: a, b: math.Exp2(a - 1)}, nil
}

// A 回傳指數參數。
func (d *Zeta) A() float64 { return d.a }

func (d *Zeta) Sample(c *core.Core) float64 {
	inv := 1 / (d.a - 1)
	for {
		u := c.Float64OC()
		v := c.Float64()
		x := math.Floor(math.Pow(u, -inv))
		// u 極小時 x 可能溢位成 +Inf；丟棄重抽維持有限合約
		if x < 1 || !isFinite(x) {
			continue
		}
		t := math.Pow(1+1/x, d.a-1)
		if v*x*(t-1)/(d.b-1) <= t/d.b {
			return x
		}
	}
}

func (d *Zeta) SampleInt(c *core.Core) int64 {
	x := d.Sample(c)
	if x >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(x)
}
