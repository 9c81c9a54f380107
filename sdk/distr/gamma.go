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

// Gamma 分布家族：Gamma 本體與由其導出的 ChiSquared / FisherF / StudentT / Beta。
//
// Gamma 取樣採 Marsaglia & Tsang 2000 "A Simple Method for Generating
// Gamma Variables"：
//   - shape > 1：直接套用其拒絕法（常態提案 + 三次方變換）。
//   - shape == 1：退化為指數分布，直接反函數取樣。
//   - shape < 1：對 shape+1 取樣後乘 U^(1/shape) 做 boost，
//     避開 shape 趨近 0 時拒絕法接受率崩潰的區域。

package distr

import (
	"math"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

type gammaKind uint8

const (
	gammaLarge gammaKind = iota // shape > 1
	gammaOne                    // shape == 1
	gammaSmall                  // shape < 1
)

// Gamma 分布 Gamma(shape, scale)。
type Gamma struct {
	shape float64
	scale float64
	kind  gammaKind

	// Marsaglia-Tsang 常數。kind == gammaSmall 時針對 shape+1 預計算。
	d  float64
	cc float64
	// boost 指數 1/shape（僅 gammaSmall）
	invShape float64
}

// NewGamma 建立 Gamma 分布。shape 與 scale 皆須為正有限值。
func NewGamma(shape, scale float64) (*Gamma, error) {
	if math.IsNaN(shape) || math.IsNaN(scale) {
		return nil, errs.NonFinitef("gamma: shape/scale must be finite, got shape=%v scale=%v", shape, scale)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("gamma: shape must be positive finite, got %v", shape)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, errs.OutOfDomainf("gamma: scale must be positive finite, got %v", scale)
	}
	if 1/scale == 0 {
		// scale 大到倒數 underflow，後續運算全是 0/Inf
		return nil, errs.Overflowf("gamma: scale too large, 1/scale underflows to 0")
	}

	g := &Gamma{shape: shape, scale: scale}
	switch {
	case shape == 1:
		g.kind = gammaOne
	case shape < 1:
		g.kind = gammaSmall
		g.invShape = 1 / shape
		g.d = (shape + 1) - 1.0/3.0
		g.cc = 1 / math.Sqrt(9*g.d)
	default:
		g.kind = gammaLarge
		g.d = shape - 1.0/3.0
		g.cc = 1 / math.Sqrt(9*g.d)
	}
	return g, nil
}

// Shape 回傳形狀參數。
func (d *Gamma) Shape() float64 { return d.shape }

// Scale 回傳尺度參數。
func (d *Gamma) Scale() float64 { return d.scale }

func (d *Gamma) Sample(c *core.Core) float64 {
	switch d.kind {
	case gammaOne:
		return c.ExpFloat64() * d.scale
	case gammaSmall:
		u := c.Float64O()
		return d.sampleLarge(c) * math.Pow(u, d.invShape)
	default:
		return d.sampleLarge(c)
	}
}

// sampleLarge 為 Marsaglia-Tsang 主迴圈（有效 shape >= 1）。
//
// v = (1+cc*x)³ 必為正才進接受測試，因此 ln(v) 永遠有限，
// 接受式兩側都不會產生 NaN。
func (d *Gamma) sampleLarge(c *core.Core) float64 {
	for {
		x := stdNormal(c)
		vCbrt := 1 + d.cc*x
		if vCbrt <= 0 { // a³ <= 0 iff a <= 0
			continue
		}
		v := vCbrt * vCbrt * vCbrt
		u := c.Float64O()

		xSq := x * x
		if u < 1-0.0331*xSq*xSq ||
			math.Log(u) < 0.5*xSq+d.d*(1-v+math.Log(v)) {
			return d.d * v * d.scale
		}
	}
}

// ChiSquared 卡方分布 χ²(k)。
//
// k == 1 特判為 N(0,1)²：Gamma 在 shape = 0.5 時走 boost 路徑較慢，
// 直接平方標準常態更快也更穩。其餘 k 依 χ²(k) = Gamma(k/2, 2)。
type ChiSquared struct {
	k      float64
	dofOne bool
	gamma  *Gamma
}

// NewChiSquared 建立卡方分布，k 為自由度（正有限實數）。
func NewChiSquared(k float64) (*ChiSquared, error) {
	if math.IsNaN(k) {
		return nil, errs.NonFinitef("chi-squared: k must be finite, got NaN")
	}
	if k == 1 {
		return &ChiSquared{k: k, dofOne: true}, nil
	}
	if !(0.5*k > 0) || math.IsInf(k, 0) {
		return nil, errs.OutOfDomainf("chi-squared: k must be positive finite, got %v", k)
	}
	g, err := NewGamma(0.5*k, 2.0)
	if err != nil {
		return nil, errs.Wrap(err, "chi-squared: derived gamma")
	}
	return &ChiSquared{k: k, gamma: g}, nil
}

// DoF 回傳自由度。
func (d *ChiSquared) DoF() float64 { return d.k }

func (d *ChiSquared) Sample(c *core.Core) float64 {
	if d.dofOne {
		z := stdNormal(c)
		return z * z
	}
	return d.gamma.Sample(c)
}

// FisherF F 分布 F(m, n) = (χ²(m)/m) / (χ²(n)/n)。
type FisherF struct {
	numer *ChiSquared
	denom *ChiSquared
	// n/m 預先算好，取樣時只做乘法
	dofRatio float64
}

// NewFisherF 建立 F 分布，m/n 為分子/分母自由度。
func NewFisherF(m, n float64) (*FisherF, error) {
	numer, err := NewChiSquared(m)
	if err != nil {
		return nil, errs.Wrap(err, "fisher-f: numerator dof")
	}
	denom, err := NewChiSquared(n)
	if err != nil {
		return nil, errs.Wrap(err, "fisher-f: denominator dof")
	}
	return &FisherF{numer: numer, denom: denom, dofRatio: n / m}, nil
}

func (d *FisherF) Sample(c *core.Core) float64 {
	return d.numer.Sample(c) / d.denom.Sample(c) * d.dofRatio
}

// StudentT t 分布 t(nu)。
type StudentT struct {
	chi *ChiSquared
	dof float64
}

// NewStudentT 建立 t 分布，nu 為自由度。
func NewStudentT(nu float64) (*StudentT, error) {
	chi, err := NewChiSquared(nu)
	if err != nil {
		return nil, errs.Wrap(err, "student-t: dof")
	}
	return &StudentT{chi: chi, dof: nu}, nil
}

func (d *StudentT) Sample(c *core.Core) float64 {
	z := stdNormal(c)
	return z * math.Sqrt(d.dof/d.chi.Sample(c))
}

// Beta Beta(alpha, beta) 分布，以兩個 Gamma 變量合成：
// X/(X+Y)，X ~ Gamma(alpha,1)，Y ~ Gamma(beta,1)。
type Beta struct {
	gammaA *Gamma
	gammaB *Gamma
}

// NewBeta 建立 Beta 分布。
func NewBeta(alpha, beta float64) (*Beta, error) {
	ga, err := NewGamma(alpha, 1)
	if err != nil {
		return nil, errs.Wrap(err, "beta: alpha")
	}
	gb, err := NewGamma(beta, 1)
	if err != nil {
		return nil, errs.Wrap(err, "beta: beta")
	}
	return &Beta{gammaA: ga, gammaB: gb}, nil
}

func (d *Beta) Sample(c *core.Core) float64 {
	x := d.gammaA.Sample(c)
	y := d.gammaB.Sample(c)
	sum := x + y
	if sum == 0 {
		// 兩個極小 shape 的 Gamma 變量同時 underflow 到 0。
		// 以公平硬幣決定落在哪個端點，避免 0/0 = NaN。
		if c.Float64() < 0.5 {
			return 0
		}
		return 1
	}
	return x / sum
}
