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

package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zintix-labs/distlab/errs"
)

// CI 信賴區間。
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// Moments 以 Welford 單趟遞推累積動差，一趟走完同時取得
// 平均、變異、偏度、峰度與極值，不需保留樣本。
//
// 遞推式（Pébay 2008）：對每筆新值維護中心動差 M2/M3/M4，
// 數值上比「先求和再平方」穩定得多。
type Moments struct {
	n    int64
	mean float64
	m2   float64
	m3   float64
	m4   float64
	min  float64
	max  float64
}

// NewMoments 建立空的動差累積器。
func NewMoments() *Moments {
	return &Moments{min: math.Inf(1), max: math.Inf(-1)}
}

// Add 累積一筆觀測值。
func (m *Moments) Add(x float64) {
	n1 := float64(m.n)
	m.n++
	n := float64(m.n)

	delta := x - m.mean
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * n1

	m.mean += deltaN
	m.m4 += term1*deltaN2*(n*n-3*n+3) + 6*deltaN2*m.m2 - 4*deltaN*m.m3
	m.m3 += term1*deltaN*(n-2) - 3*deltaN*m.m2
	m.m2 += term1

	if x < m.min {
		m.min = x
	}
	if x > m.max {
		m.max = x
	}
}

// N 回傳觀測筆數。
func (m *Moments) N() int64 { return m.n }

// Mean 回傳樣本平均。
func (m *Moments) Mean() float64 { return m.mean }

// Variance 回傳樣本變異數（n-1 分母）；不足兩筆回傳 0。
func (m *Moments) Variance() float64 {
	if m.n < 2 {
		return 0
	}
	return m.m2 / float64(m.n-1)
}

// StdDev 回傳樣本標準差。
func (m *Moments) StdDev() float64 { return math.Sqrt(m.Variance()) }

// Skewness 回傳樣本偏度；變異為 0 時回傳 0。
func (m *Moments) Skewness() float64 {
	if m.n < 2 || m.m2 == 0 {
		return 0
	}
	n := float64(m.n)
	return math.Sqrt(n) * m.m3 / math.Pow(m.m2, 1.5)
}

// Kurtosis 回傳樣本超額峰度（常態為 0）；變異為 0 時回傳 0。
func (m *Moments) Kurtosis() float64 {
	if m.n < 2 || m.m2 == 0 {
		return 0
	}
	n := float64(m.n)
	return n*m.m4/(m.m2*m.m2) - 3
}

// Min 回傳觀測最小值；無觀測時為 +Inf。
func (m *Moments) Min() float64 { return m.min }

// Max 回傳觀測最大值；無觀測時為 -Inf。
func (m *Moments) Max() float64 { return m.max }

// MeanCI 回傳平均值的信賴區間（常態近似，confidence 如 0.95）。
func (m *Moments) MeanCI(confidence float64) CI {
	if m.n < 2 {
		return CI{Lo: m.mean, Hi: m.mean}
	}
	z := distuv.UnitNormal.Quantile(0.5 + confidence/2)
	se := m.StdDev() / math.Sqrt(float64(m.n))
	return CI{Lo: m.mean - z*se, Hi: m.mean + z*se}
}

// Quantiles 對樣本取多個經驗分位數。qs 各值需落在 [0,1]。
// 輸入樣本不會被修改。
func Quantiles(samples []float64, qs []float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, errs.Degeneratef("quantiles: empty sample set")
	}
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	out := make([]float64, len(qs))
	for i, q := range qs {
		if !(q >= 0 && q <= 1) {
			return nil, errs.OutOfDomainf("quantiles: q must be in [0, 1], got %v", q)
		}
		out[i] = stat.Quantile(q, stat.Empirical, sorted, nil)
	}
	return out, nil
}

// KSResult 單樣本 Kolmogorov-Smirnov 檢定結果。
type KSResult struct {
	Stat   float64 `json:"Stat"`   // 最大 CDF 偏差 D_n
	PValue float64 `json:"PValue"` // 漸近 p 值
}

// KolmogorovSmirnov 單樣本 KS 檢定：樣本的經驗 CDF 對照理論 CDF。
//
// p 值採 Numerical Recipes 的漸近修正：
// lambda = (sqrt(n) + 0.12 + 0.11/sqrt(n)) * D，
// Q(lambda) = 2 * sum (-1)^(k-1) exp(-2 k² lambda²)。
func KolmogorovSmirnov(samples []float64, cdf func(float64) float64) (KSResult, error) {
	n := len(samples)
	if n == 0 {
		return KSResult{}, errs.Degeneratef("ks: empty sample set")
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	d := 0.0
	nf := float64(n)
	for i, x := range sorted {
		f := cdf(x)
		// 階梯函數在 x 處的左右極限都要比
		if diff := math.Abs(float64(i+1)/nf - f); diff > d {
			d = diff
		}
		if diff := math.Abs(f - float64(i)/nf); diff > d {
			d = diff
		}
	}

	sqrtN := math.Sqrt(nf)
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	return KSResult{Stat: d, PValue: ksProb(lambda)}, nil
}

// ksProb 為 Kolmogorov 分布的存活函數 Q(lambda)。
func ksProb(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	a2 := -2 * lambda * lambda
	sum := 0.0
	sign := 1.0
	prev := 0.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(a2*float64(k)*float64(k))
		sum += term
		if math.Abs(term) <= 1e-12*prev || math.Abs(term) <= 1e-16 {
			break
		}
		prev = math.Abs(term)
		sign = -sign
	}
	p := 2 * sum
	// 級數截斷可能微幅越界
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
