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

// InverseGaussian 逆高斯（Wald）分布 IG(mean, shape)。
//
// 取樣依 Michael, Schucany & Haas 1976 的變換法：
// 一個常態變量平方 + 一次均勻決策，無拒絕迴圈。
type InverseGaussian struct {
	mean  float64
	shape float64
}

// NewInverseGaussian 建立逆高斯分布。mean 與 shape 皆須為正有限值。
func NewInverseGaussian(mean, shape float64) (*InverseGaussian, error) {
	if math.IsNaN(mean) || math.IsNaN(shape) {
		return nil, errs.NonFinitef("inverse-gaussian: mean/shape must be finite, got mean=%v shape=%v", mean, shape)
	}
	if !(mean > 0) || math.IsInf(mean, 0) {
		return nil, errs.OutOfDomainf("inverse-gaussian: mean must be positive finite, got %v", mean)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("inverse-gaussian: shape must be positive finite, got %v", shape)
	}
	return &InverseGaussian{mean: mean, shape: shape}, nil
}

func (d *InverseGaussian) Sample(c *core.Core) float64 {
	mu, l := d.mean, d.shape

	z := stdNormal(c)
	y := z * z
	x := mu + mu*mu*y/(2*l) - mu/(2*l)*math.Sqrt(4*mu*l*y+mu*mu*y*y)
	if !(x > 0) {
		// y 極大時 mu + A - B 相消，浮點進位可能落到 0 或負值。
		// 數學上 x > 0 恆成立，此時真值趨近 0⁺，夾回最小正尺度。
		x = math.SmallestNonzeroFloat64
	}

	if c.Float64() <= mu/(mu+x) {
		return x
	}
	return mu * mu / x
}

// NormalInverseGaussian 常態-逆高斯分布 NIG(alpha, beta)。
//
// alpha 控制尾部厚度，beta 控制偏度，需 |beta| < alpha。
// 取樣：X ~ IG(1/gamma, 1)，回傳 beta·X + sqrt(X)·Z。
type NormalInverseGaussian struct {
	beta float64
	ig   *InverseGaussian
}

// NewNormalInverseGaussian 建立 NIG 分布。
func NewNormalInverseGaussian(alpha, beta float64) (*NormalInverseGaussian, error) {
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil, errs.NonFinitef("nig: alpha/beta must be finite, got alpha=%v beta=%v", alpha, beta)
	}
	if !(alpha > 0) {
		return nil, errs.OutOfDomainf("nig: alpha must be positive, got %v", alpha)
	}
	if math.IsInf(alpha, 0) {
		return nil, errs.NonFinitef("nig: alpha must be finite, got %v", alpha)
	}
	if !(math.Abs(beta) < alpha) {
		return nil, errs.OutOfDomainf("nig: |beta| must be < alpha, got alpha=%v beta=%v", alpha, beta)
	}

	// gamma = sqrt(alpha² - beta²) 以比值形式計算，alpha 很大時不會先平方溢位
	r := beta / alpha
	gamma := alpha * math.Sqrt(1-r*r)
	ig, err := NewInverseGaussian(1/gamma, 1)
	if err != nil {
		return nil, errs.Wrap(err, "nig: derived inverse gaussian")
	}
	return &NormalInverseGaussian{beta: beta, ig: ig}, nil
}

func (d *NormalInverseGaussian) Sample(c *core.Core) float64 {
	x := d.ig.Sample(c)
	return d.beta*x + math.Sqrt(x)*stdNormal(c)
}
