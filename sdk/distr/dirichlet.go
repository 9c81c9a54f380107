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

// 任一 alpha 低於此值時改走對數域路徑，避免 Gamma 變量 underflow 到 0。
const dirichletLogThreshold = 0.1

// Dirichlet 狄利克雷分布 Dir(alpha)：輸出落在 (dim-1)-單純形上，
// 各分量非負且總和為 1。
//
// 標準做法是抽 dim 個 Gamma(alpha_i, 1) 再歸一化。alpha 很小時
// Gamma 變量會整批 underflow 成 0，歸一化變成 0/0；此時改在對數域
// 操作：ln X_i = ln G(alpha_i+1) + ln U / alpha_i（boost 表示式取對數），
// 最後用 softmax 歸一化，全程不經過 underflow 區。
type Dirichlet struct {
	alphas []float64
	useLog bool

	// 一般路徑：Gamma(alpha_i, 1)
	gammas []*Gamma
	// 對數域路徑：Gamma(alpha_i + 1, 1) 與 1/alpha_i
	boosts    []*Gamma
	invAlphas []float64
}

// NewDirichlet 建立狄利克雷分布。alphas 至少兩個元素，皆為正有限值。
func NewDirichlet(alphas []float64) (*Dirichlet, error) {
	if len(alphas) < 2 {
		return nil, errs.Degeneratef("dirichlet: need at least 2 concentration parameters, got %d", len(alphas))
	}

	d := &Dirichlet{alphas: make([]float64, len(alphas))}
	copy(d.alphas, alphas)

	for i, a := range d.alphas {
		if math.IsNaN(a) {
			return nil, errs.NonFinitef("dirichlet: alpha[%d] must be finite, got NaN", i)
		}
		if !(a > 0) || math.IsInf(a, 0) {
			return nil, errs.OutOfDomainf("dirichlet: alpha[%d] must be positive finite, got %v", i, a)
		}
		if a < dirichletLogThreshold {
			d.useLog = true
		}
	}

	// 對數域路徑的建構材料一律備妥：一般路徑的歸一化 underflow 保險
	// 也會用到
	d.boosts = make([]*Gamma, len(d.alphas))
	d.invAlphas = make([]float64, len(d.alphas))
	for i, a := range d.alphas {
		g, err := NewGamma(a+1, 1)
		if err != nil {
			return nil, errs.Wrap(err, "dirichlet: boosted gamma")
		}
		d.boosts[i] = g
		d.invAlphas[i] = 1 / a
	}

	if !d.useLog {
		d.gammas = make([]*Gamma, len(d.alphas))
		for i, a := range d.alphas {
			g, err := NewGamma(a, 1)
			if err != nil {
				return nil, errs.Wrap(err, "dirichlet: component gamma")
			}
			d.gammas[i] = g
		}
	}
	return d, nil
}

// Dim 回傳輸出維度。
func (d *Dirichlet) Dim() int { return len(d.alphas) }

// Alphas 回傳濃度參數的複本。
func (d *Dirichlet) Alphas() []float64 {
	out := make([]float64, len(d.alphas))
	copy(out, d.alphas)
	return out
}

// Sample 配置新切片並抽一筆。熱路徑請改用 SampleTo 重用緩衝區。
func (d *Dirichlet) Sample(c *core.Core) []float64 {
	out := make([]float64, d.Dim())
	d.SampleTo(c, out)
	return out
}

func (d *Dirichlet) SampleTo(c *core.Core, out []float64) {
	if len(out) != d.Dim() {
		return
	}
	if d.useLog {
		d.sampleLog(c, out)
		return
	}

	sum := 0.0
	for i, g := range d.gammas {
		out[i] = g.Sample(c)
		sum += out[i]
	}
	if sum == 0 {
		// 全分量同時 underflow；改走對數域重抽這一筆
		d.sampleLog(c, out)
		return
	}
	for i := range out {
		out[i] /= sum
	}
}

// sampleLog 在對數域抽樣後以 softmax 歸一化。
// 各 ln X_i 皆有限，softmax 先減最大值，exp 後總和至少為 1。
func (d *Dirichlet) sampleLog(c *core.Core, out []float64) {
	maxL := math.Inf(-1)
	for i := range out {
		l := math.Log(d.boosts[i].Sample(c)) + math.Log(c.Float64O())*d.invAlphas[i]
		out[i] = l
		if l > maxL {
			maxL = l
		}
	}
	sum := 0.0
	for i := range out {
		out[i] = math.Exp(out[i] - maxL)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
}
