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

// defaultPertShape 傳統 PERT 的平滑參數。
const defaultPertShape = 4.0

// Pert 修正 PERT 分布：把 (min, mode, max) 映射為 Beta 再做仿射變換。
//
//	alpha = 1 + shape·(mode-min)/(max-min)
//	beta  = 1 + shape·(max-mode)/(max-min)
//	X = min + (max-min)·Beta(alpha, beta)
type Pert struct {
	min  float64
	span float64
	beta *Beta
}

// NewPert 建立 shape = 4 的傳統 PERT 分布。
func NewPert(min, mode, max float64) (*Pert, error) {
	return NewPertWithShape(min, mode, max, defaultPertShape)
}

// NewPertWithShape 建立自訂平滑參數的 PERT 分布。
// 要求 min < mode < max 且 shape > 0。
func NewPertWithShape(min, mode, max, shape float64) (*Pert, error) {
	if !isFinite(min) || !isFinite(mode) || !isFinite(max) {
		return nil, errs.NonFinitef("pert: parameters must be finite, got [%v, %v, %v]", min, mode, max)
	}
	if math.IsNaN(shape) {
		return nil, errs.NonFinitef("pert: shape must be finite, got NaN")
	}
	if !(max > min) {
		return nil, errs.OutOfDomainf("pert: max must be > min, got [%v, %v]", min, max)
	}
	if !(mode > min && mode < max) {
		return nil, errs.OutOfDomainf("pert: mode must be in (min, max), got mode=%v range=(%v, %v)", mode, min, max)
	}
	if !(shape > 0) || math.IsInf(shape, 0) {
		return nil, errs.OutOfDomainf("pert: shape must be positive finite, got %v", shape)
	}

	span := max - min
	alpha := 1 + shape*(mode-min)/span
	betaP := 1 + shape*(max-mode)/span
	b, err := NewBeta(alpha, betaP)
	if err != nil {
		return nil, errs.Wrap(err, "pert: derived beta")
	}
	return &Pert{min: min, span: span, beta: b}, nil
}

func (d *Pert) Sample(c *core.Core) float64 {
	return d.min + d.span*d.beta.Sample(c)
}
