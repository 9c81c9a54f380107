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

// Package scenario 定義「取樣情境」的宣告式設定：
// 要抽哪個分布、帶什麼參數、抽多少筆、用什麼種子、要不要做落點統計。
//
// 情境可由 YAML 或 JSON 載入，CLI 與 HTTP 伺服端共用同一套解碼與
// 名稱註冊表。
package scenario

import (
	"encoding/json"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/zintix-labs/distlab/errs"
)

// Scenario 單一取樣情境。
type Scenario struct {
	// Name 為分布名稱（小寫 snake_case，見 Names()）
	Name string `yaml:"name" json:"name"`
	// Params 為各分布的標量參數（參數名依分布而異）
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
	// Alphas 為向量參數，目前僅 dirichlet 使用
	Alphas []float64 `yaml:"alphas,omitempty" json:"alphas,omitempty"`
	// Samples 為抽樣筆數；零值由執行端補預設
	Samples int64 `yaml:"samples,omitempty" json:"samples,omitempty"`
	// Seed 為 PRNG 種子；兩次執行相同情境會得到相同結果
	Seed uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	// Histogram 指定落點統計的分桶；省略則不統計落點
	Histogram *HistogramSpec `yaml:"histogram,omitempty" json:"histogram,omitempty"`
}

// HistogramSpec 等距直方圖設定。
type HistogramSpec struct {
	Lo   float64 `yaml:"lo" json:"lo"`
	Hi   float64 `yaml:"hi" json:"hi"`
	Bins int     `yaml:"bins" json:"bins"`
}

// FromYAML 解碼 YAML 情境並做基本檢查。
func FromYAML(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errs.Wrap(err, "scenario: failed to unmarshal yaml")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// FromJSON 解碼 JSON 情境並做基本檢查。
func FromJSON(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, errs.Wrap(err, "scenario: failed to unmarshal json")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// validate 只檢查情境本身的結構；分布參數的數學驗證交給建構器。
func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return errs.Degeneratef("scenario: name is required")
	}
	if sc.Samples < 0 {
		return errs.OutOfDomainf("scenario: samples must be non-negative, got %d", sc.Samples)
	}
	return nil
}

// param 取出必要參數；缺漏回報 Degenerate。
func (sc *Scenario) param(key string) (float64, error) {
	v, ok := sc.Params[key]
	if !ok {
		return 0, errs.Degeneratef("scenario %q: missing parameter %q", sc.Name, key)
	}
	return v, nil
}

// paramOr 取出可省略的參數，缺漏時回傳預設值。
func (sc *Scenario) paramOr(key string, def float64) float64 {
	if v, ok := sc.Params[key]; ok {
		return v
	}
	return def
}

// uparam 取出必要的非負整數參數（以 float64 承載，需為整數值）。
func (sc *Scenario) uparam(key string) (uint64, error) {
	v, err := sc.param(key)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 || v != math.Trunc(v) || v >= math.MaxUint64 {
		return 0, errs.OutOfDomainf("scenario %q: parameter %q must be a non-negative integer, got %v", sc.Name, key, v)
	}
	return uint64(v), nil
}
