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

// Package distlab 提供分布取樣實驗室的「組裝入口（assembler）」與「運行入口（runtime entry）」。
//
// 它把三個地基組合起來：
//  1. sdk/core：亂數核心（PCG64），保證可重現（reproducible）與可審計（auditable）。
//  2. sdk/distr：分布取樣器（建構時驗證、取樣不失敗）。
//  3. stats：單遍統計彙總與報表輸出。
//
// 典型使用情境：
//   - CLI（cmd/run）：載入 YAML 情境，大量抽樣並印出統計報表。
//   - 後端服務（cmd/svr）：以 HTTP 介面服務 /v1/sample、/v1/stat、/v1/catalog。
//   - 程式庫：直接使用 sdk/distr + sdk/core 組合自己的實驗流程。
package distlab

import (
	"crypto/rand"
	"io"
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/scenario"
	"github.com/zintix-labs/distlab/sdk/core"
	"github.com/zintix-labs/distlab/stats"
)

// Version 為模組版本，釋出時更新。
const Version = "0.3.0"

// defaultSamples 為情境未指定 samples 時的抽樣筆數。
const defaultSamples int64 = 100_000

// NewCore 以指定種子建立預設 PRNG（PCG64）的 Core。
// 相同種子必定產生相同序列。
func NewCore(seed uint64) *core.Core {
	return core.New(core.Default().New(seed))
}

// NewCoreAuto 以加密隨機來源產生種子建立 Core，並回傳所用的種子。
// 適合「我不在乎種子、但想事後重現」的場景。
func NewCoreAuto() (*core.Core, uint64) {
	n, _ := rand.Int(rand.Reader, new(big.Int).SetUint64(math.MaxUint64))
	seed := n.Uint64()
	return NewCore(seed), seed
}

// RunScenario 執行一個標量取樣情境：建構取樣器、抽樣、彙總。
// 回傳統計報表與抽樣耗時。showpb 控制是否顯示進度條。
func RunScenario(sc *scenario.Scenario, showpb bool) (*stats.StatReport, time.Duration, error) {
	s, err := scenario.Build(sc)
	if err != nil {
		return nil, 0, err
	}

	var hist *stats.Histogram
	if hs := sc.Histogram; hs != nil {
		hist, err = stats.NewLinearHistogram(hs.Lo, hs.Hi, hs.Bins)
		if err != nil {
			return nil, 0, err
		}
	}

	n := sc.Samples
	if n <= 0 {
		n = defaultSamples
	}
	if n > int64(math.MaxInt) {
		return nil, 0, errs.Overflowf("scenario %q: samples %d exceeds platform int", sc.Name, n)
	}

	c := NewCore(sc.Seed)
	col := stats.NewCollector(sc.Name, hist)

	bar := pb.StartNew(int(n))
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for i := int64(0); i < n; i++ {
		col.Observe(s.Sample(c))
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	return col.Report(), used, nil
}

// RunScenarioMulti 執行一個多維取樣情境，對每個維度各自彙總。
// 回傳每維度一份統計報表（名稱帶維度索引）與抽樣耗時。
func RunScenarioMulti(sc *scenario.Scenario, showpb bool) ([]*stats.StatReport, time.Duration, error) {
	m, err := scenario.BuildMulti(sc)
	if err != nil {
		return nil, 0, err
	}

	n := sc.Samples
	if n <= 0 {
		n = defaultSamples
	}
	if n > int64(math.MaxInt) {
		return nil, 0, errs.Overflowf("scenario %q: samples %d exceeds platform int", sc.Name, n)
	}

	c := NewCore(sc.Seed)
	dim := m.Dim()
	cols := make([]*stats.Collector, dim)
	for d := 0; d < dim; d++ {
		cols[d] = stats.NewCollector(dimName(sc.Name, d), nil)
	}

	bar := pb.StartNew(int(n))
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	out := make([]float64, dim)
	for i := int64(0); i < n; i++ {
		m.SampleTo(c, out)
		for d := 0; d < dim; d++ {
			cols[d].Observe(out[d])
		}
		bar.Increment()
	}
	used := time.Since(bar.StartTime())
	bar.Finish()

	reports := make([]*stats.StatReport, dim)
	for d := 0; d < dim; d++ {
		reports[d] = cols[d].Report()
	}
	return reports, used, nil
}

func dimName(name string, d int) string {
	return name + "[" + strconv.Itoa(d) + "]"
}
