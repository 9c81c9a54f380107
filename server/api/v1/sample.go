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

package v1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/zintix-labs/distlab/corefmt"
	"github.com/zintix-labs/distlab/scenario"
	"github.com/zintix-labs/distlab/server/httperr"
	"github.com/zintix-labs/distlab/server/svrcfg"
)

// ============================================================
// ** LabHandler **
// ============================================================

// LabHandler 持有 server 設定，服務 /v1/sample 與 /v1/stat。
type LabHandler struct {
	cfg *svrcfg.SvrCfg
}

func NewLabHandler(cfg *svrcfg.SvrCfg) *LabHandler {
	return &LabHandler{cfg: cfg}
}

// SampleResponse 標量情境回傳 Samples；多維情境回傳 Dim + Points。
// State 為抽完後的 PRNG 快照（base64），可用於審計或接續抽樣。
type SampleResponse struct {
	Name    string      `json:"name"`
	Seed    uint64      `json:"seed"`
	Samples []float64   `json:"samples,omitempty"`
	Dim     int         `json:"dim,omitempty"`
	Points  [][]float64 `json:"points,omitempty"`
	State   string      `json:"state,omitempty"`
}

// 抽樣是 CPU-bound，抽樣迴圈每個 batch 檢查一次 ctx，
// 讓超時/斷線的請求可以提早結束。
const ctxCheckBatch = 1 << 16

func (h *LabHandler) Sample(w http.ResponseWriter, q *http.Request) {
	// 請求方法、結構體校驗
	if q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sc, err := decodeScenario(q.Body)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n := h.clampSamples(sc.Samples)

	// 請求解析完成，設置超時 context
	ctx, cancel := context.WithTimeout(q.Context(), 30*time.Second)
	defer cancel()

	c := newCore(sc.Seed)
	resp := &SampleResponse{Name: sc.Name, Seed: sc.Seed}

	if scenario.IsMulti(sc.Name) {
		m, err := scenario.BuildMulti(sc)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		resp.Dim = m.Dim()
		resp.Points = make([][]float64, 0, n)
		for i := int64(0); i < n; i++ {
			if i%ctxCheckBatch == 0 {
				if err := ctx.Err(); err != nil {
					httperr.Errs(w, err)
					return
				}
			}
			pt := make([]float64, m.Dim())
			m.SampleTo(c, pt)
			resp.Points = append(resp.Points, pt)
		}
	} else {
		s, err := scenario.Build(sc)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		resp.Samples = make([]float64, 0, n)
		for i := int64(0); i < n; i++ {
			if i%ctxCheckBatch == 0 {
				if err := ctx.Err(); err != nil {
					httperr.Errs(w, err)
					return
				}
			}
			resp.Samples = append(resp.Samples, s.Sample(c))
		}
	}

	if snap, err := c.Snapshot(); err == nil {
		resp.State = corefmt.EncodeBase64(snap)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		httperr.Log(h.cfg.Log, "encode sample response failed", err)
		return
	}
}

// ============================================================
// ** 共用小工具 **
// ============================================================

func decodeScenario(body io.Reader) (*scenario.Scenario, error) {
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, err
	}
	return scenario.FromJSON(data)
}

func (h *LabHandler) clampSamples(n int64) int64 {
	if n <= 0 {
		n = svrcfg.DefaultSamples
	}
	return min(n, h.cfg.SampleCap)
}
