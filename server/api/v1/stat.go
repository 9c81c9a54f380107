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
	"net/http"
	"time"

	"github.com/zintix-labs/distlab/scenario"
	"github.com/zintix-labs/distlab/server/httperr"
	"github.com/zintix-labs/distlab/stats"
)

// Stat 抽樣並回傳統計報表（summary / shape / dist）。
// 只接受標量情境；多維情境請改用 /v1/sample 自行後處理。
func (h *LabHandler) Stat(w http.ResponseWriter, q *http.Request) {
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
	s, err := scenario.Build(sc)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 直方圖為選配，省略則報表不含落點分布
	var hist *stats.Histogram
	if hs := sc.Histogram; hs != nil {
		hist, err = stats.NewLinearHistogram(hs.Lo, hs.Hi, hs.Bins)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
	}

	n := h.clampSamples(sc.Samples)

	// 請求解析完成，設置超時 context
	ctx, cancel := context.WithTimeout(q.Context(), 30*time.Second)
	defer cancel()

	c := newCore(sc.Seed)
	col := stats.NewCollector(sc.Name, hist)
	for i := int64(0); i < n; i++ {
		if i%ctxCheckBatch == 0 {
			if err := ctx.Err(); err != nil {
				httperr.Errs(w, err)
				return
			}
		}
		col.Observe(s.Sample(c))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(col.Report()); err != nil {
		httperr.Log(h.cfg.Log, "encode stat response failed", err)
		return
	}
}
