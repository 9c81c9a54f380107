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
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/distlab/scenario"
	"github.com/zintix-labs/distlab/sdk/core"
)

// CatalogEntry 單一分布的目錄資訊。
type CatalogEntry struct {
	Name         string `json:"name"`
	Multivariate bool   `json:"multivariate"`
}

// Catalog 回傳所有可用的分布名稱（字典序）。
func Catalog(w http.ResponseWriter, q *http.Request) {
	names := scenario.Names()
	entries := make([]CatalogEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, CatalogEntry{
			Name:         name,
			Multivariate: scenario.IsMulti(name),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// newCore 以種子建 PRNG；兩次相同種子會得到相同序列。
func newCore(seed uint64) *core.Core {
	return core.New(core.Default().New(seed))
}
