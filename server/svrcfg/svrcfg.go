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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/server/logger"
)

const (
	// DefaultSamples 為請求未指定 samples 時的抽樣筆數。
	DefaultSamples int64 = 100_000
	// MaxSamples 為單一請求允許的抽樣上限，for 資源管理。
	MaxSamples int64 = 10_000_000
)

type SvrCfg struct {
	Log *slog.Logger
	// SampleCap 為單一請求的抽樣上限；零值補 MaxSamples。
	SampleCap int64
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.New(errs.KindDegenerate, "nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	// 1 <= sc.SampleCap <= MaxSamples
	if sc.SampleCap <= 0 {
		sc.SampleCap = MaxSamples
	}
	sc.SampleCap = min(MaxSamples, sc.SampleCap)
	return nil
}
