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

// Lab server 入口：提供 /v1/sample、/v1/stat、/v1/catalog。
// 正式部署建議另建 scaffold 專案並使用 ModeProd。
package main

import (
	"flag"

	"github.com/zintix-labs/distlab/server"
	"github.com/zintix-labs/distlab/server/logger"
	"github.com/zintix-labs/distlab/server/svrcfg"
)

func main() {
	server.Run(loadConfigFromFlags())
}

type config struct {
	LogMode   string
	SampleCap int64
}

func loadConfigFromFlags() *svrcfg.SvrCfg {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.Int64Var(&cfg.SampleCap, "cap", 0, "per-request sample cap (0 = default)")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	return &svrcfg.SvrCfg{
		Log:       log,
		SampleCap: cfg.SampleCap,
	}
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
