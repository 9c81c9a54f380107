package main

import "github.com/zintix-labs/distlab/sdk/perf"

// makefile runner
func main() {
	bindVar()
	perf.RunPProf(executeLab, cfg.pprofmode)
}
