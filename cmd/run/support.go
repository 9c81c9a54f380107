package main

import (
	"crypto/rand"
	"flag"
	"log"
	"math"
	"math/big"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zintix-labs/distlab"
	"github.com/zintix-labs/distlab/scenario"
	"github.com/zintix-labs/distlab/stats"
)

var cfg *config = new(config)

type config struct {
	file      string
	samples   int64
	seed      uint64
	yamlOut   bool
	jsonOut   bool
	pprofmode string
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.StringVar(&cfg.file, "f", "", "scenario yaml file (required)")
	flag.Int64Var(&cfg.samples, "n", 0, "override scenario samples")
	flag.Uint64Var(&cfg.seed, "seed", 0, "override scenario seed (0 = auto)")
	flag.BoolVar(&cfg.yamlOut, "yaml", false, "render report as yaml instead of table")
	flag.BoolVar(&cfg.jsonOut, "json", false, "render report as json instead of table")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	if cfg.file == "" {
		log.Fatal("scenario file is required: -f scenario.yaml")
	}
}

// 這裡解析並分支要執行的情境
func executeLab() {
	data, err := os.ReadFile(cfg.file)
	if err != nil {
		log.Fatal(err)
	}
	sc, err := scenario.FromYAML(data)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.samples > 0 {
		sc.Samples = cfg.samples
	}
	if cfg.seed != 0 {
		sc.Seed = cfg.seed
	} else if sc.Seed == 0 {
		// 未指定種子：用加密隨機來源生一個，並印出以便重現
		n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(math.MaxUint64))
		if err != nil {
			log.Fatal(err)
		}
		sc.Seed = n.Uint64()
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)
	p.Printf("%s[DIST:%s] [SAMPLES:%d] [SEED:%d]%s\n", green, sc.Name, sc.Samples, sc.Seed, reset)

	if scenario.IsMulti(sc.Name) {
		reports, used, err := distlab.RunScenarioMulti(sc, true)
		if err != nil {
			log.Fatal(err)
		}
		for _, r := range reports {
			writeReport(r, used)
		}
		return
	}

	report, used, err := distlab.RunScenario(sc, true)
	if err != nil {
		log.Fatal(err)
	}
	writeReport(report, used)
}

func writeReport(r *stats.StatReport, used time.Duration) {
	switch {
	case cfg.jsonOut:
		if err := r.WriteWith(os.Stdout, &stats.JsonStatReportRender{}); err != nil {
			log.Fatal(err)
		}
	case cfg.yamlOut:
		if err := r.WriteWith(os.Stdout, &stats.YAMLStatReportRender{}); err != nil {
			log.Fatal(err)
		}
	default:
		r.StdOut(used)
	}
}
