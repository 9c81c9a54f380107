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

package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// 分位數報表固定輸出的位置。
var reportQuantiles = []float64{0.01, 0.10, 0.25, 0.50, 0.75, 0.90, 0.99}

// 保留樣本上限：分位數需要原始樣本，超過上限後停止保留，
// 動差與直方圖照常累積。
const maxRetainedSamples = 1 << 20

// Collector 累積一條取樣流的統計量。
//
// 紀錄時只做 Welford 遞推與直方圖定位，重量級計算（分位數、CI）
// 全部延後到 Report()。非併發安全，一條取樣流配一個 Collector。
type Collector struct {
	name    string
	moments *Moments
	hist    *Histogram
	samples []float64
	dropped bool
}

// NewCollector 建立統計收集器。hist 可為 nil（不做落點統計）。
func NewCollector(name string, hist *Histogram) *Collector {
	return &Collector{
		name:    name,
		moments: NewMoments(),
		hist:    hist,
		samples: make([]float64, 0, 1024),
	}
}

// Observe 累積一筆觀測值。
func (c *Collector) Observe(x float64) {
	c.moments.Add(x)
	if c.hist != nil {
		c.hist.Add(x)
	}
	if len(c.samples) < maxRetainedSamples {
		c.samples = append(c.samples, x)
	} else {
		c.dropped = true
	}
}

// Moments 回傳底層動差累積器（唯讀使用）。
func (c *Collector) Moments() *Moments { return c.moments }

// Report 將累積結果整理為統計報告。
func (c *Collector) Report() *StatReport {
	r := &StatReport{
		Summary: &SummaryReport{
			Name:    c.name,
			Samples: c.moments.N(),
			Mean:    c.moments.Mean(),
			MeanCI:  c.moments.MeanCI(0.95),
			Std:     c.moments.StdDev(),
			Min:     c.moments.Min(),
			Max:     c.moments.Max(),
		},
		Shape: &ShapeReport{
			Skewness: c.moments.Skewness(),
			Kurtosis: c.moments.Kurtosis(),
		},
	}
	if mean := r.Summary.Mean; mean != 0 {
		r.Summary.Cv = r.Summary.Std / mean
	}

	if len(c.samples) > 0 {
		qs, err := Quantiles(c.samples, reportQuantiles)
		if err == nil {
			r.Shape.Quantiles = make([]QuantilePoint, len(qs))
			for i, v := range qs {
				r.Shape.Quantiles[i] = QuantilePoint{Q: reportQuantiles[i], Value: v}
			}
			r.Shape.QuantileTruncated = c.dropped
		}
	}

	if c.hist != nil {
		r.Dist = &DistReport{
			Bucket: c.hist.Labels(),
			Count:  c.hist.Counts(),
			Freq:   c.hist.Freqs(),
		}
	}
	return r
}

// StatReport 取樣統計報告。
type StatReport struct {
	Summary *SummaryReport `json:"Summary"`
	Shape   *ShapeReport   `json:"Shape"`
	Dist    *DistReport    `json:"Dist,omitempty"`
}

// SummaryReport 核心彙總。
type SummaryReport struct {
	Name    string  `json:"Name"`
	Samples int64   `json:"Samples"`
	Mean    float64 `json:"Mean"`
	MeanCI  CI      `json:"MeanCI"`
	Std     float64 `json:"Std"`
	Cv      float64 `json:"Cv"`
	Min     float64 `json:"Min"`
	Max     float64 `json:"Max"`
}

// ShapeReport 形狀統計：偏度、峰度與分位數。
type ShapeReport struct {
	Skewness float64 `json:"Skewness"`
	Kurtosis float64 `json:"Kurtosis"`
	// 分位數以保留樣本計算；樣本數超過保留上限時
	// QuantileTruncated 為 true，分位數僅依前段樣本
	Quantiles         []QuantilePoint `json:"Quantiles,omitempty"`
	QuantileTruncated bool            `json:"QuantileTruncated,omitempty"`
}

// QuantilePoint 單一分位數點。
type QuantilePoint struct {
	Q     float64 `json:"Q"`
	Value float64 `json:"Value"`
}

// DistReport 直方圖落點統計。
type DistReport struct {
	Bucket []string  `json:"Bucket"`
	Count  []int64   `json:"Count"`
	Freq   []float64 `json:"Freq"`
}

// WriteWith 以指定的渲染器輸出報告。
func (s *StatReport) WriteWith(w io.Writer, rep StatReportRender) error {
	return rep.Write(w, s)
}

// StdOut 印出耗時資訊與彙總表格。
func (s *StatReport) StdOut(ut time.Duration) {
	formatDuration(ut, s.Summary.Samples)
	sk, sm := s.fmtBasic()
	str := fmtTable(s.Summary.Name, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, samples int64) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(samples) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsps : %d samples/sec\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nsps : %d samples/sec\n", m, s, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsps : %d samples/sec\n", h, m, s, sps)
}

func (s *StatReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Distribution": p.Sprintf("%s", s.Summary.Name),
		"Samples":      p.Sprintf("%d", s.Summary.Samples),
		"Mean":         p.Sprintf("%.6g", s.Summary.Mean),
		"Mean 95% CI":  p.Sprintf("[%.6g, %.6g]", s.Summary.MeanCI.Lo, s.Summary.MeanCI.Hi),
		"Std":          p.Sprintf("%.6g", s.Summary.Std),
		"CV":           p.Sprintf("%.4f", s.Summary.Cv),
		"Skewness":     p.Sprintf("%.4f", s.Shape.Skewness),
		"Kurtosis":     p.Sprintf("%.4f", s.Shape.Kurtosis),
		"Min":          p.Sprintf("%.6g", s.Summary.Min),
		"Max":          p.Sprintf("%.6g", s.Summary.Max),
	}
	keys := []string{"Distribution", "Samples", "Mean", "Mean 95% CI", "Std", "CV", "Skewness", "Kurtosis", "Min", "Max"}

	for _, qp := range s.Shape.Quantiles {
		k := fmt.Sprintf("P%02.0f", qp.Q*100)
		basic[k] = p.Sprintf("%.6g", qp.Value)
		keys = append(keys, k)
	}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
