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
	"bytes"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
	"github.com/zintix-labs/distlab/sdk/distr"
)

func TestMomentsAgainstKnownValues(t *testing.T) {
	m := NewMoments()
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		m.Add(x)
	}
	if m.N() != 8 {
		t.Fatalf("count mismatch: %d", m.N())
	}
	if got := m.Mean(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("mean mismatch: %v", got)
	}
	// 母體變異 4，樣本變異 (n-1 分母) = 32/7
	if got := m.Variance(); math.Abs(got-32.0/7.0) > 1e-12 {
		t.Fatalf("variance mismatch: %v", got)
	}
	if m.Min() != 2 || m.Max() != 9 {
		t.Fatalf("min/max mismatch: %v %v", m.Min(), m.Max())
	}
}

func TestMomentsOnNormalStream(t *testing.T) {
	c := core.New(core.Default().New(31))
	d, err := distr.NewNormal(-1, 2)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMoments()
	const n = 60000
	for i := 0; i < n; i++ {
		m.Add(d.Sample(c))
	}
	if got := m.Mean(); math.Abs(got+1) > 0.05 {
		t.Fatalf("mean drifted: %v", got)
	}
	if got := m.StdDev(); math.Abs(got-2) > 0.05 {
		t.Fatalf("std drifted: %v", got)
	}
	if got := m.Skewness(); math.Abs(got) > 0.1 {
		t.Fatalf("skewness drifted: %v", got)
	}
	if got := m.Kurtosis(); math.Abs(got) > 0.2 {
		t.Fatalf("kurtosis drifted: %v", got)
	}
	ci := m.MeanCI(0.95)
	if ci.Lo >= ci.Hi || ci.Lo > -1 && ci.Hi < -1 {
		t.Fatalf("suspicious CI: %+v", ci)
	}
}

func TestQuantiles(t *testing.T) {
	xs := make([]float64, 1000)
	for i := range xs {
		xs[i] = float64(i) // 0..999
	}
	qs, err := Quantiles(xs, []float64{0.5, 0.9})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(qs[0]-500) > 2 || math.Abs(qs[1]-900) > 2 {
		t.Fatalf("quantiles drifted: %v", qs)
	}

	if _, err := Quantiles(nil, []float64{0.5}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("empty samples: expected degenerate, got %v", err)
	}
	if _, err := Quantiles(xs, []float64{1.5}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("q beyond 1: expected out-of-domain, got %v", err)
	}
}

func TestKolmogorovSmirnovAcceptsMatchingDistribution(t *testing.T) {
	c := core.New(core.Default().New(32))
	d, err := distr.NewExp(2)
	if err != nil {
		t.Fatal(err)
	}
	xs := make([]float64, 5000)
	for i := range xs {
		xs[i] = d.Sample(c)
	}
	ref := distuv.Exponential{Rate: 2}
	res, err := KolmogorovSmirnov(xs, ref.CDF)
	if err != nil {
		t.Fatal(err)
	}
	if res.PValue < 0.001 {
		t.Fatalf("matching distribution rejected: D=%v p=%v", res.Stat, res.PValue)
	}
}

func TestKolmogorovSmirnovRejectsWrongDistribution(t *testing.T) {
	c := core.New(core.Default().New(33))
	d, err := distr.NewExp(2)
	if err != nil {
		t.Fatal(err)
	}
	xs := make([]float64, 5000)
	for i := range xs {
		xs[i] = d.Sample(c)
	}
	wrong := distuv.Normal{Mu: 0, Sigma: 1}
	res, err := KolmogorovSmirnov(xs, wrong.CDF)
	if err != nil {
		t.Fatal(err)
	}
	if res.PValue > 1e-6 {
		t.Fatalf("wrong distribution not rejected: D=%v p=%v", res.Stat, res.PValue)
	}
}

func TestHistogramPlacement(t *testing.T) {
	h, err := NewHistogram([]float64{0, 1, 2, 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-3, 0, 0.5, 1, 1.5, 4.9, 5, 100} {
		h.Add(x)
	}
	counts := h.Counts()
	// [under, [0,1), [1,2), [2,5), over]
	want := []int64{1, 2, 2, 1, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("bucket %d count mismatch: got %v want %v", i, counts, want)
		}
	}
	if h.Total() != 8 {
		t.Fatalf("total mismatch: %d", h.Total())
	}
	labels := h.Labels()
	if len(labels) != len(counts) {
		t.Fatalf("labels/counts length mismatch")
	}
	if !strings.Contains(labels[0], "-inf") || !strings.Contains(labels[len(labels)-1], "+inf") {
		t.Fatalf("edge labels missing infinities: %v", labels)
	}
}

func TestHistogramValidation(t *testing.T) {
	if _, err := NewHistogram([]float64{1}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("single edge: expected degenerate, got %v", err)
	}
	if _, err := NewHistogram([]float64{1, 1}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("flat edges: expected out-of-domain, got %v", err)
	}
	if _, err := NewHistogram([]float64{0, math.NaN()}); errs.KindOf(err) != errs.KindNonFinite {
		t.Fatalf("nan edge: expected non-finite, got %v", err)
	}
	if _, err := NewLinearHistogram(0, 10, 0); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("zero bins: expected degenerate, got %v", err)
	}
}

func TestCollectorReportRoundTrip(t *testing.T) {
	c := core.New(core.Default().New(34))
	d, err := distr.NewGamma(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := NewLinearHistogram(0, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	col := NewCollector("gamma(3,2)", hist)
	const n = 20000
	for i := 0; i < n; i++ {
		col.Observe(d.Sample(c))
	}
	r := col.Report()

	if r.Summary.Samples != n {
		t.Fatalf("sample count mismatch: %d", r.Summary.Samples)
	}
	if math.Abs(r.Summary.Mean-6) > 0.2 {
		t.Fatalf("mean drifted: %v", r.Summary.Mean)
	}
	if len(r.Shape.Quantiles) == 0 {
		t.Fatalf("missing quantiles")
	}
	if r.Dist == nil || len(r.Dist.Count) != hist.Bins()+2 {
		t.Fatalf("missing or malformed dist report")
	}

	var jsonBuf bytes.Buffer
	if err := r.WriteWith(&jsonBuf, &JsonStatReportRender{}); err != nil {
		t.Fatalf("json render failed: %v", err)
	}
	if !strings.Contains(jsonBuf.String(), "gamma(3,2)") {
		t.Fatalf("json output missing name")
	}

	var yamlBuf bytes.Buffer
	if err := r.WriteWith(&yamlBuf, &YAMLStatReportRender{}); err != nil {
		t.Fatalf("yaml render failed: %v", err)
	}
	if !strings.Contains(yamlBuf.String(), "Samples:") {
		t.Fatalf("yaml output missing field")
	}
}
