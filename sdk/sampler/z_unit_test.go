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

package sampler

import (
	"math"
	"slices"
	"testing"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

func newTestCore(seed uint64) *core.Core {
	return core.New(core.Default().New(seed))
}

func TestAliasTableValidation(t *testing.T) {
	if _, err := NewWeightedAliasTable([]float64{}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("empty list: expected degenerate, got %v", err)
	}
	if _, err := NewWeightedAliasTable([]float64{1, -2}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("negative weight: expected out-of-domain, got %v", err)
	}
	if _, err := NewWeightedAliasTable([]float64{0, 0, 0}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("all-zero weights: expected degenerate, got %v", err)
	}
	if _, err := NewWeightedAliasTable([]float64{1, math.NaN()}); errs.KindOf(err) != errs.KindNonFinite {
		t.Fatalf("nan weight: expected non-finite, got %v", err)
	}
	if _, err := NewWeightedAliasTable([]float64{math.MaxFloat64, math.MaxFloat64}); errs.KindOf(err) != errs.KindOverflow {
		t.Fatalf("huge weights: expected overflow, got %v", err)
	}
}

func TestAliasTableUniformFrequencies(t *testing.T) {
	c := newTestCore(21)
	at, err := NewWeightedAliasTable([]int{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	counts := make([]int, 4)
	const n = 40000
	for i := 0; i < n; i++ {
		idx := at.Pick(c)
		if idx < 0 || idx >= 4 {
			t.Fatalf("index %d out of range", idx)
		}
		counts[idx]++
	}
	for i, cnt := range counts {
		if math.Abs(float64(cnt)/n-0.25) > 0.02 {
			t.Fatalf("slot %d frequency drifted: %d/%d", i, cnt, n)
		}
	}
}

func TestAliasTableSkewAndZeroWeight(t *testing.T) {
	c := newTestCore(22)
	at, err := NewWeightedAliasTable([]float64{0.1, 0, 9.9})
	if err != nil {
		t.Fatal(err)
	}
	counts := make([]int, 3)
	const n = 40000
	for i := 0; i < n; i++ {
		counts[at.Pick(c)]++
	}
	if counts[1] != 0 {
		t.Fatalf("zero-weight index was picked %d times", counts[1])
	}
	if f := float64(counts[2]) / n; math.Abs(f-0.99) > 0.01 {
		t.Fatalf("dominant index frequency drifted: %v", f)
	}
}

func TestAliasTableWeightReconstruction(t *testing.T) {
	src := []float64{3, 0, 5, 1.5, 0.25}
	at, err := NewWeightedAliasTable(src)
	if err != nil {
		t.Fatal(err)
	}
	got := at.Weights()
	if len(got) != len(src) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(src))
	}
	for i := range src {
		if math.Abs(got[i]-src[i]) > 1e-9*math.Max(1, src[i]) {
			t.Fatalf("weight[%d] reconstructed as %v, want %v", i, got[i], src[i])
		}
	}
}

func TestWeightTreeValidation(t *testing.T) {
	if _, err := NewWeightedTreeIndex([]float64{}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("empty list: expected degenerate, got %v", err)
	}
	if _, err := NewWeightedTreeIndex([]float64{-1, 2}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("negative weight: expected out-of-domain, got %v", err)
	}
}

func TestWeightTreeAggregateInvariant(t *testing.T) {
	w, err := NewWeightedTreeIndex([]float64{2, 0, 3, 5, 1, 4, 7})
	if err != nil {
		t.Fatal(err)
	}
	if total := w.Total(); math.Abs(total-22) > 1e-12 {
		t.Fatalf("total mismatch: %v", total)
	}

	if err := w.Update(3, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.Update(0, 10); err != nil {
		t.Fatal(err)
	}
	if total := w.Total(); math.Abs(total-25) > 1e-12 {
		t.Fatalf("total after updates mismatch: %v", total)
	}
	if got := w.Weight(3); got != 0 {
		t.Fatalf("weight[3] should be 0, got %v", got)
	}

	if err := w.Update(7, 1); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("out-of-range update: expected out-of-domain, got %v", err)
	}
	if err := w.Update(1, math.NaN()); errs.KindOf(err) != errs.KindNonFinite {
		t.Fatalf("nan update: expected non-finite, got %v", err)
	}
}

func TestWeightTreePickTracksUpdates(t *testing.T) {
	c := newTestCore(23)
	w, err := NewWeightedTreeIndex([]float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	// 把質量全部集中到索引 2
	for _, i := range []int{0, 1, 3} {
		if err := w.Update(i, 0); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 200; i++ {
		if got := w.Pick(c); got != 2 {
			t.Fatalf("expected index 2, got %d", got)
		}
	}

	if err := w.Update(2, 0); err != nil {
		t.Fatal(err)
	}
	if got := w.Pick(c); got != -1 {
		t.Fatalf("all-zero tree should return -1, got %d", got)
	}
}

func TestWeightTreeFrequencies(t *testing.T) {
	c := newTestCore(24)
	w, err := NewWeightedTreeIndex([]int{1, 3, 6})
	if err != nil {
		t.Fatal(err)
	}
	counts := make([]int, 3)
	const n = 30000
	for i := 0; i < n; i++ {
		counts[w.Pick(c)]++
	}
	want := []float64{0.1, 0.3, 0.6}
	for i := range want {
		if math.Abs(float64(counts[i])/n-want[i]) > 0.02 {
			t.Fatalf("index %d frequency drifted: %d/%d want %v", i, counts[i], n, want[i])
		}
	}
}

func TestLUTBuildAndPick(t *testing.T) {
	c := newTestCore(25)
	lut, err := BuildLUT([]int{3, 5, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(lut) != 8 {
		t.Fatalf("expected expanded length 8, got %d", len(lut))
	}
	for i := 0; i < 1000; i++ {
		idx := lut.Pick(c)
		if idx == 2 {
			t.Fatalf("zero-weight index picked")
		}
		if idx != 0 && idx != 1 {
			t.Fatalf("unexpected index %d", idx)
		}
	}

	if _, err := BuildLUT([]int{}); errs.KindOf(err) != errs.KindDegenerate {
		t.Fatalf("empty list: expected degenerate, got %v", err)
	}
	if _, err := BuildLUT([]int{-1, 2}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("negative weight: expected out-of-domain, got %v", err)
	}
	if _, err := BuildLUT([]uint64{math.MaxUint64 / 2, math.MaxUint64/2 + 10}); errs.KindOf(err) != errs.KindOverflow {
		t.Fatalf("overflow: expected overflow kind, got %v", err)
	}
}

func TestWeightedShuffleIsPermutation(t *testing.T) {
	c := newTestCore(26)
	weights := []float64{5, 0, 2.5, 1, 0.01}
	order, err := WeightedShuffle(c, weights)
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != len(weights) {
		t.Fatalf("expected full permutation, got %d entries", len(order))
	}
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("not a permutation: %v", order)
		}
	}
	if order[len(order)-1] != 1 {
		t.Fatalf("zero-weight index must sort last, got %v", order)
	}

	if _, err := WeightedShuffle(c, []float64{1, -1}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("negative weight: expected out-of-domain, got %v", err)
	}
}

func TestWeightedShuffleWithFilterDropsZeros(t *testing.T) {
	c := newTestCore(27)
	order, err := WeightedShuffleWithFilter(c, []int{0, 4, 0, 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 {
		t.Fatalf("expected 2 surviving indices, got %v", order)
	}
	for _, idx := range order {
		if idx != 1 && idx != 3 {
			t.Fatalf("zero-weight index survived: %v", order)
		}
	}
}

func TestWeightedSampleTopK(t *testing.T) {
	c := newTestCore(28)
	weights := []float64{10, 0, 1, 5, 0}

	got, err := WeightedSample(c, weights, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 picks, got %v", got)
	}
	seen := map[int]bool{}
	for _, idx := range got {
		if idx == 1 || idx == 4 {
			t.Fatalf("zero-weight index picked: %v", got)
		}
		if seen[idx] {
			t.Fatalf("duplicate pick: %v", got)
		}
		seen[idx] = true
	}

	// k 超過有效元素數量時以有效數量為準
	got, err = WeightedSample(c, weights, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 effective picks, got %v", got)
	}

	if got, err := WeightedSample(c, weights, 0); err != nil || len(got) != 0 {
		t.Fatalf("k=0 should yield empty result, got %v %v", got, err)
	}
}

func TestWeightedSampleFavorsHeavyWeights(t *testing.T) {
	c := newTestCore(29)
	weights := []float64{100, 1, 1, 1}
	first := 0
	const n = 5000
	for i := 0; i < n; i++ {
		got, err := WeightedSample(c, weights, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got[0] == 0 {
			first++
		}
	}
	// P(0 先出線) = 100/103，鬆一點的下界避免機率性誤判
	if float64(first)/n < 0.9 {
		t.Fatalf("heavy index picked only %d/%d times", first, n)
	}
}
