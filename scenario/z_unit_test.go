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

package scenario

import (
	"math"
	"testing"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/core"
)

func TestFromYAMLAndBuild(t *testing.T) {
	data := []byte(`
name: gamma
params:
  shape: 2.5
  scale: 2
samples: 1000
seed: 7
histogram:
  lo: 0
  hi: 40
  bins: 20
`)
	sc, err := FromYAML(data)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "gamma" || sc.Samples != 1000 || sc.Seed != 7 {
		t.Fatalf("decoded scenario mismatch: %+v", sc)
	}
	if sc.Histogram == nil || sc.Histogram.Bins != 20 {
		t.Fatalf("histogram spec not decoded: %+v", sc.Histogram)
	}

	s, err := Build(sc)
	if err != nil {
		t.Fatal(err)
	}
	c := core.New(core.Default().New(sc.Seed))
	for i := 0; i < 100; i++ {
		if x := s.Sample(c); math.IsNaN(x) || x < 0 {
			t.Fatalf("unexpected sample %v", x)
		}
	}
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{"name":"binomial","params":{"n":100,"p":0.25},"samples":10}`)
	sc, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(sc); err != nil {
		t.Fatal(err)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		sc   *Scenario
		kind errs.Kind
	}{
		{"unknown name", &Scenario{Name: "no_such_dist"}, errs.KindDegenerate},
		{"missing param", &Scenario{Name: "exp", Params: map[string]float64{}}, errs.KindDegenerate},
		{"invalid param value", &Scenario{Name: "exp", Params: map[string]float64{"rate": -1}}, errs.KindOutOfDomain},
		{"fractional integer param", &Scenario{Name: "binomial", Params: map[string]float64{"n": 10.5, "p": 0.5}}, errs.KindOutOfDomain},
		{"multivariate via scalar build", &Scenario{Name: "dirichlet", Alphas: []float64{1, 2}}, errs.KindOutOfDomain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.sc)
			if err == nil {
				t.Fatalf("expected build error")
			}
			if got := errs.KindOf(err); got != tc.kind {
				t.Fatalf("expected kind %v, got %v (%v)", tc.kind, got, err)
			}
		})
	}
}

func TestBuildMulti(t *testing.T) {
	sc := &Scenario{Name: "dirichlet", Alphas: []float64{1, 2, 3}}
	m, err := BuildMulti(sc)
	if err != nil {
		t.Fatal(err)
	}
	if m.Dim() != 3 {
		t.Fatalf("dim mismatch: %d", m.Dim())
	}

	if _, err := BuildMulti(&Scenario{Name: "exp"}); errs.KindOf(err) != errs.KindOutOfDomain {
		t.Fatalf("scalar via multi build: expected out-of-domain, got %v", err)
	}
	if !IsMulti("unit_sphere") || IsMulti("normal") {
		t.Fatalf("IsMulti misclassifies")
	}
}

func TestNamesCoverRegistry(t *testing.T) {
	names := Names()
	if len(names) < 25 {
		t.Fatalf("registry unexpectedly small: %d entries", len(names))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
	for _, want := range []string{"normal", "poisson", "dirichlet", "truncated_normal", "zeta"} {
		if !seen[want] {
			t.Fatalf("missing %q in catalog", want)
		}
	}
}

func TestDefaultTruncationBounds(t *testing.T) {
	sc := &Scenario{Name: "truncated_normal", Params: map[string]float64{
		"mean": 0, "std_dev": 1, "lower": 3,
	}}
	s, err := Build(sc)
	if err != nil {
		t.Fatal(err)
	}
	c := core.New(core.Default().New(11))
	for i := 0; i < 500; i++ {
		if x := s.Sample(c); x < 3 {
			t.Fatalf("sample %v below lower bound", x)
		}
	}
}
