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
	"sort"

	"github.com/zintix-labs/distlab/errs"
	"github.com/zintix-labs/distlab/sdk/distr"
)

// Builder 依情境建構標量取樣器。
type Builder func(sc *Scenario) (distr.Sampler, error)

// MultiBuilder 依情境建構多維取樣器。
type MultiBuilder func(sc *Scenario) (distr.MultiSampler, error)

// 註冊表在 init 填好後即為唯讀，可被多個 goroutine 同時查詢。
var (
	registry      map[string]Builder
	multiRegistry map[string]MultiBuilder
)

func init() {
	registry = map[string]Builder{
		"normal": func(sc *Scenario) (distr.Sampler, error) {
			mean, err := sc.param("mean")
			if err != nil {
				return nil, err
			}
			sd, err := sc.param("std_dev")
			if err != nil {
				return nil, err
			}
			return distr.NewNormal(mean, sd)
		},
		"log_normal": func(sc *Scenario) (distr.Sampler, error) {
			mu, err := sc.param("mu")
			if err != nil {
				return nil, err
			}
			sigma, err := sc.param("sigma")
			if err != nil {
				return nil, err
			}
			return distr.NewLogNormal(mu, sigma)
		},
		"truncated_normal": func(sc *Scenario) (distr.Sampler, error) {
			mean, err := sc.param("mean")
			if err != nil {
				return nil, err
			}
			sd, err := sc.param("std_dev")
			if err != nil {
				return nil, err
			}
			// 邊界可省略，缺漏視為該側不截斷
			lo := sc.paramOr("lower", math.Inf(-1))
			hi := sc.paramOr("upper", math.Inf(1))
			return distr.NewTruncatedNormal(mean, sd, lo, hi)
		},
		"exp": func(sc *Scenario) (distr.Sampler, error) {
			rate, err := sc.param("rate")
			if err != nil {
				return nil, err
			}
			return distr.NewExp(rate)
		},
		"gamma": func(sc *Scenario) (distr.Sampler, error) {
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			return distr.NewGamma(shape, scale)
		},
		"beta": func(sc *Scenario) (distr.Sampler, error) {
			a, err := sc.param("alpha")
			if err != nil {
				return nil, err
			}
			b, err := sc.param("beta")
			if err != nil {
				return nil, err
			}
			return distr.NewBeta(a, b)
		},
		"chi_squared": func(sc *Scenario) (distr.Sampler, error) {
			k, err := sc.param("k")
			if err != nil {
				return nil, err
			}
			return distr.NewChiSquared(k)
		},
		"fisher_f": func(sc *Scenario) (distr.Sampler, error) {
			m, err := sc.param("m")
			if err != nil {
				return nil, err
			}
			n, err := sc.param("n")
			if err != nil {
				return nil, err
			}
			return distr.NewFisherF(m, n)
		},
		"student_t": func(sc *Scenario) (distr.Sampler, error) {
			nu, err := sc.param("nu")
			if err != nil {
				return nil, err
			}
			return distr.NewStudentT(nu)
		},
		"cauchy": func(sc *Scenario) (distr.Sampler, error) {
			median, err := sc.param("median")
			if err != nil {
				return nil, err
			}
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			return distr.NewCauchy(median, scale)
		},
		"pareto": func(sc *Scenario) (distr.Sampler, error) {
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			return distr.NewPareto(scale, shape)
		},
		"weibull": func(sc *Scenario) (distr.Sampler, error) {
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			return distr.NewWeibull(scale, shape)
		},
		"gumbel": func(sc *Scenario) (distr.Sampler, error) {
			loc, err := sc.param("location")
			if err != nil {
				return nil, err
			}
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			return distr.NewGumbel(loc, scale)
		},
		"frechet": func(sc *Scenario) (distr.Sampler, error) {
			loc, err := sc.param("location")
			if err != nil {
				return nil, err
			}
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			return distr.NewFrechet(loc, scale, shape)
		},
		"triangular": func(sc *Scenario) (distr.Sampler, error) {
			lo, err := sc.param("min")
			if err != nil {
				return nil, err
			}
			mode, err := sc.param("mode")
			if err != nil {
				return nil, err
			}
			hi, err := sc.param("max")
			if err != nil {
				return nil, err
			}
			return distr.NewTriangular(lo, mode, hi)
		},
		"pert": func(sc *Scenario) (distr.Sampler, error) {
			lo, err := sc.param("min")
			if err != nil {
				return nil, err
			}
			mode, err := sc.param("mode")
			if err != nil {
				return nil, err
			}
			hi, err := sc.param("max")
			if err != nil {
				return nil, err
			}
			if shape, ok := sc.Params["shape"]; ok {
				return distr.NewPertWithShape(lo, mode, hi, shape)
			}
			return distr.NewPert(lo, mode, hi)
		},
		"skew_normal": func(sc *Scenario) (distr.Sampler, error) {
			loc, err := sc.param("location")
			if err != nil {
				return nil, err
			}
			scale, err := sc.param("scale")
			if err != nil {
				return nil, err
			}
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			return distr.NewSkewNormal(loc, scale, shape)
		},
		"inverse_gaussian": func(sc *Scenario) (distr.Sampler, error) {
			mean, err := sc.param("mean")
			if err != nil {
				return nil, err
			}
			shape, err := sc.param("shape")
			if err != nil {
				return nil, err
			}
			return distr.NewInverseGaussian(mean, shape)
		},
		"normal_inverse_gaussian": func(sc *Scenario) (distr.Sampler, error) {
			alpha, err := sc.param("alpha")
			if err != nil {
				return nil, err
			}
			beta, err := sc.param("beta")
			if err != nil {
				return nil, err
			}
			return distr.NewNormalInverseGaussian(alpha, beta)
		},
		"poisson": func(sc *Scenario) (distr.Sampler, error) {
			lambda, err := sc.param("lambda")
			if err != nil {
				return nil, err
			}
			return distr.NewPoisson(lambda)
		},
		"binomial": func(sc *Scenario) (distr.Sampler, error) {
			n, err := sc.uparam("n")
			if err != nil {
				return nil, err
			}
			p, err := sc.param("p")
			if err != nil {
				return nil, err
			}
			return distr.NewBinomial(n, p)
		},
		"geometric": func(sc *Scenario) (distr.Sampler, error) {
			p, err := sc.param("p")
			if err != nil {
				return nil, err
			}
			return distr.NewGeometric(p)
		},
		"hypergeometric": func(sc *Scenario) (distr.Sampler, error) {
			total, err := sc.uparam("total")
			if err != nil {
				return nil, err
			}
			succ, err := sc.uparam("successes")
			if err != nil {
				return nil, err
			}
			draws, err := sc.uparam("draws")
			if err != nil {
				return nil, err
			}
			return distr.NewHypergeometric(total, succ, draws)
		},
		"zipf": func(sc *Scenario) (distr.Sampler, error) {
			n, err := sc.uparam("n")
			if err != nil {
				return nil, err
			}
			s, err := sc.param("s")
			if err != nil {
				return nil, err
			}
			return distr.NewZipf(n, s)
		},
		"zeta": func(sc *Scenario) (distr.Sampler, error) {
			a, err := sc.param("a")
			if err != nil {
				return nil, err
			}
			return distr.NewZeta(a)
		},
	}

	multiRegistry = map[string]MultiBuilder{
		"dirichlet": func(sc *Scenario) (distr.MultiSampler, error) {
			return distr.NewDirichlet(sc.Alphas)
		},
		"unit_circle": func(sc *Scenario) (distr.MultiSampler, error) {
			return distr.NewUnitCircle(), nil
		},
		"unit_disc": func(sc *Scenario) (distr.MultiSampler, error) {
			return distr.NewUnitDisc(), nil
		},
		"unit_sphere": func(sc *Scenario) (distr.MultiSampler, error) {
			return distr.NewUnitSphere(), nil
		},
		"unit_ball": func(sc *Scenario) (distr.MultiSampler, error) {
			return distr.NewUnitBall(), nil
		},
	}
}

// Build 依情境名稱建構標量取樣器。
// 名稱是多維分布時回報 OutOfDomain，提示改用 BuildMulti。
func Build(sc *Scenario) (distr.Sampler, error) {
	b, ok := registry[sc.Name]
	if !ok {
		if _, isMulti := multiRegistry[sc.Name]; isMulti {
			return nil, errs.OutOfDomainf("scenario %q is multivariate, use BuildMulti", sc.Name)
		}
		return nil, errs.Degeneratef("scenario: unknown distribution %q", sc.Name)
	}
	return b(sc)
}

// BuildMulti 依情境名稱建構多維取樣器。
func BuildMulti(sc *Scenario) (distr.MultiSampler, error) {
	b, ok := multiRegistry[sc.Name]
	if !ok {
		if _, isScalar := registry[sc.Name]; isScalar {
			return nil, errs.OutOfDomainf("scenario %q is scalar, use Build", sc.Name)
		}
		return nil, errs.Degeneratef("scenario: unknown distribution %q", sc.Name)
	}
	return b(sc)
}

// IsMulti 回報名稱是否為多維分布。
func IsMulti(name string) bool {
	_, ok := multiRegistry[name]
	return ok
}

// Names 回傳所有已註冊的分布名稱（標量 + 多維，字典序）。
func Names() []string {
	out := make([]string, 0, len(registry)+len(multiRegistry))
	for name := range registry {
		out = append(out, name)
	}
	for name := range multiRegistry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
