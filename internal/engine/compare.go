package engine

import (
	"math/rand"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

// Strategy names one layout-producing approach to compare: either a fixed
// scan configuration run through the packer directly, or a metaheuristic
// driver (ACO/GA) run with a given RNG seed. Exactly one of Scan or Run
// should be set.
type Strategy struct {
	Name string
	Scan *model.ScanConfig
	Run  func(sheet model.Sheet, parts []model.Part) model.Layout
}

// ComparisonResult holds one strategy's layout and the quality breakdown
// computed against it.
type ComparisonResult struct {
	Strategy Strategy
	Layout   model.Layout
	Quality  Quality
}

// CompareStrategies runs every strategy against the same sheet and parts
// and returns the results in strategy order, for side-by-side benchmarking
// of fixed scan configs against the metaheuristic drivers.
func CompareStrategies(sheet model.Sheet, parts []model.Part, strategies []Strategy) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(strategies))

	for _, s := range strategies {
		var layout model.Layout
		switch {
		case s.Scan != nil:
			layout = Pack(sheet, parts, *s.Scan)
		case s.Run != nil:
			layout = s.Run(sheet, parts)
		}

		results = append(results, ComparisonResult{
			Strategy: s,
			Layout:   layout,
			Quality:  Evaluate(sheet, layout, len(parts)),
		})
	}

	return results
}

// BuildDefaultStrategies returns the four canonical scan configs plus an
// ACO and a GA strategy, each seeded deterministically from seed, as a
// ready-made comparison set spanning the module's whole algorithmic
// surface.
func BuildDefaultStrategies(seed int64, antCount, acoIterations, populationSize, gaGenerations int) []Strategy {
	strategies := make([]Strategy, 0, 6)

	for _, cfg := range model.AllScanConfigs(GAMargin) {
		cfg := cfg
		strategies = append(strategies, Strategy{
			Name: "scan-" + cfg.String(),
			Scan: &cfg,
		})
	}

	strategies = append(strategies, Strategy{
		Name: "aco",
		Run: func(sheet model.Sheet, parts []model.Part) model.Layout {
			cfg := ACOConfig{AntCount: antCount, Iterations: acoIterations}
			result := RunACO(sheet, parts, cfg, rand.New(rand.NewSource(seed)))
			return result.Best.Layout
		},
	})

	strategies = append(strategies, Strategy{
		Name: "ga",
		Run: func(sheet model.Sheet, parts []model.Part) model.Layout {
			cfg := GAConfig{PopulationSize: populationSize, Generations: gaGenerations}
			result := RunGA(sheet, parts, cfg, rand.New(rand.NewSource(seed)))
			return result.Best.Layout
		},
	})

	return strategies
}
