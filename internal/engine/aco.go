package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/rodriguesiad/cortecnc/internal/geometry"
	"github.com/rodriguesiad/cortecnc/internal/model"
)

// ACOConfig controls one ACO run: how many ants per iteration, how many
// iterations, and whether ants within an iteration run concurrently.
type ACOConfig struct {
	AntCount   int
	Iterations int
	// Parallel opts into running each iteration's ants on one goroutine per
	// ant, each with its own RNG seeded from the parent generator.
	// Solutions are still collected into ant-index order before the
	// (always single-threaded) pheromone update, so a parallel run is
	// reproducible for a given seed; because the ants draw from their own
	// RNGs rather than the parent, its results differ from the sequential
	// run's.
	Parallel bool
}

// ACOResult is what an ACO run hands back: the best layout observed across
// every ant and iteration, plus the pheromone state as it stood at the end.
type ACOResult struct {
	Best  model.Solution
	State *model.PheromoneState
}

// ACODriver is a construction-time-validated ACO run, ready to execute.
type ACODriver struct {
	sheet model.Sheet
	parts []model.Part
	cfg   ACOConfig
}

// NewACO validates sheet, parts and cfg and returns a driver ready to Run.
// Invalid parts or a non-positive sheet fail with ErrInvalidPart /
// ErrInvalidSheet; fewer than one ant or one iteration fails with
// ErrUnderpopulated, per the module's fail-fast precondition contract.
func NewACO(sheet model.Sheet, parts []model.Part, cfg ACOConfig) (*ACODriver, error) {
	if err := model.ValidateSheet(sheet); err != nil {
		return nil, err
	}
	if err := model.ValidateParts(parts); err != nil {
		return nil, err
	}
	if cfg.AntCount < 1 || cfg.Iterations < 1 {
		return nil, fmt.Errorf("%w: ACO needs at least 1 ant and 1 iteration, got %d ants, %d iterations", model.ErrUnderpopulated, cfg.AntCount, cfg.Iterations)
	}
	return &ACODriver{sheet: sheet, parts: parts, cfg: cfg}, nil
}

// Run executes the validated ACO configuration, as RunACO.
func (d *ACODriver) Run(rng *rand.Rand) ACOResult {
	return RunACO(d.sheet, d.parts, d.cfg, rng)
}

// RunACO drives the ant colony optimizer per cfg, over the given parts and
// sheet. rng supplies all randomness; pass a seeded *rand.Rand for
// reproducible runs.
//
// Each ant samples a scan config, a priority axis and (with 10% probability)
// a full rotation assignment from the pheromone tables, packs a
// descending-area-sorted copy of parts under that configuration, and scores
// the result. After every ant in an iteration has run, solutions deposit
// pheromone proportional to their quality and every table evaporates by
// ACOEvaporationRate.
func RunACO(sheet model.Sheet, parts []model.Part, cfg ACOConfig, rng *rand.Rand) ACOResult {
	state := model.NewPheromoneState(len(parts), 0)
	sorted := sortedByAreaDesc(parts)

	var best model.Solution
	haveBest := false

	for iter := 0; iter < cfg.Iterations; iter++ {
		var solutions []model.Solution
		if cfg.Parallel {
			solutions = runAntsParallel(sheet, sorted, state, cfg.AntCount, rng)
		} else {
			solutions = runAntsSequential(sheet, sorted, state, cfg.AntCount, rng)
		}

		for _, sol := range solutions {
			if !haveBest || sol.Quality > best.Quality {
				best = sol
				haveBest = true
			}
		}
		depositPheromone(state, solutions)
		state.Evaporate(1 - ACOEvaporationRate)
	}

	return ACOResult{Best: best, State: state}
}

// runAntsSequential runs every ant on the calling goroutine, in order.
func runAntsSequential(sheet model.Sheet, sorted []model.Part, state *model.PheromoneState, antCount int, rng *rand.Rand) []model.Solution {
	solutions := make([]model.Solution, antCount)
	for a := 0; a < antCount; a++ {
		solutions[a] = runAnt(sheet, sorted, state, rng)
	}
	return solutions
}

// runAntsParallel runs every ant on its own goroutine with its own RNG
// derived from rng, and collects results into ant-index order so the
// subsequent pheromone update is deterministic for a fixed seed.
func runAntsParallel(sheet model.Sheet, sorted []model.Part, state *model.PheromoneState, antCount int, rng *rand.Rand) []model.Solution {
	seeds := make([]int64, antCount)
	for a := range seeds {
		seeds[a] = rng.Int63()
	}

	solutions := make([]model.Solution, antCount)
	var wg sync.WaitGroup
	wg.Add(antCount)
	for a := 0; a < antCount; a++ {
		go func(a int) {
			defer wg.Done()
			antRNG := rand.New(rand.NewSource(seeds[a]))
			solutions[a] = runAnt(sheet, sorted, state, antRNG)
		}(a)
	}
	wg.Wait()
	return solutions
}

// runAnt samples one ant's configuration, packs it, and evaluates it. It
// does not mutate state beyond reading from it.
func runAnt(sheet model.Sheet, sortedParts []model.Part, state *model.PheromoneState, rng *rand.Rand) model.Solution {
	scanCfg, _ := sampleScan(state, rng)
	direction := sampleDirection(state, rng)

	candidate := make([]model.Part, len(sortedParts))
	copy(candidate, sortedParts)

	rotationChoices := map[int]int{}
	if rng.Float64() < ACORotationRollProbability {
		for i := range candidate {
			angle := sampleRotation(candidate[i], state, rng)
			candidate[i].Rotation = angle
			rotationChoices[i] = angle
		}
	}

	scanCfg.HorizontalPriority = direction == model.Horizontal

	layout := Pack(sheet, candidate, scanCfg)
	q := Evaluate(sheet, layout, len(candidate))

	return model.Solution{
		Layout:          layout,
		ScanChoice:      scanCfg,
		DirectionChoice: direction,
		RotationChoices: rotationChoices,
		Quality:         q.Quality,
	}
}

// sampleScan draws one of the four canonical scan configs with probability
// proportional to state.Scan, falling back to uniform if the table sums to
// at most zero.
func sampleScan(state *model.PheromoneState, rng *rand.Rand) (model.ScanConfig, string) {
	configs := model.AllScanConfigs(GAMargin)
	weights := make([]float64, len(configs))
	total := 0.0
	for i, cfg := range configs {
		w := state.Scan[cfg.String()]
		weights[i] = w
		total += w
	}
	idx := weightedPick(weights, total, rng)
	return configs[idx], configs[idx].String()
}

// sampleDirection draws Horizontal or Vertical with probability proportional
// to state.Direction.
func sampleDirection(state *model.PheromoneState, rng *rand.Rand) string {
	options := []string{model.Horizontal, model.Vertical}
	weights := []float64{state.Direction[model.Horizontal], state.Direction[model.Vertical]}
	total := weights[0] + weights[1]
	return options[weightedPick(weights, total, rng)]
}

// sampleRotation draws a rotation angle for p, weighted by state.Rotation
// and restricted to the angles p's kind actually supports.
func sampleRotation(p model.Part, state *model.PheromoneState, rng *rand.Rand) int {
	var angles []int
	switch p.Kind {
	case model.Rectangular:
		angles = []int{0, 90}
	case model.Diamond:
		angles = model.DiamondAngles()
	default:
		return 0
	}

	weights := make([]float64, len(angles))
	total := 0.0
	for i, a := range angles {
		w := state.Rotation[a]
		weights[i] = w
		total += w
	}
	return angles[weightedPick(weights, total, rng)]
}

// weightedPick returns an index into weights chosen with probability
// proportional to its weight. If total is at most zero, it falls back to a
// uniform pick over the slots, per the fallback edge case.
func weightedPick(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// depositPheromone applies every solution's quality contribution to the
// tables it touched: scan choice, direction choice, each chosen rotation,
// and a flat per-position order bonus, all before evaporation runs.
func depositPheromone(state *model.PheromoneState, solutions []model.Solution) {
	for _, sol := range solutions {
		state.Scan[sol.ScanChoice.String()] += sol.Quality
		state.Direction[sol.DirectionChoice] += sol.Quality
		for _, angle := range sol.RotationChoices {
			state.Rotation[angle] += sol.Quality
		}
		for i := range state.Order {
			state.Order[i] += 0.01 * sol.Quality
		}
	}
}

// sortedByAreaDesc returns a copy of parts sorted by geometric area,
// largest first; ties keep their original relative order.
func sortedByAreaDesc(parts []model.Part) []model.Part {
	out := make([]model.Part, len(parts))
	copy(out, parts)
	sort.SliceStable(out, func(i, j int) bool {
		return geometry.Area(out[i]) > geometry.Area(out[j])
	})
	return out
}
