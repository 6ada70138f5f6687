package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

// GAConfig controls one GA run: population size, generation count, and
// whether individuals within a generation are evaluated concurrently.
type GAConfig struct {
	PopulationSize int
	Generations    int
	// Parallel opts into packing+evaluating each generation's individuals
	// on one goroutine per individual; this step is pure per individual, so
	// the result is identical to the sequential run.
	Parallel bool
}

// individual is one GA population member: a candidate part ordering plus the
// scan configuration the packer will use to lay it out. The layout and
// quality are derived, not stored, since crossover and mutation operate on
// the ordering.
type individual struct {
	parts []model.Part
	scan  model.ScanConfig
}

// evaluated pairs an individual with the quality of the layout it produces.
type evaluated struct {
	ind     individual
	layout  model.Layout
	quality float64
}

// GAResult is what a GA run hands back: the best individual observed across
// every generation, and the per-generation best quality trace.
type GAResult struct {
	Best            model.Solution
	GenerationBest  []float64
	FinalPopulation int
}

// GADriver is a construction-time-validated GA run, ready to execute.
type GADriver struct {
	sheet model.Sheet
	parts []model.Part
	cfg   GAConfig
}

// NewGA validates sheet, parts and cfg and returns a driver ready to Run.
// Invalid parts or a non-positive sheet fail with ErrInvalidPart /
// ErrInvalidSheet; fewer than one individual or one generation fails with
// ErrUnderpopulated, per the module's fail-fast precondition contract.
func NewGA(sheet model.Sheet, parts []model.Part, cfg GAConfig) (*GADriver, error) {
	if err := model.ValidateSheet(sheet); err != nil {
		return nil, err
	}
	if err := model.ValidateParts(parts); err != nil {
		return nil, err
	}
	if cfg.PopulationSize < 1 || cfg.Generations < 1 {
		return nil, fmt.Errorf("%w: GA needs at least 1 individual and 1 generation, got %d individuals, %d generations", model.ErrUnderpopulated, cfg.PopulationSize, cfg.Generations)
	}
	return &GADriver{sheet: sheet, parts: parts, cfg: cfg}, nil
}

// Run executes the validated GA configuration, as RunGA.
func (d *GADriver) Run(rng *rand.Rand) GAResult {
	return RunGA(d.sheet, d.parts, d.cfg, rng)
}

// RunGA drives the genetic algorithm per cfg, over the given parts and
// sheet. The first min(7, cfg.PopulationSize) individuals use the fixed
// deterministic seed table; the rest start from a random part order and
// random scan flags. Population size is allowed to drift generation to
// generation, per the crossover design (see RunGA's elitism/crossover/
// mutation pipeline).
func RunGA(sheet model.Sheet, parts []model.Part, cfg GAConfig, rng *rand.Rand) GAResult {
	pop := seedPopulation(parts, cfg.PopulationSize, rng)

	var best model.Solution
	haveBest := false
	genBest := make([]float64, 0, cfg.Generations)

	for g := 0; g < cfg.Generations; g++ {
		if len(pop) == 0 {
			// Repeated crossover/elitism sizing (both floor-based, literally
			// ported from the source) can shrink the population to nothing
			// before the requested generation count is reached; there is
			// nothing left to evolve, so stop rather than evaluate an empty
			// generation.
			break
		}

		var scored []evaluated
		if cfg.Parallel {
			scored = evaluatePopulationParallel(sheet, pop)
		} else {
			scored = evaluatePopulation(sheet, pop)
		}

		for _, e := range scored {
			if !haveBest || e.quality > best.Quality {
				best = model.Solution{Layout: e.layout, ScanChoice: e.ind.scan, Quality: e.quality}
				haveBest = true
			}
		}
		genBest = append(genBest, generationBest(scored))

		aux := make([]individual, 0, len(pop))
		aux = append(aux, elites(scored)...)
		aux = append(aux, crossover(scored, rng)...)
		mutate(aux, rng)

		pop = aux
	}

	return GAResult{Best: best, GenerationBest: genBest, FinalPopulation: len(pop)}
}

// seedPopulation builds the initial population: the fixed deterministic
// seed table first (capped at populationSize), then random individuals to
// fill out the rest.
func seedPopulation(parts []model.Part, populationSize int, rng *rand.Rand) []individual {
	seeds := fixedGASeeds()
	pop := make([]individual, 0, populationSize)

	for i := 0; i < populationSize && i < len(seeds); i++ {
		pop = append(pop, individual{
			parts: orderedCopy(parts, seeds[i].order),
			scan:  seeds[i].scan,
		})
	}
	for len(pop) < populationSize {
		pop = append(pop, individual{
			parts: shuffledCopy(parts, rng),
			scan: model.ScanConfig{
				LeftToRight:        rng.Float64() < 0.5,
				TopToBottom:        rng.Float64() < 0.5,
				HorizontalPriority: rng.Float64() < 0.5,
				Margin:             GAMargin,
			},
		})
	}
	return pop
}

// orderedCopy returns parts sorted by area, ascending or descending per
// order.
func orderedCopy(parts []model.Part, order seedOrder) []model.Part {
	out := sortedByAreaDesc(parts)
	if order == seedAsc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// shuffledCopy returns a randomly permuted copy of parts.
func shuffledCopy(parts []model.Part, rng *rand.Rand) []model.Part {
	out := make([]model.Part, len(parts))
	copy(out, parts)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// evaluatePopulation packs and scores every individual in pop, in
// population order.
func evaluatePopulation(sheet model.Sheet, pop []individual) []evaluated {
	out := make([]evaluated, len(pop))
	for i, ind := range pop {
		layout := Pack(sheet, ind.parts, ind.scan)
		q := Evaluate(sheet, layout, len(ind.parts))
		out[i] = evaluated{ind: ind, layout: layout, quality: q.Quality}
	}
	return out
}

// evaluatePopulationParallel packs and scores every individual in pop on
// its own goroutine, writing into a pre-sized slice so result order
// matches population order regardless of goroutine completion order.
func evaluatePopulationParallel(sheet model.Sheet, pop []individual) []evaluated {
	out := make([]evaluated, len(pop))
	var wg sync.WaitGroup
	wg.Add(len(pop))
	for i, ind := range pop {
		go func(i int, ind individual) {
			defer wg.Done()
			layout := Pack(sheet, ind.parts, ind.scan)
			q := Evaluate(sheet, layout, len(ind.parts))
			out[i] = evaluated{ind: ind, layout: layout, quality: q.Quality}
		}(i, ind)
	}
	wg.Wait()
	return out
}

func generationBest(scored []evaluated) float64 {
	best := scored[0].quality
	for _, e := range scored[1:] {
		if e.quality > best {
			best = e.quality
		}
	}
	return best
}

// elites copies floor(GAElitismRate*M) best-by-quality individuals forward
// unchanged, selecting among individuals with quality > 0 if any exist, or
// the whole population otherwise, then cycling through that ranked pool
// (wrapping if the copy count exceeds its size). This is a literal port of
// the source's elitismo: for populations small enough that
// floor(GAElitismRate*M) is 0 (every size this module's defaults produce
// below M=100), elitism is a genuine no-op for that generation — it is not
// special-cased to force at least one survivor.
func elites(scored []evaluated) []individual {
	n := int(GAElitismRate * float64(len(scored)))
	if n == 0 {
		return nil
	}

	pool := make([]evaluated, 0, len(scored))
	for _, e := range scored {
		if e.quality > 0 {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, scored...)
	}
	sortEvaluatedDesc(pool)

	out := make([]individual, n)
	for i := 0; i < n; i++ {
		out[i] = pool[i%len(pool)].ind
	}
	return out
}

// crossover performs floor(GACrossoverRate*M) tournament-selected parent
// pairings, each producing two children via a one-point splice of the
// parents' part orderings at the midpoint. Each pairing re-draws its second
// parent until it differs from the first, mirroring the source's
// `while pai1 == pai2: pai2 = torneio(...)` guard. The splice itself is
// literal: it does not preserve permutation validity, so children may list
// a part more than once or omit one. The packer treats every entry as a
// separate part, so a repeated part is placed again wherever space remains;
// an omitted part is simply not packed, and since a child keeps its
// parents' length, the evaluator's missing count does not register it.
func crossover(scored []evaluated, rng *rand.Rand) []individual {
	pairings := int(GACrossoverRate * float64(len(scored)))
	out := make([]individual, 0, pairings*2)

	for i := 0; i < pairings; i++ {
		child1, child2 := crossPair(scored, rng)
		out = append(out, child1, child2)
	}
	return out
}

// crossPair draws two distinct parents via k=3 tournament selection and
// splices their part orderings at the midpoint into two children. The
// second parent is re-drawn until it differs from the first (capped to
// avoid spinning forever on a single-individual population).
func crossPair(scored []evaluated, rng *rand.Rand) (individual, individual) {
	idx1, p1 := tournamentSelect(scored, rng)
	idx2, p2 := tournamentSelect(scored, rng)
	for attempt := 0; idx2 == idx1 && len(scored) > 1 && attempt < 1000; attempt++ {
		idx2, p2 = tournamentSelect(scored, rng)
	}

	half := len(p1.parts) / 2

	child1 := append(append([]model.Part{}, p1.parts[:half]...), p2.parts[half:]...)
	child2 := append(append([]model.Part{}, p2.parts[:half]...), p1.parts[half:]...)

	return individual{parts: child1, scan: p1.scan}, individual{parts: child2, scan: p2.scan}
}

// tournamentSelect draws TournamentK individuals uniformly at random and
// returns the population index and individual of the best-quality one.
func tournamentSelect(scored []evaluated, rng *rand.Rand) (int, individual) {
	bestIdx := rng.Intn(len(scored))
	for i := 1; i < TournamentK; i++ {
		idx := rng.Intn(len(scored))
		if scored[idx].quality > scored[bestIdx].quality {
			bestIdx = idx
		}
	}
	return bestIdx, scored[bestIdx].ind
}

// mutate rolls floor(GAMutationRate*len(aux)) random (individual, piece)
// mutations in place: diamonds get a new random angle from the fixed
// 0-90-step-10 set, rectangles get a new random angle from {0,90}, circles
// are left unchanged.
func mutate(aux []individual, rng *rand.Rand) {
	count := int(GAMutationRate * float64(len(aux)))
	for i := 0; i < count; i++ {
		if len(aux) == 0 {
			return
		}
		indIdx := rng.Intn(len(aux))
		if len(aux[indIdx].parts) == 0 {
			continue
		}
		pieceIdx := rng.Intn(len(aux[indIdx].parts))
		p := &aux[indIdx].parts[pieceIdx]

		switch p.Kind {
		case model.Diamond:
			angles := model.DiamondAngles()
			p.Rotation = angles[rng.Intn(len(angles))]
		case model.Rectangular:
			if rng.Float64() < 0.5 {
				p.Rotation = 0
			} else {
				p.Rotation = 90
			}
		}
	}
}

// sortEvaluatedDesc sorts evaluated individuals by quality, best first.
func sortEvaluatedDesc(scored []evaluated) {
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].quality > scored[j-1].quality; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
}
