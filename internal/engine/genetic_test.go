package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodriguesiad/cortecnc/internal/model"
)

func testParts() []model.Part {
	return []model.Part{
		model.NewRectPart(10, 10, 0),
		model.NewRectPart(8, 6, 0),
		model.NewCirclePart(4),
		model.NewDiamondPart(10, 10, 0),
		model.NewRectPart(5, 5, 0),
	}
}

func TestSeedPopulationUsesFixedSeedsFirst(t *testing.T) {
	parts := testParts()
	rng := rand.New(rand.NewSource(1))
	pop := seedPopulation(parts, 7, rng)

	require.Len(t, pop, 7)
	for i, p := range pop {
		assert.Equal(t, fixedGASeeds()[i].scan, p.scan)
		assert.Len(t, p.parts, len(parts))
	}
}

func TestSeedPopulationFillsRandomBeyondSeeds(t *testing.T) {
	parts := testParts()
	rng := rand.New(rand.NewSource(1))
	pop := seedPopulation(parts, 10, rng)
	assert.Len(t, pop, 10)
}

func TestOrderedCopyDescAndAsc(t *testing.T) {
	parts := testParts()
	desc := orderedCopy(parts, seedDesc)
	asc := orderedCopy(parts, seedAsc)
	assert.Equal(t, desc[0], asc[len(asc)-1])
}

// populationOfSize builds a scored slice of n identical individuals whose
// quality at index i is quality(i).
func populationOfSize(n int, quality func(i int) float64) []evaluated {
	out := make([]evaluated, n)
	for i := range out {
		out[i] = evaluated{
			ind:     individual{scan: model.DefaultScanConfig()},
			quality: quality(i),
		}
	}
	return out
}

func TestElitesIsNoOpBelowTheSizeThreshold(t *testing.T) {
	// GAElitismRate is 0.01, so floor(0.01*M) is 0 for every M < 100 --
	// elitism copies nothing forward at these sizes, matching the source's
	// literal `for i in range(int(qtd))` with qtd==0.
	scored := populationOfSize(50, func(i int) float64 { return float64(i) })
	out := elites(scored)
	assert.Empty(t, out)
}

func TestElitesCarriesBestForwardAboveThreshold(t *testing.T) {
	scored := populationOfSize(100, func(i int) float64 { return float64(i) })
	out := elites(scored)
	require.Len(t, out, 1)
	assert.Equal(t, scored[99].ind, out[0])
}

func TestElitesFallsBackWhenAllNonPositive(t *testing.T) {
	scored := populationOfSize(100, func(i int) float64 { return -float64(i) - 1 })
	out := elites(scored)
	require.Len(t, out, 1)
	assert.Equal(t, scored[0].ind, out[0])
}

func TestTournamentSelectReturnsHighQualityMoreOften(t *testing.T) {
	scored := []evaluated{
		{ind: individual{parts: []model.Part{model.NewRectPart(1, 1, 0)}}, quality: -10},
		{ind: individual{parts: []model.Part{model.NewRectPart(2, 2, 0)}}, quality: 10},
	}
	rng := rand.New(rand.NewSource(5))
	wins := 0
	for i := 0; i < 50; i++ {
		_, picked := tournamentSelect(scored, rng)
		if picked.parts[0].Width == 2 {
			wins++
		}
	}
	assert.Greater(t, wins, 25)
}

func TestCrossoverDrawsDistinctParents(t *testing.T) {
	// With exactly two single-part individuals, self-crossing a parent with
	// itself would splice it back to an identical copy, so both children
	// would carry the same width. Distinct-parent crossover always swaps:
	// one child takes width 1, the other width 2.
	scored := []evaluated{
		{ind: individual{parts: []model.Part{model.NewRectPart(1, 1, 0)}, scan: model.DefaultScanConfig()}, quality: 1},
		{ind: individual{parts: []model.Part{model.NewRectPart(2, 2, 0)}, scan: model.DefaultScanConfig()}, quality: 2},
	}
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 50; trial++ {
		child1, child2 := crossPair(scored, rng)
		widths := []uint32{child1.parts[0].Width, child2.parts[0].Width}
		assert.ElementsMatch(t, []uint32{1, 2}, widths, "trial %d: children must come from distinct parents", trial)
	}
}

func TestCrossoverProducesTwoChildrenPerPairing(t *testing.T) {
	parts := testParts()
	scored := make([]evaluated, 10)
	for i := range scored {
		scored[i] = evaluated{ind: individual{parts: parts, scan: model.DefaultScanConfig()}, quality: float64(i) / 10}
	}
	rng := rand.New(rand.NewSource(9))
	children := crossover(scored, rng)
	expectedPairings := int(GACrossoverRate * float64(len(scored)))
	require.Greater(t, expectedPairings, 0)
	assert.Len(t, children, expectedPairings*2)
	for _, c := range children {
		assert.Len(t, c.parts, len(parts))
	}
}

func TestMutateChangesRotationWithinAllowedSet(t *testing.T) {
	// mutate rolls floor(GAMutationRate*len(aux)) mutations, so aux needs
	// at least 20 members for any mutation to happen.
	aux := make([]individual, 20)
	for i := range aux {
		aux[i] = individual{parts: []model.Part{model.NewDiamondPart(10, 10, 0)}}
	}
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		mutate(aux, rng)
	}
	for _, ind := range aux {
		angle := ind.parts[0].Rotation
		assert.Contains(t, model.DiamondAngles(), angle)
	}
}

func TestRunGAReturnsMonotonicBest(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := testParts()
	rng := rand.New(rand.NewSource(2))

	// Population size large enough that floor(GACrossoverRate*M) stays
	// positive across all 4 generations, so the population never collapses
	// to zero before the run completes.
	result := RunGA(sheet, parts, GAConfig{PopulationSize: 50, Generations: 4}, rng)
	require.Len(t, result.GenerationBest, 4)

	max := result.GenerationBest[0]
	for _, g := range result.GenerationBest {
		if g > max {
			max = g
		}
	}
	assert.LessOrEqual(t, max, result.Best.Quality+1e-9)
}

func TestRunGAPopulationSizeMayDrift(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := testParts()
	rng := rand.New(rand.NewSource(3))

	result := RunGA(sheet, parts, GAConfig{PopulationSize: 20, Generations: 3}, rng)
	assert.Greater(t, result.FinalPopulation, 0)
}

func TestNewGARejectsInvalidSheet(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 0}
	parts := testParts()

	driver, err := NewGA(sheet, parts, GAConfig{PopulationSize: 10, Generations: 1})
	assert.Nil(t, driver)
	assert.True(t, errors.Is(err, model.ErrInvalidSheet))
}

func TestNewGARejectsInvalidPart(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := []model.Part{model.NewDiamondPart(10, 10, 5)}

	driver, err := NewGA(sheet, parts, GAConfig{PopulationSize: 10, Generations: 1})
	assert.Nil(t, driver)
	assert.True(t, errors.Is(err, model.ErrInvalidPart))
}

func TestNewGARejectsUnderpopulatedConfig(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := testParts()

	driver, err := NewGA(sheet, parts, GAConfig{PopulationSize: 0, Generations: 1})
	assert.Nil(t, driver)
	assert.True(t, errors.Is(err, model.ErrUnderpopulated))

	driver, err = NewGA(sheet, parts, GAConfig{PopulationSize: 10, Generations: 0})
	assert.Nil(t, driver)
	assert.True(t, errors.Is(err, model.ErrUnderpopulated))
}

func TestNewGAAcceptsValidInputAndRuns(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := testParts()

	driver, err := NewGA(sheet, parts, GAConfig{PopulationSize: 10, Generations: 2})
	require.NoError(t, err)
	require.NotNil(t, driver)

	result := driver.Run(rand.New(rand.NewSource(31)))
	require.Len(t, result.GenerationBest, 2)
}

func TestRunGAParallelMatchesSequentialShape(t *testing.T) {
	sheet := model.Sheet{Width: 30, Height: 30}
	parts := testParts()
	rng := rand.New(rand.NewSource(4))

	result := RunGA(sheet, parts, GAConfig{PopulationSize: 9, Generations: 3, Parallel: true}, rng)
	require.Len(t, result.GenerationBest, 3)
}
