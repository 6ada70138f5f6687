package engine

import "github.com/rodriguesiad/cortecnc/internal/model"

// Fixed numeric knobs pinned down by the data model and external interface
// sections of the specification this module implements.
const (
	// ACOEvaporationRate is the fraction of each pheromone value removed at
	// the end of every iteration.
	ACOEvaporationRate = 0.1
	// ACORotationRollProbability is the chance, per ant, that rotations are
	// sampled from the rotation pheromone table instead of left at zero.
	ACORotationRollProbability = 0.1

	// GAMargin is the fixed packer margin used while seeding and re-packing
	// GA individuals.
	GAMargin = 1
	// GACrossoverRate sets the number of tournament-selected crossover
	// pairings each generation as a fraction of the population (each
	// pairing yields two children, so offspring make up roughly 2x this
	// fraction).
	GACrossoverRate = 0.30
	// GAMutationRate is the fraction of the auxiliary population mutated
	// each generation.
	GAMutationRate = 0.05
	// GAElitismRate is the fraction of the population carried over unchanged
	// each generation.
	GAElitismRate = 0.01
	// TournamentK is the tournament selection size used by crossover.
	TournamentK = 3

	// OverlapPenaltyFactor weights overlapping cells in the fitness formula.
	OverlapPenaltyFactor = 0.001
	// MissingPenaltyFactor weights each part absent from a layout.
	MissingPenaltyFactor = 1.0
	// OutOfBoundsPenaltyFactor weights each placed part whose bounding box
	// extends past the sheet edge.
	OutOfBoundsPenaltyFactor = 0.1
)

// seedOrder names the two deterministic orderings the fixed GA
// configurations sort parts by.
type seedOrder int

const (
	seedDesc seedOrder = iota
	seedAsc
)

// seedConfig pairs a deterministic ordering with a scan configuration.
type seedConfig struct {
	order seedOrder
	scan  model.ScanConfig
}

// fixedGASeeds is the 7-entry table of deterministic starting
// configurations the GA uses to seed the first individuals of its
// population, chosen to span diverse scan/order regimes before the
// remaining individuals are filled in randomly.
func fixedGASeeds() []seedConfig {
	return []seedConfig{
		{seedDesc, model.ScanConfig{LeftToRight: true, TopToBottom: true, HorizontalPriority: true, Margin: GAMargin}},
		{seedDesc, model.ScanConfig{LeftToRight: false, TopToBottom: false, HorizontalPriority: true, Margin: GAMargin}},
		{seedDesc, model.ScanConfig{LeftToRight: true, TopToBottom: true, HorizontalPriority: false, Margin: GAMargin}},
		{seedDesc, model.ScanConfig{LeftToRight: false, TopToBottom: true, HorizontalPriority: true, Margin: GAMargin}},
		{seedAsc, model.ScanConfig{LeftToRight: false, TopToBottom: false, HorizontalPriority: true, Margin: GAMargin}},
		{seedAsc, model.ScanConfig{LeftToRight: true, TopToBottom: true, HorizontalPriority: true, Margin: GAMargin}},
		{seedAsc, model.ScanConfig{LeftToRight: false, TopToBottom: true, HorizontalPriority: true, Margin: GAMargin}},
	}
}
