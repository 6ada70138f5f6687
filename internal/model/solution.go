package model

// Solution is the record ACO keeps for one ant's attempt: the layout it
// produced, the configuration choices that produced it, and the resulting
// quality score.
type Solution struct {
	Layout          Layout
	ScanChoice      ScanConfig
	DirectionChoice string
	RotationChoices map[int]int // piece index -> chosen angle
	Quality         float64
}
