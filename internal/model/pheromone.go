package model

// Direction names the two priority axes ACO samples between.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// DiamondAngles is the fixed set of rotation angles diamonds may take,
// 0 through 90 in 10-degree steps.
func DiamondAngles() []int {
	angles := make([]int, 0, 10)
	for a := 0; a <= 90; a += 10 {
		angles = append(angles, a)
	}
	return angles
}

// PheromoneState holds the four pheromone tables ACO learns over: scan
// configuration, part-order influence, rotation angle, and priority axis.
// All tables start at 1.0 everywhere, per the data model.
type PheromoneState struct {
	Scan      map[string]float64
	Order     []float64
	Rotation  map[int]float64
	Direction map[string]float64
}

// NewPheromoneState builds a fresh, uniformly-initialized pheromone state
// for a problem with numParts input parts.
func NewPheromoneState(numParts int, margin uint32) *PheromoneState {
	scan := make(map[string]float64, 4)
	for _, cfg := range AllScanConfigs(margin) {
		scan[cfg.String()] = 1.0
	}

	rotation := make(map[int]float64, 10)
	for _, a := range DiamondAngles() {
		rotation[a] = 1.0
	}

	order := make([]float64, numParts)
	for i := range order {
		order[i] = 1.0
	}

	return &PheromoneState{
		Scan:     scan,
		Order:    order,
		Rotation: rotation,
		Direction: map[string]float64{
			Horizontal: 1.0,
			Vertical:   1.0,
		},
	}
}

// Evaporate multiplies every pheromone value by retain, the fraction kept;
// e.g. retain 0.9 applies the module's fixed 0.9 evaporation factor.
func (p *PheromoneState) Evaporate(retain float64) {
	for k := range p.Scan {
		p.Scan[k] *= retain
	}
	for i := range p.Order {
		p.Order[i] *= retain
	}
	for k := range p.Rotation {
		p.Rotation[k] *= retain
	}
	for k := range p.Direction {
		p.Direction[k] *= retain
	}
}
