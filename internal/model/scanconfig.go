package model

// ScanConfig directs the packer's candidate-position enumeration order.
type ScanConfig struct {
	LeftToRight        bool
	TopToBottom        bool
	HorizontalPriority bool
	Margin             uint32
}

// String names a scan config the way the four fixed combinations are
// referred to elsewhere in the module (LRTB, LRBT, RLTB, RLBT), ignoring
// Margin and HorizontalPriority which are not part of the four-way split.
func (c ScanConfig) String() string {
	lr, rl := "LR", "RL"
	tb, bt := "TB", "BT"
	horiz := lr
	if !c.LeftToRight {
		horiz = rl
	}
	vert := tb
	if !c.TopToBottom {
		vert = bt
	}
	return horiz + vert
}

// AllScanConfigs returns the four canonical scan-direction combinations
// (LRTB, LRBT, RLTB, RLBT), each with HorizontalPriority true and the given
// margin. This is the fixed set ACO's scan pheromone table samples over.
func AllScanConfigs(margin uint32) [4]ScanConfig {
	return [4]ScanConfig{
		{LeftToRight: true, TopToBottom: true, HorizontalPriority: true, Margin: margin},
		{LeftToRight: true, TopToBottom: false, HorizontalPriority: true, Margin: margin},
		{LeftToRight: false, TopToBottom: true, HorizontalPriority: true, Margin: margin},
		{LeftToRight: false, TopToBottom: false, HorizontalPriority: true, Margin: margin},
	}
}

// DefaultScanConfig is LRTB, horizontal priority, no margin — the packer's
// baseline scan order used for scenarios that don't sample ACO/GA configs.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{LeftToRight: true, TopToBottom: true, HorizontalPriority: true}
}
