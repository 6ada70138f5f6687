package model

// Sheet is the rectangular stock from which parts are cut. Coordinates
// throughout the module are integers on this unit-pixel grid.
type Sheet struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the sheet's total area.
func (s Sheet) Area() int {
	return s.Width * s.Height
}

// DisplaySink is the external viewer hook: it receives a finished layout and
// a title and is responsible for rendering it. The core never implements
// one; drivers that want to show intermediate state simply call it, the
// same way the original tool's optimize_and_display wraps run() with calls
// to a display callback.
type DisplaySink func(layout Layout, title string)
