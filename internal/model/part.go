// Package model defines the data types shared by the geometry, grid and
// engine packages: parts, sheets, layouts, scan configurations and the
// pheromone state used by the ant colony driver.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies which of the three supported part shapes a Part holds.
type Kind int

const (
	Rectangular Kind = iota
	Circular
	Diamond
)

func (k Kind) String() string {
	switch k {
	case Rectangular:
		return "retangular"
	case Circular:
		return "circular"
	case Diamond:
		return "diamante"
	default:
		return "unknown"
	}
}

// Part is a piece to be cut from the sheet. It is a tagged union over three
// shape families; only the fields relevant to Kind are meaningful:
//
//	Rectangular: Width, Height, Rotation (0 or 90)
//	Circular:    Radius
//	Diamond:     Width, Height, Rotation (0..90 step 10)
//
// The JSON field names follow the wire vocabulary of the original tool
// ("tipo", "largura", "altura", "r", "rotacao") so input already shaped that
// way unmarshals without translation.
type Part struct {
	ID       string `json:"id,omitempty"`
	Kind     Kind   `json:"-"`
	Width    uint32 `json:"largura,omitempty"`
	Height   uint32 `json:"altura,omitempty"`
	Radius   uint32 `json:"r,omitempty"`
	Rotation int    `json:"rotacao,omitempty"`
	Tipo     string `json:"tipo"`
}

// NewRectPart constructs a rectangular part with a fresh ID.
func NewRectPart(width, height uint32, rotation int) Part {
	return Part{
		ID:       newPartID(),
		Kind:     Rectangular,
		Tipo:     Rectangular.String(),
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}
}

// NewCirclePart constructs a circular part with a fresh ID.
func NewCirclePart(radius uint32) Part {
	return Part{
		ID:     newPartID(),
		Kind:   Circular,
		Tipo:   Circular.String(),
		Radius: radius,
	}
}

// NewDiamondPart constructs a diamond part with a fresh ID.
func NewDiamondPart(width, height uint32, rotation int) Part {
	return Part{
		ID:       newPartID(),
		Kind:     Diamond,
		Tipo:     Diamond.String(),
		Width:    width,
		Height:   height,
		Rotation: rotation,
	}
}

func newPartID() string {
	return uuid.New().String()[:8]
}

// UnmarshalJSON parses the tagged "tipo" field into Kind. Using a type alias
// avoids recursing back into this method.
func (p *Part) UnmarshalJSON(data []byte) error {
	type alias Part
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Part(a)
	switch p.Tipo {
	case Rectangular.String():
		p.Kind = Rectangular
	case Circular.String():
		p.Kind = Circular
	case Diamond.String():
		p.Kind = Diamond
	default:
		return fmt.Errorf("%w: unknown tipo %q", ErrInvalidPart, p.Tipo)
	}
	return nil
}

// MarshalJSON ensures Tipo always reflects Kind before encoding.
func (p Part) MarshalJSON() ([]byte, error) {
	type alias Part
	p.Tipo = p.Kind.String()
	return json.Marshal(alias(p))
}

// PlacedPart is a Part that has been given a position by the packer. (X, Y)
// is the top-left corner of the unrotated bounding box in sheet coordinates;
// for circles it is the top-left of the enclosing square.
type PlacedPart struct {
	Part
	X int `json:"x"`
	Y int `json:"y"`
}

// Layout is an ordered sequence of placed parts, in the order in which the
// packer successfully placed them.
type Layout []PlacedPart
