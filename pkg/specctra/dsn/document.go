package dsn

import "github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"

// Document is one parsed (pcb ...) design. It is built once by the parser
// and not modified afterwards.
type Document struct {
	ID         string         `json:"id" yaml:"id"`
	Library    Library        `json:"library" yaml:"library"`
	Network    Network        `json:"network" yaml:"network"`
	Placement  Placement      `json:"placement" yaml:"placement"`
	Resolution Resolution     `json:"resolution" yaml:"resolution"`
	Structure  Structure      `json:"structure" yaml:"structure"`
	Unit       UnitDescriptor `json:"unit" yaml:"unit"`
	Wiring     Wiring         `json:"wiring" yaml:"wiring"`
}

// Library holds reusable part definitions
type Library struct {
	Images    []Image    `json:"images,omitempty" yaml:"images,omitempty"`
	Padstacks []Padstack `json:"padstacks,omitempty" yaml:"padstacks,omitempty"`
}

// Image is a component footprint
type Image struct {
	ID       string    `json:"id" yaml:"id"`
	Outlines []Shape   `json:"outlines,omitempty" yaml:"outlines,omitempty"`
	Pins     []Pin     `json:"pins,omitempty" yaml:"pins,omitempty"`
	Keepouts []Keepout `json:"keepouts,omitempty" yaml:"keepouts,omitempty"`
}

// Padstack is a reusable pad geometry referenced by pins
type Padstack struct {
	ID     string          `json:"id" yaml:"id"`
	Attach bool            `json:"attach" yaml:"attach"`
	Shapes []PadstackShape `json:"shapes,omitempty" yaml:"shapes,omitempty"`
}

// PadstackShape is one (shape ...) entry of a padstack
type PadstackShape struct {
	Shape Shape `json:"shape" yaml:"shape"`
}

// Pin places a padstack within an image
type Pin struct {
	PadstackID string     `json:"padstack" yaml:"padstack"`
	Rotation   float64    `json:"rotation,omitempty" yaml:"rotation,omitempty"` // degrees, 0 when absent
	ID         string     `json:"id" yaml:"id"`
	Pos        geom.Point `json:"pos" yaml:"pos"`
}

// Network holds electrical connectivity
type Network struct {
	Classes []Class `json:"classes,omitempty" yaml:"classes,omitempty"`
	Nets    []Net   `json:"nets,omitempty" yaml:"nets,omitempty"`
}

// Net is a named electrical connection
type Net struct {
	ID   string   `json:"id" yaml:"id"`
	Pins []PinRef `json:"pins,omitempty" yaml:"pins,omitempty"`
}

// PinRef names one pin of one placed component, written component-pin
type PinRef struct {
	ComponentID string `json:"component" yaml:"component"`
	PinID       string `json:"pin" yaml:"pin"`
}

// String formats the reference the way DSN writes it
func (p PinRef) String() string {
	return p.ComponentID + "-" + p.PinID
}

// Class groups nets that share routing rules
type Class struct {
	ID       string    `json:"id" yaml:"id"`
	NetIDs   []string  `json:"nets,omitempty" yaml:"nets,omitempty"`
	Circuits []Circuit `json:"circuits,omitempty" yaml:"circuits,omitempty"`
	Rules    []Rule    `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Circuit is a per-class directive. Only (use_via id) is modeled.
type Circuit struct {
	UseVia string `json:"use_via" yaml:"use_via"`
}

// Rule is a design constraint: either a width or a clearance
type Rule struct {
	Kind      RuleKind   `json:"kind" yaml:"kind"`
	Width     float64    `json:"width,omitempty" yaml:"width,omitempty"`
	Clearance *Clearance `json:"clearance,omitempty" yaml:"clearance,omitempty"`
}

// WidthRule returns a width rule
func WidthRule(w float64) Rule {
	return Rule{Kind: RuleWidth, Width: w}
}

// ClearanceRule returns a clearance rule
func ClearanceRule(c Clearance) Rule {
	return Rule{Kind: RuleClearance, Clearance: &c}
}

// Clearance is a spacing rule. Types is never empty once parsed:
// a clearance without (type ...) applies to ClearanceAll.
type Clearance struct {
	Amount float64         `json:"amount" yaml:"amount"`
	Types  []ClearanceType `json:"types" yaml:"types"`
}

// AppliesTo reports whether the clearance covers the given type
func (c Clearance) AppliesTo(t ClearanceType) bool {
	for _, ct := range c.Types {
		if ct == t || ct == ClearanceAll {
			return true
		}
	}
	return false
}

// Placement holds the board-level component instances
type Placement struct {
	Components []Component `json:"components,omitempty" yaml:"components,omitempty"`
}

// Component is a group of placed instances sharing one image
type Component struct {
	ImageID string         `json:"image" yaml:"image"`
	Refs    []PlacementRef `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// PlacementRef is one placed instance of a component
type PlacementRef struct {
	ComponentID string     `json:"id" yaml:"id"`
	Pos         geom.Point `json:"pos" yaml:"pos"`
	Side        Side       `json:"side" yaml:"side"`
	Rotation    float64    `json:"rotation" yaml:"rotation"` // degrees
	LockType    LockType   `json:"lock_type" yaml:"lock_type"`
	PartNumber  string     `json:"pn,omitempty" yaml:"pn,omitempty"`
}

// Resolution is the coordinate precision of the document
type Resolution struct {
	Unit   DimensionUnit `json:"unit" yaml:"unit"`
	Amount int           `json:"amount" yaml:"amount"`
}

// UnitDescriptor is the document's (unit ...) setting
type UnitDescriptor struct {
	Unit DimensionUnit `json:"unit" yaml:"unit"`
}

// Structure holds board-wide physical structure
type Structure struct {
	Boundaries []Shape   `json:"boundaries,omitempty" yaml:"boundaries,omitempty"`
	Keepouts   []Keepout `json:"keepouts,omitempty" yaml:"keepouts,omitempty"`
	Layers     []Layer   `json:"layers,omitempty" yaml:"layers,omitempty"`
	Planes     []Plane   `json:"planes,omitempty" yaml:"planes,omitempty"`
	Rules      []Rule    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Vias       []string  `json:"vias,omitempty" yaml:"vias,omitempty"` // padstack ids usable as vias
}

// Layer is one copper or mechanical layer
type Layer struct {
	Name string    `json:"name" yaml:"name"`
	Type LayerType `json:"type" yaml:"type"`
}

// Keepout is a region where routing or vias are forbidden
type Keepout struct {
	ID      string      `json:"id,omitempty" yaml:"id,omitempty"`
	Kind    KeepoutKind `json:"kind" yaml:"kind"`
	Shape   Shape       `json:"shape" yaml:"shape"`
	Windows []Window    `json:"windows,omitempty" yaml:"windows,omitempty"`
}

// Wiring holds routed geometry
type Wiring struct {
	Wires []Wire `json:"wires,omitempty" yaml:"wires,omitempty"`
	Vias  []Via  `json:"vias,omitempty" yaml:"vias,omitempty"`
}

// Recognized productions whose contents are not modeled yet. The parser
// consumes their bodies without populating any fields.
type (
	Wire   struct{}
	Via    struct{}
	Plane  struct{}
	Window struct{}
)
