package dsn

import "fmt"

// DimensionUnit is the unit named by (resolution ...) and (unit ...)
type DimensionUnit int

const (
	UnitInch DimensionUnit = iota
	UnitMil
	UnitCm
	UnitMm
	UnitUm
)

var dimensionUnitNames = []string{
	UnitInch: "inch",
	UnitMil:  "mil",
	UnitCm:   "cm",
	UnitMm:   "mm",
	UnitUm:   "um",
}

func (u DimensionUnit) String() string {
	return enumString(dimensionUnitNames, int(u), "DimensionUnit")
}

func (u DimensionUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// LayerType is the (type ...) of a structure layer
type LayerType int

const (
	LayerSignal LayerType = iota
	LayerPower
	LayerMixed
	LayerJumper
)

var layerTypeNames = []string{
	LayerSignal: "signal",
	LayerPower:  "power",
	LayerMixed:  "mixed",
	LayerJumper: "jumper",
}

func (t LayerType) String() string {
	return enumString(layerTypeNames, int(t), "LayerType")
}

func (t LayerType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsCopper reports whether the layer carries copper that nets can be routed on
func (t LayerType) IsCopper() bool {
	return t == LayerSignal || t == LayerPower || t == LayerMixed
}

// Side is the board side a component is placed on
type Side int

const (
	SideFront Side = iota
	SideBack
	SideBoth
)

var sideNames = []string{
	SideFront: "front",
	SideBack:  "back",
	SideBoth:  "both",
}

func (s Side) String() string {
	return enumString(sideNames, int(s), "Side")
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LockType is the optional (lock_type ...) of a placed component.
// LockNone means the placement carried no lock_type.
type LockType int

const (
	LockNone LockType = iota
	LockGate
	LockPosition
)

var lockTypeNames = []string{
	LockNone:     "none",
	LockGate:     "gate",
	LockPosition: "position",
}

func (l LockType) String() string {
	return enumString(lockTypeNames, int(l), "LockType")
}

func (l LockType) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// KeepoutKind distinguishes keepout, via_keepout and wire_keepout
type KeepoutKind int

const (
	KeepoutAll KeepoutKind = iota
	KeepoutVia
	KeepoutWire
)

var keepoutKindNames = []string{
	KeepoutAll:  "keepout",
	KeepoutVia:  "via_keepout",
	KeepoutWire: "wire_keepout",
}

func (k KeepoutKind) String() string {
	return enumString(keepoutKindNames, int(k), "KeepoutKind")
}

func (k KeepoutKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClearanceType names the object pairs a clearance rule applies to
type ClearanceType int

const (
	ClearanceAll ClearanceType = iota
	ClearanceDefaultSmd
	ClearanceSmdSmd
)

var clearanceTypeNames = []string{
	ClearanceAll:        "all",
	ClearanceDefaultSmd: "default_smd",
	ClearanceSmdSmd:     "smd_smd",
}

func (c ClearanceType) String() string {
	return enumString(clearanceTypeNames, int(c), "ClearanceType")
}

func (c ClearanceType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ShapeKind is the variant held by a Shape
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapePolygon
	ShapePath
	ShapeQArc
)

var shapeKindNames = []string{
	ShapeRect:    "rect",
	ShapeCircle:  "circle",
	ShapePolygon: "polygon",
	ShapePath:    "path",
	ShapeQArc:    "qarc",
}

func (k ShapeKind) String() string {
	return enumString(shapeKindNames, int(k), "ShapeKind")
}

func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// RuleKind is the variant held by a Rule
type RuleKind int

const (
	RuleWidth RuleKind = iota
	RuleClearance
)

var ruleKindNames = []string{
	RuleWidth:     "width",
	RuleClearance: "clearance",
}

func (k RuleKind) String() string {
	return enumString(ruleKindNames, int(k), "RuleKind")
}

func (k RuleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func enumString(names []string, v int, typeName string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typeName, v)
	}
	return names[v]
}
