package dsn

import "github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"

// PlacedPin is an image pin resolved to board coordinates for one placed component
type PlacedPin struct {
	Ref        PinRef
	PadstackID string
	Pos        geom.Point
	Rotation   float64 // pin rotation plus component rotation, degrees
	Side       Side
}

// Transform maps an image-relative point to board coordinates.
// Back-side placements are mirrored across the image's Y axis before rotating.
func (r PlacementRef) Transform(pt geom.Point) geom.Point {
	if r.Side == SideBack {
		pt = pt.MirrorX()
	}
	return pt.Rotate(r.Rotation).Add(r.Pos)
}

// PlacedPins resolves every pin of every placed component. Components whose
// image is not in the library contribute nothing.
func (d *Document) PlacedPins() []PlacedPin {
	var pins []PlacedPin
	for _, c := range d.Placement.Components {
		img := d.ImageByID(c.ImageID)
		if img == nil {
			continue
		}
		for _, ref := range c.Refs {
			for _, pin := range img.Pins {
				pins = append(pins, PlacedPin{
					Ref:        PinRef{ComponentID: ref.ComponentID, PinID: pin.ID},
					PadstackID: pin.PadstackID,
					Pos:        ref.Transform(pin.Pos),
					Rotation:   pin.Rotation + ref.Rotation,
					Side:       ref.Side,
				})
			}
		}
	}
	return pins
}

// BoundingBox calculates the extent of the board boundaries. Without a
// boundary it falls back to placed components and their pins. The result
// is empty when the document has neither.
func (d *Document) BoundingBox() geom.Rect {
	bbox := geom.EmptyRect()

	for _, b := range d.Structure.Boundaries {
		bbox.ExpandRect(b.Bounds())
	}
	if !bbox.IsEmpty() {
		return bbox
	}

	for _, c := range d.Placement.Components {
		for _, ref := range c.Refs {
			bbox.Expand(ref.Pos)
		}
	}
	for _, pin := range d.PlacedPins() {
		bbox.Expand(pin.Pos)
	}

	return bbox
}

// Bounds returns the extent of the image's outlines and pin origins
func (img *Image) Bounds() geom.Rect {
	bbox := geom.EmptyRect()
	for _, o := range img.Outlines {
		bbox.ExpandRect(o.Bounds())
	}
	for _, pin := range img.Pins {
		bbox.Expand(pin.Pos)
	}
	return bbox
}
