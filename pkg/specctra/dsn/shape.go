package dsn

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"
)

// Shape is a geometric primitive on a layer. Exactly one of the variant
// pointers is set, selected by Kind.
type Shape struct {
	Kind    ShapeKind `json:"kind" yaml:"kind"`
	Rect    *Rect     `json:"rect,omitempty" yaml:"rect,omitempty"`
	Circle  *Circle   `json:"circle,omitempty" yaml:"circle,omitempty"`
	Polygon *Polygon  `json:"polygon,omitempty" yaml:"polygon,omitempty"`
	Path    *Path     `json:"path,omitempty" yaml:"path,omitempty"`
	QArc    *QArc     `json:"qarc,omitempty" yaml:"qarc,omitempty"`
}

// Rect is an axis-aligned rectangle on a layer
type Rect struct {
	Layer string    `json:"layer" yaml:"layer"`
	Rect  geom.Rect `json:"rect" yaml:"rect"`
}

// Circle is a circle on a layer. Center is the origin when the file omits it.
type Circle struct {
	Layer    string     `json:"layer" yaml:"layer"`
	Diameter float64    `json:"diameter" yaml:"diameter"`
	Center   geom.Point `json:"center" yaml:"center"`
}

// Polygon is a closed outline of at least three points
type Polygon struct {
	Layer         string       `json:"layer" yaml:"layer"`
	ApertureWidth float64      `json:"aperture_width" yaml:"aperture_width"`
	Points        []geom.Point `json:"points" yaml:"points"`
}

// Path is an open polyline of at least two points
type Path struct {
	Layer         string       `json:"layer" yaml:"layer"`
	ApertureWidth float64      `json:"aperture_width" yaml:"aperture_width"`
	Points        []geom.Point `json:"points" yaml:"points"`
}

// QArc is a quarter arc from Start to End around Center
type QArc struct {
	Layer         string     `json:"layer" yaml:"layer"`
	ApertureWidth float64    `json:"aperture_width" yaml:"aperture_width"`
	Start         geom.Point `json:"start" yaml:"start"`
	End           geom.Point `json:"end" yaml:"end"`
	Center        geom.Point `json:"center" yaml:"center"`
}

// Layer returns the layer id of whichever variant the shape holds
func (s Shape) Layer() string {
	switch s.Kind {
	case ShapeRect:
		if s.Rect != nil {
			return s.Rect.Layer
		}
	case ShapeCircle:
		if s.Circle != nil {
			return s.Circle.Layer
		}
	case ShapePolygon:
		if s.Polygon != nil {
			return s.Polygon.Layer
		}
	case ShapePath:
		if s.Path != nil {
			return s.Path.Layer
		}
	case ShapeQArc:
		if s.QArc != nil {
			return s.QArc.Layer
		}
	}
	return ""
}

// Bounds returns the extent of the shape including half the aperture width.
// Quarter arcs are bounded by their start, end and the arc radius around center.
func (s Shape) Bounds() geom.Rect {
	bbox := geom.EmptyRect()

	switch s.Kind {
	case ShapeRect:
		if s.Rect != nil {
			bbox.ExpandRect(s.Rect.Rect)
		}
	case ShapeCircle:
		if c := s.Circle; c != nil {
			r := c.Diameter / 2.0
			bbox.Expand(geom.Pt(c.Center.X-r, c.Center.Y-r))
			bbox.Expand(geom.Pt(c.Center.X+r, c.Center.Y+r))
		}
	case ShapePolygon:
		if p := s.Polygon; p != nil {
			for _, pt := range p.Points {
				bbox.Expand(pt)
			}
			bbox = bbox.Inflate(p.ApertureWidth / 2.0)
		}
	case ShapePath:
		if p := s.Path; p != nil {
			for _, pt := range p.Points {
				bbox.Expand(pt)
			}
			bbox = bbox.Inflate(p.ApertureWidth / 2.0)
		}
	case ShapeQArc:
		if q := s.QArc; q != nil {
			// Conservative: the full circle the arc lies on
			r := math.Hypot(q.Start.X-q.Center.X, q.Start.Y-q.Center.Y)
			bbox.Expand(q.Start)
			bbox.Expand(q.End)
			bbox.ExpandRect(geom.Enclosing(
				geom.Pt(q.Center.X-r, q.Center.Y-r),
				geom.Pt(q.Center.X+r, q.Center.Y+r),
			))
			bbox = bbox.Inflate(q.ApertureWidth / 2.0)
		}
	}

	return bbox
}
