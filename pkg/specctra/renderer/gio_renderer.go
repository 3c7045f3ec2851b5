package renderer

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

// Segments used to approximate circles and quarter arcs
const (
	circleSegments = 32
	arcSegments    = 12
)

// transform maps shape-local coordinates to board coordinates
type transform func(geom.Point) geom.Point

func identity(p geom.Point) geom.Point { return p }

// Renderer draws a parsed DSN document with Gio operations
type Renderer struct {
	Camera       *Camera
	Layers       *LayerConfig
	Palette      Palette
	HighlightNet string // net whose pads are drawn highlighted, others dimmed
	ShowLabels   bool

	doc        *dsn.Document
	nets       *dsn.NetMap
	layerIndex map[string]int // copper stack position by layer name
	shaper     *text.Shaper
}

// New creates a renderer for doc using the given color theme
func New(doc *dsn.Document, theme ColorTheme) *Renderer {
	r := &Renderer{
		Camera:     NewCamera(800, 600),
		Layers:     NewLayerConfig(),
		Palette:    PaletteFor(theme),
		ShowLabels: true,
		doc:        doc,
		nets:       dsn.NewNetMap(doc.Network.Nets),
		layerIndex: make(map[string]int),
		shaper:     text.NewShaper(text.WithCollection(gofont.Collection())),
	}

	i := 0
	for _, l := range doc.Structure.Layers {
		if l.Type.IsCopper() {
			r.layerIndex[l.Name] = i
			i++
		}
	}
	return r
}

// Document returns the document being rendered
func (r *Renderer) Document() *dsn.Document {
	return r.doc
}

// FitView fits the camera to the document's extent
func (r *Renderer) FitView() {
	r.Camera.Fit(r.doc.BoundingBox())
}

// LayerColor returns the color a shape on the named layer is drawn with
func (r *Renderer) LayerColor(layer string) color.NRGBA {
	if i, ok := r.layerIndex[layer]; ok {
		return r.Palette.CopperColor(i)
	}
	if r.doc.LayerByName(layer) != nil {
		return colorUnknown
	}
	return r.Palette.Outline
}

// Layout draws the document, bottom to top: substrate, boundaries,
// keepouts, component outlines, pads and labels.
func (r *Renderer) Layout(gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	r.Camera.UpdateScreenSize(size.X, size.Y)

	paint.Fill(gtx.Ops, r.Palette.Background)

	r.renderBoundaries(gtx)
	r.renderKeepouts(gtx)
	r.renderComponents(gtx)
	r.renderPads(gtx)
	if r.ShowLabels {
		r.renderLabels(gtx)
	}

	return layout.Dimensions{Size: size}
}

func (r *Renderer) renderBoundaries(gtx layout.Context) {
	for _, b := range r.doc.Structure.Boundaries {
		r.drawShape(gtx, b, identity, r.Palette.Substrate, true)
	}
	for _, b := range r.doc.Structure.Boundaries {
		r.drawShape(gtx, b, identity, r.Palette.Boundary, false)
	}
}

func (r *Renderer) renderKeepouts(gtx layout.Context) {
	visible := r.Camera.VisibleBounds()
	for _, k := range r.doc.Structure.Keepouts {
		if !r.Layers.IsVisible(k.Shape.Layer()) || !visible.Intersects(k.Shape.Bounds()) {
			continue
		}
		r.drawShape(gtx, k.Shape, identity, r.Palette.Keepout, true)
	}
}

// renderComponents draws image outlines and image keepouts at every placement
func (r *Renderer) renderComponents(gtx layout.Context) {
	for _, c := range r.doc.Placement.Components {
		img := r.doc.ImageByID(c.ImageID)
		if img == nil {
			continue
		}
		for _, ref := range c.Refs {
			xf := transform(ref.Transform)
			for _, o := range img.Outlines {
				if r.Layers.IsVisible(o.Layer()) {
					r.drawShape(gtx, o, xf, r.LayerColor(o.Layer()), false)
				}
			}
			for _, k := range img.Keepouts {
				if r.Layers.IsVisible(k.Shape.Layer()) {
					r.drawShape(gtx, k.Shape, xf, r.Palette.Keepout, true)
				}
			}
		}
	}
}

// renderPads draws each pin's padstack shapes, rotated by the pin and
// placed by the component
func (r *Renderer) renderPads(gtx layout.Context) {
	visible := r.Camera.VisibleBounds()

	for _, c := range r.doc.Placement.Components {
		img := r.doc.ImageByID(c.ImageID)
		if img == nil {
			continue
		}
		for _, ref := range c.Refs {
			for _, pin := range img.Pins {
				pos := ref.Transform(pin.Pos)
				padColor := r.padColor(dsn.PinRef{ComponentID: ref.ComponentID, PinID: pin.ID})

				ps := r.doc.PadstackByID(pin.PadstackID)
				if ps == nil || len(ps.Shapes) == 0 {
					if visible.Contains(pos) {
						x, y := r.Camera.WorldToScreen(pos)
						renderCircle(gtx, x, y, 2.0, padColor)
					}
					continue
				}

				local := pin
				xf := func(p geom.Point) geom.Point {
					return ref.Transform(local.Pos.Add(p.Rotate(local.Rotation)))
				}
				for _, s := range ps.Shapes {
					if !r.Layers.IsVisible(s.Shape.Layer()) {
						continue
					}
					extent := s.Shape.Bounds()
					margin := math.Max(extent.Width(), extent.Height())
					if !visible.Inflate(margin).Contains(pos) {
						continue
					}
					r.drawShape(gtx, s.Shape, xf, padColor, true)
				}
			}
		}
	}
}

func (r *Renderer) padColor(ref dsn.PinRef) color.NRGBA {
	if r.HighlightNet == "" {
		return r.Palette.Pad
	}
	if net, ok := r.nets.GetByPin(ref); ok && net.ID == r.HighlightNet {
		return r.Palette.Highlight
	}
	dimmed := r.Palette.Pad
	dimmed.A = 60
	return dimmed
}

// renderLabels draws the component id at each placement, sized from the image
func (r *Renderer) renderLabels(gtx layout.Context) {
	for _, c := range r.doc.Placement.Components {
		img := r.doc.ImageByID(c.ImageID)
		if img == nil {
			continue
		}
		bounds := img.Bounds()
		if bounds.IsEmpty() {
			continue
		}
		fontSize := math.Max(bounds.Width(), bounds.Height()) * 0.2 * r.Camera.Zoom
		if fontSize < 8.0 {
			continue
		}
		fontSize = math.Min(fontSize, 50.0)

		for _, ref := range c.Refs {
			x, y := r.Camera.WorldToScreen(ref.Pos)

			macro := op.Record(gtx.Ops)
			stack := op.Offset(image.Pt(int(x), int(y))).Push(gtx.Ops)

			paint.ColorOp{Color: r.Palette.Text}.Add(gtx.Ops)
			label := widget.Label{Alignment: text.Start, MaxLines: 1}
			label.Layout(gtx, r.shaper, font.Font{}, unit.Sp(fontSize), ref.ComponentID, op.CallOp{})

			stack.Pop()
			macro.Stop().Add(gtx.Ops)
		}
	}
}

// drawShape draws s through xf, filled or as an outline
func (r *Renderer) drawShape(gtx layout.Context, s dsn.Shape, xf transform, col color.NRGBA, fill bool) {
	switch s.Kind {
	case dsn.ShapeRect:
		if s.Rect == nil {
			return
		}
		rc := s.Rect.Rect
		pts := []geom.Point{rc.Min, geom.Pt(rc.Max.X, rc.Min.Y), rc.Max, geom.Pt(rc.Min.X, rc.Max.Y)}
		if fill {
			r.fillPolygon(gtx, pts, xf, col)
		} else {
			r.strokePolyline(gtx, pts, true, 0, xf, col)
		}

	case dsn.ShapeCircle:
		if s.Circle == nil {
			return
		}
		pts := circlePoints(s.Circle.Center, s.Circle.Diameter/2.0, circleSegments)
		if fill {
			r.fillPolygon(gtx, pts, xf, col)
		} else {
			r.strokePolyline(gtx, pts, true, 0, xf, col)
		}

	case dsn.ShapePolygon:
		if s.Polygon == nil {
			return
		}
		if fill {
			r.fillPolygon(gtx, s.Polygon.Points, xf, col)
		} else {
			r.strokePolyline(gtx, s.Polygon.Points, true, s.Polygon.ApertureWidth, xf, col)
		}

	case dsn.ShapePath:
		if p := s.Path; p != nil {
			// Closed paths are outlines (board edges, pad shapes)
			closed := len(p.Points) >= 3 && p.Points[0] == p.Points[len(p.Points)-1]
			if fill && closed {
				r.fillPolygon(gtx, p.Points, xf, col)
			} else {
				r.strokePolyline(gtx, p.Points, false, p.ApertureWidth, xf, col)
			}
		}

	case dsn.ShapeQArc:
		if q := s.QArc; q != nil {
			r.strokePolyline(gtx, arcPoints(q.Start, q.End, q.Center, arcSegments), false, q.ApertureWidth, xf, col)
		}
	}
}

func (r *Renderer) fillPolygon(gtx layout.Context, pts []geom.Point, xf transform, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	for i, pt := range pts {
		x, y := r.Camera.WorldToScreen(xf(pt))
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// strokePolyline strokes pts with the given world width, at least one pixel wide
func (r *Renderer) strokePolyline(gtx layout.Context, pts []geom.Point, closed bool, width float64, xf transform, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	for i, pt := range pts {
		x, y := r.Camera.WorldToScreen(xf(pt))
		if i == 0 {
			path.MoveTo(f32.Pt(float32(x), float32(y)))
		} else {
			path.LineTo(f32.Pt(float32(x), float32(y)))
		}
	}
	if closed {
		path.Close()
	}

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(r.Camera.PixelsFor(width, 1.0)),
	}.Op()
	paint.FillShape(gtx.Ops, col, stroke)
}

// renderCircle renders a simple filled circle in screen coordinates
func renderCircle(gtx layout.Context, x, y, radius float64, fillColor color.NRGBA) {
	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)
	defer stack.Pop()

	rect := image.Rectangle{
		Min: image.Pt(int(-radius), int(-radius)),
		Max: image.Pt(int(radius), int(radius)),
	}
	paint.FillShape(gtx.Ops, fillColor, clip.Ellipse(rect).Op(gtx.Ops))
}

// circlePoints approximates a circle with n vertices
func circlePoints(center geom.Point, radius float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return pts
}

// arcPoints approximates the shorter arc from start to end around center.
// The radius is taken from start.
func arcPoints(start, end, center geom.Point, n int) []geom.Point {
	radius := math.Hypot(start.X-center.X, start.Y-center.Y)
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)

	sweep := a1 - a0
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	pts := make([]geom.Point, n+1)
	for i := range pts {
		a := a0 + sweep*float64(i)/float64(n)
		pts[i] = geom.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	pts[n] = end
	return pts
}
