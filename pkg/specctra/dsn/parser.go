package dsn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsnlex"
)

// Parser builds a Document from a token sequence by recursive descent.
// Decisions are made on the token tag; identifiers and numbers come from
// the token text. A Parser is single use.
type Parser struct {
	tokens []dsnlex.Token
	idx    int
}

// NewParser returns a parser over tokens produced by dsnlex
func NewParser(tokens []dsnlex.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses one (pcb ...) document. On error no partial document is returned.
func (p *Parser) Parse() (*Document, error) {
	doc, err := p.pcb()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Token access

func (p *Parser) peek(ahead int) (dsnlex.Token, error) {
	if p.idx+ahead >= len(p.tokens) {
		return dsnlex.Token{}, p.eof()
	}
	return p.tokens[p.idx+ahead], nil
}

func (p *Parser) next() (dsnlex.Token, error) {
	t, err := p.peek(0)
	if err != nil {
		return t, err
	}
	p.idx++
	return t, nil
}

func (p *Parser) expect(want dsnlex.Tok) (dsnlex.Token, error) {
	t, err := p.next()
	if err != nil {
		return t, err
	}
	if t.Tok != want {
		return t, p.unexpected(t, fmt.Sprintf("expected %q", want.String()))
	}
	return t, nil
}

// atClose reports whether the next token is ')'
func (p *Parser) atClose() (bool, error) {
	t, err := p.peek(0)
	if err != nil {
		return false, err
	}
	return t.Tok == dsnlex.Rparen, nil
}

// nextHead returns the keyword of the next (...) group in a section body,
// or ok=false when the section's closing paren is next.
func (p *Parser) nextHead() (head dsnlex.Token, ok bool, err error) {
	t, err := p.peek(0)
	if err != nil {
		return t, false, err
	}
	switch t.Tok {
	case dsnlex.Rparen:
		return t, false, nil
	case dsnlex.Lparen:
	default:
		return t, false, p.unexpected(t, "expected '(' or ')'")
	}
	head, err = p.peek(1)
	if err != nil {
		return head, false, err
	}
	return head, true, nil
}

// open consumes "(" followed by the given keyword
func (p *Parser) open(kw dsnlex.Tok) error {
	if _, err := p.expect(dsnlex.Lparen); err != nil {
		return err
	}
	_, err := p.expect(kw)
	return err
}

func (p *Parser) close() error {
	_, err := p.expect(dsnlex.Rparen)
	return err
}

// Primitives

// literal reads an identifier. Any non-paren token qualifies, keywords
// included, since names like "signal" or "front" are legal identifiers.
func (p *Parser) literal() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	if t.Tok == dsnlex.Lparen || t.Tok == dsnlex.Rparen {
		return "", p.unexpected(t, "expected identifier")
	}
	return t.Text, nil
}

func (p *Parser) number() (float64, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	if t.Tok == dsnlex.Lparen || t.Tok == dsnlex.Rparen {
		return 0, p.unexpected(t, "expected number")
	}
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return 0, &SyntaxError{Pos: t.Pos, Token: t.Text, Msg: "expected number", Err: ErrBadNumber}
	}
	return v, nil
}

// integer reads a signed 32-bit decimal integer
func (p *Parser) integer() (int, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	if t.Tok == dsnlex.Lparen || t.Tok == dsnlex.Rparen {
		return 0, p.unexpected(t, "expected integer")
	}
	v, err := strconv.ParseInt(t.Text, 10, 32)
	if err != nil {
		return 0, &SyntaxError{Pos: t.Pos, Token: t.Text, Msg: "expected integer", Err: ErrBadNumber}
	}
	return int(v), nil
}

func (p *Parser) vertex() (geom.Point, error) {
	x, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

// skip discards one balanced (...) group, whatever it contains
func (p *Parser) skip() error {
	if _, err := p.expect(dsnlex.Lparen); err != nil {
		return err
	}
	return p.skipBody()
}

// skipBody discards tokens up to and including the ')' that closes the
// group already opened.
func (p *Parser) skipBody() error {
	for depth := 1; depth > 0; {
		t, err := p.next()
		if err != nil {
			return err
		}
		switch t.Tok {
		case dsnlex.Lparen:
			depth++
		case dsnlex.Rparen:
			depth--
		}
	}
	return nil
}

// stub consumes a recognized production whose contents are not modeled
func (p *Parser) stub(kw dsnlex.Tok) error {
	if err := p.open(kw); err != nil {
		return err
	}
	return p.skipBody()
}

// Errors

func (p *Parser) eof() error {
	se := &SyntaxError{Err: ErrUnexpectedEOF}
	if n := len(p.tokens); n > 0 {
		se.Pos = p.tokens[n-1].Pos
	}
	return se
}

func (p *Parser) unexpected(t dsnlex.Token, msg string) error {
	return &SyntaxError{Pos: t.Pos, Token: t.Text, Msg: msg, Err: ErrUnexpectedToken}
}

func badEnum(t dsnlex.Token, what string) error {
	return &SyntaxError{Pos: t.Pos, Token: t.Text, Msg: what, Err: ErrBadEnum}
}

// Document root

func (p *Parser) pcb() (*Document, error) {
	if err := p.open(dsnlex.Pcb); err != nil {
		return nil, err
	}

	idTok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	id, err := p.literal()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, &SyntaxError{Pos: idTok.Pos, Err: ErrEmptyID}
	}

	doc := &Document{ID: id}
	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Library:
			doc.Library, err = p.library()
		case dsnlex.Network:
			doc.Network, err = p.network()
		case dsnlex.Parser:
			err = p.skip()
		case dsnlex.Placement:
			doc.Placement, err = p.placement()
		case dsnlex.Resolution:
			doc.Resolution, err = p.resolution()
		case dsnlex.Structure:
			doc.Structure, err = p.structure()
		case dsnlex.Unit:
			doc.Unit, err = p.unit()
		case dsnlex.Wiring:
			doc.Wiring, err = p.wiring()
		default:
			err = p.unexpected(head, "unrecognised pcb section")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.close(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Library

func (p *Parser) library() (Library, error) {
	var lib Library
	if err := p.open(dsnlex.Library); err != nil {
		return lib, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return lib, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Image:
			var img Image
			img, err = p.image()
			lib.Images = append(lib.Images, img)
		case dsnlex.Padstack:
			var ps Padstack
			ps, err = p.padstack()
			lib.Padstacks = append(lib.Padstacks, ps)
		default:
			err = p.unexpected(head, "unrecognised library entry")
		}
		if err != nil {
			return lib, err
		}
	}

	return lib, p.close()
}

func (p *Parser) image() (Image, error) {
	var img Image
	if err := p.open(dsnlex.Image); err != nil {
		return img, err
	}

	var err error
	if img.ID, err = p.literal(); err != nil {
		return img, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return img, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Outline:
			var s Shape
			s, err = p.outline()
			img.Outlines = append(img.Outlines, s)
		case dsnlex.Pin:
			var pin Pin
			pin, err = p.pin()
			img.Pins = append(img.Pins, pin)
		case dsnlex.Keepout, dsnlex.ViaKeepout, dsnlex.WireKeepout:
			var k Keepout
			k, err = p.keepout()
			img.Keepouts = append(img.Keepouts, k)
		default:
			err = p.unexpected(head, "unrecognised image entry")
		}
		if err != nil {
			return img, err
		}
	}

	return img, p.close()
}

func (p *Parser) outline() (Shape, error) {
	if err := p.open(dsnlex.Outline); err != nil {
		return Shape{}, err
	}
	s, err := p.shape()
	if err != nil {
		return s, err
	}
	return s, p.close()
}

func (p *Parser) pin() (Pin, error) {
	var pin Pin
	if err := p.open(dsnlex.Pin); err != nil {
		return pin, err
	}

	var err error
	if pin.PadstackID, err = p.literal(); err != nil {
		return pin, err
	}

	t, err := p.peek(0)
	if err != nil {
		return pin, err
	}
	if t.Tok == dsnlex.Lparen {
		if err := p.open(dsnlex.Rotate); err != nil {
			return pin, err
		}
		if pin.Rotation, err = p.number(); err != nil {
			return pin, err
		}
		if err := p.close(); err != nil {
			return pin, err
		}
	}

	if pin.ID, err = p.literal(); err != nil {
		return pin, err
	}
	if pin.Pos, err = p.vertex(); err != nil {
		return pin, err
	}
	return pin, p.close()
}

func (p *Parser) padstack() (Padstack, error) {
	var ps Padstack
	if err := p.open(dsnlex.Padstack); err != nil {
		return ps, err
	}

	var err error
	if ps.ID, err = p.literal(); err != nil {
		return ps, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return ps, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Attach:
			ps.Attach, err = p.attach()
		case dsnlex.Shape:
			var s Shape
			s, err = p.padstackShape()
			ps.Shapes = append(ps.Shapes, PadstackShape{Shape: s})
		default:
			err = p.unexpected(head, "unrecognised padstack entry")
		}
		if err != nil {
			return ps, err
		}
	}

	return ps, p.close()
}

func (p *Parser) attach() (bool, error) {
	if err := p.open(dsnlex.Attach); err != nil {
		return false, err
	}
	t, err := p.next()
	if err != nil {
		return false, err
	}

	var on bool
	switch t.Tok {
	case dsnlex.On:
		on = true
	case dsnlex.Off:
		on = false
	default:
		return false, badEnum(t, "expected on or off")
	}
	return on, p.close()
}

func (p *Parser) padstackShape() (Shape, error) {
	if err := p.open(dsnlex.Shape); err != nil {
		return Shape{}, err
	}
	s, err := p.shape()
	if err != nil {
		return s, err
	}
	return s, p.close()
}

// Network

func (p *Parser) network() (Network, error) {
	var nw Network
	if err := p.open(dsnlex.Network); err != nil {
		return nw, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return nw, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Class:
			var c Class
			c, err = p.class()
			nw.Classes = append(nw.Classes, c)
		case dsnlex.Net:
			var n Net
			n, err = p.net()
			nw.Nets = append(nw.Nets, n)
		default:
			err = p.unexpected(head, "unrecognised network entry")
		}
		if err != nil {
			return nw, err
		}
	}

	return nw, p.close()
}

func (p *Parser) net() (Net, error) {
	var n Net
	if err := p.open(dsnlex.Net); err != nil {
		return n, err
	}

	var err error
	if n.ID, err = p.literal(); err != nil {
		return n, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Pins:
			var refs []PinRef
			refs, err = p.pins()
			n.Pins = append(n.Pins, refs...)
		default:
			err = p.unexpected(head, "unrecognised net entry")
		}
		if err != nil {
			return n, err
		}
	}

	return n, p.close()
}

func (p *Parser) pins() ([]PinRef, error) {
	if err := p.open(dsnlex.Pins); err != nil {
		return nil, err
	}

	var refs []PinRef
	for {
		done, err := p.atClose()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		ref, err := p.pinRef()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, p.close()
}

// pinRef splits component-pin at the last '-', so component ids may
// themselves contain dashes.
func (p *Parser) pinRef() (PinRef, error) {
	t, err := p.peek(0)
	if err != nil {
		return PinRef{}, err
	}
	text, err := p.literal()
	if err != nil {
		return PinRef{}, err
	}

	i := strings.LastIndexByte(text, '-')
	if i <= 0 || i == len(text)-1 {
		return PinRef{}, &SyntaxError{Pos: t.Pos, Token: text, Msg: "expected component-pin", Err: ErrBadPinRef}
	}
	return PinRef{ComponentID: text[:i], PinID: text[i+1:]}, nil
}

func (p *Parser) class() (Class, error) {
	var c Class
	if err := p.open(dsnlex.Class); err != nil {
		return c, err
	}

	var err error
	if c.ID, err = p.literal(); err != nil {
		return c, err
	}

	for {
		t, err := p.peek(0)
		if err != nil {
			return c, err
		}
		if t.Tok == dsnlex.Rparen {
			break
		}
		if t.Tok != dsnlex.Lparen {
			var id string
			if id, err = p.literal(); err != nil {
				return c, err
			}
			c.NetIDs = append(c.NetIDs, id)
			continue
		}

		head, err := p.peek(1)
		if err != nil {
			return c, err
		}
		switch head.Tok {
		case dsnlex.Circuit:
			var cs []Circuit
			cs, err = p.circuit()
			c.Circuits = append(c.Circuits, cs...)
		case dsnlex.Rule:
			var rs []Rule
			rs, err = p.rule()
			c.Rules = append(c.Rules, rs...)
		default:
			err = p.unexpected(head, "unrecognised class entry")
		}
		if err != nil {
			return c, err
		}
	}

	return c, p.close()
}

func (p *Parser) circuit() ([]Circuit, error) {
	if err := p.open(dsnlex.Circuit); err != nil {
		return nil, err
	}

	var cs []Circuit
	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.UseVia:
			var id string
			id, err = p.useVia()
			cs = append(cs, Circuit{UseVia: id})
		default:
			err = p.unexpected(head, "unrecognised circuit entry")
		}
		if err != nil {
			return nil, err
		}
	}

	return cs, p.close()
}

func (p *Parser) useVia() (string, error) {
	if err := p.open(dsnlex.UseVia); err != nil {
		return "", err
	}
	id, err := p.literal()
	if err != nil {
		return "", err
	}
	return id, p.close()
}

// Rules

func (p *Parser) rule() ([]Rule, error) {
	if err := p.open(dsnlex.Rule); err != nil {
		return nil, err
	}

	var rules []Rule
	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Width:
			var w float64
			w, err = p.width()
			rules = append(rules, WidthRule(w))
		case dsnlex.Clearance:
			var c Clearance
			c, err = p.clearance()
			rules = append(rules, ClearanceRule(c))
		default:
			err = p.unexpected(head, "unrecognised rule")
		}
		if err != nil {
			return nil, err
		}
	}

	return rules, p.close()
}

func (p *Parser) width() (float64, error) {
	if err := p.open(dsnlex.Width); err != nil {
		return 0, err
	}
	w, err := p.number()
	if err != nil {
		return 0, err
	}
	return w, p.close()
}

func (p *Parser) clearance() (Clearance, error) {
	var c Clearance
	if err := p.open(dsnlex.Clearance); err != nil {
		return c, err
	}

	var err error
	if c.Amount, err = p.number(); err != nil {
		return c, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return c, err
		}
		if !ok {
			break
		}
		if head.Tok != dsnlex.Type {
			return c, p.unexpected(head, `expected "type"`)
		}

		ct, err := p.clearanceType()
		if err != nil {
			return c, err
		}
		c.Types = append(c.Types, ct)
	}

	if len(c.Types) == 0 {
		c.Types = []ClearanceType{ClearanceAll}
	}
	return c, p.close()
}

func (p *Parser) clearanceType() (ClearanceType, error) {
	if err := p.open(dsnlex.Type); err != nil {
		return 0, err
	}
	t, err := p.next()
	if err != nil {
		return 0, err
	}

	var ct ClearanceType
	switch t.Tok {
	case dsnlex.DefaultSmd:
		ct = ClearanceDefaultSmd
	case dsnlex.SmdSmd:
		ct = ClearanceSmdSmd
	default:
		return 0, badEnum(t, "expected clearance type default_smd or smd_smd")
	}
	return ct, p.close()
}

// Placement

func (p *Parser) placement() (Placement, error) {
	var pl Placement
	if err := p.open(dsnlex.Placement); err != nil {
		return pl, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return pl, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Component:
			var c Component
			c, err = p.component()
			pl.Components = append(pl.Components, c)
		default:
			err = p.unexpected(head, "unrecognised placement entry")
		}
		if err != nil {
			return pl, err
		}
	}

	return pl, p.close()
}

func (p *Parser) component() (Component, error) {
	var c Component
	if err := p.open(dsnlex.Component); err != nil {
		return c, err
	}

	var err error
	if c.ImageID, err = p.literal(); err != nil {
		return c, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return c, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Place:
			var ref PlacementRef
			ref, err = p.place()
			c.Refs = append(c.Refs, ref)
		default:
			err = p.unexpected(head, "unrecognised component entry")
		}
		if err != nil {
			return c, err
		}
	}

	return c, p.close()
}

func (p *Parser) place() (PlacementRef, error) {
	var ref PlacementRef
	if err := p.open(dsnlex.Place); err != nil {
		return ref, err
	}

	var err error
	if ref.ComponentID, err = p.literal(); err != nil {
		return ref, err
	}
	if ref.Pos, err = p.vertex(); err != nil {
		return ref, err
	}
	if ref.Side, err = p.side(); err != nil {
		return ref, err
	}
	if ref.Rotation, err = p.number(); err != nil {
		return ref, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return ref, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.LockType:
			ref.LockType, err = p.lockType()
		case dsnlex.Pn:
			ref.PartNumber, err = p.partNumber()
		default:
			err = p.unexpected(head, "unrecognised place entry")
		}
		if err != nil {
			return ref, err
		}
	}

	return ref, p.close()
}

func (p *Parser) side() (Side, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	switch t.Tok {
	case dsnlex.Front:
		return SideFront, nil
	case dsnlex.Back:
		return SideBack, nil
	case dsnlex.Both:
		return SideBoth, nil
	}
	return 0, badEnum(t, "expected side front, back or both")
}

func (p *Parser) lockType() (LockType, error) {
	if err := p.open(dsnlex.LockType); err != nil {
		return LockNone, err
	}
	t, err := p.next()
	if err != nil {
		return LockNone, err
	}

	var lt LockType
	switch t.Tok {
	case dsnlex.Gate:
		lt = LockGate
	case dsnlex.Position:
		lt = LockPosition
	default:
		return LockNone, badEnum(t, "expected lock type gate or position")
	}
	return lt, p.close()
}

func (p *Parser) partNumber() (string, error) {
	if err := p.open(dsnlex.Pn); err != nil {
		return "", err
	}
	pn, err := p.literal()
	if err != nil {
		return "", err
	}
	return pn, p.close()
}

// Resolution and unit

func (p *Parser) resolution() (Resolution, error) {
	var r Resolution
	if err := p.open(dsnlex.Resolution); err != nil {
		return r, err
	}

	var err error
	if r.Unit, err = p.dimensionUnit(); err != nil {
		return r, err
	}
	if r.Amount, err = p.integer(); err != nil {
		return r, err
	}
	return r, p.close()
}

func (p *Parser) unit() (UnitDescriptor, error) {
	var u UnitDescriptor
	if err := p.open(dsnlex.Unit); err != nil {
		return u, err
	}

	var err error
	if u.Unit, err = p.dimensionUnit(); err != nil {
		return u, err
	}
	return u, p.close()
}

func (p *Parser) dimensionUnit() (DimensionUnit, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	switch t.Tok {
	case dsnlex.Inch:
		return UnitInch, nil
	case dsnlex.Mil:
		return UnitMil, nil
	case dsnlex.Cm:
		return UnitCm, nil
	case dsnlex.Mm:
		return UnitMm, nil
	case dsnlex.Um:
		return UnitUm, nil
	}
	return 0, badEnum(t, "unknown dimension unit")
}

// Structure

func (p *Parser) structure() (Structure, error) {
	var st Structure
	if err := p.open(dsnlex.Structure); err != nil {
		return st, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return st, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Boundary:
			var s Shape
			s, err = p.boundary()
			st.Boundaries = append(st.Boundaries, s)
		case dsnlex.Keepout, dsnlex.ViaKeepout, dsnlex.WireKeepout:
			var k Keepout
			k, err = p.keepout()
			st.Keepouts = append(st.Keepouts, k)
		case dsnlex.Layer:
			var l Layer
			l, err = p.layer()
			st.Layers = append(st.Layers, l)
		case dsnlex.Plane:
			err = p.stub(dsnlex.Plane)
			st.Planes = append(st.Planes, Plane{})
		case dsnlex.Rule:
			var rs []Rule
			rs, err = p.rule()
			st.Rules = append(st.Rules, rs...)
		case dsnlex.Via:
			var vias []string
			vias, err = p.structureVia()
			st.Vias = append(st.Vias, vias...)
		default:
			err = p.unexpected(head, "unrecognised structure entry")
		}
		if err != nil {
			return st, err
		}
	}

	return st, p.close()
}

func (p *Parser) boundary() (Shape, error) {
	if err := p.open(dsnlex.Boundary); err != nil {
		return Shape{}, err
	}
	s, err := p.shape()
	if err != nil {
		return s, err
	}
	return s, p.close()
}

// structureVia reads (via padstack_id ...), the padstacks usable as vias
func (p *Parser) structureVia() ([]string, error) {
	if err := p.open(dsnlex.Via); err != nil {
		return nil, err
	}

	var ids []string
	for {
		done, err := p.atClose()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		id, err := p.literal()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, p.close()
}

func (p *Parser) layer() (Layer, error) {
	var l Layer
	if err := p.open(dsnlex.Layer); err != nil {
		return l, err
	}

	var err error
	if l.Name, err = p.literal(); err != nil {
		return l, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return l, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Type:
			l.Type, err = p.layerType()
		case dsnlex.Property:
			err = p.skip()
		default:
			err = p.unexpected(head, "unrecognised layer entry")
		}
		if err != nil {
			return l, err
		}
	}

	return l, p.close()
}

func (p *Parser) layerType() (LayerType, error) {
	if err := p.open(dsnlex.Type); err != nil {
		return 0, err
	}
	t, err := p.next()
	if err != nil {
		return 0, err
	}

	var lt LayerType
	switch t.Tok {
	case dsnlex.Signal:
		lt = LayerSignal
	case dsnlex.Power:
		lt = LayerPower
	case dsnlex.Mixed:
		lt = LayerMixed
	case dsnlex.Jumper:
		lt = LayerJumper
	default:
		return 0, badEnum(t, "expected layer type signal, power, mixed or jumper")
	}
	return lt, p.close()
}

// keepout reads keepout, via_keepout or wire_keepout. An optional id may
// precede the body. At least one shape is required; when several are given
// the last one wins.
func (p *Parser) keepout() (Keepout, error) {
	var k Keepout
	if _, err := p.expect(dsnlex.Lparen); err != nil {
		return k, err
	}

	t, err := p.next()
	if err != nil {
		return k, err
	}
	switch t.Tok {
	case dsnlex.Keepout:
		k.Kind = KeepoutAll
	case dsnlex.ViaKeepout:
		k.Kind = KeepoutVia
	case dsnlex.WireKeepout:
		k.Kind = KeepoutWire
	default:
		return k, p.unexpected(t, "expected keepout")
	}

	next, err := p.peek(0)
	if err != nil {
		return k, err
	}
	if next.Tok != dsnlex.Lparen && next.Tok != dsnlex.Rparen {
		if k.ID, err = p.literal(); err != nil {
			return k, err
		}
	}

	hasShape := false
	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return k, err
		}
		if !ok {
			if !hasShape {
				return k, p.unexpected(head, "keepout needs a shape")
			}
			break
		}

		switch head.Tok {
		case dsnlex.Window:
			err = p.stub(dsnlex.Window)
			k.Windows = append(k.Windows, Window{})
		default:
			k.Shape, err = p.shape()
			hasShape = true
		}
		if err != nil {
			return k, err
		}
	}

	return k, p.close()
}

// Wiring

func (p *Parser) wiring() (Wiring, error) {
	var w Wiring
	if err := p.open(dsnlex.Wiring); err != nil {
		return w, err
	}

	for {
		head, ok, err := p.nextHead()
		if err != nil {
			return w, err
		}
		if !ok {
			break
		}

		switch head.Tok {
		case dsnlex.Wire:
			err = p.stub(dsnlex.Wire)
			w.Wires = append(w.Wires, Wire{})
		case dsnlex.Via:
			err = p.stub(dsnlex.Via)
			w.Vias = append(w.Vias, Via{})
		default:
			err = p.unexpected(head, "unrecognised wiring entry")
		}
		if err != nil {
			return w, err
		}
	}

	return w, p.close()
}

// Shapes

// shape reads one of rect, circle, polygon, path or qarc
func (p *Parser) shape() (Shape, error) {
	head, err := p.peek(1)
	if err != nil {
		return Shape{}, err
	}

	switch head.Tok {
	case dsnlex.Rect:
		r, err := p.rect()
		return Shape{Kind: ShapeRect, Rect: &r}, err
	case dsnlex.Circle:
		c, err := p.circle()
		return Shape{Kind: ShapeCircle, Circle: &c}, err
	case dsnlex.Polygon:
		pg, err := p.polygon()
		return Shape{Kind: ShapePolygon, Polygon: &pg}, err
	case dsnlex.Path:
		pa, err := p.path()
		return Shape{Kind: ShapePath, Path: &pa}, err
	case dsnlex.Qarc:
		q, err := p.qarc()
		return Shape{Kind: ShapeQArc, QArc: &q}, err
	}
	return Shape{}, p.unexpected(head, "expected shape rect, circle, polygon, path or qarc")
}

func (p *Parser) rect() (Rect, error) {
	var r Rect
	if err := p.open(dsnlex.Rect); err != nil {
		return r, err
	}

	var err error
	if r.Layer, err = p.literal(); err != nil {
		return r, err
	}
	a, err := p.vertex()
	if err != nil {
		return r, err
	}
	b, err := p.vertex()
	if err != nil {
		return r, err
	}
	r.Rect = geom.Enclosing(a, b)
	return r, p.close()
}

func (p *Parser) circle() (Circle, error) {
	var c Circle
	if err := p.open(dsnlex.Circle); err != nil {
		return c, err
	}

	var err error
	if c.Layer, err = p.literal(); err != nil {
		return c, err
	}
	if c.Diameter, err = p.number(); err != nil {
		return c, err
	}

	done, err := p.atClose()
	if err != nil {
		return c, err
	}
	if !done {
		if c.Center, err = p.vertex(); err != nil {
			return c, err
		}
	}
	return c, p.close()
}

func (p *Parser) polygon() (Polygon, error) {
	var pg Polygon
	start, err := p.peek(0)
	if err != nil {
		return pg, err
	}
	if err := p.open(dsnlex.Polygon); err != nil {
		return pg, err
	}

	if pg.Layer, err = p.literal(); err != nil {
		return pg, err
	}
	if pg.ApertureWidth, err = p.number(); err != nil {
		return pg, err
	}
	if pg.Points, err = p.vertices(); err != nil {
		return pg, err
	}
	if len(pg.Points) < 3 {
		return pg, &SyntaxError{
			Pos: start.Pos,
			Msg: fmt.Sprintf("polygon needs at least 3 points, got %d", len(pg.Points)),
			Err: ErrTooFewPoints,
		}
	}
	return pg, p.close()
}

func (p *Parser) path() (Path, error) {
	var pa Path
	start, err := p.peek(0)
	if err != nil {
		return pa, err
	}
	if err := p.open(dsnlex.Path); err != nil {
		return pa, err
	}

	if pa.Layer, err = p.literal(); err != nil {
		return pa, err
	}
	if pa.ApertureWidth, err = p.number(); err != nil {
		return pa, err
	}
	if pa.Points, err = p.vertices(); err != nil {
		return pa, err
	}
	if len(pa.Points) < 2 {
		return pa, &SyntaxError{
			Pos: start.Pos,
			Msg: fmt.Sprintf("path needs at least 2 points, got %d", len(pa.Points)),
			Err: ErrTooFewPoints,
		}
	}
	return pa, p.close()
}

// vertices reads x y pairs up to the closing paren, which is left unread
func (p *Parser) vertices() ([]geom.Point, error) {
	var pts []geom.Point
	for {
		done, err := p.atClose()
		if err != nil {
			return nil, err
		}
		if done {
			return pts, nil
		}
		v, err := p.vertex()
		if err != nil {
			return nil, err
		}
		pts = append(pts, v)
	}
}

func (p *Parser) qarc() (QArc, error) {
	var q QArc
	if err := p.open(dsnlex.Qarc); err != nil {
		return q, err
	}

	var err error
	if q.Layer, err = p.literal(); err != nil {
		return q, err
	}
	if q.ApertureWidth, err = p.number(); err != nil {
		return q, err
	}
	if q.Start, err = p.vertex(); err != nil {
		return q, err
	}
	if q.End, err = p.vertex(); err != nil {
		return q, err
	}
	if q.Center, err = p.vertex(); err != nil {
		return q, err
	}
	return q, p.close()
}
