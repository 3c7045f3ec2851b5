package dsn

// ImageByID returns the library image with the given id, or nil if not found
func (d *Document) ImageByID(id string) *Image {
	for i := range d.Library.Images {
		if d.Library.Images[i].ID == id {
			return &d.Library.Images[i]
		}
	}
	return nil
}

// PadstackByID returns the library padstack with the given id, or nil if not found
func (d *Document) PadstackByID(id string) *Padstack {
	for i := range d.Library.Padstacks {
		if d.Library.Padstacks[i].ID == id {
			return &d.Library.Padstacks[i]
		}
	}
	return nil
}

// NetByID returns the net with the given id, or nil if not found
func (d *Document) NetByID(id string) *Net {
	for i := range d.Network.Nets {
		if d.Network.Nets[i].ID == id {
			return &d.Network.Nets[i]
		}
	}
	return nil
}

// ClassForNet returns the first class listing the net, or nil
func (d *Document) ClassForNet(netID string) *Class {
	for i := range d.Network.Classes {
		for _, id := range d.Network.Classes[i].NetIDs {
			if id == netID {
				return &d.Network.Classes[i]
			}
		}
	}
	return nil
}

// LayerByName returns the structure layer with the given name, or nil
func (d *Document) LayerByName(name string) *Layer {
	for i := range d.Structure.Layers {
		if d.Structure.Layers[i].Name == name {
			return &d.Structure.Layers[i]
		}
	}
	return nil
}

// NetMap provides lookup of nets by id and of the net a pin belongs to
type NetMap struct {
	byID  map[string]*Net
	byPin map[PinRef]*Net
}

// NewNetMap indexes the document's nets. When a pin is listed by more
// than one net the first one wins.
func NewNetMap(nets []Net) *NetMap {
	nm := &NetMap{
		byID:  make(map[string]*Net, len(nets)),
		byPin: make(map[PinRef]*Net),
	}

	for i := range nets {
		net := &nets[i]
		if _, dup := nm.byID[net.ID]; !dup {
			nm.byID[net.ID] = net
		}
		for _, ref := range net.Pins {
			if _, dup := nm.byPin[ref]; !dup {
				nm.byPin[ref] = net
			}
		}
	}

	return nm
}

// GetByID retrieves a net by its id (e.g., "GND")
func (nm *NetMap) GetByID(id string) (*Net, bool) {
	net, ok := nm.byID[id]
	return net, ok
}

// GetByPin retrieves the net a component pin is connected to
func (nm *NetMap) GetByPin(ref PinRef) (*Net, bool) {
	net, ok := nm.byPin[ref]
	return net, ok
}

// Len returns the number of distinct net ids
func (nm *NetMap) Len() int {
	return len(nm.byID)
}

// Stats counts the entries of each document section
type Stats struct {
	Images     int `json:"images" yaml:"images"`
	Padstacks  int `json:"padstacks" yaml:"padstacks"`
	Nets       int `json:"nets" yaml:"nets"`
	Classes    int `json:"classes" yaml:"classes"`
	Pins       int `json:"pins" yaml:"pins"` // net pin references
	Components int `json:"components" yaml:"components"`
	Placements int `json:"placements" yaml:"placements"`
	Layers     int `json:"layers" yaml:"layers"`
	Boundaries int `json:"boundaries" yaml:"boundaries"`
	Keepouts   int `json:"keepouts" yaml:"keepouts"` // structure and image keepouts
	Rules      int `json:"rules" yaml:"rules"`       // structure and class rules
	Wires      int `json:"wires" yaml:"wires"`
	Vias       int `json:"vias" yaml:"vias"`
}

// Stats returns section counts for the document
func (d *Document) Stats() Stats {
	s := Stats{
		Images:     len(d.Library.Images),
		Padstacks:  len(d.Library.Padstacks),
		Nets:       len(d.Network.Nets),
		Classes:    len(d.Network.Classes),
		Components: len(d.Placement.Components),
		Layers:     len(d.Structure.Layers),
		Boundaries: len(d.Structure.Boundaries),
		Keepouts:   len(d.Structure.Keepouts),
		Rules:      len(d.Structure.Rules),
		Wires:      len(d.Wiring.Wires),
		Vias:       len(d.Wiring.Vias),
	}

	for _, img := range d.Library.Images {
		s.Keepouts += len(img.Keepouts)
	}
	for _, n := range d.Network.Nets {
		s.Pins += len(n.Pins)
	}
	for _, c := range d.Network.Classes {
		s.Rules += len(c.Rules)
	}
	for _, c := range d.Placement.Components {
		s.Placements += len(c.Refs)
	}

	return s
}
