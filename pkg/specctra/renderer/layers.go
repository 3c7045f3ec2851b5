package renderer

import "github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"

// LayerConfig controls which layers are visible during rendering.
// Layers are visible unless hidden.
type LayerConfig struct {
	visible   map[string]bool
	defaultOn bool
}

// NewLayerConfig creates a new layer configuration with all layers visible
func NewLayerConfig() *LayerConfig {
	return &LayerConfig{
		visible:   make(map[string]bool),
		defaultOn: true,
	}
}

// SetVisible sets the visibility of a specific layer
func (lc *LayerConfig) SetVisible(layer string, visible bool) {
	lc.visible[layer] = visible
}

// Toggle flips the visibility of a layer and returns the new state
func (lc *LayerConfig) Toggle(layer string) bool {
	v := !lc.IsVisible(layer)
	lc.visible[layer] = v
	return v
}

// IsVisible returns whether a layer is visible
func (lc *LayerConfig) IsVisible(layer string) bool {
	if visible, exists := lc.visible[layer]; exists {
		return visible
	}
	return lc.defaultOn
}

// HideAll hides all layers
func (lc *LayerConfig) HideAll() {
	lc.visible = make(map[string]bool)
	lc.defaultOn = false
}

// ShowAll shows all layers
func (lc *LayerConfig) ShowAll() {
	lc.visible = make(map[string]bool)
	lc.defaultOn = true
}

// ShowOnly shows only the specified layers, hiding all others
func (lc *LayerConfig) ShowOnly(layers ...string) {
	lc.HideAll()
	for _, layer := range layers {
		lc.SetVisible(layer, true)
	}
}

// ShowCopperOnly shows the copper layers of the document's structure
func (lc *LayerConfig) ShowCopperOnly(doc *dsn.Document) {
	var names []string
	for _, l := range doc.Structure.Layers {
		if l.Type.IsCopper() {
			names = append(names, l.Name)
		}
	}
	lc.ShowOnly(names...)
}
