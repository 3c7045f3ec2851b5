package renderer

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
)

func TestLayerConfigVisibility(t *testing.T) {
	lc := NewLayerConfig()

	if !lc.IsVisible("F.Cu") {
		t.Error("layers should be visible by default")
	}

	lc.SetVisible("F.Cu", false)
	if lc.IsVisible("F.Cu") {
		t.Error("F.Cu should be hidden after SetVisible(false)")
	}

	if got := lc.Toggle("F.Cu"); !got {
		t.Error("Toggle(F.Cu) should return true for a hidden layer")
	}
	if got := lc.Toggle("B.Cu"); got {
		t.Error("Toggle(B.Cu) should return false for a visible layer")
	}

	lc.HideAll()
	if lc.IsVisible("F.Cu") || lc.IsVisible("anything") {
		t.Error("HideAll should hide every layer")
	}

	lc.ShowAll()
	if !lc.IsVisible("B.Cu") {
		t.Error("ShowAll should reset earlier overrides")
	}
}

func TestLayerConfigShowOnly(t *testing.T) {
	lc := NewLayerConfig()
	lc.ShowOnly("F.Cu", "signal")

	tests := map[string]bool{
		"F.Cu":   true,
		"signal": true,
		"B.Cu":   false,
		"":       false,
	}
	for layer, want := range tests {
		if got := lc.IsVisible(layer); got != want {
			t.Errorf("IsVisible(%q) = %v, want %v", layer, got, want)
		}
	}
}

func TestLayerConfigShowCopperOnly(t *testing.T) {
	doc, err := dsn.ParseString(`(pcb b (structure
		(layer F.Cu (type signal))
		(layer GND (type power))
		(layer J (type jumper))
		(layer B.Cu (type mixed))))`)
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}

	lc := NewLayerConfig()
	lc.ShowCopperOnly(doc)

	for _, name := range []string{"F.Cu", "GND", "B.Cu"} {
		if !lc.IsVisible(name) {
			t.Errorf("copper layer %s should be visible", name)
		}
	}
	if lc.IsVisible("J") {
		t.Error("jumper layer should be hidden")
	}
}
