package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gioui.org/io/key"
	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/renderer"
)

const sampleDSN = `(pcb "demo board"
	(parser (string_quote ") (space_in_quoted_tokens on) (host_cad "KiCad's Pcbnew"))
	(resolution um 10)
	(unit um)
	(structure
		(layer F.Cu (type signal))
		(layer B.Cu (type signal))
		(boundary (path pcb 0 0 0 1000 0 1000 500 0 500 0 0)))
	(library
		(image R_0805
			(pin Round 1 -100 0)
			(pin Round 2 100 0))
		(padstack Round (shape (circle F.Cu 80)) (attach off)))
	(placement
		(component R_0805
			(place R1 200 100 front 0)
			(place R2 500 300 back 90)))
	(network
		(net GND (pins R1-1 R2-2))
		(net VCC (pins R1-2 R2-1 U7-3))
		(class power GND (rule (width 250) (clearance 200 (type smd_smd))))))`

func mustParse(t *testing.T, text string) *dsn.Document {
	t.Helper()
	doc, err := dsn.ParseString(text)
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}
	return doc
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.dsn")
	if err := os.WriteFile(path, []byte(sampleDSN), 0644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	printInfo(&buf, mustParse(t, sampleDSN))
	out := buf.String()

	for _, want := range []string{
		"Design: demo board",
		"Resolution: 10 per um",
		"Components: 1 (2 placed)",
		"Nets: 2 (5 pins)",
		"Board size: 1000.00 x 500.00 um",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printInfo() output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printInfo(&buf, mustParse(t, "(pcb empty)"))
	if !strings.Contains(buf.String(), "Board size: unknown") {
		t.Errorf("printInfo() of empty design:\n%s", buf.String())
	}
}

func TestListAllNets(t *testing.T) {
	var buf bytes.Buffer
	listAllNets(&buf, mustParse(t, sampleDSN))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-2:]
	if !strings.HasPrefix(last[0], "GND") || !strings.HasSuffix(last[0], "power") {
		t.Errorf("GND row = %q, want GND with class power", last[0])
	}
	if !strings.HasPrefix(last[1], "VCC") || !strings.HasSuffix(last[1], "-") {
		t.Errorf("VCC row = %q, want VCC without class", last[1])
	}
}

func TestShowNetDetails(t *testing.T) {
	doc := mustParse(t, sampleDSN)

	var buf bytes.Buffer
	if err := showNetDetails(&buf, doc, "VCC"); err != nil {
		t.Fatalf("showNetDetails() unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Pins (3):") || !strings.Contains(out, "U7-3") || !strings.Contains(out, "(not placed)") {
		t.Errorf("showNetDetails(VCC) output:\n%s", out)
	}

	buf.Reset()
	if err := showNetDetails(&buf, doc, "GND"); err != nil {
		t.Fatalf("showNetDetails() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Class: power") || !strings.Contains(buf.String(), "width 250") {
		t.Errorf("showNetDetails(GND) output:\n%s", buf.String())
	}

	if err := showNetDetails(&buf, doc, "NOPE"); err == nil {
		t.Error("showNetDetails(NOPE) expected error")
	}
}

func TestPrintTokens(t *testing.T) {
	var buf bytes.Buffer
	if err := printTokens(&buf, "x.dsn", `(pcb (string_quote ') 'a b')`); err != nil {
		t.Fatalf("printTokens() unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`string_quote: '\''`, "tokens: 4", `"a b"`, "@1:1"} {
		if !strings.Contains(out, want) {
			t.Errorf("printTokens() output missing %q:\n%s", want, out)
		}
	}

	if err := printTokens(&buf, "x.dsn", `(pcb (string_quote ') 'open`); err == nil {
		t.Error("printTokens() with unterminated quote expected error")
	}
}

func TestWriteDocument(t *testing.T) {
	doc := mustParse(t, sampleDSN)

	var buf bytes.Buffer
	if err := writeDocument(&buf, doc, "json"); err != nil {
		t.Fatalf("writeDocument(json) unexpected error: %v", err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if fromJSON["id"] != "demo board" {
		t.Errorf("json id = %v, want demo board", fromJSON["id"])
	}

	buf.Reset()
	if err := writeDocument(&buf, doc, "YAML"); err != nil {
		t.Fatalf("writeDocument(yaml) unexpected error: %v", err)
	}
	var fromYAML struct {
		ID   string `yaml:"id"`
		Unit struct {
			Unit string `yaml:"unit"`
		} `yaml:"unit"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output does not decode: %v", err)
	}
	if fromYAML.ID != "demo board" || fromYAML.Unit.Unit != "um" {
		t.Errorf("yaml = %+v, want id demo board and unit um", fromYAML)
	}

	if err := writeDocument(&buf, doc, "xml"); err == nil {
		t.Error("writeDocument(xml) expected error")
	}
}

func TestPrintSexp(t *testing.T) {
	var buf bytes.Buffer
	if err := printSexp(&buf, "(pcb board (unit um))"); err != nil {
		t.Fatalf("printSexp() unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Parsed 1 s-expressions") {
		t.Errorf("printSexp() output:\n%s", buf.String())
	}

	if err := printSexp(&buf, "(pcb (string_quote x))"); err == nil {
		t.Error("printSexp() with bad quote directive expected error")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short", 10); got != "short" {
		t.Errorf("preview(short) = %q", got)
	}
	if got := preview("abcdefgh", 3); got != "abc..." {
		t.Errorf("preview(abcdefgh, 3) = %q, want abc...", got)
	}
}

func TestViewerKeys(t *testing.T) {
	v := newViewer(mustParse(t, sampleDSN), renderer.ThemeClassic)
	v.r.Camera.UpdateScreenSize(800, 600)

	var saved []renderer.ColorTheme
	v.onThemeChange = func(th renderer.ColorTheme) { saved = append(saved, th) }

	tests := []struct {
		name  string
		key   key.Name
		check func(t *testing.T)
	}{
		{"rotate", "R", func(t *testing.T) {
			if v.r.Camera.Rotation != 90 {
				t.Errorf("Rotation = %v, want 90", v.r.Camera.Rotation)
			}
		}},
		{"flip", "F", func(t *testing.T) {
			if !v.r.Camera.FlipView {
				t.Error("FlipView should be set")
			}
		}},
		{"first net", "N", func(t *testing.T) {
			if v.r.HighlightNet != "GND" {
				t.Errorf("HighlightNet = %q, want GND", v.r.HighlightNet)
			}
		}},
		{"second net", "N", func(t *testing.T) {
			if v.r.HighlightNet != "VCC" {
				t.Errorf("HighlightNet = %q, want VCC", v.r.HighlightNet)
			}
		}},
		{"wraps to none", "N", func(t *testing.T) {
			if v.r.HighlightNet != "" {
				t.Errorf("HighlightNet = %q, want none", v.r.HighlightNet)
			}
		}},
		{"labels off", "L", func(t *testing.T) {
			if v.r.ShowLabels {
				t.Error("ShowLabels should be off")
			}
		}},
		{"copper only", "C", func(t *testing.T) {
			if v.r.Layers.IsVisible("pcb") || !v.r.Layers.IsVisible("F.Cu") {
				t.Error("only copper layers should be visible")
			}
		}},
		{"all layers", "C", func(t *testing.T) {
			if !v.r.Layers.IsVisible("pcb") {
				t.Error("all layers should be visible again")
			}
		}},
		{"theme", "T", func(t *testing.T) {
			if v.theme != renderer.ThemeKiCad2020 || len(saved) != 1 || saved[0] != renderer.ThemeKiCad2020 {
				t.Errorf("theme = %v, saved = %v; want kicad2020", v.theme, saved)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v.handleKeyPress(tt.key) {
				t.Fatalf("handleKeyPress(%s) asked to close", tt.key)
			}
			tt.check(t)
		})
	}

	if !v.handleKeyPress("Q") || !v.handleKeyPress(key.NameEscape) {
		t.Error("Q and Escape should close the viewer")
	}
}

func TestViewerHighlight(t *testing.T) {
	v := newViewer(mustParse(t, sampleDSN), renderer.ThemeNord)

	v.highlight("VCC")
	if v.r.HighlightNet != "VCC" || v.netIdx != 1 {
		t.Errorf("highlight(VCC) = %q at %d", v.r.HighlightNet, v.netIdx)
	}
	v.highlight("missing")
	if v.r.HighlightNet != "" || v.netIdx != -1 {
		t.Errorf("highlight(missing) = %q at %d, want cleared", v.r.HighlightNet, v.netIdx)
	}
}

func TestNextThemeCycles(t *testing.T) {
	th := renderer.ThemeClassic
	for range themeOrder {
		th = nextTheme(th)
	}
	if th != renderer.ThemeClassic {
		t.Errorf("cycling through all themes ended at %v", th)
	}
	if nextTheme(renderer.ColorTheme(99)) != renderer.ThemeClassic {
		t.Error("unknown theme should restart the cycle")
	}
}

func TestRootCommand(t *testing.T) {
	file := writeSample(t)
	cfgFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgFile, []byte("[output]\nformat = \"json\"\n[log]\nlevel = \"error\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"info", []string{"--config", cfgFile, "info", file}, "Design: demo board"},
		{"nets", []string{"--config", cfgFile, "nets", file, "GND"}, "Net: GND"},
		{"dump uses config format", []string{"--config", cfgFile, "dump", file}, `"id": "demo board"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			defer rootCmd.SetOut(nil)

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("Execute(%v) unexpected error: %v", tt.args, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Execute(%v) output missing %q:\n%s", tt.args, tt.want, out.String())
			}
		})
	}
}
