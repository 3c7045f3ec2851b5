package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceDSN/internal/config"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/dsn"
	"github.com/OpenTraceLab/OpenTraceDSN/pkg/specctra/renderer"
)

var (
	viewTheme string
	viewNet   string
)

var viewCmd = &cobra.Command{
	Use:   "view <dsn_file>",
	Short: "View a DSN file in an interactive viewer",
	Long: `Opens a DSN file in an interactive Gio-based viewer with pan, zoom, and rotation controls.

Controls:
  Left Click / R    - Rotate 90°
  Right Click / F   - Flip board
  Scroll Wheel      - Zoom in/out
  Arrow keys        - Pan
  Space             - Fit board to window
  N                 - Highlight next net
  C                 - Toggle copper layers only
  L                 - Toggle component labels
  T                 - Next color theme (saved to the config file)
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVar(&viewTheme, "theme", "", "color theme (classic, kicad2020, bluetone, eagle, nord)")
	viewCmd.Flags().StringVar(&viewNet, "net", "", "net to highlight")
}

// themeOrder is the order T cycles through
var themeOrder = []renderer.ColorTheme{
	renderer.ThemeClassic,
	renderer.ThemeKiCad2020,
	renderer.ThemeBlueTone,
	renderer.ThemeEagle,
	renderer.ThemeNord,
}

// viewer is the interactive state of one open document
type viewer struct {
	r          *renderer.Renderer
	theme      renderer.ColorTheme
	netIdx     int // index into the document's nets, -1 when nothing is highlighted
	copperOnly bool

	// called with the new theme after T; nil in tests
	onThemeChange func(renderer.ColorTheme)
}

func newViewer(doc *dsn.Document, theme renderer.ColorTheme) *viewer {
	return &viewer{
		r:      renderer.New(doc, theme),
		theme:  theme,
		netIdx: -1,
	}
}

// highlight selects a net by id; an unknown id clears the highlight
func (v *viewer) highlight(netID string) {
	v.netIdx = -1
	v.r.HighlightNet = ""
	for i, n := range v.r.Document().Network.Nets {
		if n.ID == netID {
			v.netIdx = i
			v.r.HighlightNet = n.ID
			return
		}
	}
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	theme := cfg.Theme()
	if viewTheme != "" {
		t, err := renderer.ParseTheme(viewTheme)
		if err != nil {
			return err
		}
		theme = t
	}

	doc, err := loadDocument(filename)
	if err != nil {
		return err
	}
	printInfo(cmd.OutOrStdout(), doc)

	v := newViewer(doc, theme)
	v.r.ShowLabels = cfg.ShowLabels()
	if viewNet != "" {
		v.highlight(viewNet)
		if v.r.HighlightNet == "" {
			slog.Warn("Net not found, nothing highlighted", "net", viewNet)
		}
	}
	v.onThemeChange = func(t renderer.ColorTheme) {
		cfg.Viewer.Theme = t.String()
		if err := config.Save(cfgPath, cfg); err != nil {
			slog.Warn("Could not save theme", "path", cfgPath, "error", err)
		}
	}

	// Run the Gio application
	go func() {
		w := new(app.Window)
		w.Option(app.Title(viewerTitle(filename, doc)))
		w.Option(app.Size(unit.Dp(cfg.Viewer.Width), unit.Dp(cfg.Viewer.Height)))

		if err := runViewerWindow(w, v); err != nil {
			slog.Error("Viewer failed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func runViewerWindow(w *app.Window, v *viewer) error {
	var ops op.Ops
	fitted := false

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			v.r.Camera.UpdateScreenSize(e.Size.X, e.Size.Y)
			if !fitted {
				v.r.FitView()
				fitted = true
			}

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if v.handleKeyPress(ke.Name) {
						return nil
					}
					w.Invalidate()
				}
			}

			// Handle mouse events
			for {
				ev, ok := gtx.Event(pointer.Filter{
					Target:  v,
					Kinds:   pointer.Press | pointer.Scroll,
					ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
				})
				if !ok {
					break
				}
				if pe, ok := ev.(pointer.Event); ok {
					v.handlePointer(pe)
					w.Invalidate()
				}
			}

			area := clip.Rect(image.Rectangle{Max: e.Size}).Push(gtx.Ops)
			event.Op(gtx.Ops, v)
			area.Pop()

			v.r.Layout(gtx)

			e.Frame(&ops)
		}
	}
}

func (v *viewer) handlePointer(pe pointer.Event) {
	cam := v.r.Camera
	switch pe.Kind {
	case pointer.Press:
		if pe.Buttons == pointer.ButtonPrimary {
			cam.Rotate(90)
		} else if pe.Buttons == pointer.ButtonSecondary {
			cam.Flip()
		}
	case pointer.Scroll:
		zoomFactor := 1.0 - float64(pe.Scroll.Y)*0.1
		if zoomFactor <= 0 {
			zoomFactor = 0.1
		}
		cam.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
	}
}

// handleKeyPress applies one key and reports whether the viewer should close
func (v *viewer) handleKeyPress(k key.Name) bool {
	cam := v.r.Camera
	panStep := float64(cam.ScreenWidth) / 10

	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		cam.Flip()
	case "R":
		cam.Rotate(90)
	case key.NameLeftArrow:
		cam.Pan(panStep, 0)
	case key.NameRightArrow:
		cam.Pan(-panStep, 0)
	case key.NameUpArrow:
		cam.Pan(0, panStep)
	case key.NameDownArrow:
		cam.Pan(0, -panStep)
	case key.NameSpace:
		v.r.FitView()
	case "L":
		v.r.ShowLabels = !v.r.ShowLabels
	case "C":
		v.copperOnly = !v.copperOnly
		if v.copperOnly {
			v.r.Layers.ShowCopperOnly(v.r.Document())
		} else {
			v.r.Layers.ShowAll()
		}
	case "N":
		nets := v.r.Document().Network.Nets
		v.netIdx++
		if v.netIdx >= len(nets) {
			v.netIdx = -1
			v.r.HighlightNet = ""
		} else {
			v.r.HighlightNet = nets[v.netIdx].ID
		}
		slog.Debug("Highlight", "net", v.r.HighlightNet)
	case "T":
		v.theme = nextTheme(v.theme)
		v.r.Palette = renderer.PaletteFor(v.theme)
		if v.onThemeChange != nil {
			v.onThemeChange(v.theme)
		}
	}
	return false
}

func nextTheme(t renderer.ColorTheme) renderer.ColorTheme {
	for i, th := range themeOrder {
		if th == t {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// viewerTitle is shown in the window title bar
func viewerTitle(filename string, doc *dsn.Document) string {
	if doc.ID == "" {
		return "DSN Viewer - " + filename
	}
	return fmt.Sprintf("DSN Viewer - %s (%s)", doc.ID, filename)
}
