package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	modeStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	selectStyle  = lipgloss.NewStyle().Reverse(true)
)

const supersample = 2

// termView rasterizes frames and turns them into half-block text.
type termView struct {
	dc     *gg.Context
	small  *image.RGBA
	styles map[[2]color.RGBA]lipgloss.Style
}

// fitViewport centers the canvas in the area above the status line.
func fitViewport(s Settings, width, height int) viewport {
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return viewport{}
	}
	w, h := s.CanvasSize()
	fit := math.Min(float64(width)/float64(w), float64(2*rows)/float64(h))
	cols := int(float64(w) * fit)
	trows := int(float64(h)*fit) / 2
	if cols <= 0 || trows <= 0 {
		return viewport{}
	}
	return viewport{
		left: (width - cols) / 2,
		top:  (rows - trows) / 2,
		cols: cols,
		rows: trows,
		fit:  fit,
	}
}

func (v *termView) render(rd *Renderer, f Frame, vp viewport) []string {
	if vp.cols <= 0 || vp.rows <= 0 {
		return nil
	}
	f.Scale = vp.fit * supersample
	bw, bh := f.Settings.CanvasSize()
	w := int(math.Round(float64(bw) * f.Scale))
	h := int(math.Round(float64(bh) * f.Scale))
	if v.dc == nil || v.dc.Width() != w || v.dc.Height() != h {
		v.dc = gg.NewContext(w, h)
	}
	rd.Draw(v.dc, f)

	size := image.Rect(0, 0, vp.cols, vp.rows*2)
	if v.small == nil || v.small.Bounds() != size {
		v.small = image.NewRGBA(size)
	}
	src := v.dc.Image()
	xdraw.BiLinear.Scale(v.small, size, src, src.Bounds(), xdraw.Src, nil)

	if v.styles == nil || len(v.styles) > 4096 {
		v.styles = make(map[[2]color.RGBA]lipgloss.Style)
	}
	lines := make([]string, vp.rows)
	for y := 0; y < vp.rows; y++ {
		var b strings.Builder
		run := 0
		var cur [2]color.RGBA
		flush := func() {
			if run > 0 {
				b.WriteString(v.style(cur).Render(strings.Repeat("▀", run)))
			}
		}
		for x := 0; x < vp.cols; x++ {
			pair := [2]color.RGBA{v.small.RGBAAt(x, 2*y), v.small.RGBAAt(x, 2*y+1)}
			if run > 0 && pair == cur {
				run++
				continue
			}
			flush()
			cur, run = pair, 1
		}
		flush()
		lines[y] = b.String()
	}
	return lines
}

func (v *termView) style(pair [2]color.RGBA) lipgloss.Style {
	if st, ok := v.styles[pair]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor(pair[0]))).
		Background(lipgloss.Color(hexColor(pair[1])))
	v.styles[pair] = st
	return st
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeShapes {
		return m.shapesView()
	}

	vp := fitViewport(m.sketch.Settings(), m.width, m.height)
	canvas := m.viewer.render(m.renderer, m.currentFrame(), vp)

	var result strings.Builder
	blank := strings.Repeat(" ", max(vp.left, 0))
	for i := 0; i < vp.top; i++ {
		result.WriteString("\n")
	}
	for _, line := range canvas {
		result.WriteString(blank)
		result.WriteString(line)
		result.WriteString("\n")
	}
	for i := vp.top + len(canvas); i < m.height-1; i++ {
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

// currentFrame is what the live view draws: the pointer hover, or the
// keyboard cursor when the pointer is elsewhere.
func (m model) currentFrame() Frame {
	hover := m.pointer.Hover()
	if !hover.Active && m.showCursor {
		hover = Hover{Active: true, Col: m.cursorCol, Row: m.cursorRow}
	}
	return Frame{
		Grid:     m.sketch.Grid(),
		Catalog:  m.sketch.Catalog(),
		Settings: m.sketch.Settings(),
		Count:    m.animFrame,
		Hover:    hover,
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeShapes:
		return "SHAPES"
	case ModeFileInput:
		return "FILE"
	case ModeTextInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) statusLine() string {
	var text string
	switch m.mode {
	case ModeFileInput:
		text = m.filePrompt() + m.filename + "█"
	case ModeTextInput:
		text = m.textPrompt() + m.textInputText + "█"
	case ModeConfirm:
		text = m.confirmPrompt() + " (y/n)"
	default:
		switch {
		case m.errorMessage != "":
			return modeStyle.Render(" "+m.modeString()+" ") + " " + errorStyle.Render(m.errorMessage)
		case m.successMessage != "":
			return modeStyle.Render(" "+m.modeString()+" ") + " " + successStyle.Render(m.successMessage)
		}
		s := m.sketch.Settings()
		text = fmt.Sprintf("%dx%d %s  shapes:%d  fill:%s  frame:%d", s.Cols, s.Rows, s.Aspect,
			m.sketch.Catalog().Len(), fillLabel(s), m.animFrame)
		if s.PaletteActive() {
			text += "  palette:" + s.Palette.String()
		}
		if m.paused {
			text += "  paused"
		}
		if m.cycleLatch {
			text += "  hover-cycle"
		}
		text += "  ? help"
	}
	return modeStyle.Render(" "+m.modeString()+" ") + statusStyle.Render(" "+text+" ")
}

func fillLabel(s Settings) string {
	switch {
	case s.StrokeMode:
		return "stroke"
	case s.PaletteActive():
		return "palette"
	case s.UseGradient:
		return "gradient/" + s.Gradient.String()
	}
	return "flat"
}

func (m model) filePrompt() string {
	switch m.fileOp {
	case FileOpOpenImage:
		return "Image to sample: "
	case FileOpAddVector:
		return "SVG shape to add: "
	case FileOpSave:
		return "Save sketch as: "
	case FileOpOpen:
		return "Open sketch: "
	}
	return "File: "
}

func (m model) textPrompt() string {
	switch m.textTarget {
	case TextInputPaletteColor:
		return "Palette color (hex): "
	case TextInputRemoveColor:
		return fmt.Sprintf("Remove palette entry (1-%d): ", m.sketch.Settings().Palette.Len())
	case TextInputSeed:
		return "Seed: "
	case TextInputScale:
		return "Export scale: "
	}
	return "> "
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit?"
	case ConfirmClearCanvas:
		return "Clear the whole canvas?"
	case ConfirmRemoveShape:
		return fmt.Sprintf("Remove custom shape %q? Cells holding custom shapes will be emptied.", m.sketch.Catalog().Name(m.confirmShape))
	case ConfirmOverwriteFile:
		return fmt.Sprintf("%s exists. Overwrite?", m.pendingPath)
	}
	return "Are you sure?"
}

func (m model) shapesView() string {
	cat := m.sketch.Catalog()
	var result strings.Builder
	result.WriteString(modeStyle.Render(" Shapes "))
	result.WriteString(dimStyle.Render("  space toggle · d remove custom · esc back"))
	result.WriteString("\n\n")

	ids := cat.All()
	maxRows := max(m.height-4, 1)
	start := 0
	if m.shapeIndex >= maxRows {
		start = m.shapeIndex - maxRows + 1
	}
	for i := start; i < len(ids) && i < start+maxRows; i++ {
		id := ids[i]
		mark := "[ ]"
		if cat.Contains(id) {
			mark = "[x]"
		}
		kind := "built-in"
		if id.IsCustom() {
			kind = "custom"
		}
		line := fmt.Sprintf("%s %2d  %-22s %s", mark, id, cat.Name(id), kind)
		if i == m.shapeIndex {
			line = selectStyle.Render(line)
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if m.errorMessage != "" {
		result.WriteString("\n" + errorStyle.Render(m.errorMessage))
	}
	return result.String()
}

var helpLines = []string{
	"mogrito help",
	"============",
	"",
	"Mouse:",
	"  click             Cycle the shape under the pointer",
	"  drag              Paint empty cells with random shapes",
	"  alt+drag          Clear cells (shape and lock)",
	"  ctrl+hover        Cycle the hovered cell every few frames",
	"                    (ctrl is read on mouse motion; any key stops it)",
	"",
	"Cells (keyboard cursor):",
	"  h/j/k/l, arrows   Move cursor (shift+arrow: faster)",
	"  space, enter      Cycle shape",
	"  p                 Paint random shape",
	"  x                 Clear cell",
	"  b                 Lock/unlock cell",
	"  C                 Toggle hover-to-cycle without ctrl",
	"",
	"Grid:",
	"  + / -             More/fewer columns",
	"  > / <             More/fewer rows",
	"  a / A             Next aspect ratio / lock aspect",
	"  [ / ]             Row shear",
	"  { / }             Column shear",
	"  r                 Shuffle (fill randomly when empty)",
	"  S                 Set seed",
	"  f                 Fill policy for new cells",
	"  X                 Clear canvas",
	"  u / ctrl+r        Undo / redo",
	"",
	"Color:",
	"  g / G             Gradient on/off / gradient kind",
	"  P                 Use palette on/off",
	"  c / d / D         Add / remove / clear palette color",
	"  s                 Stroke mode",
	"  i                 Invert image brightness",
	"  t                 Extract palette when sampling",
	"",
	"Animation:",
	"  w / W             Row animation / row waveform",
	"  v / V             Column animation / column waveform",
	"  y                 Cycle animation",
	"  z                 Pause",
	"",
	"Files:",
	"  o                 Sample an image into the grid",
	"  O                 Add an SVG as a custom shape",
	"  ctrl+v            Paste SVG markup or a file path (drop a file to paste its path)",
	"  m                 Shapes panel",
	"  ctrl+s / ctrl+o   Save / open sketch",
	"  e / E             Export PNG / SVG",
	"  F                 Export animation frames",
	"  K                 Export catalog sheet",
	"",
	"  ?                 Toggle help",
	"  q                 Quit",
}

func (m model) helpView() string {
	visible := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visible, 0))
	end := min(start+visible, len(helpLines))
	return strings.Join(helpLines[start:end], "\n")
}
