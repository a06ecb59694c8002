package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sketchExt = ".mogrito"

func main() {
	closeLog, err := setupLogging()
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	m, err := initialModel(loadConfig())
	if err != nil {
		log.Fatal(err)
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) (model, error) {
	sketch, err := NewSketch(config.Settings)
	if err != nil {
		return model{}, err
	}
	Logger().Info("sketch started", "cols", config.Settings.Cols, "rows", config.Settings.Rows, "aspect", config.Settings.Aspect)
	return model{
		sketch:   sketch,
		config:   config,
		renderer: &Renderer{},
		viewer:   &termView{},
		mode:     ModeNormal,
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	fps := m.config.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) viewport() viewport {
	return fitViewport(m.sketch.Settings(), m.width, m.height)
}

func (m *model) layout() Layout {
	return NewLayout(m.sketch.Settings(), m.animFrame, 1)
}

func (m *model) setError(err error) {
	if err == nil {
		return
	}
	m.successMessage = ""
	if errors.Is(err, ErrEmptyCatalog) {
		m.errorMessage = "No shapes enabled (press m to pick some)"
		return
	}
	m.errorMessage = err.Error()
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.frame++
		if !m.paused {
			m.animFrame++
		}
		hover := m.pointer.Hover()
		hover.Cycle = hover.Cycle || m.cycleLatch
		if hover.Active && hover.Cycle && !m.pointer.Pressed() {
			before := m.sketch.Snapshot()
			if m.sketch.Advance(m.frame, hover) {
				m.history.Record(ActionCycle, before, m.sketch.Snapshot())
			}
		}
		return m, m.tick()

	case imageLoadedMsg:
		if msg.err != nil {
			Logger().Warn("image not loaded", "name", msg.name, "err", msg.err)
			m.setError(fmt.Errorf("Error loading image: %w", msg.err))
			return m, nil
		}
		if err := m.edit(ActionSample, func() error { return m.sketch.SampleImage(msg.img) }); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clearMessages()
		m.successMessage = fmt.Sprintf("Sampled %s", msg.name)
		return m, nil

	case assetLoadedMsg:
		if msg.err != nil {
			Logger().Warn("svg not loaded", "err", msg.err)
			m.setError(fmt.Errorf("Error loading SVG: %w", msg.err))
			return m, nil
		}
		id := m.sketch.AddCustomShape(msg.asset)
		m.clearMessages()
		m.successMessage = fmt.Sprintf("Added shape %d (%s)", id, msg.asset.Name)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.pointer.DropCycle()
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeShapes:
			return m.handleShapesKey(msg)
		case ModeFileInput:
			return m.handleFileInput(msg)
		case ModeTextInput:
			return m.handleTextInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help {
		return m, nil
	}
	x, y, inside := m.viewport().toCanvas(msg.X, msg.Y)
	l := m.layout()
	mods := Modifiers{Clear: msg.Alt, Cycle: msg.Ctrl || m.cycleLatch}

	var err error
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		m.clearMessages()
		m.showCursor = false
		snap := m.sketch.Snapshot()
		m.gesture = &snap
		err = m.pointer.Press(m.sketch, l, x, y, mods)
	case tea.MouseActionMotion:
		switch {
		case m.pointer.Pressed():
			err = m.pointer.Move(m.sketch, l, x, y, mods)
		case inside:
			m.pointer.HoverAt(l, x, y, mods)
		default:
			m.pointer.Leave()
		}
	case tea.MouseActionRelease:
		if !m.pointer.Pressed() {
			return m, nil
		}
		t := ActionCycle
		if m.pointer.Dragging() {
			t = ActionPaint
		}
		if mods.Clear {
			t = ActionClear
		}
		err = m.pointer.Release(m.sketch, l, x, y, mods)
		if m.gesture != nil {
			m.history.Record(t, *m.gesture, m.sketch.Snapshot())
			m.gesture = nil
		}
		if !inside {
			m.pointer.Leave()
		}
	}
	m.setError(err)
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

// updateSettings installs s as one undoable action.
func (m *model) updateSettings(t ActionType, s Settings) {
	m.setError(m.edit(t, func() error { return m.sketch.SetSettings(s) }))
	m.ensureCursorInBounds()
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// several runes in one message is a paste, usually a dropped file
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		m.clearMessages()
		return m, pasteCmd(string(msg.Runes))
	}

	m.clearMessages()
	s := m.sketch.Settings()
	key := msg.String()
	switch key {
	case "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		m.handleCursorMove(key, m.getMoveSpeed(key))
	case " ", "enter":
		m.showCursor = true
		m.setError(m.edit(ActionCycle, func() error { return m.sketch.Cycle(m.cursorCol, m.cursorRow) }))
	case "p":
		m.showCursor = true
		m.setError(m.edit(ActionPaint, func() error {
			_, err := m.sketch.Paint(m.cursorCol, m.cursorRow)
			return err
		}))
	case "x":
		m.setError(m.edit(ActionClear, func() error { return m.sketch.ClearCell(m.cursorCol, m.cursorRow) }))
	case "b":
		m.setError(m.edit(ActionLock, func() error { return m.sketch.ToggleLock(m.cursorCol, m.cursorRow) }))
	case "C":
		m.cycleLatch = !m.cycleLatch
	case "u", "ctrl+z":
		m.undo()
		m.ensureCursorInBounds()
	case "ctrl+r", "U":
		m.redo()
		m.ensureCursorInBounds()

	case "+", "=", "-", ">", "<":
		cols, rows := s.Cols, s.Rows
		switch key {
		case "+", "=":
			cols++
		case "-":
			cols--
		case ">":
			rows++
		case "<":
			rows--
		}
		next, err := s.WithGrid(cols, rows)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.updateSettings(ActionResize, next)
	case "a":
		next, err := s.WithAspect(s.NextAspect())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.updateSettings(ActionResize, next)
	case "A":
		m.updateSettings(ActionResize, s.WithLockAspect(!s.LockAspect))
	case "[", "]":
		d := 2.0
		if key == "[" {
			d = -d
		}
		m.updateSettings(ActionResize, s.WithShear(s.RowShear+d, s.ColShear))
	case "{", "}":
		d := 2.0
		if key == "{" {
			d = -d
		}
		m.updateSettings(ActionResize, s.WithShear(s.RowShear, s.ColShear+d))
	case "r":
		m.setError(m.edit(ActionShuffle, m.sketch.Shuffle))
	case "S":
		m.startTextInput(TextInputSeed)
	case "f":
		m.updateSettings(ActionResize, s.With(func(st *Settings) {
			st.Fill = (st.Fill + 1) % 2
		}))
		m.successMessage = "New cells: " + m.sketch.Settings().Fill.String()
	case "X":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClearCanvas
			return m, nil
		}
		m.edit(ActionClearCanvas, func() error { m.sketch.Clear(); return nil })

	case "g":
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.UseGradient = !st.UseGradient }))
	case "G":
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.Gradient = (st.Gradient + 1) % 3 }))
	case "P":
		if s.Palette.Len() == 0 {
			m.errorMessage = "Palette is empty (press c to add a color)"
			return m, nil
		}
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.UsePalette = !st.UsePalette }))
	case "c":
		if s.Palette.Len() >= MaxPaletteColors {
			m.setError(ErrPaletteFull)
			return m, nil
		}
		m.startTextInput(TextInputPaletteColor)
	case "d":
		if s.Palette.Len() == 0 {
			m.errorMessage = "Palette is empty"
			return m, nil
		}
		m.startTextInput(TextInputRemoveColor)
	case "D":
		m.edit(ActionPalette, func() error { m.sketch.ClearPalette(); return nil })
	case "s":
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.StrokeMode = !st.StrokeMode }))
	case "i":
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.InvertPixels = !st.InvertPixels }))
		m.successMessage = fmt.Sprintf("Invert pixels: %t", m.sketch.Settings().InvertPixels)
	case "t":
		m.updateSettings(ActionPalette, s.With(func(st *Settings) { st.ExtractPalette = !st.ExtractPalette }))
		m.successMessage = fmt.Sprintf("Extract palette: %t", m.sketch.Settings().ExtractPalette)

	case "w":
		m.updateSettings(ActionResize, s.With(func(st *Settings) { st.RowAnim.Enabled = !st.RowAnim.Enabled }))
	case "W":
		m.updateSettings(ActionResize, s.With(func(st *Settings) { st.RowAnim.Wave = st.RowAnim.Wave.Next() }))
		m.successMessage = "Row wave: " + m.sketch.Settings().RowAnim.Wave.String()
	case "v":
		m.updateSettings(ActionResize, s.With(func(st *Settings) { st.ColAnim.Enabled = !st.ColAnim.Enabled }))
	case "V":
		m.updateSettings(ActionResize, s.With(func(st *Settings) { st.ColAnim.Wave = st.ColAnim.Wave.Next() }))
		m.successMessage = "Column wave: " + m.sketch.Settings().ColAnim.Wave.String()
	case "y":
		m.updateSettings(ActionResize, s.With(func(st *Settings) { st.Cycle.Enabled = !st.Cycle.Enabled }))
	case "z":
		m.paused = !m.paused

	case "m":
		m.mode = ModeShapes
		m.shapeIndex = 0
	case "o":
		m.startFileInput(FileOpOpenImage)
	case "O":
		m.startFileInput(FileOpAddVector)
	case "ctrl+v":
		return m, clipboardCmd
	case "ctrl+s":
		m.startFileInput(FileOpSave)
		if m.sketchFile != "" {
			m.filename = strings.TrimSuffix(filepath.Base(m.sketchFile), sketchExt)
		}
	case "ctrl+o":
		m.startFileInput(FileOpOpen)
	case "e":
		m.fileOp = FileOpExportPNG
		m.startTextInput(TextInputScale)
	case "E":
		m.fileOp = FileOpExportSVG
		m.startTextInput(TextInputScale)
	case "F":
		m.fileOp = FileOpExportFrames
		m.startTextInput(TextInputScale)
	case "K":
		path, err := ExportCatalog(m.sketch, m.config.SaveDir())
		if err != nil {
			m.setError(fmt.Errorf("Error exporting catalog: %w", err))
			return m, nil
		}
		m.successMessage = "Exported to " + absPath(path)
	}
	return m, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
}

func (m *model) startTextInput(target TextInputTarget) {
	m.mode = ModeTextInput
	m.textTarget = target
	m.textInputText = ""
	if target == TextInputScale {
		m.textInputText = "2"
	}
}

func (m model) handleShapesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ids := m.sketch.Catalog().All()
	m.errorMessage = ""
	switch msg.String() {
	case "esc", "m", "q":
		m.mode = ModeNormal
	case "j", "down":
		if m.shapeIndex < len(ids)-1 {
			m.shapeIndex++
		}
	case "k", "up":
		if m.shapeIndex > 0 {
			m.shapeIndex--
		}
	case " ", "enter":
		if m.shapeIndex >= len(ids) {
			return m, nil
		}
		id := ids[m.shapeIndex]
		enable := !m.sketch.Catalog().Contains(id)
		m.setError(m.edit(ActionToggleShape, func() error { return m.sketch.ToggleShape(id, enable) }))
	case "d":
		if m.shapeIndex >= len(ids) || !ids[m.shapeIndex].IsCustom() {
			m.errorMessage = "Only custom shapes can be removed"
			return m, nil
		}
		m.confirmShape = ids[m.shapeIndex]
		m.confirmAction = ConfirmRemoveShape
		m.mode = ModeConfirm
	}
	return m, nil
}

// editLine applies a key to a single line input and reports whether the
// key was consumed as text editing.
func editLine(text *string, msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(*text) > 0 {
			r := []rune(*text)
			*text = string(r[:len(r)-1])
		}
		return true
	case tea.KeySpace:
		*text += " "
		return true
	case tea.KeyRunes:
		*text += string(msg.Runes)
		return true
	}
	return false
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.filename)
		if name == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		m.mode = ModeNormal
		return m.runFileOp(name)
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		m.filename = cleanDroppedPath(string(msg.Runes))
		return m, nil
	}
	editLine(&m.filename, msg)
	return m, nil
}

func (m model) runFileOp(name string) (tea.Model, tea.Cmd) {
	home, _ := os.UserHomeDir()
	switch m.fileOp {
	case FileOpOpenImage, FileOpAddVector:
		path := expandPath(cleanDroppedPath(name), home)
		if m.fileOp == FileOpAddVector && !isVectorFile(path) {
			m.errorMessage = "Not an SVG file: " + path
			return m, nil
		}
		return m, loadFileCmd(path)
	case FileOpSave:
		if filepath.Ext(name) == "" {
			name += sketchExt
		}
		path := m.config.GetSavePath(name)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations && path != m.sketchFile {
			m.pendingPath = path
			m.confirmAction = ConfirmOverwriteFile
			m.mode = ModeConfirm
			return m, nil
		}
		m.save(path)
	case FileOpOpen:
		path := m.findSketch(expandPath(name, home), name)
		sketch, err := LoadFromFile(path)
		if err != nil {
			m.setError(fmt.Errorf("Error opening file: %w", err))
			return m, nil
		}
		m.sketch = sketch
		m.sketchFile = path
		m.history.Clear()
		m.ensureCursorInBounds()
		m.successMessage = "Opened " + absPath(path)
	}
	return m, nil
}

// findSketch tries name as given, with the sketch extension, and inside
// the save directory.
func (m *model) findSketch(path, name string) string {
	candidates := []string{path, path + sketchExt, m.config.GetSavePath(name), m.config.GetSavePath(name + sketchExt)}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return path
}

func (m *model) save(path string) {
	if err := m.sketch.SaveToFile(path); err != nil {
		m.setError(fmt.Errorf("Error saving file: %w", err))
		return
	}
	m.sketchFile = path
	m.successMessage = "Saved to " + absPath(path)
	Logger().Info("sketch saved", "path", path)
}

func (m model) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.textInputText = ""
		return m, nil
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.submitText(strings.TrimSpace(m.textInputText))
		m.textInputText = ""
		return m, nil
	}
	editLine(&m.textInputText, msg)
	return m, nil
}

func (m *model) submitText(text string) {
	switch m.textTarget {
	case TextInputPaletteColor:
		c, err := parseHexColor(text)
		if err != nil {
			m.setError(err)
			return
		}
		m.setError(m.edit(ActionPalette, func() error { return m.sketch.AddPaletteColor(c) }))
	case TextInputRemoveColor:
		n, err := strconv.Atoi(text)
		if err != nil {
			m.setError(fmt.Errorf("not a number: %q", text))
			return
		}
		m.setError(m.edit(ActionPalette, func() error { return m.sketch.RemovePaletteColor(n - 1) }))
	case TextInputSeed:
		seed, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			m.setError(fmt.Errorf("not a number: %q", text))
			return
		}
		m.sketch.SetSeed(seed)
		m.successMessage = fmt.Sprintf("Seed %d (press r to shuffle)", seed)
	case TextInputScale:
		scale, err := strconv.Atoi(text)
		if err != nil {
			m.setError(fmt.Errorf("%q: %w", text, ErrInvalidScale))
			return
		}
		m.export(scale)
	}
}

func (m *model) export(scale int) {
	dir := m.config.SaveDir()
	var (
		path string
		err  error
	)
	switch m.fileOp {
	case FileOpExportPNG:
		path, err = ExportPNG(m.sketch, dir, scale, m.animFrame)
	case FileOpExportSVG:
		path, err = ExportSVG(m.sketch, dir, scale, m.animFrame)
	case FileOpExportFrames:
		var paths []string
		paths, err = ExportFrames(m.sketch, dir, scale, m.animFrame, exportFrameCount)
		if err == nil {
			m.successMessage = fmt.Sprintf("Exported %d frames to %s", len(paths), absPath(dir))
			return
		}
	}
	if err != nil {
		m.setError(fmt.Errorf("Error exporting: %w", err))
		return
	}
	m.successMessage = "Exported to " + absPath(path)
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmClearCanvas:
			m.edit(ActionClearCanvas, func() error { m.sketch.Clear(); return nil })
			m.successMessage = "Canvas cleared"
		case ConfirmRemoveShape:
			if err := m.sketch.RemoveCustomShape(int(m.confirmShape - FirstCustom)); err != nil {
				m.setError(err)
			} else {
				m.history.Clear()
			}
			m.mode = ModeShapes
			if n := len(m.sketch.Catalog().All()); m.shapeIndex >= n {
				m.shapeIndex = n - 1
			}
		case ConfirmOverwriteFile:
			m.save(m.pendingPath)
			m.pendingPath = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		if m.confirmAction == ConfirmRemoveShape {
			m.mode = ModeShapes
		}
		m.pendingPath = ""
	}
	return m, nil
}
