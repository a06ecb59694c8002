package main

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "shift+left":
		m.cursorCol -= speed
	case "l", "right", "shift+right":
		m.cursorCol += speed
	case "k", "up", "shift+up":
		m.cursorRow -= speed
	case "j", "down", "shift+down":
		m.cursorRow += speed
	}
	m.showCursor = true
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	g := m.sketch.Grid()
	m.cursorCol = max(0, min(m.cursorCol, g.Cols()-1))
	m.cursorRow = max(0, min(m.cursorRow, g.Rows()-1))
}
