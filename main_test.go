package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()
	config := defaultAppConfig()
	config.Confirmations = false
	config.SaveDirectory = t.TempDir()
	m := initialModel(config)
	return update(t, m, tea.WindowSizeMsg{Width: 37 + 80, Height: 41})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func keys(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestWindowSizeMountsViewport(t *testing.T) {
	m := testModel(t)
	if !m.viewport.Mounted() || m.viewport.Pixels() != 80 {
		t.Fatalf("Expected an 80 px preview, got %+v", m.viewport)
	}
	if !approx(m.controller.Tolerance, 1.5*12.5) {
		t.Errorf("Expected tolerance scaled to the preview, got %v", m.controller.Tolerance)
	}
	if v := m.View(); !strings.Contains(v, "Mode: NORMAL") {
		t.Errorf("Expected status line in view, got %q", v)
	}
}

func TestKeysEditDocument(t *testing.T) {
	m := testModel(t)
	m = keys(t, m, "r++")
	doc := m.editor.Document()
	if len(doc.Rings) != 2 || doc.SectorCount != 6 {
		t.Errorf("Expected 2 rings of 6 sectors, got %d of %d", len(doc.Rings), doc.SectorCount)
	}
	m = keys(t, m, "u")
	if n := m.editor.Document().SectorCount; n != 5 {
		t.Errorf("Expected undo to 5 sectors, got %d", n)
	}
	m = keys(t, m, "U")
	if n := m.editor.Document().SectorCount; n != 6 {
		t.Errorf("Expected redo to 6 sectors, got %d", n)
	}
}

func TestMouseDragShape(t *testing.T) {
	m := testModel(t)
	m = keys(t, m, "1")
	sel := m.editor.Selection()
	if sel.Kind != SelectShape {
		t.Fatalf("Expected new shape selected, got %+v", sel)
	}

	// Cell (40,20) maps to the diagram centre region at 12.5 units per pixel.
	m = update(t, m, tea.MouseMsg{X: 40, Y: 20, Type: tea.MouseLeft})
	if m.controller.State() != GestureDragging {
		t.Fatalf("Expected dragging, got %s", m.controller.State())
	}
	m = update(t, m, tea.MouseMsg{X: 44, Y: 20, Type: tea.MouseMotion})
	m = update(t, m, tea.MouseMsg{X: 44, Y: 20, Type: tea.MouseRelease})

	s, _ := m.editor.SelectedShape()
	if !approx(s.Position.X, 550) || !approx(s.Position.Y, 500) {
		t.Errorf("Expected shape moved 4 cells right, got %v", s.Position)
	}
	if m.controller.State() != GestureIdle {
		t.Errorf("Expected idle after release, got %s", m.controller.State())
	}
}

func TestEditModeAppliesField(t *testing.T) {
	m := testModel(t)
	m = keys(t, m, "c")
	if m.mode != ModeEditing {
		t.Fatalf("Expected edit mode, got %s", m.modeString())
	}
	m.input.SetValue(`Core\nIdea`)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Errorf("Expected normal mode after enter, got %s", m.modeString())
	}
	if got := m.editor.Document().CenterText; got != "Core\nIdea" {
		t.Errorf("Expected center text applied, got %q", got)
	}

	m = keys(t, m, "G")
	m.input.SetValue("-4")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeEditing || m.errorMessage == "" {
		t.Error("Invalid input should keep the prompt open with an error")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.mode != ModeNormal || m.editor.Config().GapSize != 20 {
		t.Errorf("Escape should discard the edit, got gap %v", m.editor.Config().GapSize)
	}
}

func TestSaveAndOpen(t *testing.T) {
	m := testModel(t)
	m = keys(t, m, "rs")
	m = keys(t, m, "wheel")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	path := filepath.Join(m.config.SaveDirectory, "wheel.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected %s to exist: %v (status %q)", path, err, m.errorMessage)
	}

	m = keys(t, m, "n")
	if n := len(m.editor.Document().Rings); n != 1 {
		t.Fatalf("Expected fresh diagram, got %d rings", n)
	}
	m = keys(t, m, "o")
	if m.filename != "wheel" {
		t.Errorf("Expected saved file offered first, got %q", m.filename)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if n := len(m.editor.Document().Rings); n != 2 {
		t.Errorf("Expected 2 rings after opening, got %d (%s)", n, m.errorMessage)
	}
}

func dragShapeRight(t *testing.T, m model) (model, string) {
	t.Helper()
	m = keys(t, m, "1")
	id := m.editor.Selection().ShapeID
	m = update(t, m, tea.MouseMsg{X: 40, Y: 20, Type: tea.MouseLeft})
	m = update(t, m, tea.MouseMsg{X: 44, Y: 20, Type: tea.MouseMotion})
	return m, id
}

func shapeX(t *testing.T, m model, id string) float64 {
	t.Helper()
	s, ok := m.editor.Document().Shape(id)
	if !ok {
		t.Fatalf("shape %s missing", id)
	}
	return s.Position.X
}

func TestModeSwitchKeepsDrag(t *testing.T) {
	m, id := dragShapeRight(t, testModel(t))
	m = keys(t, m, "?")
	if m.controller.State() != GestureIdle {
		t.Errorf("Opening help should end the gesture, got %s", m.controller.State())
	}
	m = update(t, m, tea.MouseMsg{X: 44, Y: 20, Type: tea.MouseRelease})
	m = keys(t, m, "x")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if x := shapeX(t, m, id); !approx(x, 550) {
		t.Errorf("Expected the drag to survive, got x=%v", x)
	}
	m = keys(t, m, "u")
	if x := shapeX(t, m, id); !approx(x, 500) {
		t.Errorf("Expected undo to revert the drag, got x=%v", x)
	}
}

func TestReleaseOutsideNormalMode(t *testing.T) {
	m, id := dragShapeRight(t, testModel(t))
	m.mode = ModeConfirm
	m = update(t, m, tea.MouseMsg{X: 44, Y: 20, Type: tea.MouseRelease})
	if m.controller.Tracking() {
		t.Error("Release should reach the controller in any mode")
	}
	m.mode = ModeNormal
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if x := shapeX(t, m, id); !approx(x, 550) {
		t.Errorf("Expected x=550 after release, got %v", x)
	}
}

func TestKeyboardNudgeDuringDrag(t *testing.T) {
	m, id := dragShapeRight(t, testModel(t))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.MouseMsg{X: 48, Y: 20, Type: tea.MouseMotion})
	m = update(t, m, tea.MouseMsg{X: 48, Y: 20, Type: tea.MouseRelease})
	if x := shapeX(t, m, id); !approx(x, 560) {
		t.Errorf("Expected drag plus nudge at 560, got %v", x)
	}
	m = keys(t, m, "u")
	if x := shapeX(t, m, id); !approx(x, 550) {
		t.Errorf("Expected first undo to remove the nudge, got %v", x)
	}
	m = keys(t, m, "u")
	if x := shapeX(t, m, id); !approx(x, 500) {
		t.Errorf("Expected second undo to remove the drag, got %v", x)
	}
}
