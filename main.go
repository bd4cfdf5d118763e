package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 36

func main() {
	closer, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	p := tea.NewProgram(
		initialModel(loadConfig()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) model {
	editor := NewEditor(config.Layout)
	input := textinput.New()
	input.CharLimit = 200
	input.Width = panelWidth - 4
	return model{
		editor:            editor,
		controller:        NewController(editor, Viewport{}),
		config:            config,
		mode:              ModeNormal,
		input:             input,
		selectedFileIndex: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = Viewport{Cols: max(0, m.width-panelWidth-1), Rows: max(0, m.height-1)}
		m.controller.SetTransform(m.viewport)
		m.controller.Tolerance = 1.5 * m.viewport.Scale()
		return m, nil

	case tea.MouseMsg:
		if msg.Type == tea.MouseRelease {
			m.controller.PointerUp(PointerEvent{X: float64(msg.X), Y: float64(msg.Y)})
			return m, nil
		}
		if m.mode != ModeNormal || m.help {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeEditing:
			return m.handleEditKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := PointerEvent{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Type {
	case tea.MouseLeft:
		if !m.viewport.Contains(msg.X, msg.Y) && !m.controller.Tracking() {
			return m, nil
		}
		m.errorMessage = ""
		m.successMessage = ""
		if err := m.controller.PointerDown(ev); err != nil {
			m.errorMessage = err.Error()
		}
	case tea.MouseMotion:
		if !m.controller.Tracking() {
			return m, nil
		}
		if err := m.controller.PointerMove(ev); err != nil {
			m.errorMessage = err.Error()
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""
	// Only esc abandons a gesture; any other key keeps what was dragged so far.
	if msg.String() != "esc" {
		m.controller.Finish()
	}
	sel := m.editor.Selection()

	switch msg.String() {
	case "q", "ctrl+c":
		if msg.String() == "ctrl+c" || !m.config.Confirmations {
			return m, tea.Quit
		}
		return m.confirm(ConfirmQuit), nil
	case "?":
		m.help = true
		m.helpScroll = 0
	case "esc":
		if m.controller.State() != GestureIdle {
			m.controller.Cancel()
		} else {
			m.editor.ClearSelection()
		}

	case "r":
		id := m.editor.AddRing()
		m.successMessage = fmt.Sprintf("Added %s", id)
	case "R":
		id := m.targetRing(sel)
		if id == "" {
			m.errorMessage = "No ring to remove"
			return m, nil
		}
		m.confirmRingID = id
		if m.config.Confirmations {
			return m.confirm(ConfirmRemoveRing), nil
		}
		m.removeRing()
	case "+", "=":
		m.editor.SetSectorCount(m.editor.Document().SectorCount + 1)
	case "-", "_":
		m.editor.SetSectorCount(m.editor.Document().SectorCount - 1)

	case "1", "2", "3", "4":
		kind := shapeKinds[msg.String()[0]-'1']
		id, err := m.editor.AddShape(kind)
		if err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.successMessage = fmt.Sprintf("Added %s (%s)", id, kind)
	case "d", "delete":
		if sel.Kind != SelectShape {
			m.errorMessage = errNoShapeSelected.Error()
			return m, nil
		}
		m.confirmShapeID = sel.ShapeID
		if m.config.Confirmations {
			return m.confirm(ConfirmRemoveShape), nil
		}
		m.removeShape()
	case "F":
		if sel.Kind == SelectShape {
			m.setError(m.editor.BringShapeToFront(sel.ShapeID))
		}
	case "K":
		if s, ok := m.editor.SelectedShape(); ok {
			next := nextShapeKind(s.Kind)
			m.setError(m.editor.UpdateShape(s.ID, ShapePatch{Kind: &next}))
		}
	case "<", ">":
		if s, ok := m.editor.SelectedShape(); ok {
			step := 15.0
			if msg.String() == "<" {
				step = -15
			}
			r := s.Rotation + step
			m.setError(m.editor.UpdateShape(s.ID, ShapePatch{Rotation: &r}))
		}
	case "up", "down", "left", "right":
		m.arrow(msg.String(), sel)
	case "tab":
		m.cycleShape(sel)

	case "e":
		switch sel.Kind {
		case SelectArc:
			return m.startEdit(fieldArcText)
		case SelectShape:
			return m.startEdit(fieldShapeColor)
		default:
			return m.startEdit(fieldCenterText)
		}
	case "c":
		return m.startEdit(fieldCenterText)
	case "f":
		if sel.Kind == SelectShape {
			return m.startEdit(fieldShapeColor)
		}
		return m.startEdit(fieldArcFill)
	case "t":
		return m.startEdit(fieldArcTextColor)
	case "l":
		return m.startEdit(fieldOuterLabel)
	case "g":
		return m.startEdit(fieldChannelText)
	case "#":
		return m.startEdit(fieldSectorCount)
	case "G":
		return m.startEdit(fieldGapSize)
	case "T":
		return m.startEdit(fieldLevelThickness)
	case "C":
		return m.startEdit(fieldCenterRadius)
	case "P":
		return m.startEdit(fieldArcPadding)
	case "a":
		return m.startEdit(fieldShapeRotation)
	case "W":
		return m.startEdit(fieldShapeWidth)
	case "H":
		return m.startEdit(fieldShapeHeight)
	case "v":
		return m.startEdit(fieldShapeCurve)
	case "V":
		if s, ok := m.editor.SelectedShape(); ok && s.CurveAmount != nil {
			m.setError(m.editor.UpdateShape(s.ID, ShapePatch{ResetCurve: true}))
		}

	case "u":
		m.controller.Cancel()
		if !m.editor.Undo() {
			m.errorMessage = "Nothing to undo"
		}
	case "U", "ctrl+r":
		m.controller.Cancel()
		if !m.editor.Redo() {
			m.errorMessage = "Nothing to redo"
		}

	case "n":
		if m.config.Confirmations {
			return m.confirm(ConfirmNewDiagram), nil
		}
		m.newDiagram()
	case "s":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "S":
		m.startFileInput(FileOpExportPNG)
	case "X":
		m.startFileInput(FileOpExportSVG)
	case "y":
		if err := copySVGToClipboard(m.editor.Document(), m.editor.Config()); err != nil {
			m.errorMessage = fmt.Sprintf("Error copying SVG: %s", err)
		} else {
			m.successMessage = "SVG copied to clipboard"
		}
	}
	return m, nil
}

func (m *model) setError(err error) {
	if err != nil {
		m.errorMessage = err.Error()
	}
}

func (m model) confirm(action ConfirmAction) model {
	m.mode = ModeConfirm
	m.confirmAction = action
	return m
}

// targetRing is the selected arc's ring, else the outermost ring.
func (m model) targetRing(sel Selection) string {
	doc := m.editor.Document()
	if len(doc.Rings) == 0 {
		return ""
	}
	if sel.Kind == SelectArc {
		return doc.Rings[sel.Ring].ID
	}
	return doc.Rings[len(doc.Rings)-1].ID
}

func (m *model) removeRing() {
	if err := m.editor.RemoveRing(m.confirmRingID); err != nil {
		m.errorMessage = err.Error()
	} else {
		m.successMessage = fmt.Sprintf("Removed %s", m.confirmRingID)
	}
	m.confirmRingID = ""
}

func (m *model) removeShape() {
	m.controller.Cancel()
	if err := m.editor.RemoveShape(m.confirmShapeID); err != nil {
		m.errorMessage = err.Error()
	} else {
		m.successMessage = fmt.Sprintf("Removed %s", m.confirmShapeID)
	}
	m.confirmShapeID = ""
}

func (m *model) newDiagram() {
	m.controller.Cancel()
	m.editor.Reset(NewDocument(), m.config.Layout)
	m.currentFile = ""
}

func nextShapeKind(k ShapeKind) ShapeKind {
	for i, kind := range shapeKinds {
		if kind == k {
			return shapeKinds[(i+1)%len(shapeKinds)]
		}
	}
	return ShapeSingle
}

// arrow walks the arc selection, or nudges the selected shape.
func (m *model) arrow(key string, sel Selection) {
	switch sel.Kind {
	case SelectShape:
		s, ok := m.editor.SelectedShape()
		if !ok {
			return
		}
		p := s.Position
		switch key {
		case "up":
			p.Y -= 10
		case "down":
			p.Y += 10
		case "left":
			p.X -= 10
		case "right":
			p.X += 10
		}
		m.setError(m.editor.UpdateShape(s.ID, ShapePatch{Position: &p}))
	case SelectArc:
		doc := m.editor.Document()
		ring, sector := sel.Ring, sel.Sector
		switch key {
		case "up":
			ring = min(ring+1, len(doc.Rings)-1)
		case "down":
			ring = max(ring-1, 0)
		case "left":
			sector = (sector - 1 + doc.SectorCount) % doc.SectorCount
		case "right":
			sector = (sector + 1) % doc.SectorCount
		}
		m.setError(m.editor.SelectArc(ring, sector))
	default:
		if len(m.editor.Document().Rings) > 0 {
			m.setError(m.editor.SelectArc(0, 0))
		}
	}
}

func (m *model) cycleShape(sel Selection) {
	ids := m.editor.ShapeIDs()
	if len(ids) == 0 {
		return
	}
	next := 0
	if sel.Kind == SelectShape {
		for i, id := range ids {
			if id == sel.ShapeID {
				next = (i + 1) % len(ids)
			}
		}
	}
	m.setError(m.editor.SelectShape(ids[next]))
}

func (m model) startEdit(f editField) (tea.Model, tea.Cmd) {
	sel := m.editor.Selection()
	value, err := fieldValue(m.editor, f, sel)
	if err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	m.mode = ModeEditing
	m.field = f
	m.editSel = sel
	m.input.Prompt = f.String() + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		m.errorMessage = ""
		return m, nil
	case "enter":
		if err := applyField(m.editor, m.field, m.editSel, m.input.Value()); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.input.Blur()
		m.errorMessage = ""
		return m, nil
	case "ctrl+v":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error reading clipboard: %s", err)
			return m, nil
		}
		m.input.SetValue(m.input.Value() + singleLine(cleanClipboardText(text), m.field.multiline()))
		m.input.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	if m.currentFile != "" {
		m.filename = strings.TrimSuffix(filepath.Base(m.currentFile), filepath.Ext(m.currentFile))
	}
	m.fileList = nil
	m.selectedFileIndex = -1
	if op == FileOpOpen {
		m.scanDiagramFiles()
	}
}

func (m *model) scanDiagramFiles() {
	dir := m.config.SaveDirectory
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			m.fileList = append(m.fileList, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	}
}

func fileExtension(op FileOperation) string {
	switch op {
	case FileOpExportPNG:
		return ".png"
	case FileOpExportSVG:
		return ".svg"
	default:
		return ".json"
	}
}

func (m model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			step := 1
			if msg.Type == tea.KeyUp {
				step = len(m.fileList) - 1
			}
			m.selectedFileIndex = (max(m.selectedFileIndex, 0) + step) % len(m.fileList)
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
			m.selectedFileIndex = -1
		}
		return m, nil
	case tea.KeyEnter:
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		filename := m.filename
		if !strings.HasSuffix(strings.ToLower(filename), fileExtension(m.fileOp)) {
			filename += fileExtension(m.fileOp)
		}
		filename = m.config.GetSavePath(filename)
		if m.fileOp != FileOpOpen && m.config.Confirmations {
			if _, err := os.Stat(filename); err == nil {
				m.filename = filename
				return m.confirm(ConfirmOverwriteFile), nil
			}
		}
		return m.runFileOp(filename)
	case tea.KeyRunes, tea.KeySpace:
		m.filename += msg.String()
		m.selectedFileIndex = -1
	}
	return m, nil
}

func (m model) runFileOp(filename string) (tea.Model, tea.Cmd) {
	doc, cfg := m.editor.Document(), m.editor.Config()
	var err error
	switch m.fileOp {
	case FileOpSave:
		if err = SaveDocument(filename, doc, cfg); err == nil {
			m.currentFile = filename
		}
	case FileOpOpen:
		var loaded Document
		var loadedCfg DiagramConfig
		if loaded, loadedCfg, err = LoadDocument(filename); err == nil {
			m.controller.Cancel()
			m.editor.Reset(loaded, loadedCfg)
			m.currentFile = filename
		}
	case FileOpExportPNG:
		err = ExportPNG(filename, doc, cfg, m.config.ExportSize)
	case FileOpExportSVG:
		err = ExportSVG(filename, doc, cfg)
	}
	if err != nil {
		if errors.Is(err, ErrNothingToExport) {
			m.errorMessage = "Nothing to export"
		} else {
			m.errorMessage = fmt.Sprintf("Error: %s", err)
		}
		m.mode = ModeFileInput
		return m, nil
	}
	absPath, _ := filepath.Abs(filename)
	switch m.fileOp {
	case FileOpOpen:
		m.successMessage = fmt.Sprintf("Opened %s", absPath)
	case FileOpSave:
		m.successMessage = fmt.Sprintf("Saved to %s", absPath)
	default:
		m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	}
	m.errorMessage = ""
	m.mode = ModeNormal
	m.filename = ""
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if msg.String() != "y" && msg.String() != "Y" {
		m.confirmRingID = ""
		m.confirmShapeID = ""
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.filename = strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
		}
		return m, nil
	}
	switch m.confirmAction {
	case ConfirmRemoveRing:
		m.removeRing()
	case ConfirmRemoveShape:
		m.removeShape()
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmNewDiagram:
		m.newDiagram()
	case ConfirmOverwriteFile:
		return m.runFileOp(m.filename)
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(0, len(helpLines)-max(1, m.height-1))
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if !m.viewport.Mounted() {
		return "Waiting for terminal size..."
	}

	preview := m.viewport.Render(m.editor.Document(), m.editor.Config(), m.editor.Selection())
	preview = lipgloss.NewStyle().Width(m.viewport.Cols).Height(m.viewport.Rows).Render(preview)
	panel := lipgloss.NewStyle().
		Width(panelWidth).
		Height(m.viewport.Rows).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("240")).
		PaddingLeft(1).
		Render(m.panelView())

	return lipgloss.JoinHorizontal(lipgloss.Top, preview, panel) + "\n" + m.statusLine()
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■") + " " + hex
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + " " + value
}

func (m model) panelView() string {
	doc := m.editor.Document()
	cfg := m.editor.Config()
	lines := []string{
		titleStyle.Render("Diagram"),
		row("Sectors", fmt.Sprint(doc.SectorCount)),
		row("Rings", fmt.Sprint(len(doc.Rings))),
		row("Shapes", fmt.Sprint(len(doc.Shapes))),
		row("Gap", fmtNum(cfg.GapSize)),
		row("Thickness", fmtNum(cfg.LevelThickness)),
		row("Center r", fmtNum(cfg.CenterRadius)),
		row("Padding", fmtNum(cfg.ArcPadding)),
		"",
	}

	sel := m.editor.Selection()
	switch sel.Kind {
	case SelectArc:
		cell := doc.Rings[sel.Ring].Cells[sel.Sector]
		lines = append(lines,
			titleStyle.Render(fmt.Sprintf("Arc: ring %d, sector %d", sel.Ring+1, sel.Sector+1)),
			row("Text", cell.Text),
			row("Fill", swatch(cell.FillColor)),
			row("Text col", swatch(cell.TextColor)),
			row("Label", doc.OuterLabels[sel.Sector]),
			row("Channel", doc.ChannelText(sel.Sector)),
		)
	case SelectShape:
		s, _ := doc.Shape(sel.ShapeID)
		curve := fmtNum(s.EffectiveCurve())
		if s.CurveAmount == nil {
			curve += " (auto)"
		}
		lines = append(lines,
			titleStyle.Render(fmt.Sprintf("Shape: %s", s.ID)),
			row("Kind", string(s.Kind)),
			row("Position", fmt.Sprintf("%s, %s", fmtNum(s.Position.X), fmtNum(s.Position.Y))),
			row("Size", fmt.Sprintf("%s x %s", fmtNum(s.Size.Width), fmtNum(s.Size.Height))),
			row("Rotation", fmtNum(displayRotation(s.Rotation))+"°"),
			row("Colour", swatch(s.Color)),
		)
		if s.Kind.Curved() {
			lines = append(lines, row("Curve", curve))
		}
	default:
		lines = append(lines, titleStyle.Render("Nothing selected"), labelStyle.Render("Click an arc or shape"))
	}

	if m.mode == ModeEditing {
		lines = append(lines, "", m.input.View())
		if m.errorMessage != "" {
			lines = append(lines, errorStyle.Render(m.errorMessage))
		}
	}
	if m.mode == ModeFileInput && len(m.fileList) > 0 {
		lines = append(lines, "", titleStyle.Render("Files"))
		for i, name := range m.fileList {
			prefix := "  "
			if i == m.selectedFileIndex {
				prefix = "> "
			}
			lines = append(lines, prefix+name)
		}
	}
	return strings.Join(lines, "\n")
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeEditing:
		return fmt.Sprintf("Mode: EDIT | %s | Enter=apply, Ctrl+V=paste, Esc=cancel", m.field)
	case ModeFileInput:
		opStr := "Save"
		switch m.fileOp {
		case FileOpOpen:
			opStr = "Open"
		case FileOpExportPNG:
			opStr = "Export PNG"
		case FileOpExportSVG:
			opStr = "Export SVG"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s | Enter=retry, Esc=cancel", m.errorMessage, opStr, m.filename)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.filename)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmRemoveRing:
			message = fmt.Sprintf("Remove %s? (y/n)", m.confirmRingID)
		case ConfirmRemoveShape:
			message = fmt.Sprintf("Delete %s? (y/n)", m.confirmShapeID)
		case ConfirmQuit:
			message = "Quit ringdraw? (y/n)"
		case ConfirmNewDiagram:
			message = "Start a new diagram? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	}

	status := fmt.Sprintf("Mode: %s", m.modeString())
	if state := m.controller.State(); state != GestureIdle {
		status += fmt.Sprintf(" | %s", state)
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"ringdraw Help",
	"=============",
	"",
	"Mouse:",
	"------",
	"  Click arc         Select the arc cell",
	"  Drag shape        Move it",
	"  Drag blue handle  Resize (keeps proportions, min 50x20)",
	"  Drag green handle Rotate",
	"  Click empty space Clear selection",
	"",
	"Rings and Sectors:",
	"------------------",
	"  r                 Add a ring",
	"  R                 Remove selected arc's ring (or the outermost)",
	"  +/-               More / fewer sectors (1 to 12)",
	"  #                 Type a sector count",
	"  Arrows            Move the arc selection (up = outward)",
	"",
	"Arc Cells:",
	"----------",
	"  e                 Edit arc text",
	"  f                 Fill colour",
	"  t                 Text colour",
	"  l                 Outer label for the sector",
	"  g                 Channel text after the sector",
	"  c                 Center text (\\n for a new line)",
	"",
	"Shapes:",
	"-------",
	"  1/2/3/4           Add single / double / curved / double curved arrow",
	"  Tab               Select next shape",
	"  Arrows            Nudge selected shape",
	"  </>               Rotate by 15 degrees",
	"  a                 Type a rotation",
	"  W/H               Width / height",
	"  v                 Curve amount (empty = auto)",
	"  V                 Reset curve to auto",
	"  f                 Colour",
	"  K                 Cycle arrow kind",
	"  F                 Bring to front",
	"  d/Delete          Delete shape",
	"",
	"Layout:",
	"-------",
	"  G/T/C/P           Gap size / level thickness / center radius / arc padding",
	"",
	"File Operations:",
	"----------------",
	"  s                 Save diagram (.json)",
	"  o                 Open diagram",
	"  S                 Export PNG",
	"  X                 Export SVG",
	"  y                 Copy SVG to clipboard",
	"  n                 New diagram",
	"",
	"General:",
	"--------",
	"  u                 Undo",
	"  U/Ctrl+R          Redo",
	"  Esc               Cancel gesture / clear selection",
	"  ?                 Toggle this help screen",
	"  q/Ctrl+C          Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)
	start := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	end := min(len(helpLines), start+visibleHeight)

	result := strings.Join(helpLines[start:end], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines))
	return result
}
