package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Use-Tusk/tusk-sheet/internal/gesture"
	"github.com/Use-Tusk/tusk-sheet/internal/log"
	"github.com/Use-Tusk/tusk-sheet/internal/resize"
	"github.com/Use-Tusk/tusk-sheet/internal/sheet"
	"github.com/Use-Tusk/tusk-sheet/internal/tui/components"
	"github.com/Use-Tusk/tusk-sheet/internal/utils"
)

// sheetReloadedMsg delivers the sheet file after it changed on disk.
type sheetReloadedMsg struct {
	sheet *sheet.Sheet
	err   error
}

type statusMsg string

type clearStatusMsg struct {
	id int
}

const (
	statusTimeout      = 3 * time.Second
	activityPanelWidth = 34
	horizontalStep     = 4
)

const helpText = "q quit • r rtl • y copy widths • a activity • ←/→ scroll"

// Options controls how a sheet is shown.
type Options struct {
	RTL bool
	// Banner replaces the sheet's own banner when non-empty.
	Banner    string
	AllMotion bool
	MinWidth  int
	MinHeight int
	// InitialWidth sizes columns that have no configured width.
	InitialWidth int
	// Widths restores a previous width vector. Ignored unless it has one
	// entry per column.
	Widths       []float64
	ShowActivity bool
	// Watch reloads the sheet when its file changes.
	Watch bool
}

type sheetModel struct {
	sheet  *sheet.Sheet
	title  string
	banner string // overrides the sheet banner when set

	header   *components.SheetHeader
	engine   *gesture.Engine
	coord    *resize.Coordinator
	body     viewport.Model
	activity *components.ActivityPanel
	warning  *components.TerminalSizeWarning

	layout       components.SheetLayout
	width        int
	height       int
	showActivity bool

	status   string
	statusID int
}

// programSink forwards user-facing log output to the status line.
type programSink struct {
	p *tea.Program
}

func (s programSink) ShowStatus(message string) {
	s.p.Send(statusMsg(message))
}

// ShowSheet runs the full-screen viewer until the user quits and returns
// the column widths it was left with.
func ShowSheet(s *sheet.Sheet, opts Options) ([]float64, error) {
	m := newSheetModel(s, opts)
	defer m.coord.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.AllMotion {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	} else {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	prevMode := log.GetMode()
	log.SetMode(log.ModeTUI)
	log.SetStatusSink(programSink{p: p})
	defer func() {
		log.SetStatusSink(nil)
		log.SetMode(prevMode)
	}()

	if opts.Watch && s.Path() != "" {
		w, err := sheet.Watch(s.Path(), func(reloaded *sheet.Sheet, err error) {
			p.Send(sheetReloadedMsg{sheet: reloaded, err: err})
		})
		if err != nil {
			log.Warn("Live reload disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("viewer exited: %w", err)
	}
	return m.header.MeasureColumnWidths(), nil
}

func newSheetModel(s *sheet.Sheet, opts Options) *sheetModel {
	banner := s.Banner
	if opts.Banner != "" {
		banner = opts.Banner
	}
	initialWidth := opts.InitialWidth
	if initialWidth <= 0 {
		initialWidth = utils.TerminalWidth(80)
	}

	widths := s.InitialWidths(initialWidth)
	if len(opts.Widths) == len(widths) {
		for i, w := range opts.Widths {
			widths[i] = max(w, resize.MinColumnWidth)
		}
	}

	header := components.NewSheetHeader(s.Specs(), widths, banner)
	header.SetRTL(opts.RTL)

	// Manual dispatch keeps gesture handling on the program goroutine, so
	// every vector is applied before the next drag measures the header.
	engine := gesture.NewEngine()
	coord := resize.NewCoordinator(resize.Options{
		Factory:  engine.Factory(),
		Measurer: header,
		IsRTL:    header.RTL,
		Manual:   true,
	})
	header.SetSyncer(coord)

	title := "tusk-sheet"
	if s.Path() != "" {
		title = filepath.Base(s.Path())
	}

	body := viewport.New(0, 0)
	body.MouseWheelEnabled = false

	m := &sheetModel{
		sheet:        s,
		title:        title,
		banner:       opts.Banner,
		header:       header,
		engine:       engine,
		coord:        coord,
		body:         body,
		activity:     components.NewActivityPanel(),
		warning:      components.NewTerminalSizeWarning(opts.MinWidth, opts.MinHeight),
		showActivity: opts.ShowActivity,
	}
	coord.SetOnChange(m.applyWidths)
	return m
}

func (m *sheetModel) Init() tea.Cmd {
	return nil
}

func (m *sheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.warning.IsTooSmall(m.width, m.height) {
			m.warning.Reset()
		}
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case sheetReloadedMsg:
		return m, m.applyReload(msg)

	case statusMsg:
		return m, m.setStatus(string(msg))

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m *sheetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.warning.ShouldShow(m.width, m.height) {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", "d":
			m.warning.Dismiss()
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.header.SetRTL(!m.header.RTL())
		m.relayout()
		dir := "left to right"
		if m.header.RTL() {
			dir = "right to left"
		}
		m.activity.Add("direction: " + dir)
		return m, m.setStatus("Columns now flow " + dir)
	case "y":
		m.copyWidths()
	case "a":
		m.showActivity = !m.showActivity
		m.relayout()
	case "left", "h":
		m.scrollScreen(-horizontalStep)
	case "right", "l":
		m.scrollScreen(horizontalStep)
	case "up", "k":
		m.body.ScrollUp(1)
	case "down", "j":
		m.body.ScrollDown(1)
	case "pgup":
		m.body.ScrollUp(max(m.body.Height, 1))
	case "pgdown", " ":
		m.body.ScrollDown(max(m.body.Height, 1))
	case "g", "home":
		m.body.GotoTop()
	case "G", "end":
		m.body.GotoBottom()
	}
	return m, nil
}

func (m *sheetModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.body.ScrollUp(3)
		return nil
	case tea.MouseButtonWheelDown:
		m.body.ScrollDown(3)
		return nil
	case tea.MouseButtonWheelLeft:
		m.scrollScreen(-horizontalStep)
		return nil
	case tea.MouseButtonWheelRight:
		m.scrollScreen(horizontalStep)
		return nil
	}

	prev := m.engine.ActiveElement()
	cmd := m.engine.Update(msg)
	active := m.engine.ActiveElement()
	m.header.SetActive(active)
	m.dispatchDrags()
	if active != prev {
		// A resizer pinned to the view edge unmounts once its drag ends.
		m.relayout()
	}
	return cmd
}

// dispatchDrags handles the gesture events the last mouse message produced
// before the next message is read.
func (m *sheetModel) dispatchDrags() {
	m.coord.Dispatch()
	for m.engine.Flush() {
		m.coord.Dispatch()
	}
}

// applyWidths is the coordinator's width-change callback. It runs on the
// program goroutine from inside dispatchDrags.
func (m *sheetModel) applyWidths(widths []float64) {
	m.header.SetWidths(widths)
	m.activity.Add(utils.FormatWidths(widths))
	m.relayout()
}

// scrollScreen scrolls by dx screen cells; positive reveals what is to the
// right. The header offset counts from the start edge, so RTL flips it.
func (m *sheetModel) scrollScreen(dx int) {
	if m.header.RTL() {
		dx = -dx
	}
	m.header.ScrollBy(dx)
	m.relayout()
}

func (m *sheetModel) copyWidths() {
	widths := m.header.MeasureColumnWidths()
	text := utils.FormatWidths(widths)
	if err := utils.CopyToClipboard(text); err != nil {
		log.UserWarn("Could not copy widths: " + err.Error())
		return
	}
	m.activity.Add("copied " + text)
	log.UserSuccess("Copied " + text)
}

// applyReload swaps in a reloaded sheet. Widths survive when the column
// count is unchanged; otherwise they are recomputed for the new layout.
func (m *sheetModel) applyReload(msg sheetReloadedMsg) tea.Cmd {
	if msg.err != nil {
		m.activity.Add("reload failed")
		return m.setStatus("Reload failed: " + msg.err.Error())
	}

	s := msg.sheet
	widths := m.header.MeasureColumnWidths()
	if len(widths) != len(s.Columns) {
		widths = s.InitialWidths(max(m.header.ContentWidth(), m.layout.ContentWidth))
	}

	banner := s.Banner
	if m.banner != "" {
		banner = m.banner
	}

	m.sheet = s
	m.header.SetColumns(s.Specs(), widths)
	m.header.SetBanner(banner)
	m.relayout()
	m.activity.Add(fmt.Sprintf("reloaded: %d columns", len(s.Columns)))
	return m.setStatus("Sheet reloaded")
}

func (m *sheetModel) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// relayout positions the header and body for the current window and tells
// the coordinator which resizers are on screen.
func (m *sheetModel) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	rtl := m.header.RTL()

	areaX, areaWidth := 0, m.width
	if m.showActivity && m.width > activityPanelWidth+int(resize.MinColumnWidth) {
		areaWidth -= activityPanelWidth
		if rtl {
			areaX = activityPanelWidth
		}
	}

	l := components.CalculateSheetLayout(areaWidth, m.height, m.header.Height(), rtl)
	l.ContentX += areaX
	l.ScrollbarX += areaX
	m.layout = l

	m.header.SetOrigin(l.ContentX, l.HeaderY)
	m.header.SetViewWidth(l.ContentWidth)
	m.header.Relayout()

	m.body.Width = l.ContentWidth
	m.body.Height = l.BodyHeight
	m.body.SetContent(components.RenderRows(m.sheet.Rows, m.header.Specs(), components.RowLayout{
		Widths:    m.header.Widths(),
		RTL:       rtl,
		ScrollX:   m.header.ScrollX(),
		ViewWidth: l.ContentWidth,
	}))
}

func (m *sheetModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.warning.ShouldShow(m.width, m.height) {
		return m.warning.View(m.width, m.height)
	}

	rtl := m.header.RTL()
	l := m.layout

	title := m.title
	if rtl {
		title += " · rtl"
	}

	// The column above the vertical scrollbar stays blank.
	headerLines := strings.Split(m.header.View(), "\n")
	for i, line := range headerLines {
		headerLines[i] = withGutter(line, " ", rtl)
	}

	bodyView := m.body.View()
	if l.BodyHeight == 0 {
		bodyView = ""
	}
	scrollbar := components.RenderScrollbar(l.BodyHeight, m.body.TotalLineCount(), m.body.YOffset)
	var body string
	if rtl {
		body = lipgloss.JoinHorizontal(lipgloss.Top, scrollbar, bodyView)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, bodyView, scrollbar)
	}

	hbar := withGutter(components.RenderHScrollbar(l.ContentWidth, m.header.ContentWidth(), m.header.ScrollX()), " ", rtl)

	sections := []string{strings.Join(headerLines, "\n")}
	if l.BodyHeight > 0 {
		sections = append(sections, body)
	}
	sections = append(sections, hbar)
	main := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showActivity && l.ContentWidth+1 < m.width {
		panel := m.activity.View(m.width-l.ContentWidth-1, lipgloss.Height(main))
		if rtl {
			main = lipgloss.JoinHorizontal(lipgloss.Top, panel, main)
		} else {
			main = lipgloss.JoinHorizontal(lipgloss.Top, main, panel)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.Title(m.width, title),
		main,
		components.Footer(m.width, helpText, m.status),
	)
}

func withGutter(line, gutter string, rtl bool) string {
	if rtl {
		return gutter + line
	}
	return line + gutter
}
