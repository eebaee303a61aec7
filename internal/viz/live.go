package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

const (
	canvasCols      = 72
	canvasRows      = 22
	trailCapacity   = 600
	historyCapacity = 300
	maxFrameRate    = 60
)

type TickMsg time.Time

// Model is the live drive view: it samples latched key presses once per tick,
// steps the vehicle, and renders the pose, trail, and diagnostics.
type Model struct {
	car    *vehicle.Car
	mapper *input.Mapper
	canvas *Canvas

	pending input.Inputs
	lastCmd input.Command

	t        float64
	running  bool
	showHelp bool

	scale float64 // sub-pixels per meter

	trail        []vehicle.Pose
	speedHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	frame time.Duration
}

// NewModel builds the drive view. The tick rate is 1/dt, capped by frameRate
// (and a hard terminal-friendly ceiling) so small sample intervals do not
// flood the renderer.
func NewModel(car *vehicle.Car, mapper *input.Mapper, frameRate int) Model {
	rate := 1.0 / car.SampleInterval()
	limit := float64(maxFrameRate)
	if frameRate > 0 && float64(frameRate) < limit {
		limit = float64(frameRate)
	}
	if rate > limit {
		rate = limit
	}

	params := car.GetParams()
	initialParams := make(map[string]float64, len(params))
	keys := make([]string, 0, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	return Model{
		car:           car,
		mapper:        mapper,
		canvas:        NewCanvas(canvasCols, canvasRows),
		running:       true,
		scale:         2.0,
		trail:         make([]vehicle.Pose, 0, trailCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
		frame:         time.Duration(float64(time.Second) / rate),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update latches key presses into the pending inputs; the next tick consumes
// and clears them, so holding a key (terminal auto-repeat) reads as held.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "w":
			m.pending.Forward = true
		case "down", "s":
			m.pending.Backward = true
		case "left", "a":
			m.pending.Left = true
		case "right", "d":
			m.pending.Right = true
		case "+", "=":
			m.pending.SpeedUp = true
		case "-", "_":
			m.pending.SpeedDown = true
		case "tab":
			m.cycleParam()
		case ".":
			m.adjustParam(1.05)
		case ",":
			m.adjustParam(0.95)
		case "z":
			if m.scale < 16 {
				m.scale *= 1.25
			}
		case "x":
			if m.scale > 0.25 {
				m.scale /= 1.25
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step consumes the latched inputs and advances the vehicle one tick.
func (m *Model) step() {
	cmd := m.mapper.Map(m.pending)
	m.car.Step(cmd)
	m.lastCmd = cmd
	m.pending = input.Inputs{}
	m.t += m.car.SampleInterval()

	m.trail = append(m.trail, m.car.Pose())
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}
	m.speedHistory = append(m.speedHistory, m.car.Speed)
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) reset() {
	m.car.Reset()
	m.t = 0
	m.pending = input.Inputs{}
	m.lastCmd = input.Command{}
	m.trail = m.trail[:0]
	m.speedHistory = m.speedHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.car.SetParam(k, v)
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if err := m.car.SetParam(key, newVal); err != nil {
		return
	}
	m.params[key] = newVal
}

// draw renders the trail and the car with a camera centered on the vehicle.
// World y grows up; screen y grows down, so y is flipped and a left turn
// curves toward screen-left.
func (m *Model) draw() {
	m.canvas.Clear()
	pose := m.car.Pose()
	cx, cy := m.canvas.Width()/2, m.canvas.Height()/2

	toScreen := func(wx, wy float64) (int, int) {
		return cx + int((wx-pose.X)*m.scale), cy - int((wy-pose.Y)*m.scale)
	}

	for _, p := range m.trail {
		sx, sy := toScreen(p.X, p.Y)
		m.canvas.Set(sx, sy)
	}

	// Chassis drawn at a fixed display size so it stays readable at any zoom.
	halfLen, halfWid := 9.0, 3.5
	cosH, sinH := math.Cos(pose.Heading), math.Sin(pose.Heading)
	body := func(bx, by float64) (int, int) {
		return cx + int(bx*cosH-by*sinH), cy - int(bx*sinH+by*cosH)
	}

	corners := [4][2]float64{
		{halfLen, halfWid}, {halfLen, -halfWid}, {-halfLen, -halfWid}, {-halfLen, halfWid},
	}
	var sx [4]int
	var sy [4]int
	for i, corner := range corners {
		sx[i], sy[i] = body(corner[0], corner[1])
	}
	for i := range corners {
		j := (i + 1) % 4
		m.canvas.Line(sx[i], sy[i], sx[j], sy[j])
	}

	// Front-wheel marker angled by the steer command.
	noseX, noseY := body(halfLen, 0)
	steerDir := pose.Heading + m.car.SteerAngle*math.Pi/180
	tipX := noseX + int(6*math.Cos(steerDir))
	tipY := noseY - int(6*math.Sin(steerDir))
	m.canvas.Line(noseX, noseY, tipX, tipY)
	m.canvas.Dot(noseX, noseY)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	pose := m.car.Pose()
	lf, lb := m.car.Wheelbase()

	var s strings.Builder
	s.WriteString(headerStyle.Render("ACKERSIM") + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.0f km/h", m.car.Speed)) + "\n")
	s.WriteString(labelStyle.Render("Direction") + valueStyle.Render(m.lastCmd.Direction.String()) + "\n")
	s.WriteString(labelStyle.Render("Steer") + valueStyle.Render(fmt.Sprintf("%.1f°", m.car.SteerAngle)) + "\n")
	s.WriteString(labelStyle.Render("Heading") + valueStyle.Render(fmt.Sprintf("%.1f°", pose.Heading*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f) m", pose.X, pose.Y)) + "\n\n")

	s.WriteString(diagStyle.Render(fmt.Sprintf("β=%.3f  x=%.3f  y=%.3f  ψ=%.3f°",
		m.car.SlipAngle(), pose.X, pose.Y, pose.Heading*180/math.Pi)) + "\n")
	s.WriteString(diagStyle.Render(fmt.Sprintf("dt=%.2fs  Δδ=%.1f°  Lf=%.1fm  Lb=%.1fm",
		m.car.SampleInterval(), m.mapper.AngleStep, lf, lb)) + "\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Speed (km/h)"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %.2f", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\n↑↓←→:Drive  +/-:Speed  SP:Pause\nR:Reset  Z/X:Zoom  Tab/./,:Tune\n?:Help  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔════════════════════════════════════════╗
║           KEYBOARD CONTROLS            ║
╠════════════════════════════════════════╣
║  ↑ / w      - Drive forward            ║
║  ↓ / s      - Drive backward           ║
║  ← / a      - Steer left               ║
║  → / d      - Steer right              ║
║  + / -      - Raise/lower speed        ║
║  Space      - Pause/resume             ║
║  R          - Reset to start pose      ║
║  Z / X      - Zoom in/out              ║
║  Tab, . ,   - Select/tune parameter    ║
║  ?          - Toggle this help         ║
║  Q          - Quit                     ║
╚════════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
