package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	replayWidth  = 60
	replayHeight = 24
	frameRate    = 30
	graphPoints  = 40
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays back a computed trajectory: the satellite moves along its
// path while the panel shows time, altitude, speed and energy.
type Replay struct {
	title     string
	tr        *trajectory.Trajectory
	points    []r2.Vec
	altitudes []float64
	speeds    []float64
	vp        Viewport
	body      *Canvas
	path      *Canvas
	theme     Theme

	head    int
	stride  int
	running bool
	help    bool
}

// NewReplay prepares a replay of tr. The whole run is shown in about ten
// seconds at normal speed.
func NewReplay(title string, tr *trajectory.Trajectory, theme Theme) Replay {
	points := tr.Positions()
	body := NewCanvas(replayWidth, replayHeight)
	vp := Fit(points, tr.Constants.R, body.PixelWidth(), body.PixelHeight(), 0.05)
	drawBody(body, vp, tr.Constants.R)

	altitudes := tr.Series(tr.Altitude)
	for i := range altitudes {
		altitudes[i] /= 1000
	}

	return Replay{
		title:     title,
		tr:        tr,
		points:    points,
		altitudes: altitudes,
		speeds:    tr.Series(tr.Speed),
		vp:        vp,
		body:      body,
		path:      NewCanvas(replayWidth, replayHeight),
		theme:     theme,
		stride:    max(tr.Len()/(10*frameRate), 1),
		running:   true,
	}
}

func (m Replay) Init() tea.Cmd { return tick() }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && m.head >= m.tr.Len()-1 {
				m.head = 0
			}
		case "+", "=":
			m.stride *= 2
		case "-", "_":
			m.stride = max(m.stride/2, 1)
		case "]", "right":
			m.seek(m.tr.Len() / 20)
		case "[", "left":
			m.seek(-m.tr.Len() / 20)
		case "r":
			m.head = 0
			m.running = true
		case "?":
			m.help = !m.help
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.seek(m.stride)
			if m.head >= m.tr.Len()-1 {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) seek(delta int) {
	m.head = min(max(m.head+delta, 0), m.tr.Len()-1)
}

// Head is the index of the sample currently shown.
func (m Replay) Head() int { return m.head }

func (m Replay) View() string {
	m.path.Clear()
	drawPath(m.path, m.vp, m.points[:m.head+1])
	x, y := m.vp.Project(m.points[m.head])
	m.path.FillCircle(x, y, 2)

	term := Terminal{Width: replayWidth, Height: replayHeight, Theme: m.theme}
	canvasView := canvasStyle.Render(term.compose(m.body, m.path))

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.title)) + "\n\n")

	switch {
	case m.running:
		s.WriteString(StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.stride)))
	case m.head >= m.tr.Len()-1:
		s.WriteString(StatusPaused.Render("FINISHED"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n" + ProgressBar(float64(m.head)/float64(max(m.tr.Len()-1, 1)), 30) + "\n\n")

	s.WriteString(Metric("Time", fmt.Sprintf("%.1f s", m.tr.Times[m.head])) + "\n")
	s.WriteString(Metric("Altitude", fmt.Sprintf("%.1f km", m.altitudes[m.head])) + "\n")
	s.WriteString(Metric("Speed", fmt.Sprintf("%.1f m/s", m.tr.Speed(m.head))) + "\n")
	s.WriteString(MetricLabel.Render("") + Sparkline(downsample(m.speeds[:m.head+1], graphPoints), graphPoints) + "\n")
	s.WriteString(Metric("Energy", fmt.Sprintf("%.4e J/kg", m.tr.Energy(m.head))) + "\n")
	s.WriteString(Metric("Ang. momentum", fmt.Sprintf("%.4e m²/s", m.tr.AngularMomentum(m.head))) + "\n")

	if hist := downsample(m.altitudes[:m.head+1], graphPoints); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(6), asciigraph.Width(graphPoints), asciigraph.Caption("Altitude (km)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.help {
		s.WriteString(KeyHint.Render("Space  pause / resume\n+ -    speed up / slow down\n[ ]    rewind / forward\nR      restart\nQ      quit"))
	} else {
		s.WriteString(KeyHint.Render("SP:Pause +/-:Speed [ ]:Seek R:Restart ?:Help Q:Quit"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// downsample picks at most n evenly spaced values, always keeping the last.
func downsample(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}
