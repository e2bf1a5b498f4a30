package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gorilla/websocket"

	"github.com/mbrobotics/go-rover/pkg/drive"
	"github.com/mbrobotics/go-rover/pkg/telemetry"
)

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

const (
	speedSeries   = "speed"
	headingSeries = "heading"
)

var seriesColors = map[string]string{
	speedSeries:   "51",  // cyan
	headingSeries: "208", // orange
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type stateMsg drive.State
type logMsg string
type disconnectMsg struct{ err error }

// feed reads telemetry frames off the websocket and converts them to tea
// messages.
type feed struct {
	conn *websocket.Conn
	msgs chan tea.Msg
}

func newFeed(conn *websocket.Conn) *feed {
	f := &feed{conn: conn, msgs: make(chan tea.Msg, 64)}
	go f.run()
	return f
}

func (f *feed) run() {
	defer close(f.msgs)
	for {
		_, frame, err := f.conn.ReadMessage()
		if err != nil {
			f.msgs <- disconnectMsg{err: err}
			return
		}
		msg, err := telemetry.Decode(frame)
		if err != nil {
			continue
		}
		switch msg.Type {
		case telemetry.TypeState:
			if st, err := msg.State(); err == nil {
				f.msgs <- stateMsg(st)
			}
		case telemetry.TypeLog:
			if entry, err := msg.Log(); err == nil {
				f.msgs <- logMsg(fmt.Sprintf("%s [%s] %s", entry.Time, entry.Level, entry.Message))
			}
		}
	}
}

func waitForMsg(f *feed) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-f.msgs
		if !ok {
			return disconnectMsg{}
		}
		return msg
	}
}

type model struct {
	feed     *feed
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	mode     string
	active   bool
	quitting bool
}

func (m *model) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *model) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *model) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialModel(f *feed) model {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-900, 900),
	)
	for name, color := range seriesColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}
	return model{
		feed:   f,
		chart:  &chart,
		active: true,
	}
}

func (m model) Init() tea.Cmd {
	return waitForMsg(m.feed)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		st := drive.State(msg)
		m.mode = st.Mode
		m.active = st.Active
		m.chart.PushDataSet(speedSeries, st.SpeedOut)
		m.chart.PushDataSet(headingSeries, st.HeadingErr)
		m.chart.DrawAll()
		return m, waitForMsg(m.feed)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForMsg(m.feed)

	case disconnectMsg:
		m.addLog("telemetry stream closed")
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return "Monitor stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Rover Monitor"))
	if m.mode != "" {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  mode=%s", m.mode)))
	}
	if !m.active {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("  EMERGENCY STOP"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4)

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range []string{speedSeries, headingSeries} {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func main() {
	addr := flag.String("addr", "localhost:8090", "rover dashboard address")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/telemetry", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("connect to %s: %v", url, err)
	}
	defer conn.Close()

	p := tea.NewProgram(initialModel(newFeed(conn)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("run monitor: %v", err)
	}
}
