package viz

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridwalk/internal/grid"
	"github.com/san-kum/gridwalk/internal/playback"
	"github.com/san-kum/gridwalk/internal/search"
	"github.com/san-kum/gridwalk/internal/session"
	"github.com/san-kum/gridwalk/internal/storage"
)

// Board placement inside the view, used to map mouse events to cells.
const (
	boardTop   = 3
	boardLeft  = 2
	cellWidth  = 2
	sliderStep = 10
	barWidth   = 24
)

// stepMsg advances playback of run.
type stepMsg struct{ run int }

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStore records every completed run in st.
func WithStore(st *storage.Store) Option {
	return func(a *App) { a.store = st }
}

func WithTheme(name string) Option {
	return func(a *App) { a.theme = GetTheme(name) }
}

// App is the Bubble Tea model for the editor.
type App struct {
	sess    *session.Session
	overlay *playback.Overlay
	run     *session.Run
	cursor  grid.Position
	theme   Theme
	store   *storage.Store
	logger  *slog.Logger

	status      string
	statusStyle lipgloss.Style
	depths      []float64
	lastSaved   string
	width       int
	height      int
}

func New(sess *session.Session, opts ...Option) App {
	a := App{
		sess:        sess,
		overlay:     playback.NewOverlay(),
		theme:       ThemeCyberpunk,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:      "place a start and an end, then press s",
		statusStyle: StatusIdle,
		width:       80,
		height:      24,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg), nil
	case stepMsg:
		if a.run == nil || msg.run != a.run.ID {
			return a, nil
		}
		return a.advance()
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if a.run != nil {
			a = a.cancel()
		}
		return a, tea.Quit
	case "t":
		a.theme = NextTheme(a.theme)
		return a, nil
	case "esc":
		if a.run != nil {
			a = a.cancel()
		}
		return a, nil
	}

	if a.run != nil {
		return a, nil
	}

	rows, cols := a.sess.Grid().Rows(), a.sess.Grid().Cols()
	switch msg.String() {
	case "1":
		a.check(a.sess.SelectMode(session.ModeStart))
	case "2":
		a.check(a.sess.SelectMode(session.ModeEnd))
	case "3":
		a.check(a.sess.SelectMode(session.ModeWall))
	case "up", "k":
		a.cursor.Row = max(a.cursor.Row-1, 0)
	case "down", "j":
		a.cursor.Row = min(a.cursor.Row+1, rows-1)
	case "left", "h":
		a.cursor.Col = max(a.cursor.Col-1, 0)
	case "right", "l":
		a.cursor.Col = min(a.cursor.Col+1, cols-1)
	case " ", "enter":
		_, err := a.sess.EditAt(a.cursor)
		if a.check(err) {
			a.overlay.Reset()
		}
	case "s":
		return a.solve()
	case "c":
		if a.check(a.sess.ClearWalls()) {
			a.overlay.Reset()
			a.depths = nil
			a.setStatus("walls cleared", StatusIdle)
		}
	case "r":
		if a.check(a.sess.Reset()) {
			a.overlay.Reset()
			a.depths = nil
			a.setStatus("board reset", StatusIdle)
		}
	case "+", "=":
		a.check(a.sess.SetSlider(a.sess.Slider() + sliderStep))
	case "-", "_":
		a.check(a.sess.SetSlider(a.sess.Slider() - sliderStep))
	}
	return a, nil
}

func (a App) handleMouse(msg tea.MouseMsg) App {
	if msg.Action == tea.MouseActionRelease {
		a.sess.EndStroke()
		return a
	}
	if a.run != nil {
		return a
	}
	p, ok := a.cellAt(msg.X, msg.Y)
	if !ok {
		return a
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a
		}
		a.cursor = p
		var err error
		if a.sess.Mode() == session.ModeWall {
			_, err = a.sess.BeginStroke(p)
		} else {
			_, err = a.sess.EditAt(p)
		}
		if a.check(err) {
			a.overlay.Reset()
		}
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return a
		}
		a.cursor = p
		_, err := a.sess.ContinueStroke(p)
		a.check(err)
	}
	return a
}

// cellAt maps terminal coordinates to a board cell.
func (a App) cellAt(x, y int) (grid.Position, bool) {
	if x < boardLeft || y < boardTop {
		return grid.Position{}, false
	}
	p := grid.Pos(y-boardTop, (x-boardLeft)/cellWidth)
	return p, a.sess.Grid().InBounds(p)
}

func (a App) solve() (App, tea.Cmd) {
	run, outcome, err := a.sess.Begin()
	if !a.check(err) {
		return a, nil
	}
	if run == nil {
		a.setStatus(outcome.Message(), StatusFailed)
		return a, nil
	}
	a.run = run
	a.overlay.Reset()
	a.depths = nil
	a.setStatus("searching", StatusRunning)
	return a.advance()
}

// advance applies the next step and schedules the one after it once the
// step's delay has passed.
func (a App) advance() (App, tea.Cmd) {
	step, ok := a.run.Cursor.Next()
	if !ok {
		return a.finish(), nil
	}
	a.overlay.Apply(step.Event)
	if step.Event.Kind == search.Visit {
		a.depths = append(a.depths, float64(step.Event.Depth))
	}
	id := a.run.ID
	return a, tea.Tick(step.Delay, func(time.Time) tea.Msg { return stepMsg{run: id} })
}

func (a App) finish() App {
	run := a.run
	a.run = nil
	a.overlay.Settle()
	run.Finish()

	out := run.Outcome()
	style := StatusRunning
	if out.Kind != search.PathFound {
		style = StatusFailed
	}
	a.setStatus(out.Message(), style)

	if a.store != nil {
		meta := storage.NewMetadata("tui", a.sess.Grid(), run.Result, run.Delay)
		id, err := a.store.Save(meta, run.Result)
		if err != nil {
			a.logger.Error("save run", "err", err)
			a.setStatus(fmt.Sprintf("%s (not saved: %v)", out.Message(), err), StatusFailed)
			return a
		}
		a.lastSaved = id
		a.logger.Info("run saved", "id", id)
	}
	return a
}

func (a App) cancel() App {
	run := a.run
	a.run = nil
	a.overlay.Settle()
	run.Finish()
	a.setStatus(search.Outcome{Kind: search.Cancelled}.Message(), StatusFailed)
	return a
}

// check reports a non-nil err on the status line and returns err == nil.
func (a *App) check(err error) bool {
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, session.ErrRunInProgress):
		a.setStatus("a run is in progress", StatusFailed)
	default:
		a.setStatus(err.Error(), StatusFailed)
	}
	return false
}

func (a *App) setStatus(s string, style lipgloss.Style) {
	a.status, a.statusStyle = s, style
}

func (a App) View() string {
	var b strings.Builder
	g := a.sess.Grid()
	pad := strings.Repeat(" ", boardLeft)

	b.WriteString(pad + GradientText("GRIDWALK", a.theme.Primary, a.theme.Secondary) + "  " + Subtle.Render("depth-first search") + "\n")
	b.WriteString(pad + Separator(min(g.Cols()*cellWidth, max(a.width-boardLeft, 8))) + "\n\n")

	for r := 0; r < g.Rows(); r++ {
		b.WriteString(pad)
		for c := 0; c < g.Cols(); c++ {
			b.WriteString(a.cell(grid.Pos(r, c)))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	value := a.valueStyle()
	b.WriteString(pad + MetricLabel.Render("mode ") + value.Render(a.sess.Mode().String()) +
		MetricLabel.Render("  delay ") + value.Render(a.sess.Delay().String()) +
		MetricLabel.Render("  theme ") + value.Render(a.theme.Name) + "\n")

	if a.run != nil {
		total := a.run.Cursor.Len()
		done := a.run.Cursor.Played()
		b.WriteString(pad + AnimatedSpinner(done) + " " + ProgressBar(float64(done)/float64(max(total, 1)), barWidth) +
			MetricLabel.Render(fmt.Sprintf(" %d/%d", done, total)) + "\n")
	}
	if len(a.depths) > 0 {
		b.WriteString(pad + MetricLabel.Render("depth ") + SparklineChart(a.depths, barWidth) + "\n")
	}

	b.WriteString(pad + a.statusStyle.Render(a.status))
	if a.lastSaved != "" && a.run == nil {
		b.WriteString(Subtle.Render("  saved " + a.lastSaved))
	}
	b.WriteString("\n\n")

	b.WriteString(pad + hints(
		"1/2/3", "mode",
		"hjkl", "move",
		"space", "edit",
		"s", "solve",
		"esc", "cancel",
		"c", "clear",
		"r", "reset",
		"+/-", "speed",
		"t", "theme",
		"q", "quit",
	) + "\n")
	return b.String()
}

// valueStyle renders status values in the theme's text colour.
func (a App) valueStyle() lipgloss.Style { return MetricValue.Foreground(a.theme.Text) }

func (a App) cell(p grid.Position) string {
	g := a.sess.Grid()
	text, color := "· ", a.theme.Open
	bold := false

	start, hasStart := g.Start()
	end, hasEnd := g.End()
	switch {
	case hasStart && p == start:
		text, color, bold = "S ", a.theme.Success, true
	case hasEnd && p == end:
		text, color, bold = "E ", a.theme.Error, true
	case g.IsWall(p):
		text, color = "██", a.theme.Muted
	default:
		switch a.overlay.At(p) {
		case playback.MarkCurrent:
			text, color, bold = "◆ ", a.theme.Primary, true
		case playback.MarkPath:
			text, color, bold = "▓▓", a.theme.Accent, true
		case playback.MarkVisited:
			text, color = "░░", a.theme.Secondary
		}
	}

	style := lipgloss.NewStyle().Foreground(color).Bold(bold)
	if a.run == nil && p == a.cursor {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

func hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, KeyName.Render(pairs[i])+KeyHint.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Run starts the full-screen editor and blocks until the user quits.
func Run(sess *session.Session, opts ...Option) error {
	p := tea.NewProgram(New(sess, opts...), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
