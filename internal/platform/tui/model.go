package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/horde"
	"github.com/vovakirdan/horde/internal/intel"
	"github.com/vovakirdan/horde/internal/storage"
)

// footerRows is the help line under the game screen.
const footerRows = 1

// Options are the collaborators of a Model. Every field is optional.
type Options struct {
	Context context.Context
	Store   *storage.Store
	Briefer *intel.Briefer
	Metrics *horde.Metrics
	Logger  *log.Logger
	Player  string
}

// intelMsg carries a finished briefing back into the update loop.
type intelMsg struct {
	epoch  uint64
	report intel.Report
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea host of a horde session.
type Model struct {
	ctx     context.Context
	session *horde.Session
	screen  *core.Screen
	view    horde.ArenaView
	config  core.RuntimeConfig
	store   *storage.Store
	briefer *intel.Briefer
	logger  *log.Logger
	player  string

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	holds   holdTracker

	mouseDown bool
	briefing  bool // A briefing request is in flight

	scoreboard ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a model showing the main menu.
func NewModel(opts Options, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Briefer == nil {
		opts.Briefer = intel.NewBriefer(nil, 0, opts.Logger)
	}

	// Each run draws its own source from the seeded one, so a fixed seed
	// replays the same sequence of runs.
	seeds := rand.New(rand.NewSource(cfg.Seed))
	newRand := func() horde.Rand {
		return rand.New(rand.NewSource(seeds.Int63()))
	}

	h := help.New()
	h.Width = cfg.ScreenW

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	gameH := max(cfg.ScreenH-footerRows, 1)
	return Model{
		ctx:        opts.Context,
		session:    horde.NewSession(cfg, newRand, opts.Metrics),
		screen:     core.NewScreen(cfg.ScreenW, gameH),
		view:       horde.NewArenaView(cfg.ScreenW, gameH),
		config:     cfg,
		store:      opts.Store,
		briefer:    opts.Briefer,
		logger:     opts.Logger,
		player:     opts.Player,
		keys:       DefaultKeyMap(),
		help:       h,
		spinner:    sp,
		scoreboard: NewScoreboardModel(opts.Store, cfg.ScreenW, cfg.ScreenH),
	}
}

// Session exposes the driven session.
func (m Model) Session() *horde.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case intelMsg:
		if !m.session.DeliverIntel(msg.epoch, msg.report) {
			m.logger.Debug("stale briefing dropped", "epoch", msg.epoch)
			return m, nil
		}
		m.briefing = false
		return m, nil

	case spinner.TickMsg:
		if !m.briefing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input for the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil
	}

	switch m.session.Phase() {
	case horde.PhaseMenu:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.start()
		case key.Matches(msg, m.keys.Scores):
			m.scoreboard.Reload()
			m.scoreboard.goingBack = false
			m.showScores = true
		}

	case horde.PhasePlaying:
		if d, ok := m.keys.MoveDir(msg); ok {
			for _, r := range m.holds.press(d) {
				m.session.SetMovement(r, false)
			}
			m.session.SetMovement(d, true)
			return m, nil
		}
		if w, ok := m.keys.Weapon(msg); ok {
			m.session.SelectWeapon(w)
			return m, nil
		}
		if key.Matches(msg, m.keys.Fire) {
			m.holds.pressTrigger()
			m.session.SetTrigger(true)
		}

	case horde.PhaseWaveTransition:
		if key.Matches(msg, m.keys.Confirm) {
			m.holds.reset()
			m.briefing = false
			m.session.Acknowledge()
		}

	case horde.PhaseGameOver:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.start()
		case key.Matches(msg, m.keys.Back):
			m.session.ReturnToMenu()
		}
	}

	return m, nil
}

func (m *Model) start() {
	m.holds.reset()
	m.mouseDown = false
	m.briefing = false
	if m.session.Start() {
		m.logger.Info("run started", "run", m.session.RunID(), "player", m.player)
	}
}

// updateScoreboard forwards input to the embedded scoreboard.
func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.showScores = false
	}
	return m, cmd
}

// handleMouse aims with the pointer and fires with the left button.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session.Phase() != horde.PhasePlaying {
		return m, nil
	}

	aim := m.view.ToArena(msg.X, msg.Y)
	m.session.SetAim(aim.X, aim.Y)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mouseDown = true
		m.session.SetTrigger(true)
	case msg.Action == tea.MouseActionRelease:
		m.mouseDown = false
		if m.holds.trigger <= 0 {
			m.session.SetTrigger(false)
		}
	}
	return m, nil
}

// handleResize adapts the layout; the running game is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height

	gameH := max(msg.Height-footerRows, 1)
	m.screen.Resize(msg.Width, gameH)
	m.view = horde.NewArenaView(msg.Width, gameH)
	m.help.Width = msg.Width

	updated, _ := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	return m, nil
}

// handleTick expires held keys, advances the session and reacts to
// phase changes.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	interval := m.config.TickInterval()

	expired, triggerExpired := m.holds.advance(interval)
	for _, d := range expired {
		m.session.SetMovement(d, false)
	}
	if triggerExpired && !m.mouseDown {
		m.session.SetTrigger(false)
	}

	res := m.session.Tick(m.ctx)
	cmds := []tea.Cmd{tickCmd(interval)}

	switch {
	case res.Died:
		m.holds.reset()
		m.mouseDown = false
		m.saveRun(res.FinalScore, m.session.World().Wave.Number)
	case res.WaveComplete:
		m.holds.reset()
		m.mouseDown = false
		m.logger.Info("wave cleared", "run", m.session.RunID(), "wave", res.Wave)
	}

	if req, ok := m.session.TakeIntelRequest(); ok {
		m.briefing = true
		cmds = append(cmds, m.briefCmd(req), m.spinner.Tick)
	}

	return m, tea.Batch(cmds...)
}

// briefCmd fetches the briefing for req off the update loop.
func (m Model) briefCmd(req horde.IntelRequest) tea.Cmd {
	ctx, briefer := m.ctx, m.briefer
	return func() tea.Msg {
		return intelMsg{epoch: req.Epoch, report: briefer.Brief(ctx, req.Wave)}
	}
}

// saveRun records the finished run. It is called once per run, on the
// tick the player dies.
func (m *Model) saveRun(score, wave int) {
	runID := m.session.RunID()
	m.logger.Info("run over", "run", runID, "score", score, "wave", wave)
	if m.store == nil {
		return
	}

	id, err := m.store.SaveRun(runID, m.player, score, wave)
	switch {
	case errors.Is(err, storage.ErrDuplicateRun):
		m.logger.Warn("run already saved", "run", runID)
	case err != nil:
		m.logger.Error("cannot save run", "run", runID, "err", err)
	default:
		m.logger.Debug("run saved", "run", runID, "id", id)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	horde.Render(m.session.Snapshot(), m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".horde", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("horde_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	snap := m.session.Snapshot()
	horde.Render(snap, m.screen)

	var footer string
	if snap.IntelLoading {
		footer = m.spinner.View() + footerStyle.Render(" decrypting transmission")
	} else {
		footer = footerStyle.Render(m.help.ShortHelpView(m.keys.ForPhase(snap.Phase).ShortHelp()))
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Aim follows the pointer without a button held
	)

	_, err := p.Run()
	return err
}
