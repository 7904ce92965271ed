package horde

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/intel"
)

// Phase is the state of a Session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseWaveTransition
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhaseWaveTransition:
		return "WaveTransition"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// IntelRequest asks the host to fetch a briefing for Wave and hand it back
// with DeliverIntel under the same Epoch.
type IntelRequest struct {
	Epoch uint64
	Wave  int
}

// Session sequences waves around a World. The host calls Tick once per
// frame and forwards input through the command methods; nothing else
// mutates simulation state.
type Session struct {
	tick    time.Duration
	newRand func() Rand
	metrics *Metrics

	phase Phase
	world *World
	runID string

	epoch        uint64
	intel        *intel.Report
	intelPending *IntelRequest

	finalScore    int
	wavesSurvived int
}

// NewSession creates a session in the menu. newRand supplies a fresh random
// source for every run; metrics may be nil.
func NewSession(cfg core.RuntimeConfig, newRand func() Rand, metrics *Metrics) *Session {
	return &Session{
		tick:    cfg.TickInterval(),
		newRand: newRand,
		metrics: metrics,
		phase:   PhaseMenu,
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// RunID identifies the current or last run.
func (s *Session) RunID() string { return s.runID }

// World exposes the simulation for rendering. It is nil before the first run.
func (s *Session) World() *World { return s.world }

// Start begins a new run from the menu or after game over. Any briefing
// still in flight for the previous run is discarded when it arrives.
func (s *Session) Start() bool {
	if s.phase != PhaseMenu && s.phase != PhaseGameOver {
		return false
	}
	s.world = NewWorld(s.tick, s.newRand())
	s.runID = uuid.NewString()
	s.epoch++
	s.intel = nil
	s.intelPending = nil
	s.finalScore = 0
	s.wavesSurvived = 0
	s.phase = PhasePlaying
	return true
}

// ReturnToMenu leaves the game-over screen.
func (s *Session) ReturnToMenu() bool {
	if s.phase != PhaseGameOver {
		return false
	}
	s.epoch++
	s.phase = PhaseMenu
	return true
}

// SetMovement holds or releases a movement direction.
func (s *Session) SetMovement(d core.MoveDir, active bool) {
	if s.world != nil {
		s.world.Controls.SetMove(d, active)
	}
}

// SetAim sets the aim target in arena coordinates.
func (s *Session) SetAim(x, y float64) {
	if s.world != nil {
		s.world.Controls.Aim = core.V(x, y)
	}
}

// SetTrigger holds or releases the fire button.
func (s *Session) SetTrigger(held bool) {
	if s.world != nil {
		s.world.Controls.Trigger = held
	}
}

// SelectWeapon switches the player's weapon while a run is active.
func (s *Session) SelectWeapon(k WeaponKind) bool {
	if s.world == nil || s.phase == PhaseGameOver || s.phase == PhaseMenu {
		return false
	}
	return SelectWeapon(&s.world.Player, k)
}

// Tick advances the world once if the session is playing and applies the
// resulting transition.
func (s *Session) Tick(ctx context.Context) StepResult {
	if s.phase != PhasePlaying {
		return StepResult{}
	}
	wave := s.world.Wave.Number
	res := s.world.Step()
	s.metrics.Record(ctx, res, wave)

	switch {
	case res.Died:
		s.finalScore = res.FinalScore
		s.wavesSurvived = wave - 1
		s.world.Controls.Release()
		s.epoch++
		s.intelPending = nil
		s.phase = PhaseGameOver
	case res.WaveComplete:
		s.world.Controls.Release()
		s.epoch++
		s.intel = nil
		s.intelPending = &IntelRequest{Epoch: s.epoch, Wave: res.Wave + 1}
		s.phase = PhaseWaveTransition
	}
	return res
}

// TakeIntelRequest returns the briefing request raised by the last wave
// completion, once.
func (s *Session) TakeIntelRequest() (IntelRequest, bool) {
	if s.intelPending == nil {
		return IntelRequest{}, false
	}
	req := *s.intelPending
	s.intelPending = nil
	return req, true
}

// DeliverIntel stores a briefing. Reports for an outdated epoch are dropped.
func (s *Session) DeliverIntel(epoch uint64, r intel.Report) bool {
	if epoch != s.epoch || s.phase != PhaseWaveTransition {
		return false
	}
	s.intel = &r
	return true
}

// Acknowledge ends the wave transition, with or without a briefing, and
// starts the next wave.
func (s *Session) Acknowledge() bool {
	if s.phase != PhaseWaveTransition {
		return false
	}
	s.epoch++
	s.intelPending = nil
	s.world.BeginWave(s.world.Wave.Number + 1)
	s.phase = PhasePlaying
	return true
}
