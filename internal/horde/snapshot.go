package horde

import "github.com/vovakirdan/horde/internal/intel"

// Snapshot is a read-only copy of everything the presentation layer draws.
// Slices are copies; mutating them does not affect the session.
type Snapshot struct {
	Phase Phase
	RunID string

	HealthPct   float64 // 0..100
	Health      float64
	Score       int
	Wave        int
	Kills       int
	Quota       int
	Weapon      WeaponKind
	Ammo        int
	MaxAmmo     int
	AmmoUnbound bool

	// Set during a wave transition.
	Intel        *intel.Report
	IntelLoading bool

	// Set after game over.
	FinalScore    int
	WavesSurvived int

	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	Particles   []Particle
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.phase,
		RunID:         s.runID,
		FinalScore:    s.finalScore,
		WavesSurvived: s.wavesSurvived,
	}
	if s.world == nil {
		return snap
	}

	w := s.world
	p := w.Player
	snap.Player = p
	snap.Health = p.Health
	if p.MaxHealth > 0 {
		snap.HealthPct = p.Health / p.MaxHealth * 100
	}
	snap.Score = p.Score
	snap.Wave = w.Wave.Number
	snap.Kills = w.Wave.Kills
	snap.Quota = w.Wave.Quota
	snap.Weapon = p.Weapon
	snap.Ammo = p.CurrentAmmo()
	snap.MaxAmmo = p.MaxAmmo
	snap.AmmoUnbound = snap.Ammo == AmmoUnlimited

	if s.phase == PhaseWaveTransition {
		if s.intel != nil {
			r := *s.intel
			snap.Intel = &r
		} else {
			snap.IntelLoading = true
		}
	}

	snap.Enemies = append([]Enemy(nil), w.Enemies...)
	snap.Projectiles = append([]Projectile(nil), w.Projectiles...)
	snap.Particles = append([]Particle(nil), w.Particles...)
	return snap
}
