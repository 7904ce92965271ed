package horde

import (
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

// Blood burst shapes. Kill bursts are denser and heavier than hit bursts.
const (
	hitBurstCount  = BloodBurstSize
	killBurstCount = BloodBurstSize * 2
	burstSpeed     = 6.0
	burstMinAge    = 20.0
	burstAgeRange  = 15.0
)

// StepResult reports what one tick changed. The session reads Died and
// WaveComplete to drive transitions; the counters feed metrics.
type StepResult struct {
	Advanced     bool // The tick actually ran
	Died         bool
	FinalScore   int
	WaveComplete bool
	Wave         int
	Spawned      int
	Fired        int
	Hits         int
	Kills        int
	Switched     bool // Empty magazine forced the pistol
}

// World owns every live entity collection of a session and advances them
// with a fixed timestep. It is not safe for concurrent use.
type World struct {
	dt  time.Duration
	now time.Duration
	rng Rand

	nextID uint64

	Player      Player
	Enemies     []Enemy
	Projectiles []Projectile
	Particles   []Particle
	Wave        WaveState
	Controls    core.Controls

	director *SpawnDirector
	halted   bool
	over     bool
}

// NewWorld creates a world at wave 1 with a fresh player in the arena center.
func NewWorld(dt time.Duration, rng Rand) *World {
	if dt <= 0 {
		dt = core.DefaultConfig().TickInterval()
	}
	w := &World{
		dt:       dt,
		rng:      rng,
		director: NewSpawnDirector(rng),
	}
	w.Player = w.newPlayer()
	w.Controls.Aim = w.Player.Pos
	w.Wave = NewWaveState(1, w.now)
	return w
}

func (w *World) newPlayer() Player {
	return Player{
		Entity: Entity{
			ID:     w.newID(),
			Pos:    core.V(ArenaW/2, ArenaH/2),
			Radius: PlayerRadius,
			Color:  core.ColorBrightBlue,
		},
		Health:    PlayerStartHealth,
		MaxHealth: PlayerStartHealth,
		Ammo:      startingAmmo(),
		MaxAmmo:   PlayerMaxAmmo,
		LastShot:  -time.Hour,
		Weapon:    WeaponPistol,
	}
}

func (w *World) newID() uint64 {
	w.nextID++
	return w.nextID
}

// Now returns the simulation clock.
func (w *World) Now() time.Duration { return w.now }

// Halted reports whether the world is waiting for BeginWave.
func (w *World) Halted() bool { return w.halted }

// Over reports whether the player has died.
func (w *World) Over() bool { return w.over }

// BeginWave clears hostile entities and effects, resets the wave state and
// resumes stepping. Player stats carry over.
func (w *World) BeginWave(n int) {
	w.Enemies = w.Enemies[:0]
	w.Projectiles = w.Projectiles[:0]
	w.Particles = w.Particles[:0]
	w.Wave = NewWaveState(n, w.now)
	w.halted = false
}

// Step advances the world by one tick. It does nothing once the player is
// dead or the wave quota has been reached.
func (w *World) Step() StepResult {
	var res StepResult
	if w.halted || w.over {
		return res
	}
	res.Advanced = true
	w.now += w.dt

	w.movePlayer()
	w.Player.Angle = core.AngleTo(w.Player.Pos, w.Controls.Aim)

	if w.Controls.Trigger {
		fired := Fire(&w.Player, w.now, w.rng)
		for _, p := range fired.Projectiles {
			p.ID = w.newID()
			w.Projectiles = append(w.Projectiles, p)
		}
		res.Fired = len(fired.Projectiles)
		res.Switched = fired.Switched
	}

	if e, ok := w.director.Tick(w.now, &w.Wave, len(w.Enemies)); ok {
		e.ID = w.newID()
		w.Enemies = append(w.Enemies, e)
		res.Spawned = 1
	}

	if w.moveEnemies() {
		w.over = true
		res.Died = true
		res.FinalScore = w.Player.Score
		return res
	}

	res.Hits, res.Kills = w.moveProjectiles()
	w.removeDead()
	w.updateParticles()

	if w.Wave.Complete() {
		w.halted = true
		res.WaveComplete = true
		res.Wave = w.Wave.Number
	}
	return res
}

// movePlayer applies held movement and keeps the whole player body inside
// the arena.
func (w *World) movePlayer() {
	p := &w.Player
	p.Pos = p.Pos.Add(w.Controls.Step(PlayerSpeed))
	p.Pos.X = core.ClampF(p.Pos.X, p.Radius, ArenaW-p.Radius)
	p.Pos.Y = core.ClampF(p.Pos.Y, p.Radius, ArenaH-p.Radius)
}

// moveEnemies moves each live enemy toward the player and applies contact
// damage. It returns true as soon as the player dies.
func (w *World) moveEnemies() bool {
	p := &w.Player
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if !e.Alive() {
			continue
		}
		dist := core.Distance(e.Pos, p.Pos)
		e.Pos = e.Pos.Add(core.Direction(e.Pos, p.Pos).Scale(e.Speed))

		if dist < p.Radius+e.Radius {
			p.Health -= ContactDamage
			if p.Health <= 0 {
				p.Health = 0
				return true
			}
		}
	}
	return false
}

// moveProjectiles advances projectiles and resolves hits. A projectile is
// consumed by the first live enemy it overlaps; an enemy that dies is marked
// dead at once so later projectiles in the same tick pass through it.
func (w *World) moveProjectiles() (hits, kills int) {
	kept := w.Projectiles[:0]
	for _, b := range w.Projectiles {
		b.Pos = b.Pos.Add(b.Velocity)

		if e := w.firstHit(b); e != nil {
			hits++
			e.Health -= b.Damage
			w.burst(b.Pos, hitBurstCount, 1, core.ColorBrightRed)
			if e.Health <= 0 {
				e.dead = true
				kills++
				w.Player.Score += StatsFor(e.Kind).Score
				w.Wave.Kills++
				w.burst(e.Pos, killBurstCount, 2, core.ColorDarkRed)
			}
			continue
		}

		if inFlight(b.Pos) {
			kept = append(kept, b)
		}
	}
	w.Projectiles = kept
	return hits, kills
}

func (w *World) firstHit(b Projectile) *Enemy {
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if e.Alive() && core.Overlaps(e.Pos, e.Radius, b.Pos, b.Radius) {
			return e
		}
	}
	return nil
}

func inFlight(pos core.Vec2) bool {
	return pos.X >= -ProjectileMargin && pos.X <= ArenaW+ProjectileMargin &&
		pos.Y >= -ProjectileMargin && pos.Y <= ArenaH+ProjectileMargin
}

func (w *World) removeDead() {
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	w.Enemies = kept
}

// burst emits count blood particles at pos; scale widens their radius.
func (w *World) burst(pos core.Vec2, count int, scale float64, c core.Color) {
	for i := 0; i < count; i++ {
		w.Particles = append(w.Particles, Particle{
			Entity: Entity{
				ID:     w.newID(),
				Pos:    pos,
				Radius: (w.rng.Float64()*3 + 1) * scale,
				Color:  c,
			},
			Velocity: core.V((w.rng.Float64()-0.5)*burstSpeed, (w.rng.Float64()-0.5)*burstSpeed),
			MaxAge:   burstMinAge + w.rng.Float64()*burstAgeRange,
		})
	}
}

func (w *World) updateParticles() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		p.Pos = p.Pos.Add(p.Velocity)
		p.Age++
		if !p.Expired() {
			kept = append(kept, p)
		}
	}
	w.Particles = kept
}
