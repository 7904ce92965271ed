// Package horde implements the real-time simulation core of the Horde arena
// shooter: the entity model, spawn director, weapon system, per-tick world
// step and the session state machine that sequences waves.
package horde

import (
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

// Arena dimensions in arena units.
const (
	ArenaW = 1200.0
	ArenaH = 800.0
)

// Player constants.
const (
	PlayerRadius      = 20.0
	PlayerSpeed       = 4.0 // Units per tick per held axis
	PlayerStartHealth = 100.0
	PlayerMaxAmmo     = 100
)

// Projectile and effect constants.
const (
	ProjectileSpeed   = 15.0 // Units per tick
	ProjectileRadius  = 3.0
	ProjectileMargin  = 50.0 // Projectiles are culled this far outside the arena
	ContactDamage     = 0.5  // Player damage per tick of overlap
	BloodBurstSize    = 6
	SpawnEdgeDistance = 50.0
)

// AmmoUnlimited marks a weapon that never consumes ammo.
const AmmoUnlimited = -1

// Entity holds the fields every simulated object shares.
type Entity struct {
	ID     uint64
	Pos    core.Vec2
	Radius float64
	Color  core.Color
}

// Player is the single user-controlled entity of a session.
type Player struct {
	Entity
	Health    float64
	MaxHealth float64
	Angle     float64 // Facing, radians; recomputed from the aim target every tick
	Score     int
	Ammo      [weaponCount]int
	MaxAmmo   int
	LastShot  time.Duration
	Weapon    WeaponKind
}

// CurrentAmmo returns the stored ammo of the active weapon,
// or AmmoUnlimited for the default weapon.
func (p *Player) CurrentAmmo() int {
	return p.Ammo[p.Weapon]
}

// EnemyKind selects one of the fixed enemy archetypes.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyFast
	EnemyTank
	enemyKindCount
)

// String returns the display name of the kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "Normal"
	case EnemyFast:
		return "Fast"
	case EnemyTank:
		return "Tank"
	default:
		return "Unknown"
	}
}

// EnemyStats are the wave-1 values of an enemy kind.
type EnemyStats struct {
	Radius float64
	Speed  float64
	Health float64
	Damage float64
	Score  int
	Color  core.Color
}

var enemyStats = [enemyKindCount]EnemyStats{
	EnemyNormal: {Radius: 18, Speed: 1.2, Health: 30, Damage: 10, Score: 25, Color: core.ColorGreen},
	EnemyFast:   {Radius: 14, Speed: 2.2, Health: 15, Damage: 5, Score: 75, Color: core.ColorBrightYellow},
	EnemyTank:   {Radius: 30, Speed: 0.6, Health: 100, Damage: 25, Score: 150, Color: core.ColorRed},
}

// StatsFor returns the base stats of a kind.
func StatsFor(k EnemyKind) EnemyStats {
	return enemyStats[k]
}

// Enemy is a hostile entity that pursues the player.
type Enemy struct {
	Entity
	Health float64
	Speed  float64
	Damage float64 // Kind contact-damage stat, informational
	Kind   EnemyKind
	dead   bool
}

// Alive reports whether the enemy may still move, deal damage or absorb hits.
func (e *Enemy) Alive() bool {
	return !e.dead && e.Health > 0
}

// Projectile is a bullet or pellet fired by the player.
type Projectile struct {
	Entity
	Velocity core.Vec2
	Damage   float64
}

// Particle is a cosmetic effect with a limited lifetime in ticks.
type Particle struct {
	Entity
	Velocity core.Vec2
	Age      float64
	MaxAge   float64
}

// Expired reports whether the particle has outlived its lifetime.
func (p *Particle) Expired() bool {
	return p.Age >= p.MaxAge
}

// WaveState tracks progress through the current wave.
type WaveState struct {
	Number    int
	Quota     int
	Kills     int
	LastSpawn time.Duration
}

// KillQuota returns the kills needed to clear a wave.
func KillQuota(wave int) int {
	return 5 + wave*5
}

// NewWaveState returns the reset state for the given wave.
func NewWaveState(wave int, now time.Duration) WaveState {
	if wave < 1 {
		wave = 1
	}
	return WaveState{
		Number:    wave,
		Quota:     KillQuota(wave),
		LastSpawn: now,
	}
}

// Complete reports whether the quota has been met.
func (w WaveState) Complete() bool {
	return w.Kills >= w.Quota
}
