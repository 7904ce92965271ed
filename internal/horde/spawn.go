package horde

import (
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

// MaxLiveEnemies bounds the live population; spawns above it are dropped.
const MaxLiveEnemies = 60

// Rand is the random source used by the simulation.
// *math/rand.Rand satisfies it; tests script it.
type Rand interface {
	Float64() float64
}

// kindTable is evaluated top-down: the first threshold the roll exceeds wins,
// anything else is Normal. Tank 10%, Fast 20%, Normal 70%.
var kindTable = []struct {
	above float64
	kind  EnemyKind
}{
	{0.9, EnemyTank},
	{0.7, EnemyFast},
}

// RollKind maps a uniform roll in [0, 1) to an enemy kind.
func RollKind(r float64) EnemyKind {
	for _, row := range kindTable {
		if r > row.above {
			return row.kind
		}
	}
	return EnemyNormal
}

// NewEnemy builds an enemy of the given kind scaled for a wave.
func NewEnemy(kind EnemyKind, wave int, pos core.Vec2) Enemy {
	stats := StatsFor(kind)
	return Enemy{
		Entity: Entity{
			Pos:    pos,
			Radius: stats.Radius,
			Color:  stats.Color,
		},
		Health: stats.Health * HealthMultiplier(wave),
		Speed:  stats.Speed * SpeedMultiplier(wave),
		Damage: stats.Damage,
		Kind:   kind,
	}
}

// SpawnDirector decides when, where and what to spawn.
// It owns no entities; the world appends what it produces.
type SpawnDirector struct {
	rng Rand
}

// NewSpawnDirector creates a director drawing from rng.
func NewSpawnDirector(rng Rand) *SpawnDirector {
	return &SpawnDirector{rng: rng}
}

// Tick spawns at most one enemy. Missed intervals are skipped, never queued,
// and the timer restarts even when the population cap swallows the spawn.
func (d *SpawnDirector) Tick(now time.Duration, wave *WaveState, live int) (Enemy, bool) {
	if now-wave.LastSpawn <= SpawnInterval(wave.Number) {
		return Enemy{}, false
	}
	wave.LastSpawn = now

	if live > MaxLiveEnemies {
		return Enemy{}, false
	}
	return d.Spawn(wave.Number), true
}

// Spawn unconditionally produces one enemy just outside a random arena edge.
func (d *SpawnDirector) Spawn(wave int) Enemy {
	pos := d.edgePosition()
	kind := RollKind(d.rng.Float64())
	return NewEnemy(kind, wave, pos)
}

// edgePosition picks an edge uniformly and a point along it, pushed
// SpawnEdgeDistance outside the arena so enemies never appear on screen.
func (d *SpawnDirector) edgePosition() core.Vec2 {
	edge := int(d.rng.Float64() * 4)
	along := d.rng.Float64()

	switch edge {
	case 0: // top
		return core.V(along*ArenaW, -SpawnEdgeDistance)
	case 1: // right
		return core.V(ArenaW+SpawnEdgeDistance, along*ArenaH)
	case 2: // bottom
		return core.V(along*ArenaW, ArenaH+SpawnEdgeDistance)
	default: // left
		return core.V(-SpawnEdgeDistance, along*ArenaH)
	}
}
