package horde

import (
	"math"
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// scriptRand returns scripted values in order, then def forever.
type scriptRand struct {
	vals []float64
	def  float64
}

func (r *scriptRand) Float64() float64 {
	if len(r.vals) == 0 {
		return r.def
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

func constRand(v float64) *scriptRand {
	return &scriptRand{def: v}
}

const testTick = time.Second / 60

// newQuietWorld returns a world whose spawn timer never fires, so tests
// control every enemy.
func newQuietWorld() *World {
	w := NewWorld(testTick, constRand(0.5))
	w.Wave.LastSpawn = time.Hour
	return w
}

// addEnemy places a wave-1 enemy with the given health.
func addEnemy(w *World, kind EnemyKind, pos core.Vec2, health float64) *Enemy {
	e := NewEnemy(kind, 1, pos)
	e.ID = w.newID()
	e.Health = health
	w.Enemies = append(w.Enemies, e)
	return &w.Enemies[len(w.Enemies)-1]
}

// addShot places a stationary projectile.
func addShot(w *World, pos core.Vec2, damage float64) {
	w.Projectiles = append(w.Projectiles, Projectile{
		Entity: Entity{ID: w.newID(), Pos: pos, Radius: ProjectileRadius},
		Damage: damage,
	})
}
