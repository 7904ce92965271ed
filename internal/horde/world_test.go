package horde

import (
	"testing"
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

func TestNewWorld(t *testing.T) {
	w := NewWorld(testTick, constRand(0.5))
	p := w.Player

	if p.Pos != core.V(ArenaW/2, ArenaH/2) {
		t.Errorf("player should start at the arena center, got %+v", p.Pos)
	}
	if p.Health != 100 || p.MaxHealth != 100 || p.Weapon != WeaponPistol {
		t.Errorf("unexpected starting player %+v", p)
	}
	if w.Wave.Number != 1 || w.Wave.Quota != 10 {
		t.Errorf("unexpected starting wave %+v", w.Wave)
	}
}

func TestStepAdvancesClock(t *testing.T) {
	w := newQuietWorld()
	w.Step()
	w.Step()
	if w.Now() != 2*testTick {
		t.Errorf("Now() = %v, expected %v", w.Now(), 2*testTick)
	}
}

func TestPlayerStaysInsideArena(t *testing.T) {
	dirs := []core.MoveDir{core.MoveUp, core.MoveDown, core.MoveLeft, core.MoveRight}

	for mask := 0; mask < 16; mask++ {
		w := newQuietWorld()
		for i, d := range dirs {
			w.Controls.SetMove(d, mask&(1<<i) != 0)
		}
		for i := 0; i < 300; i++ {
			w.Step()
			p := w.Player.Pos
			if p.X < PlayerRadius || p.X > ArenaW-PlayerRadius || p.Y < PlayerRadius || p.Y > ArenaH-PlayerRadius {
				t.Fatalf("mask %04b tick %d: player escaped to %+v", mask, i, p)
			}
		}
	}
}

func TestPlayerClampedAtEdge(t *testing.T) {
	w := newQuietWorld()
	w.Player.Pos = core.V(22, 400)
	w.Controls.SetMove(core.MoveLeft, true)
	w.Step()

	if w.Player.Pos.X != PlayerRadius {
		t.Errorf("x = %f, expected clamp at %f", w.Player.Pos.X, PlayerRadius)
	}
}

func TestDiagonalNotNormalized(t *testing.T) {
	w := newQuietWorld()
	start := w.Player.Pos
	w.Controls.SetMove(core.MoveRight, true)
	w.Controls.SetMove(core.MoveDown, true)
	w.Step()

	if d := w.Player.Pos.Sub(start); d != core.V(PlayerSpeed, PlayerSpeed) {
		t.Errorf("diagonal step = %+v, expected (4, 4)", d)
	}
}

func TestAimAndFire(t *testing.T) {
	w := newQuietWorld()
	w.Controls.Aim = w.Player.Pos.Add(core.V(100, 0))
	w.Controls.Trigger = true

	res := w.Step()
	if res.Fired != 1 || len(w.Projectiles) != 1 {
		t.Fatalf("expected one pistol shot, got %+v", res)
	}
	if !approx(w.Player.Angle, 0) {
		t.Errorf("angle = %f, expected 0", w.Player.Angle)
	}
	// Spread roll 0.5 means no deflection; one tick of travel already applied.
	b := w.Projectiles[0]
	if !approx(b.Pos.X, ArenaW/2+ProjectileSpeed) || !approx(b.Pos.Y, ArenaH/2) {
		t.Errorf("projectile at %+v after one tick", b.Pos)
	}

	// Still inside the 250ms cooldown.
	if res := w.Step(); res.Fired != 0 {
		t.Error("pistol should not fire again inside its cooldown")
	}
}

func TestSpawnThroughStep(t *testing.T) {
	w := NewWorld(testTick, constRand(0.2))
	w.Wave.LastSpawn = -time.Hour

	res := w.Step()
	if res.Spawned != 1 || len(w.Enemies) != 1 {
		t.Fatalf("expected one spawn, got %+v", res)
	}
	if w.Enemies[0].ID == 0 {
		t.Error("spawned enemy should get an id")
	}
}

func TestEnemyPursuesPlayer(t *testing.T) {
	w := newQuietWorld()
	e := addEnemy(w, EnemyNormal, core.V(ArenaW/2+200, ArenaH/2), 30)
	w.Step()

	if !approx(e.Pos.X, ArenaW/2+200-e.Speed) || !approx(e.Pos.Y, ArenaH/2) {
		t.Errorf("enemy at %+v, expected one step toward the player", e.Pos)
	}
}

func TestContactDamage(t *testing.T) {
	w := newQuietWorld()
	addEnemy(w, EnemyNormal, w.Player.Pos.Add(core.V(10, 0)), 30)
	w.Step()

	if !approx(w.Player.Health, 100-ContactDamage) {
		t.Errorf("health = %f, expected %f", w.Player.Health, 100-ContactDamage)
	}
}

func TestDeadEnemyIsInert(t *testing.T) {
	w := newQuietWorld()
	e := addEnemy(w, EnemyNormal, w.Player.Pos.Add(core.V(10, 0)), 30)
	e.dead = true
	start := e.Pos
	addShot(w, start, 15)

	res := w.Step()

	if w.Player.Health != 100 {
		t.Errorf("dead enemy dealt damage, health = %f", w.Player.Health)
	}
	if res.Hits != 0 {
		t.Error("dead enemy absorbed a projectile")
	}
	if len(w.Enemies) != 0 {
		t.Error("dead enemy should be removed by the end of the tick")
	}
}

func TestMultipleHitsScoreOneKill(t *testing.T) {
	w := newQuietWorld()
	pos := core.V(ArenaW/2, 200)
	addEnemy(w, EnemyNormal, pos, 10)
	for i := 0; i < 6; i++ {
		addShot(w, pos.Add(core.V(0, 1)), 12)
	}

	res := w.Step()

	if res.Kills != 1 || res.Hits != 1 {
		t.Errorf("kills = %d hits = %d, expected exactly one of each", res.Kills, res.Hits)
	}
	if w.Player.Score != 25 {
		t.Errorf("score = %d, expected 25", w.Player.Score)
	}
	if w.Wave.Kills != 1 {
		t.Errorf("wave kills = %d, expected 1", w.Wave.Kills)
	}
	if len(w.Projectiles) != 5 {
		t.Errorf("projectiles = %d, only the killing shot should be consumed", len(w.Projectiles))
	}
	if len(w.Enemies) != 0 {
		t.Error("killed enemy should be removed")
	}
}

func TestHitWithoutKill(t *testing.T) {
	w := newQuietWorld()
	pos := core.V(ArenaW/2, 200)
	e := addEnemy(w, EnemyTank, pos, 100)
	addShot(w, pos, 15)

	res := w.Step()

	if res.Hits != 1 || res.Kills != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if e.Health != 85 {
		t.Errorf("tank health = %f, expected 85", e.Health)
	}
	if len(w.Projectiles) != 0 {
		t.Error("projectile should be consumed by the hit")
	}
	if len(w.Particles) != hitBurstCount {
		t.Errorf("particles = %d, expected one hit burst of %d", len(w.Particles), hitBurstCount)
	}
}

func TestKillScoresByKind(t *testing.T) {
	tests := []struct {
		kind  EnemyKind
		score int
	}{
		{EnemyNormal, 25},
		{EnemyFast, 75},
		{EnemyTank, 150},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			w := newQuietWorld()
			pos := core.V(ArenaW/2, 150)
			addEnemy(w, tc.kind, pos, 1)
			addShot(w, pos, 15)
			w.Step()

			if w.Player.Score != tc.score {
				t.Errorf("score = %d, expected %d", w.Player.Score, tc.score)
			}
			if len(w.Particles) != hitBurstCount+killBurstCount {
				t.Errorf("particles = %d, expected hit and kill bursts", len(w.Particles))
			}
		})
	}
}

func TestProjectileCulledOutsideMargin(t *testing.T) {
	w := newQuietWorld()
	w.Projectiles = []Projectile{
		{Entity: Entity{Pos: core.V(ArenaW+ProjectileMargin-20, 400), Radius: ProjectileRadius}, Velocity: core.V(ProjectileSpeed, 0)},
		{Entity: Entity{Pos: core.V(ArenaW+ProjectileMargin-10, 400), Radius: ProjectileRadius}, Velocity: core.V(ProjectileSpeed, 0)},
		{Entity: Entity{Pos: core.V(400, -ProjectileMargin+5), Radius: ProjectileRadius}, Velocity: core.V(0, -ProjectileSpeed)},
	}
	w.Step()

	if len(w.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, expected only the one within the margin", len(w.Projectiles))
	}
	if !approx(w.Projectiles[0].Pos.X, ArenaW+ProjectileMargin-5) {
		t.Errorf("wrong projectile kept: %+v", w.Projectiles[0].Pos)
	}
}

func TestParticlesExpire(t *testing.T) {
	w := newQuietWorld()
	w.Particles = []Particle{
		{Velocity: core.V(1, 2), MaxAge: 1},
		{Velocity: core.V(1, 2), MaxAge: 3},
	}
	w.Step()

	if len(w.Particles) != 1 {
		t.Fatalf("particles = %d, expected 1", len(w.Particles))
	}
	p := w.Particles[0]
	if p.Age != 1 || p.Pos != core.V(1, 2) {
		t.Errorf("particle not advanced: %+v", p)
	}
}

func TestDeathEndsTickWithScore(t *testing.T) {
	w := newQuietWorld()
	w.Player.Score = 300
	w.Player.Health = 1
	addEnemy(w, EnemyNormal, w.Player.Pos.Add(core.V(5, 0)), 30)

	if res := w.Step(); res.Died {
		t.Fatal("player should survive the first contact tick")
	}
	if !approx(w.Player.Health, 0.5) {
		t.Fatalf("health = %f, expected 0.5", w.Player.Health)
	}

	// A kill pending later in the same tick must not count.
	far := core.V(100, 100)
	addEnemy(w, EnemyTank, far, 1)
	addShot(w, far, 15)

	res := w.Step()
	if !res.Died {
		t.Fatal("player should die on the second contact tick")
	}
	if res.FinalScore != 300 {
		t.Errorf("final score = %d, expected 300", res.FinalScore)
	}
	if w.Player.Health != 0 {
		t.Errorf("health = %f, expected clamp at 0", w.Player.Health)
	}
	if !w.Over() {
		t.Error("world should report game over")
	}

	if res := w.Step(); res.Advanced {
		t.Error("world should not advance after death")
	}
}

func TestWaveCompleteSignalledOnce(t *testing.T) {
	w := newQuietWorld()
	w.Wave.Kills = w.Wave.Quota - 1
	pos := core.V(ArenaW/2, 150)
	addEnemy(w, EnemyNormal, pos, 1)
	addShot(w, pos, 15)

	res := w.Step()
	if !res.WaveComplete || res.Wave != 1 {
		t.Fatalf("expected wave 1 complete, got %+v", res)
	}
	if !w.Halted() {
		t.Error("world should halt on wave completion")
	}

	for i := 0; i < 5; i++ {
		if res := w.Step(); res.WaveComplete || res.Advanced {
			t.Fatal("wave completion must be signalled exactly once")
		}
	}

	w.BeginWave(2)
	if w.Halted() || w.Wave.Number != 2 || w.Wave.Quota != 15 || w.Wave.Kills != 0 {
		t.Errorf("BeginWave(2) left %+v halted=%v", w.Wave, w.Halted())
	}
	if len(w.Enemies)+len(w.Projectiles)+len(w.Particles) != 0 {
		t.Error("BeginWave should clear hostile entities and effects")
	}
	if w.Player.Score != 25 {
		t.Errorf("score should carry over, got %d", w.Player.Score)
	}
}

func TestTenNormalKillsCompleteWaveOne(t *testing.T) {
	w := newQuietWorld()
	pos := core.V(ArenaW/2, 150)

	var last StepResult
	for i := 0; i < 10; i++ {
		if last.WaveComplete {
			t.Fatalf("wave completed early after %d kills", i)
		}
		addEnemy(w, EnemyNormal, pos, StatsFor(EnemyNormal).Health)
		addShot(w, pos, 30)
		last = w.Step()
	}

	if w.Player.Score != 250 {
		t.Errorf("score = %d, expected 250", w.Player.Score)
	}
	if !last.WaveComplete {
		t.Error("tenth kill should complete wave 1")
	}
}

func TestEntityIDsUnique(t *testing.T) {
	w := NewWorld(testTick, constRand(0.2))
	w.Controls.Trigger = true
	w.Controls.Aim = core.V(0, 0)
	w.Player.Weapon = WeaponShotgun

	seen := map[uint64]bool{w.Player.ID: true}
	for i := 0; i < 600 && !w.Over(); i++ {
		w.Step()
		for _, e := range w.Enemies {
			if e.ID == 0 {
				t.Fatal("enemy without id")
			}
		}
	}
	for _, e := range w.Enemies {
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
	for _, b := range w.Projectiles {
		if seen[b.ID] {
			t.Fatalf("duplicate id %d", b.ID)
		}
		seen[b.ID] = true
	}
	for _, p := range w.Particles {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
}
