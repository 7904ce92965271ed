package horde

import (
	"time"

	"github.com/vovakirdan/horde/internal/core"
)

// WeaponKind selects one of the three weapons.
type WeaponKind int

const (
	WeaponPistol WeaponKind = iota
	WeaponShotgun
	WeaponRifle
	weaponCount
)

// String returns the display name of the weapon.
func (k WeaponKind) String() string {
	switch k {
	case WeaponPistol:
		return "PISTOL"
	case WeaponShotgun:
		return "SHOTGUN"
	case WeaponRifle:
		return "RIFLE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether k names a real weapon.
func (k WeaponKind) Valid() bool {
	return k >= 0 && k < weaponCount
}

// WeaponKinds lists every weapon in selector order.
func WeaponKinds() []WeaponKind {
	return []WeaponKind{WeaponPistol, WeaponShotgun, WeaponRifle}
}

// WeaponStats describes a weapon's fire pattern and economy.
type WeaponStats struct {
	Damage    float64
	Cooldown  time.Duration
	AmmoCost  int
	Spread    float64 // Full width of the random angular perturbation, radians
	Pellets   int     // Projectiles per trigger pull
	StartAmmo int
}

var weaponStats = [weaponCount]WeaponStats{
	WeaponPistol:  {Damage: 15, Cooldown: 250 * time.Millisecond, AmmoCost: 0, Spread: 0.05, Pellets: 1, StartAmmo: AmmoUnlimited},
	WeaponShotgun: {Damage: 12, Cooldown: 800 * time.Millisecond, AmmoCost: 1, Spread: 0.4, Pellets: 6, StartAmmo: 12},
	WeaponRifle:   {Damage: 10, Cooldown: 100 * time.Millisecond, AmmoCost: 1, Spread: 0.1, Pellets: 1, StartAmmo: 60},
}

// StatsForWeapon returns the fixed stats of a weapon.
func StatsForWeapon(k WeaponKind) WeaponStats {
	return weaponStats[k]
}

// startingAmmo returns the per-weapon ammo a new player carries.
func startingAmmo() [weaponCount]int {
	var ammo [weaponCount]int
	for k := range weaponStats {
		ammo[k] = weaponStats[k].StartAmmo
	}
	return ammo
}

// FireResult describes what a trigger pull produced.
type FireResult struct {
	Projectiles []Projectile
	Switched    bool // Empty magazine forced a switch to the pistol
}

// Fire pulls the trigger of the player's current weapon at time now.
// Inside the cooldown nothing changes. An empty non-default weapon is
// swapped for the pistol without firing. Projectiles are returned without IDs.
func Fire(p *Player, now time.Duration, rng Rand) FireResult {
	stats := weaponStats[p.Weapon]
	if now-p.LastShot < stats.Cooldown {
		return FireResult{}
	}

	if p.Weapon != WeaponPistol {
		if p.Ammo[p.Weapon] <= 0 {
			p.Weapon = WeaponPistol
			return FireResult{Switched: true}
		}
		p.Ammo[p.Weapon] -= stats.AmmoCost
	}
	p.LastShot = now

	shots := make([]Projectile, stats.Pellets)
	for i := range shots {
		angle := p.Angle + (rng.Float64()-0.5)*stats.Spread
		shots[i] = Projectile{
			Entity: Entity{
				Pos:    p.Pos,
				Radius: ProjectileRadius,
				Color:  core.ColorBrightYellow,
			},
			Velocity: core.FromAngle(angle, ProjectileSpeed),
			Damage:   stats.Damage,
		}
	}
	return FireResult{Projectiles: shots}
}

// SelectWeapon switches the active weapon. The displayed ammo follows the
// stored value of the new weapon. Unknown kinds are ignored.
func SelectWeapon(p *Player, k WeaponKind) bool {
	if !k.Valid() {
		return false
	}
	p.Weapon = k
	return true
}
