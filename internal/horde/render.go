package horde

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/horde/internal/core"
)

// Glyphs used to draw the arena.
const (
	PlayerChar     = '@'
	ReticleChar    = '+'
	NormalChar     = 'z'
	FastChar       = 'x'
	TankChar       = 'Z'
	ProjectileChar = '•'
	ParticleChar   = '.'
	FloorChar      = ' '
)

// hudRows are the lines above the arena; the selector strip sits below it.
const hudRows = 2

// ArenaView maps arena coordinates onto a block of screen cells.
type ArenaView struct {
	Rect core.Rect // Inner cell area, excluding the border
}

// NewArenaView lays the arena out under the HUD on a screen of w×h cells.
func NewArenaView(w, h int) ArenaView {
	// Border (2) plus the selector strip (1).
	return ArenaView{Rect: core.NewRect(1, hudRows+1, core.Max(w-2, 1), core.Max(h-hudRows-3, 1))}
}

// ToCell converts an arena point to a cell; ok is false outside the arena.
func (v ArenaView) ToCell(p core.Vec2) (x, y int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= ArenaW || p.Y >= ArenaH {
		return 0, 0, false
	}
	x = v.Rect.X + int(p.X/ArenaW*float64(v.Rect.W))
	y = v.Rect.Y + int(p.Y/ArenaH*float64(v.Rect.H))
	return x, y, true
}

// ToArena converts a cell to the arena point at its center, clamped to the
// arena so cursors over the border still aim sensibly.
func (v ArenaView) ToArena(x, y int) core.Vec2 {
	cx := (float64(x-v.Rect.X) + 0.5) / float64(v.Rect.W) * ArenaW
	cy := (float64(y-v.Rect.Y) + 0.5) / float64(v.Rect.H) * ArenaH
	return core.V(core.ClampF(cx, 0, ArenaW), core.ClampF(cy, 0, ArenaH))
}

// Render draws a snapshot: arena and HUD while playing, panels otherwise.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()

	switch snap.Phase {
	case PhaseMenu:
		renderMenu(dst)
		return
	case PhasePlaying:
		renderArena(snap, dst)
	case PhaseWaveTransition:
		renderArena(snap, dst)
		renderBriefing(snap, dst)
	case PhaseGameOver:
		renderArena(snap, dst)
		renderGameOver(snap, dst)
	}
}

func renderArena(snap Snapshot, dst *core.Screen) {
	v := NewArenaView(dst.Width(), dst.Height())
	outer := core.NewRect(v.Rect.X-1, v.Rect.Y-1, v.Rect.W+2, v.Rect.H+2)
	dst.DrawBox(outer, core.ColorDarkGray)

	for _, p := range snap.Particles {
		if x, y, ok := v.ToCell(p.Pos); ok {
			dst.SetColored(x, y, ParticleChar, p.Color)
		}
	}
	for _, e := range snap.Enemies {
		if !e.Alive() {
			continue
		}
		if x, y, ok := v.ToCell(e.Pos); ok {
			dst.SetColored(x, y, enemyChar(e.Kind), e.Color)
		}
	}
	for _, b := range snap.Projectiles {
		if x, y, ok := v.ToCell(b.Pos); ok {
			dst.SetColored(x, y, ProjectileChar, b.Color)
		}
	}

	pl := snap.Player
	if x, y, ok := v.ToCell(pl.Pos.Add(core.FromAngle(pl.Angle, pl.Radius*2))); ok {
		dst.SetColored(x, y, ReticleChar, core.ColorGray)
	}
	if x, y, ok := v.ToCell(pl.Pos); ok {
		dst.SetColored(x, y, PlayerChar, pl.Color)
	}

	renderHUD(snap, dst)
	renderSelector(snap, dst, outer.Bottom())
}

func enemyChar(k EnemyKind) rune {
	switch k {
	case EnemyFast:
		return FastChar
	case EnemyTank:
		return TankChar
	default:
		return NormalChar
	}
}

// bar renders a fixed-width progress bar.
func bar(frac float64, width int) string {
	frac = core.ClampF(frac, 0, 1)
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderHUD(snap Snapshot, dst *core.Screen) {
	progress := 0.0
	if snap.Quota > 0 {
		progress = float64(snap.Kills) / float64(snap.Quota)
	}
	dst.DrawTextColored(1, 0, fmt.Sprintf("WAVE %d", snap.Wave), core.ColorBrightRed)
	dst.DrawText(10, 0, fmt.Sprintf("KILLS %d/%d %s", snap.Kills, snap.Quota, bar(progress, 12)))

	score := fmt.Sprintf("SCORE %d", snap.Score)
	dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorBrightWhite)

	healthColor := core.ColorBrightGreen
	switch {
	case snap.HealthPct <= 25:
		healthColor = core.ColorBrightRed
	case snap.HealthPct <= 50:
		healthColor = core.ColorYellow
	}
	dst.DrawTextColored(1, 1, fmt.Sprintf("HP %s %3.0f%%", bar(snap.HealthPct/100, 20), snap.HealthPct), healthColor)

	weapon := fmt.Sprintf("%s %s", snap.Weapon, ammoLabel(snap.Ammo))
	dst.DrawTextColored(dst.Width()-len([]rune(weapon))-1, 1, weapon, core.ColorBrightYellow)
}

func ammoLabel(ammo int) string {
	if ammo == AmmoUnlimited {
		return "∞"
	}
	return fmt.Sprintf("%d", ammo)
}

func renderSelector(snap Snapshot, dst *core.Screen, y int) {
	x := 1
	for i, k := range WeaponKinds() {
		label := fmt.Sprintf("[%d] %s %s", i+1, k, ammoLabel(snap.Player.Ammo[k]))
		c := core.ColorGray
		if k == snap.Weapon {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, y, label, c)
		x += len([]rune(label)) + 3
	}
}

// panel clears a centered box and returns where its text starts.
func panel(dst *core.Screen, w, h int, c core.Color) (x, y int) {
	w = core.Min(w, dst.Width())
	h = core.Min(h, dst.Height())
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	return r.X + 2, r.Y + 1
}

func renderMenu(dst *core.Screen) {
	_, y := panel(dst, 48, 11, core.ColorBrightRed)
	dst.DrawTextCentered(y+1, "H O R D E", core.ColorBrightRed)
	dst.DrawTextCentered(y+3, "Survive the waves. Hold the line.", core.ColorGray)
	dst.DrawTextCentered(y+5, "WASD / arrows move   mouse aims", core.ColorDefault)
	dst.DrawTextCentered(y+6, "click or space fires   1-3 weapons", core.ColorDefault)
	dst.DrawTextCentered(y+8, "Press ENTER to deploy", core.ColorBrightYellow)
}

func renderBriefing(snap Snapshot, dst *core.Screen) {
	const width = 56
	x, y := panel(dst, width, 14, core.ColorRed)
	dst.DrawTextCentered(y, fmt.Sprintf("WAVE %d CLEARED", snap.Wave), core.ColorBrightGreen)

	if snap.IntelLoading || snap.Intel == nil {
		dst.DrawTextCentered(y+5, "Receiving transmission from HQ...", core.ColorGray)
	} else {
		r := snap.Intel
		dst.DrawTextCentered(y+2, strings.ToUpper(r.Title), core.ColorBrightRed)
		dst.DrawTextColored(x, y+3, "THREAT LEVEL: "+r.ThreatLevel, core.ColorOrange)
		row := y + 5
		for _, line := range wrap(r.Description, width-4) {
			dst.DrawText(x, row, line)
			row++
		}
		row++
		for _, line := range wrap("MUTATION: "+r.MutationNote, width-4) {
			dst.DrawTextColored(x, row, line, core.ColorYellow)
			row++
		}
	}
	dst.DrawTextCentered(y+11, fmt.Sprintf("Press ENTER to begin wave %d", snap.Wave+1), core.ColorBrightYellow)
}

func renderGameOver(snap Snapshot, dst *core.Screen) {
	_, y := panel(dst, 40, 10, core.ColorDarkRed)
	dst.DrawTextCentered(y+1, "YOU WERE OVERRUN", core.ColorBrightRed)
	dst.DrawTextCentered(y+3, fmt.Sprintf("Final score: %d", snap.FinalScore), core.ColorBrightWhite)
	dst.DrawTextCentered(y+4, fmt.Sprintf("Waves survived: %d", snap.WavesSurvived), core.ColorDefault)
	dst.DrawTextCentered(y+6, "ENTER retry   ESC menu", core.ColorBrightYellow)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		n := len([]rune(line.String()))
		if n > 0 && n+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
