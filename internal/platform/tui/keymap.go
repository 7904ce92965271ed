package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/horde"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Pistol  key.Binding
	Shotgun key.Binding
	Rifle   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Scores  key.Binding
	Shot    key.Binding
	Quit    key.Binding

	phase horde.Phase
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("s", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right")),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "fire"),
		),
		Pistol: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-3", "weapon"),
		),
		Shotgun: key.NewBinding(key.WithKeys("2")),
		Rifle:   key.NewBinding(key.WithKeys("3")),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "high scores"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ForPhase returns a copy whose help lists only the bindings usable in p.
func (k KeyMap) ForPhase(p horde.Phase) KeyMap {
	k.phase = p
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	switch k.phase {
	case horde.PhaseMenu:
		return []key.Binding{k.Confirm, k.Scores, k.Quit}
	case horde.PhaseWaveTransition:
		return []key.Binding{k.Confirm, k.Quit}
	case horde.PhaseGameOver:
		return []key.Binding{k.Confirm, k.Back, k.Quit}
	default:
		return []key.Binding{k.Up, k.Fire, k.Pistol, k.Shot, k.Quit}
	}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Fire, k.Pistol},
		{k.Confirm, k.Back, k.Scores},
		{k.Shot, k.Quit},
	}
}

// MoveDir maps a key to a movement direction.
func (k KeyMap) MoveDir(msg tea.KeyMsg) (core.MoveDir, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.MoveUp, true
	case key.Matches(msg, k.Down):
		return core.MoveDown, true
	case key.Matches(msg, k.Left):
		return core.MoveLeft, true
	case key.Matches(msg, k.Right):
		return core.MoveRight, true
	}
	return 0, false
}

// Weapon maps a key to a weapon selection.
func (k KeyMap) Weapon(msg tea.KeyMsg) (horde.WeaponKind, bool) {
	switch {
	case key.Matches(msg, k.Pistol):
		return horde.WeaponPistol, true
	case key.Matches(msg, k.Shotgun):
		return horde.WeaponShotgun, true
	case key.Matches(msg, k.Rifle):
		return horde.WeaponRifle, true
	}
	return 0, false
}
