package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/horde"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapMoveDir(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.MoveDir
	}{
		{"w", runeKey("w"), core.MoveUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.MoveUp},
		{"s", runeKey("s"), core.MoveDown},
		{"a", runeKey("a"), core.MoveLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.MoveRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := km.MoveDir(tc.msg)
			if !ok || got != tc.expected {
				t.Errorf("MoveDir() = %v, %v; expected %v", got, ok, tc.expected)
			}
		})
	}

	if _, ok := km.MoveDir(runeKey("x")); ok {
		t.Error("unbound key should not map to a direction")
	}
}

func TestKeyMapWeapon(t *testing.T) {
	km := DefaultKeyMap()

	for i, k := range horde.WeaponKinds() {
		got, ok := km.Weapon(runeKey(string(rune('1' + i))))
		if !ok || got != k {
			t.Errorf("key %d = %v, %v; expected %v", i+1, got, ok, k)
		}
	}
	if _, ok := km.Weapon(runeKey("4")); ok {
		t.Error("4 should not select a weapon")
	}
}

func TestKeyMapHelpPerPhase(t *testing.T) {
	km := DefaultKeyMap()

	contains := func(bindings []key.Binding, b key.Binding) bool {
		for _, x := range bindings {
			if x.Help() == b.Help() {
				return true
			}
		}
		return false
	}

	if !contains(km.ForPhase(horde.PhaseMenu).ShortHelp(), km.Scores) {
		t.Error("menu help should list the scoreboard")
	}
	if contains(km.ForPhase(horde.PhasePlaying).ShortHelp(), km.Scores) {
		t.Error("in-game help should not list the scoreboard")
	}
	if !contains(km.ForPhase(horde.PhaseGameOver).ShortHelp(), km.Back) {
		t.Error("game over help should list back to menu")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp should not be empty")
	}
}
