package core

// MoveDir is one of the four movement axes a player can hold.
type MoveDir int

const (
	MoveUp MoveDir = iota
	MoveDown
	MoveLeft
	MoveRight
	moveDirCount
)

// String returns a human-readable name for the direction.
func (d MoveDir) String() string {
	switch d {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Controls is the held input state the simulation reads once per tick.
// The presentation layer mutates it only through discrete commands.
type Controls struct {
	Move    [moveDirCount]bool
	Aim     Vec2 // Aim target in arena space
	Trigger bool // Fire button held
}

// SetMove marks a movement direction as held or released.
// Unknown directions are ignored.
func (c *Controls) SetMove(d MoveDir, active bool) {
	if d < 0 || d >= moveDirCount {
		return
	}
	c.Move[d] = active
}

// Held returns whether a movement direction is currently held.
func (c Controls) Held(d MoveDir) bool {
	if d < 0 || d >= moveDirCount {
		return false
	}
	return c.Move[d]
}

// Step returns the unnormalized per-axis movement step for the held keys.
// Opposite keys cancel; diagonals are intentionally faster than one axis.
func (c Controls) Step(speed float64) Vec2 {
	var v Vec2
	if c.Move[MoveUp] {
		v.Y -= speed
	}
	if c.Move[MoveDown] {
		v.Y += speed
	}
	if c.Move[MoveLeft] {
		v.X -= speed
	}
	if c.Move[MoveRight] {
		v.X += speed
	}
	return v
}

// Release clears every held direction and the trigger.
func (c *Controls) Release() {
	c.Move = [moveDirCount]bool{}
	c.Trigger = false
}
