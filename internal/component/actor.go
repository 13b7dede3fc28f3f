package component

// MoveState is the player's animation-relevant movement state.
type MoveState uint8

const (
	Idle MoveState = iota
	Run
)

func (s MoveState) String() string {
	if s == Run {
		return "run"
	}
	return "idle"
}

// Player is the singleton player tag.
type Player struct {
	State MoveState
}

// Enemy tags a horde member. Kind only selects the sprite; all kinds behave alike.
type Enemy struct {
	Kind string
}

// Decoration is static scenery spawned with the match.
type Decoration struct{}

// MatchMember tags every entity whose lifetime is scoped to the current
// match. Cleanup removes tagged entities together with their children.
type MatchMember struct{}
