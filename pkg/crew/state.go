package crew

// State is the phase of the game state machine
type State int

// game states
const (
	StateWaiting State = iota
	StateDeal
	StateBid
	StateCommunicate
	StateTurn
	StateEnd
)

var stateNames = [...]string{"waiting", "deal", "bid", "communicate", "turn", "end"}

func (s State) String() string {
	if s < StateWaiting || s > StateEnd {
		return "unknown"
	}

	return stateNames[s]
}

// validTransitions is the closed set of legal state transitions.
// Anything not listed is rejected with an InvalidStateError.
var validTransitions = map[State][]State{
	StateWaiting:     {StateDeal},
	StateDeal:        {StateBid},
	StateBid:         {StateCommunicate},
	StateCommunicate: {StateTurn},
	StateTurn:        {StateTurn, StateEnd},
}

// transition moves the game to the next state, or returns an
// InvalidStateError naming the attempted operation
func (g *Game) transition(op string, to State) error {
	for _, next := range validTransitions[g.state] {
		if next == to {
			g.state = to
			return nil
		}
	}

	return &InvalidStateError{Op: op, State: g.state}
}

// requireState rejects an operation unless the game is in the given state
func (g *Game) requireState(op string, s State) error {
	if g.state != s {
		return &InvalidStateError{Op: op, State: g.state}
	}

	return nil
}
