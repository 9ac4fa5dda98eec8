package crew

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is an error when a played card is not in the player's legal move set
var ErrIllegalMove = errors.New("card is not a legal play")

// ErrGameFull is an error when a player tries to join a full game
var ErrGameFull = errors.New("the game is full")

// ErrUnknownMission is an error when a mission id has no entry in the catalog
var ErrUnknownMission = errors.New("unknown mission")

// ErrPlayerNotInGame is an error when the acting player never joined the game
var ErrPlayerNotInGame = errors.New("player is not in the game")

// InvalidStateError is an error when an operation is attempted in a state
// that forbids it
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: game state is %s", e.Op, e.State)
}

// OutOfTurnError is an error when play is attempted by a player other than
// the one the game is waiting on
type OutOfTurnError struct {
	Expected string
}

func (e *OutOfTurnError) Error() string {
	return fmt.Sprintf("out of turn: waiting on %s", e.Expected)
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min, Max, Got int
}

func (e PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", e.Min, e.Max, e.Got)
}
